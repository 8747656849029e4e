package catalog

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/internal/training"
	"github.com/2beens/mesocycles/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=catalog_test

type catalogService interface {
	ListExercises(ctx context.Context) ([]training.Exercise, error)
	CreateExercise(ctx context.Context, exercise training.Exercise) (*training.Exercise, error)
	DeleteExercise(ctx context.Context, id int) (bool, error)
	CreatePlan(ctx context.Context, input PlanInput) (*PlanDetails, error)
	GetPlan(ctx context.Context, id int) (*PlanDetails, error)
	DeletePlan(ctx context.Context, id int) (bool, error)
}

type ExercisesListResponse struct {
	Exercises []training.Exercise `json:"exercises"`
	Total     int                 `json:"total"`
}

type Handler struct {
	service catalogService
}

func NewHandler(service catalogService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/exercises", h.HandleListExercises).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises", h.HandleCreateExercise).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/{id:[0-9]+}", h.HandleDeleteExercise).Methods("DELETE", "OPTIONS").Name("delete-exercise")
	r.HandleFunc("/plans", h.HandleCreatePlan).Methods("POST", "OPTIONS").Name("new-plan")
	r.HandleFunc("/plans/{id:[0-9]+}", h.HandleGetPlan).Methods("GET", "OPTIONS").Name("get-plan")
	r.HandleFunc("/plans/{id:[0-9]+}", h.HandleDeletePlan).Methods("DELETE", "OPTIONS").Name("delete-plan")
}

func (h *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.listexercises")
	defer span.End()

	exercises, err := h.service.ListExercises(ctx)
	if err != nil {
		training.WriteError(w, err, "list exercises failed")
		return
	}
	if exercises == nil {
		exercises = []training.Exercise{}
	}

	pkg.WriteJSON(w, ExercisesListResponse{
		Exercises: exercises,
		Total:     len(exercises),
	}, http.StatusOK)
}

func (h *Handler) HandleCreateExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.createexercise")
	defer span.End()

	var exercise training.Exercise
	if !decodeJSON(w, r, &exercise) {
		return
	}

	created, err := h.service.CreateExercise(ctx, exercise)
	if err != nil {
		training.WriteError(w, err, "create exercise failed")
		return
	}
	pkg.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, "exercise", h.service.DeleteExercise)
}

func (h *Handler) HandleCreatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.createplan")
	defer span.End()

	var input PlanInput
	if !decodeJSON(w, r, &input) {
		return
	}

	details, err := h.service.CreatePlan(ctx, input)
	if err != nil {
		training.WriteError(w, err, "create plan failed")
		return
	}
	pkg.WriteJSON(w, details, http.StatusCreated)
}

func (h *Handler) HandleGetPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.getplan")
	defer span.End()

	id, ok := training.PathID(r, "id")
	if !ok {
		http.Error(w, "error, invalid plan id", http.StatusBadRequest)
		return
	}

	details, err := h.service.GetPlan(ctx, id)
	if err != nil {
		training.WriteError(w, err, "get plan failed")
		return
	}
	pkg.WriteJSON(w, details, http.StatusOK)
}

func (h *Handler) HandleDeletePlan(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, "plan", h.service.DeletePlan)
}

func (h *Handler) handleDelete(
	w http.ResponseWriter,
	r *http.Request,
	entity string,
	del func(ctx context.Context, id int) (bool, error),
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.delete"+entity)
	defer span.End()

	id, ok := training.PathID(r, "id")
	if !ok {
		http.Error(w, "error, invalid "+entity+" id", http.StatusBadRequest)
		return
	}

	deleted, err := del(ctx, id)
	if err != nil {
		training.WriteError(w, err, "delete "+entity+" failed")
		return
	}
	if !deleted {
		http.Error(w, entity+" not found", http.StatusNotFound)
		return
	}

	log.Debugf("%s [%d] deleted", entity, id)
	pkg.WriteTextResponseOK(w, "deleted")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Errorf("catalog, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
