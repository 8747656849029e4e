package planmod

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=planmod_test

type planModifier interface {
	GetFutureWorkouts(ctx context.Context, mesocycleID int) ([]training.Workout, error)
	EditPlanDay(ctx context.Context, planDayID int, exercises []training.PlanDayExercise) (*PlanDayEdit, error)
	SyncPlanDay(ctx context.Context, mesocycleID, planDayID int) (*ModificationResult, error)
}

type EditPlanDayRequest struct {
	Exercises []training.PlanDayExercise `json:"exercises"`
}

type FutureWorkoutsResponse struct {
	Workouts []training.Workout `json:"workouts"`
	Total    int                `json:"total"`
}

type Handler struct {
	engine planModifier
}

func NewHandler(engine planModifier) *Handler {
	return &Handler{
		engine: engine,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/plan-days/{id:[0-9]+}/exercises", h.HandleEditPlanDay).Methods("PUT", "OPTIONS").Name("edit-plan-day")
	r.HandleFunc("/mesocycles/{id:[0-9]+}/plan-days/{dayId:[0-9]+}/sync", h.HandleSync).Methods("POST", "OPTIONS").Name("sync-plan-day")
	r.HandleFunc("/mesocycles/{id:[0-9]+}/future-workouts", h.HandleFutureWorkouts).Methods("GET", "OPTIONS").Name("future-workouts")
}

func (h *Handler) HandleEditPlanDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.planmod.editplanday")
	defer span.End()

	planDayID, ok := training.PathID(r, "id")
	if !ok {
		http.Error(w, "error, invalid plan day id", http.StatusBadRequest)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req EditPlanDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("edit plan day, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	edit, err := h.engine.EditPlanDay(ctx, planDayID, req.Exercises)
	if err != nil {
		training.WriteError(w, err, "edit plan day failed")
		return
	}

	if edit.Result != nil && len(edit.Result.Warnings) > 0 {
		log.Warnf("plan day [%d] edited with %d warnings", planDayID, len(edit.Result.Warnings))
	}
	pkg.WriteJSON(w, edit, http.StatusOK)
}

func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.planmod.sync")
	defer span.End()

	mesocycleID, ok := training.PathID(r, "id")
	if !ok {
		http.Error(w, "error, invalid mesocycle id", http.StatusBadRequest)
		return
	}
	planDayID, ok := training.PathID(r, "dayId")
	if !ok {
		http.Error(w, "error, invalid plan day id", http.StatusBadRequest)
		return
	}

	result, err := h.engine.SyncPlanDay(ctx, mesocycleID, planDayID)
	if err != nil {
		training.WriteError(w, err, "sync plan day failed")
		return
	}
	pkg.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) HandleFutureWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.planmod.futureworkouts")
	defer span.End()

	mesocycleID, ok := training.PathID(r, "id")
	if !ok {
		http.Error(w, "error, invalid mesocycle id", http.StatusBadRequest)
		return
	}

	workouts, err := h.engine.GetFutureWorkouts(ctx, mesocycleID)
	if err != nil {
		training.WriteError(w, err, "get future workouts failed")
		return
	}

	pkg.WriteJSON(w, FutureWorkoutsResponse{
		Workouts: workouts,
		Total:    len(workouts),
	}, http.StatusOK)
}
