package mesocycles

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/internal/training"
	"github.com/2beens/mesocycles/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=mesocycles_test

type mesocycleService interface {
	Create(ctx context.Context, planID int, startDate time.Time) (*training.Mesocycle, error)
	Preview(ctx context.Context, planID int, startDate time.Time) ([]PlannedWorkout, error)
	Get(ctx context.Context, id int) (*training.Mesocycle, error)
	GetActive(ctx context.Context) (*training.Mesocycle, error)
	List(ctx context.Context) ([]training.Mesocycle, error)
	Complete(ctx context.Context, id int) (*training.Mesocycle, error)
	Cancel(ctx context.Context, id int) (*training.Mesocycle, error)
	RefreshCurrentWeek(ctx context.Context, id int, now time.Time) (*training.Mesocycle, error)
}

type CreateMesocycleRequest struct {
	PlanID int `json:"planId"`
	// StartDate is formatted as YYYY-MM-DD.
	StartDate string `json:"startDate"`
}

type MesocyclesListResponse struct {
	Mesocycles []training.Mesocycle `json:"mesocycles"`
	Total      int                  `json:"total"`
}

type Handler struct {
	service mesocycleService
	clock   training.Clock
}

func NewHandler(service mesocycleService, clock training.Clock) *Handler {
	return &Handler{
		service: service,
		clock:   clock,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/mesocycles", h.HandleCreate).Methods("POST", "OPTIONS").Name("new-mesocycle")
	r.HandleFunc("/mesocycles/preview", h.HandlePreview).Methods("POST", "OPTIONS").Name("preview-mesocycle")
	r.HandleFunc("/mesocycles", h.HandleList).Methods("GET", "OPTIONS").Name("list-mesocycles")
	r.HandleFunc("/mesocycles/active", h.HandleGetActive).Methods("GET", "OPTIONS").Name("active-mesocycle")
	r.HandleFunc("/mesocycles/{id:[0-9]+}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-mesocycle")
	r.HandleFunc("/mesocycles/{id:[0-9]+}/complete", h.HandleComplete).Methods("PUT", "OPTIONS").Name("complete-mesocycle")
	r.HandleFunc("/mesocycles/{id:[0-9]+}/cancel", h.HandleCancel).Methods("PUT", "OPTIONS").Name("cancel-mesocycle")
	r.HandleFunc("/mesocycles/{id:[0-9]+}/current-week", h.HandleRefreshCurrentWeek).Methods("PUT", "OPTIONS").Name("refresh-mesocycle-week")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.mesocycles.create")
	defer span.End()

	planID, startDate, ok := h.readCreateRequest(w, r)
	if !ok {
		return
	}

	mesocycle, err := h.service.Create(ctx, planID, startDate)
	if err != nil {
		if IsActiveMesocycleConflict(err) {
			log.Warnf("create mesocycle from plan [%d]: %s", planID, err)
		}
		training.WriteError(w, err, "create mesocycle failed")
		return
	}

	log.Debugf("new mesocycle [%d] from plan [%d]", mesocycle.ID, planID)
	pkg.WriteJSON(w, mesocycle, http.StatusCreated)
}

func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.mesocycles.preview")
	defer span.End()

	planID, startDate, ok := h.readCreateRequest(w, r)
	if !ok {
		return
	}

	schedule, err := h.service.Preview(ctx, planID, startDate)
	if err != nil {
		training.WriteError(w, err, "preview mesocycle failed")
		return
	}
	pkg.WriteJSON(w, schedule, http.StatusOK)
}

// readCreateRequest decodes the request body, a missing start date means today.
func (h *Handler) readCreateRequest(w http.ResponseWriter, r *http.Request) (int, time.Time, bool) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return 0, time.Time{}, false
	}

	var req CreateMesocycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("new mesocycle, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return 0, time.Time{}, false
	}
	if req.PlanID <= 0 {
		http.Error(w, "error, plan id missing", http.StatusBadRequest)
		return 0, time.Time{}, false
	}

	startDate := training.DateOnly(h.clock())
	if req.StartDate != "" {
		parsed, err := time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			http.Error(w, "error, start date must be YYYY-MM-DD", http.StatusBadRequest)
			return 0, time.Time{}, false
		}
		startDate = parsed
	}

	return req.PlanID, startDate, true
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.mesocycles.list")
	defer span.End()

	list, err := h.service.List(ctx)
	if err != nil {
		training.WriteError(w, err, "list mesocycles failed")
		return
	}
	if list == nil {
		list = []training.Mesocycle{}
	}

	pkg.WriteJSON(w, MesocyclesListResponse{
		Mesocycles: list,
		Total:      len(list),
	}, http.StatusOK)
}

func (h *Handler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.mesocycles.getactive")
	defer span.End()

	mesocycle, err := h.service.GetActive(ctx)
	if err != nil {
		training.WriteError(w, err, "get active mesocycle failed")
		return
	}
	pkg.WriteJSON(w, mesocycle, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.handleByID(w, r, "get", h.service.Get)
}

func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.handleByID(w, r, "complete", h.service.Complete)
}

func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.handleByID(w, r, "cancel", h.service.Cancel)
}

func (h *Handler) HandleRefreshCurrentWeek(w http.ResponseWriter, r *http.Request) {
	h.handleByID(w, r, "refreshweek", func(ctx context.Context, id int) (*training.Mesocycle, error) {
		return h.service.RefreshCurrentWeek(ctx, id, h.clock())
	})
}

func (h *Handler) handleByID(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	call func(ctx context.Context, id int) (*training.Mesocycle, error),
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.mesocycles."+action)
	defer span.End()

	id, ok := training.PathID(r, "id")
	if !ok {
		http.Error(w, "error, invalid mesocycle id", http.StatusBadRequest)
		return
	}

	mesocycle, err := call(ctx, id)
	if err != nil {
		training.WriteError(w, err, action+" mesocycle failed")
		return
	}
	pkg.WriteJSON(w, mesocycle, http.StatusOK)
}
