package workouts

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutService interface {
	GetByID(ctx context.Context, id int) (*WorkoutDetails, error)
	GetTodaysWorkout(ctx context.Context) (*WorkoutDetails, error)
	Start(ctx context.Context, id int) (*WorkoutDetails, error)
	Complete(ctx context.Context, id int) (*training.Workout, error)
	Skip(ctx context.Context, id int) (*training.Workout, error)
}

type setService interface {
	GetByID(ctx context.Context, id int) (*training.WorkoutSet, error)
	Log(ctx context.Context, id int, actualReps int, actualWeight float64) (*training.WorkoutSet, error)
	Skip(ctx context.Context, id int) (*training.WorkoutSet, error)
}

type LogSetRequest struct {
	ActualReps   *int     `json:"actualReps"`
	ActualWeight *float64 `json:"actualWeight"`
}

type Handler struct {
	workouts workoutService
	sets     setService
}

func NewHandler(workouts workoutService, sets setService) *Handler {
	return &Handler{
		workouts: workouts,
		sets:     sets,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts/today", h.HandleGetToday).Methods("GET", "OPTIONS").Name("today-workout")
	r.HandleFunc("/workouts/{id:[0-9]+}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{id:[0-9]+}/start", h.HandleStart).Methods("PUT", "OPTIONS").Name("start-workout")
	r.HandleFunc("/workouts/{id:[0-9]+}/complete", h.HandleComplete).Methods("PUT", "OPTIONS").Name("complete-workout")
	r.HandleFunc("/workouts/{id:[0-9]+}/skip", h.HandleSkip).Methods("PUT", "OPTIONS").Name("skip-workout")

	r.HandleFunc("/workout-sets/{id:[0-9]+}", h.HandleGetSet).Methods("GET", "OPTIONS").Name("get-set")
	r.HandleFunc("/workout-sets/{id:[0-9]+}/log", h.HandleLogSet).Methods("PUT", "OPTIONS").Name("log-set")
	r.HandleFunc("/workout-sets/{id:[0-9]+}/skip", h.HandleSkipSet).Methods("PUT", "OPTIONS").Name("skip-set")
}

func (h *Handler) HandleGetToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.today")
	defer span.End()

	details, err := h.workouts.GetTodaysWorkout(ctx)
	if err != nil {
		training.WriteError(w, err, "get todays workout failed")
		return
	}
	if details == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	pkg.WriteJSON(w, details, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	handleByID(w, r, "handler.workouts.get", "get workout failed", h.workouts.GetByID)
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	handleByID(w, r, "handler.workouts.start", "start workout failed", h.workouts.Start)
}

func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	handleByID(w, r, "handler.workouts.complete", "complete workout failed", h.workouts.Complete)
}

func (h *Handler) HandleSkip(w http.ResponseWriter, r *http.Request) {
	handleByID(w, r, "handler.workouts.skip", "skip workout failed", h.workouts.Skip)
}

func (h *Handler) HandleGetSet(w http.ResponseWriter, r *http.Request) {
	handleByID(w, r, "handler.sets.get", "get set failed", h.sets.GetByID)
}

func (h *Handler) HandleSkipSet(w http.ResponseWriter, r *http.Request) {
	handleByID(w, r, "handler.sets.skip", "skip set failed", h.sets.Skip)
}

func (h *Handler) HandleLogSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.log")
	defer span.End()

	id, ok := training.PathID(r, "id")
	if !ok {
		http.Error(w, "error, invalid id", http.StatusBadRequest)
		return
	}

	var req LogSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("log set, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ActualReps == nil || req.ActualWeight == nil {
		http.Error(w, "error, actual reps and weight required", http.StatusBadRequest)
		return
	}

	set, err := h.sets.Log(ctx, id, *req.ActualReps, *req.ActualWeight)
	if err != nil {
		training.WriteError(w, err, "log set failed")
		return
	}
	pkg.WriteJSON(w, set, http.StatusOK)
}

func handleByID[T any](
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	failMsg string,
	call func(ctx context.Context, id int) (T, error),
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), spanName)
	defer span.End()

	id, ok := training.PathID(r, "id")
	if !ok {
		http.Error(w, "error, invalid id", http.StatusBadRequest)
		return
	}

	resp, err := call(ctx, id)
	if err != nil {
		training.WriteError(w, err, failMsg)
		return
	}
	pkg.WriteJSON(w, resp, http.StatusOK)
}
