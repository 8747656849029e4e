package workouts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/2beens/mesocycles/internal/telemetry/metrics"
	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/internal/training"
	"github.com/2beens/mesocycles/internal/training/progression"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type exerciseGetter interface {
	Get(ctx context.Context, id int) (*training.Exercise, error)
}

// ExerciseDetails groups the sets of one exercise within a workout.
type ExerciseDetails struct {
	Exercise training.Exercise       `json:"exercise"`
	Sets     []training.WorkoutSet   `json:"sets"`
	Warmups  []progression.WarmupSet `json:"warmups"`
}

type WorkoutDetails struct {
	Workout   training.Workout  `json:"workout"`
	Exercises []ExerciseDetails `json:"exercises"`
}

type Service struct {
	store          training.Store
	exercises      exerciseGetter
	metricsManager *metrics.Manager
	clock          training.Clock
}

func NewService(
	store training.Store,
	exercises exerciseGetter,
	metricsManager *metrics.Manager,
	clock training.Clock,
) *Service {
	return &Service{
		store:          store,
		exercises:      exercises,
		metricsManager: metricsManager,
		clock:          clock,
	}
}

// GetByID returns the workout with its sets. Peaks of the earlier weeks are
// shown on the pending sets but not stored.
func (s *Service) GetByID(ctx context.Context, id int) (_ *WorkoutDetails, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("workout.id", id))

	workout, err := s.store.Workouts().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return s.details(ctx, *workout, true)
}

// GetTodaysWorkout returns the earliest scheduled workout of the active
// mesocycle that is still pending or in progress, regardless of its date.
// Nil is returned when there is nothing left to do.
func (s *Service) GetTodaysWorkout(ctx context.Context) (_ *WorkoutDetails, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.today")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	mesocycle, err := s.store.Mesocycles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, training.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active mesocycle: %w", err)
	}

	workouts, err := s.store.Workouts().ListByMesocycle(ctx, mesocycle.ID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	for _, w := range workouts {
		if w.Status == training.WorkoutStatusPending || w.Status == training.WorkoutStatusInProgress {
			return s.details(ctx, w, true)
		}
	}

	return nil, nil
}

// Start moves a pending workout in progress and stores the carried forward peaks.
func (s *Service) Start(ctx context.Context, id int) (_ *WorkoutDetails, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.start")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("workout.id", id))

	var started *training.Workout
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx training.Store) error {
		workout, err := tx.Workouts().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get workout: %w", err)
		}
		started, err = startWorkout(ctx, tx, *workout, s.clock())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metricsManager.IncWorkoutTransition("start")
	return s.details(ctx, *started, false)
}

func (s *Service) Complete(ctx context.Context, id int) (_ *training.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.complete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("workout.id", id))

	var completed *training.Workout
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx training.Store) error {
		workout, err := tx.Workouts().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get workout: %w", err)
		}
		if workout.Status != training.WorkoutStatusInProgress {
			return training.InvalidTransition("workout", id, "complete", workout.Status)
		}

		completed, err = tx.Workouts().Update(ctx, id, training.WorkoutUpdate{
			Status:      training.StatusPtr(training.WorkoutStatusCompleted),
			CompletedAt: training.TimePtr(s.clock()),
		})
		if err != nil {
			return fmt.Errorf("update workout: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metricsManager.IncWorkoutTransition("complete")
	log.Debugf("workout [%d] completed", id)
	return completed, nil
}

// Skip skips a pending or in progress workout, its pending sets are skipped too.
func (s *Service) Skip(ctx context.Context, id int) (_ *training.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.skip")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("workout.id", id))

	var skipped *training.Workout
	var skippedSets int
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx training.Store) error {
		workout, err := tx.Workouts().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get workout: %w", err)
		}
		if workout.Status.IsTerminal() {
			return training.InvalidTransition("workout", id, "skip", workout.Status)
		}

		sets, err := tx.WorkoutSets().ListByWorkout(ctx, id)
		if err != nil {
			return fmt.Errorf("list sets: %w", err)
		}
		for _, set := range sets {
			if set.Status != training.SetStatusPending {
				continue
			}
			if _, err := tx.WorkoutSets().Update(ctx, set.ID, training.WorkoutSetUpdate{
				Status: training.StatusPtr(training.SetStatusSkipped),
			}); err != nil {
				return fmt.Errorf("skip set %d: %w", set.ID, err)
			}
			skippedSets++
		}

		skipped, err = tx.Workouts().Update(ctx, id, training.WorkoutUpdate{
			Status: training.StatusPtr(training.WorkoutStatusSkipped),
		})
		if err != nil {
			return fmt.Errorf("update workout: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metricsManager.IncWorkoutTransition("skip")
	log.Debugf("workout [%d] skipped, %d pending sets skipped", id, skippedSets)
	return skipped, nil
}

// startWorkout is the single path a workout gets started through, either
// explicitly or by logging/skipping one of its sets.
func startWorkout(ctx context.Context, tx training.Store, workout training.Workout, now time.Time) (*training.Workout, error) {
	if workout.Status != training.WorkoutStatusPending {
		return nil, training.InvalidTransition("workout", workout.ID, "start", workout.Status)
	}

	peaks, err := findPeaks(ctx, tx, workout)
	if err != nil {
		return nil, err
	}
	if len(peaks) > 0 {
		sets, err := tx.WorkoutSets().ListByWorkout(ctx, workout.ID)
		if err != nil {
			return nil, fmt.Errorf("list sets: %w", err)
		}
		for _, i := range applyPeaks(sets, peaks) {
			if _, err := tx.WorkoutSets().Update(ctx, sets[i].ID, training.WorkoutSetUpdate{
				TargetReps:   training.IntPtr(sets[i].TargetReps),
				TargetWeight: training.FloatPtr(sets[i].TargetWeight),
			}); err != nil {
				return nil, fmt.Errorf("raise targets of set %d: %w", sets[i].ID, err)
			}
			log.Debugf("set [%d] of workout [%d] raised to %dx%.2f", sets[i].ID, workout.ID, sets[i].TargetReps, sets[i].TargetWeight)
		}
	}

	started, err := tx.Workouts().Update(ctx, workout.ID, training.WorkoutUpdate{
		Status:    training.StatusPtr(training.WorkoutStatusInProgress),
		StartedAt: training.TimePtr(now),
	})
	if err != nil {
		return nil, fmt.Errorf("update workout: %w", err)
	}
	return started, nil
}

// details groups the sets by exercise, in the order of the plan day.
// Exercises no longer in the plan day come last.
func (s *Service) details(ctx context.Context, workout training.Workout, withPeaks bool) (*WorkoutDetails, error) {
	sets, err := s.store.WorkoutSets().ListByWorkout(ctx, workout.ID)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}

	if withPeaks && !workout.Status.IsTerminal() {
		peaks, err := findPeaks(ctx, s.store, workout)
		if err != nil {
			return nil, err
		}
		applyPeaks(sets, peaks)
	}

	planExercises, err := s.store.PlanDayExercises().ListByPlanDay(ctx, workout.PlanDayID)
	if err != nil {
		return nil, fmt.Errorf("list plan day exercises: %w", err)
	}
	order := make(map[int]int, len(planExercises))
	for i, pde := range planExercises {
		order[pde.ExerciseID] = i
	}

	setsByExercise := make(map[int][]training.WorkoutSet)
	var exerciseIDs []int
	for _, set := range sets {
		if _, ok := setsByExercise[set.ExerciseID]; !ok {
			exerciseIDs = append(exerciseIDs, set.ExerciseID)
		}
		setsByExercise[set.ExerciseID] = append(setsByExercise[set.ExerciseID], set)
	}
	sort.SliceStable(exerciseIDs, func(i, j int) bool {
		oi, iPlanned := order[exerciseIDs[i]]
		oj, jPlanned := order[exerciseIDs[j]]
		if iPlanned != jPlanned {
			return iPlanned
		}
		return iPlanned && oi < oj
	})

	details := &WorkoutDetails{
		Workout:   workout,
		Exercises: make([]ExerciseDetails, 0, len(exerciseIDs)),
	}
	for _, exerciseID := range exerciseIDs {
		exercise, err := s.exercises.Get(ctx, exerciseID)
		if err != nil {
			return nil, fmt.Errorf("get exercise %d: %w", exerciseID, err)
		}

		exerciseSets := setsByExercise[exerciseID]
		sort.Slice(exerciseSets, func(i, j int) bool {
			return exerciseSets[i].SetNumber < exerciseSets[j].SetNumber
		})

		working := exerciseSets[0]
		for _, set := range exerciseSets {
			if set.Status == training.SetStatusPending {
				working = set
				break
			}
		}

		details.Exercises = append(details.Exercises, ExerciseDetails{
			Exercise: *exercise,
			Sets:     exerciseSets,
			Warmups:  progression.Warmups(working.TargetWeight, working.TargetReps),
		})
	}

	return details, nil
}
