package workouts

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/mesocycles/internal/telemetry/metrics"
	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/internal/training"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type SetService struct {
	store          training.Store
	metricsManager *metrics.Manager
	clock          training.Clock
}

func NewSetService(store training.Store, metricsManager *metrics.Manager, clock training.Clock) *SetService {
	return &SetService{
		store:          store,
		metricsManager: metricsManager,
		clock:          clock,
	}
}

func (s *SetService) GetByID(ctx context.Context, id int) (_ *training.WorkoutSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sets.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	set, err := s.store.WorkoutSets().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get set: %w", err)
	}
	return set, nil
}

// Log records the performance of a set and completes it. Logging an already
// completed or skipped set overwrites it. Zero reps and zero weight are valid.
func (s *SetService) Log(ctx context.Context, id int, actualReps int, actualWeight float64) (_ *training.WorkoutSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sets.log")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("set.id", id))

	if actualReps < 0 {
		return nil, fmt.Errorf("actual reps %d: %w", actualReps, training.ErrValidation)
	}
	if actualWeight < 0 {
		return nil, fmt.Errorf("actual weight %.2f: %w", actualWeight, training.ErrValidation)
	}

	var logged *training.WorkoutSet
	var autoStarted bool
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx training.Store) error {
		set, err := tx.WorkoutSets().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get set: %w", err)
		}
		autoStarted, err = ensureWorkoutStarted(ctx, tx, set.WorkoutID, "log set of", s.clock())
		if err != nil {
			return err
		}

		logged, err = tx.WorkoutSets().Update(ctx, id, training.WorkoutSetUpdate{
			Status:       training.StatusPtr(training.SetStatusCompleted),
			ActualReps:   training.IntPtr(actualReps),
			ActualWeight: training.FloatPtr(actualWeight),
		})
		if err != nil {
			return fmt.Errorf("update set: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if autoStarted {
		s.metricsManager.IncWorkoutTransition("start")
	}
	s.metricsManager.IncSetTransition("log")
	log.Debugf("set [%d] logged: %dx%.2f", id, actualReps, actualWeight)
	return logged, nil
}

// Skip marks the set as skipped and drops any logged values.
// Skipping a skipped set is a no-op.
func (s *SetService) Skip(ctx context.Context, id int) (_ *training.WorkoutSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sets.skip")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("set.id", id))

	var skipped *training.WorkoutSet
	var autoStarted bool
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx training.Store) error {
		set, err := tx.WorkoutSets().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get set: %w", err)
		}
		autoStarted, err = ensureWorkoutStarted(ctx, tx, set.WorkoutID, "skip set of", s.clock())
		if err != nil {
			return err
		}
		if set.Status == training.SetStatusSkipped && set.ActualReps == nil && set.ActualWeight == nil {
			skipped = set
			return nil
		}

		skipped, err = tx.WorkoutSets().Update(ctx, id, training.WorkoutSetUpdate{
			Status:       training.StatusPtr(training.SetStatusSkipped),
			ClearActuals: true,
		})
		if err != nil {
			return fmt.Errorf("update set: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if autoStarted {
		s.metricsManager.IncWorkoutTransition("start")
	}
	s.metricsManager.IncSetTransition("skip")
	return skipped, nil
}

// ensureWorkoutStarted starts the parent workout of a set when still pending,
// and refuses finished workouts. Reports whether the workout got started.
func ensureWorkoutStarted(ctx context.Context, tx training.Store, workoutID int, action string, now time.Time) (bool, error) {
	workout, err := tx.Workouts().Get(ctx, workoutID)
	if err != nil {
		return false, fmt.Errorf("get workout: %w", err)
	}

	switch workout.Status {
	case training.WorkoutStatusInProgress:
		return false, nil
	case training.WorkoutStatusPending:
		if _, err := startWorkout(ctx, tx, *workout, now); err != nil {
			return false, err
		}
		log.Debugf("workout [%d] auto started", workoutID)
		return true, nil
	default:
		return false, training.InvalidTransition("workout", workoutID, action, workout.Status)
	}
}
