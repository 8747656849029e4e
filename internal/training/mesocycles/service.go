package mesocycles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/mesocycles/internal/telemetry/metrics"
	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/internal/training"
	"github.com/2beens/mesocycles/internal/training/progression"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// PlannedWorkout is a workout of a generated schedule along with its sets.
// IDs are only set once the schedule is stored.
type PlannedWorkout struct {
	Workout training.Workout      `json:"workout"`
	Sets    []training.WorkoutSet `json:"sets"`
}

type Service struct {
	store          training.Store
	metricsManager *metrics.Manager
}

func NewService(store training.Store, metricsManager *metrics.Manager) *Service {
	return &Service{
		store:          store,
		metricsManager: metricsManager,
	}
}

// Create generates a new active mesocycle from the plan, with all of its
// workouts and sets, starting at startDate.
func (s *Service) Create(ctx context.Context, planID int, startDate time.Time) (_ *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("plan.id", planID))

	startDate = training.DateOnly(startDate)

	var created *training.Mesocycle
	var workoutsCount int
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx training.Store) error {
		plan, days, err := loadPlan(ctx, tx, planID)
		if err != nil {
			return err
		}

		// inserted before the workouts, so a concurrent active mesocycle is detected first
		created, err = tx.Mesocycles().Create(ctx, training.Mesocycle{
			PlanID:      plan.ID,
			StartDate:   startDate,
			CurrentWeek: 1,
			Status:      training.MesocycleStatusActive,
		})
		if err != nil {
			return fmt.Errorf("create mesocycle: %w", err)
		}

		schedule, err := buildSchedule(ctx, tx, *plan, days, startDate)
		if err != nil {
			return err
		}

		for _, planned := range schedule {
			planned.Workout.MesocycleID = created.ID
			workout, err := tx.Workouts().Create(ctx, planned.Workout)
			if err != nil {
				return fmt.Errorf("create workout week %d day %d: %w", planned.Workout.WeekNumber, planned.Workout.PlanDayID, err)
			}
			for _, set := range planned.Sets {
				set.WorkoutID = workout.ID
				if _, err := tx.WorkoutSets().Create(ctx, set); err != nil {
					return fmt.Errorf("create set %d of workout %d: %w", set.SetNumber, workout.ID, err)
				}
			}
		}
		workoutsCount = len(schedule)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metricsManager.IncMesocyclesCreated()
	log.Debugf("mesocycle [%d] created from plan [%d], start [%s], %d workouts", created.ID, planID, startDate.Format(time.DateOnly), workoutsCount)

	return created, nil
}

// Preview computes the schedule Create would generate, without storing anything.
func (s *Service) Preview(ctx context.Context, planID int, startDate time.Time) (_ []PlannedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles.preview")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	plan, days, err := loadPlan(ctx, s.store, planID)
	if err != nil {
		return nil, err
	}
	return buildSchedule(ctx, s.store, *plan, days, training.DateOnly(startDate))
}

func loadPlan(ctx context.Context, store training.Store, planID int) (*training.Plan, []training.PlanDay, error) {
	plan, err := store.Plans().Get(ctx, planID)
	if err != nil {
		return nil, nil, fmt.Errorf("get plan: %w", err)
	}
	days, err := store.PlanDays().ListByPlan(ctx, planID)
	if err != nil {
		return nil, nil, fmt.Errorf("list plan days: %w", err)
	}
	if len(days) == 0 {
		return nil, nil, fmt.Errorf("plan [%d]: %w", planID, training.ErrPlanHasNoDays)
	}
	return plan, days, nil
}

// buildSchedule expands the plan days over all the regular weeks plus the deload week.
func buildSchedule(
	ctx context.Context,
	store training.Store,
	plan training.Plan,
	days []training.PlanDay,
	startDate time.Time,
) ([]PlannedWorkout, error) {
	dayExercises := make(map[int][]training.PlanDayExercise, len(days))
	exercises := make(map[int]training.Exercise)
	for _, day := range days {
		pdes, err := store.PlanDayExercises().ListByPlanDay(ctx, day.ID)
		if err != nil {
			return nil, fmt.Errorf("list exercises of plan day %d: %w", day.ID, err)
		}
		dayExercises[day.ID] = pdes

		for _, pde := range pdes {
			if _, ok := exercises[pde.ExerciseID]; ok {
				continue
			}
			exercise, err := store.Exercises().Get(ctx, pde.ExerciseID)
			if err != nil {
				return nil, fmt.Errorf("get exercise %d: %w", pde.ExerciseID, err)
			}
			exercises[exercise.ID] = *exercise
		}
	}

	schedule := make([]PlannedWorkout, 0, plan.DeloadWeek()*len(days))
	for week := 1; week <= plan.DeloadWeek(); week++ {
		for _, day := range days {
			planned := PlannedWorkout{
				Workout: training.Workout{
					PlanDayID:     day.ID,
					WeekNumber:    week,
					ScheduledDate: ScheduledDate(startDate, week, day.DayOfWeek),
					Status:        training.WorkoutStatusPending,
				},
			}

			for _, pde := range dayExercises[day.ID] {
				targets, err := progression.ForWeek(
					progression.InputFrom(pde, exercises[pde.ExerciseID]),
					week,
					plan.DurationWeeks,
				)
				if err != nil {
					return nil, err
				}
				for setNumber := 1; setNumber <= targets.Sets; setNumber++ {
					planned.Sets = append(planned.Sets, training.WorkoutSet{
						ExerciseID:   pde.ExerciseID,
						SetNumber:    setNumber,
						TargetReps:   targets.Reps,
						TargetWeight: targets.Weight,
						Status:       training.SetStatusPending,
					})
				}
			}

			schedule = append(schedule, planned)
		}
	}

	return schedule, nil
}

// ScheduledDate returns the date of the plan day (0 = Sunday) in the given
// week, counting weeks from startDate.
func ScheduledDate(startDate time.Time, week, dayOfWeek int) time.Time {
	dayOffset := (dayOfWeek - int(startDate.Weekday()) + 7) % 7
	return training.DateOnly(startDate).AddDate(0, 0, (week-1)*7+dayOffset)
}

func (s *Service) Get(ctx context.Context, id int) (_ *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	m, err := s.store.Mesocycles().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get mesocycle: %w", err)
	}
	return m, nil
}

func (s *Service) GetActive(ctx context.Context) (_ *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles.getactive")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	m, err := s.store.Mesocycles().GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("get active mesocycle: %w", err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context) (_ []training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	list, err := s.store.Mesocycles().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mesocycles: %w", err)
	}
	return list, nil
}

func (s *Service) Complete(ctx context.Context, id int) (*training.Mesocycle, error) {
	return s.finish(ctx, id, "complete", training.MesocycleStatusCompleted)
}

func (s *Service) Cancel(ctx context.Context, id int) (*training.Mesocycle, error) {
	return s.finish(ctx, id, "cancel", training.MesocycleStatusCancelled)
}

// finish moves an active mesocycle into one of the terminal statuses.
func (s *Service) finish(ctx context.Context, id int, action string, to training.MesocycleStatus) (_ *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles."+action)
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("mesocycle.id", id))

	var updated *training.Mesocycle
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx training.Store) error {
		m, err := tx.Mesocycles().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get mesocycle: %w", err)
		}
		if m.Status != training.MesocycleStatusActive {
			return training.InvalidTransition("mesocycle", id, action, m.Status)
		}

		updated, err = tx.Mesocycles().Update(ctx, id, training.MesocycleUpdate{
			Status: training.StatusPtr(to),
		})
		if err != nil {
			return fmt.Errorf("update mesocycle: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("mesocycle [%d] %s", id, to)
	return updated, nil
}

// RefreshCurrentWeek recomputes the current week of the mesocycle from its
// start date, clamped to the weeks of the mesocycle.
func (s *Service) RefreshCurrentWeek(ctx context.Context, id int, now time.Time) (_ *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.mesocycles.refreshweek")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var refreshed *training.Mesocycle
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx training.Store) error {
		m, err := tx.Mesocycles().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get mesocycle: %w", err)
		}
		plan, err := tx.Plans().Get(ctx, m.PlanID)
		if err != nil {
			return fmt.Errorf("get plan: %w", err)
		}

		week := WeekAt(m.StartDate, now, plan.DeloadWeek())
		if week == m.CurrentWeek {
			refreshed = m
			return nil
		}

		refreshed, err = tx.Mesocycles().Update(ctx, id, training.MesocycleUpdate{
			CurrentWeek: training.IntPtr(week),
		})
		if err != nil {
			return fmt.Errorf("update mesocycle: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refreshed, nil
}

// WeekAt returns the 1-indexed week of a mesocycle started at startDate on
// the day of now, clamped to [1, lastWeek].
func WeekAt(startDate, now time.Time, lastWeek int) int {
	days := int(training.DateOnly(now).Sub(training.DateOnly(startDate)).Hours() / 24)
	if days < 0 {
		return 1
	}
	week := days/7 + 1
	if week > lastWeek {
		return lastWeek
	}
	return week
}

// IsActiveMesocycleConflict reports whether err was caused by another active mesocycle.
func IsActiveMesocycleConflict(err error) bool {
	return errors.Is(err, training.ErrActiveMesocycleExists)
}
