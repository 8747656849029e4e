package catalog

import (
	"context"
	"fmt"

	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/internal/training"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type cacheInvalidator interface {
	Invalidate(id int) bool
}

type DayInput struct {
	DayOfWeek int                        `json:"dayOfWeek"`
	Name      string                     `json:"name"`
	Exercises []training.PlanDayExercise `json:"exercises"`
}

type PlanInput struct {
	Name          string     `json:"name"`
	DurationWeeks int        `json:"durationWeeks"`
	Days          []DayInput `json:"days"`
}

type DayDetails struct {
	Day       training.PlanDay           `json:"day"`
	Exercises []training.PlanDayExercise `json:"exercises"`
}

type PlanDetails struct {
	Plan training.Plan `json:"plan"`
	Days []DayDetails  `json:"days"`
}

// Service manages the exercises and the plans mesocycles are generated from.
type Service struct {
	store training.Store
	cache cacheInvalidator
}

func NewService(store training.Store, cache cacheInvalidator) *Service {
	return &Service{
		store: store,
		cache: cache,
	}
}

func (s *Service) ListExercises(ctx context.Context) (_ []training.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.listexercises")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	exercises, err := s.store.Exercises().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

func (s *Service) CreateExercise(ctx context.Context, exercise training.Exercise) (_ *training.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.createexercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := training.ValidateExercise(exercise); err != nil {
		return nil, err
	}
	exercise.ID = 0
	created, err := s.store.Exercises().Create(ctx, exercise)
	if err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	return created, nil
}

// DeleteExercise fails with ErrConstraintViolation while a plan or a workout
// still uses the exercise.
func (s *Service) DeleteExercise(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.deleteexercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("exercise.id", id))

	deleted, err := s.store.Exercises().Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete exercise: %w", err)
	}
	if deleted && s.cache != nil {
		s.cache.Invalidate(id)
	}
	return deleted, nil
}

// CreatePlan stores the plan with all of its days and exercises at once.
func (s *Service) CreatePlan(ctx context.Context, input PlanInput) (_ *PlanDetails, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.createplan")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := validatePlan(input); err != nil {
		return nil, err
	}

	var details *PlanDetails
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx training.Store) error {
		plan, err := tx.Plans().Create(ctx, training.Plan{
			Name:          input.Name,
			DurationWeeks: input.DurationWeeks,
		})
		if err != nil {
			return fmt.Errorf("create plan: %w", err)
		}

		details = &PlanDetails{Plan: *plan, Days: make([]DayDetails, 0, len(input.Days))}
		for i, dayInput := range input.Days {
			day, err := tx.PlanDays().Create(ctx, training.PlanDay{
				PlanID:    plan.ID,
				DayOfWeek: dayInput.DayOfWeek,
				Name:      dayInput.Name,
				SortOrder: i + 1,
			})
			if err != nil {
				return fmt.Errorf("create plan day %d: %w", dayInput.DayOfWeek, err)
			}

			dayDetails := DayDetails{Day: *day, Exercises: make([]training.PlanDayExercise, 0, len(dayInput.Exercises))}
			for j, pde := range dayInput.Exercises {
				pde.ID = 0
				pde.PlanDayID = day.ID
				pde.SortOrder = j + 1
				created, err := tx.PlanDayExercises().Create(ctx, pde)
				if err != nil {
					return fmt.Errorf("add exercise %d to plan day %d: %w", pde.ExerciseID, day.ID, err)
				}
				dayDetails.Exercises = append(dayDetails.Exercises, *created)
			}
			details.Days = append(details.Days, dayDetails)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("plan [%d] %s created with %d days", details.Plan.ID, details.Plan.Name, len(details.Days))
	return details, nil
}

func validatePlan(input PlanInput) error {
	if input.Name == "" {
		return fmt.Errorf("plan name missing: %w", training.ErrValidation)
	}
	if input.DurationWeeks < 0 {
		return fmt.Errorf("negative plan duration: %w", training.ErrValidation)
	}
	seenDays := make(map[int]struct{}, len(input.Days))
	for _, day := range input.Days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return fmt.Errorf("day of week %d out of range: %w", day.DayOfWeek, training.ErrValidation)
		}
		if _, ok := seenDays[day.DayOfWeek]; ok {
			return fmt.Errorf("day of week %d listed twice: %w", day.DayOfWeek, training.ErrValidation)
		}
		seenDays[day.DayOfWeek] = struct{}{}

		if err := training.ValidatePlanDayExercises(day.Exercises); err != nil {
			return fmt.Errorf("plan day %d: %w", day.DayOfWeek, err)
		}
	}
	return nil
}

func (s *Service) GetPlan(ctx context.Context, id int) (_ *PlanDetails, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.getplan")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("plan.id", id))

	plan, err := s.store.Plans().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	days, err := s.store.PlanDays().ListByPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list plan days: %w", err)
	}

	details := &PlanDetails{Plan: *plan, Days: make([]DayDetails, 0, len(days))}
	for _, day := range days {
		exercises, err := s.store.PlanDayExercises().ListByPlanDay(ctx, day.ID)
		if err != nil {
			return nil, fmt.Errorf("list exercises of plan day %d: %w", day.ID, err)
		}
		if exercises == nil {
			exercises = []training.PlanDayExercise{}
		}
		details.Days = append(details.Days, DayDetails{Day: day, Exercises: exercises})
	}
	return details, nil
}

// DeletePlan removes the plan with its days. Plans a mesocycle was generated
// from are kept.
func (s *Service) DeletePlan(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.deleteplan")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("plan.id", id))

	deleted, err := s.store.Plans().Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete plan: %w", err)
	}
	return deleted, nil
}
