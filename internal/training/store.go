package training

import (
	"context"
	"time"
)

type ExerciseRepo interface {
	Get(ctx context.Context, id int) (*Exercise, error)
	List(ctx context.Context) ([]Exercise, error)
	Create(ctx context.Context, exercise Exercise) (*Exercise, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type PlanRepo interface {
	Get(ctx context.Context, id int) (*Plan, error)
	Create(ctx context.Context, plan Plan) (*Plan, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type PlanDayRepo interface {
	Get(ctx context.Context, id int) (*PlanDay, error)
	// ListByPlan returns the plan days ordered by day of week.
	ListByPlan(ctx context.Context, planID int) ([]PlanDay, error)
	Create(ctx context.Context, day PlanDay) (*PlanDay, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type PlanDayExerciseRepo interface {
	Get(ctx context.Context, id int) (*PlanDayExercise, error)
	// ListByPlanDay returns the exercises ordered by sort order.
	ListByPlanDay(ctx context.Context, planDayID int) ([]PlanDayExercise, error)
	Create(ctx context.Context, pde PlanDayExercise) (*PlanDayExercise, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type MesocycleRepo interface {
	Get(ctx context.Context, id int) (*Mesocycle, error)
	// GetActive returns ErrNotFound when no mesocycle is active.
	GetActive(ctx context.Context) (*Mesocycle, error)
	List(ctx context.Context) ([]Mesocycle, error)
	// Create fails with ErrActiveMesocycleExists when creating an active
	// mesocycle while another one is active. The check is atomic.
	Create(ctx context.Context, mesocycle Mesocycle) (*Mesocycle, error)
	Update(ctx context.Context, id int, upd MesocycleUpdate) (*Mesocycle, error)
}

type WorkoutRepo interface {
	Get(ctx context.Context, id int) (*Workout, error)
	// ListByMesocycle returns workouts ordered by scheduled date, then id.
	ListByMesocycle(ctx context.Context, mesocycleID int) ([]Workout, error)
	Create(ctx context.Context, workout Workout) (*Workout, error)
	Update(ctx context.Context, id int, upd WorkoutUpdate) (*Workout, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type WorkoutSetRepo interface {
	Get(ctx context.Context, id int) (*WorkoutSet, error)
	// ListByWorkout returns sets ordered by id.
	ListByWorkout(ctx context.Context, workoutID int) ([]WorkoutSet, error)
	// ListByWorkoutAndExercise returns sets ordered by set number.
	ListByWorkoutAndExercise(ctx context.Context, workoutID, exerciseID int) ([]WorkoutSet, error)
	Create(ctx context.Context, set WorkoutSet) (*WorkoutSet, error)
	Update(ctx context.Context, id int, upd WorkoutSetUpdate) (*WorkoutSet, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Store groups the repositories the engine works with.
// WithinTx runs fn against a Store bound to a single transaction,
// all the writes done by fn are discarded if it returns an error.
type Store interface {
	Exercises() ExerciseRepo
	Plans() PlanRepo
	PlanDays() PlanDayRepo
	PlanDayExercises() PlanDayExerciseRepo
	Mesocycles() MesocycleRepo
	Workouts() WorkoutRepo
	WorkoutSets() WorkoutSetRepo

	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

// Clock is used by the services to stamp lifecycle timestamps.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}
