package testinternals

import (
	"context"
	"testing"

	"github.com/2beens/mesocycles/internal/training"
	"github.com/2beens/mesocycles/internal/training/storage/memory"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

// Internals is a seeded in-memory store shared by the engine tests:
// a 6 week plan with bench press and squat on Monday and rows on Thursday.
type Internals struct {
	Store *memory.Store

	BenchPress *training.Exercise
	Squat      *training.Exercise
	Row        *training.Exercise

	Plan     *training.Plan
	Monday   *training.PlanDay
	Thursday *training.PlanDay

	MondayExercises   []training.PlanDayExercise
	ThursdayExercises []training.PlanDayExercise
}

func NewTestingInternals(t testing.TB) *Internals {
	t.Helper()

	ctx := context.Background()
	store := memory.NewStore()
	in := &Internals{Store: store}

	in.BenchPress = SeedExercise(t, store, "bench press", 5)
	in.Squat = SeedExercise(t, store, "squat", 10)
	in.Row = SeedExercise(t, store, "barbell row", 2.5)

	plan, err := store.Plans().Create(ctx, training.Plan{
		Name:          "upper lower",
		DurationWeeks: 6,
	})
	require.NoError(t, err)
	in.Plan = plan

	in.Monday, in.MondayExercises = SeedPlanDay(t, store, plan.ID, 1, "monday",
		training.PlanDayExercise{ExerciseID: in.BenchPress.ID, Sets: 3, Reps: 8, Weight: 100, RestSeconds: 120, MinReps: 8, MaxReps: 12},
		training.PlanDayExercise{ExerciseID: in.Squat.ID, Sets: 4, Reps: 5, Weight: 140, RestSeconds: 180},
	)
	in.Thursday, in.ThursdayExercises = SeedPlanDay(t, store, plan.ID, 4, "thursday",
		training.PlanDayExercise{ExerciseID: in.Row.ID, Sets: 3, Reps: 10, Weight: 60, RestSeconds: 90, MinReps: 8, MaxReps: 12},
	)

	return in
}

// SeedExercise stores an exercise, a random name is used when name is empty.
func SeedExercise(t testing.TB, store training.Store, name string, increment float64) *training.Exercise {
	t.Helper()

	if name == "" {
		name = gofakeit.Verb() + " " + gofakeit.Noun() + " " + gofakeit.UUID()
	}
	exercise, err := store.Exercises().Create(context.Background(), training.Exercise{
		Name:            name,
		WeightIncrement: increment,
	})
	require.NoError(t, err)
	return exercise
}

// SeedPlanDay stores a plan day with the given exercises, sort order follows argument order.
func SeedPlanDay(
	t testing.TB,
	store training.Store,
	planID, dayOfWeek int,
	name string,
	exercises ...training.PlanDayExercise,
) (*training.PlanDay, []training.PlanDayExercise) {
	t.Helper()

	ctx := context.Background()
	day, err := store.PlanDays().Create(ctx, training.PlanDay{
		PlanID:    planID,
		DayOfWeek: dayOfWeek,
		Name:      name,
		SortOrder: dayOfWeek,
	})
	require.NoError(t, err)

	stored := make([]training.PlanDayExercise, 0, len(exercises))
	for i, pde := range exercises {
		pde.PlanDayID = day.ID
		pde.SortOrder = i
		created, err := store.PlanDayExercises().Create(ctx, pde)
		require.NoError(t, err)
		stored = append(stored, *created)
	}
	return day, stored
}

// ExerciseMap returns the seeded exercises by id.
func (in *Internals) ExerciseMap() map[int]training.Exercise {
	return map[int]training.Exercise{
		in.BenchPress.ID: *in.BenchPress,
		in.Squat.ID:      *in.Squat,
		in.Row.ID:        *in.Row,
	}
}
