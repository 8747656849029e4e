package mesocycles_test

import (
	"context"
	"testing"
	"time"

	"github.com/2beens/mesocycles/internal/telemetry/metrics"
	"github.com/2beens/mesocycles/internal/testinternals"
	"github.com/2beens/mesocycles/internal/training"
	"github.com/2beens/mesocycles/internal/training/mesocycles"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// a Monday
var startDate = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

func TestService_Create(t *testing.T) {
	in := testinternals.NewTestingInternals(t)
	metricsManager := metrics.NewTestManager()
	service := mesocycles.NewService(in.Store, metricsManager)
	ctx := context.Background()

	mesocycle, err := service.Create(ctx, in.Plan.ID, startDate.Add(15*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, mesocycle)

	assert.Equal(t, in.Plan.ID, mesocycle.PlanID)
	assert.Equal(t, startDate, mesocycle.StartDate)
	assert.Equal(t, 1, mesocycle.CurrentWeek)
	assert.Equal(t, training.MesocycleStatusActive, mesocycle.Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterMesocyclesCreated))

	workouts, err := in.Store.Workouts().ListByMesocycle(ctx, mesocycle.ID)
	require.NoError(t, err)
	// 6 regular weeks + deload, 2 plan days
	require.Len(t, workouts, 14)

	perDay := map[int]int{}
	for _, w := range workouts {
		perDay[w.PlanDayID]++
		assert.Equal(t, training.WorkoutStatusPending, w.Status)
		assert.Nil(t, w.StartedAt)

		switch w.PlanDayID {
		case in.Monday.ID:
			assert.Equal(t, startDate.AddDate(0, 0, (w.WeekNumber-1)*7), w.ScheduledDate)
		case in.Thursday.ID:
			assert.Equal(t, startDate.AddDate(0, 0, (w.WeekNumber-1)*7+3), w.ScheduledDate)
		default:
			t.Fatalf("unexpected plan day %d", w.PlanDayID)
		}
	}
	assert.Equal(t, 7, perDay[in.Monday.ID])
	assert.Equal(t, 7, perDay[in.Thursday.ID])

	// week 3 monday: bench 3x9 @105, squat 4x6 @150
	week3 := findWorkout(t, workouts, in.Monday.ID, 3)
	bench, err := in.Store.WorkoutSets().ListByWorkoutAndExercise(ctx, week3.ID, in.BenchPress.ID)
	require.NoError(t, err)
	require.Len(t, bench, 3)
	for i, s := range bench {
		assert.Equal(t, i+1, s.SetNumber)
		assert.Equal(t, 9, s.TargetReps)
		assert.Equal(t, 105.0, s.TargetWeight)
		assert.Equal(t, training.SetStatusPending, s.Status)
		assert.Nil(t, s.ActualReps)
	}
	squat, err := in.Store.WorkoutSets().ListByWorkoutAndExercise(ctx, week3.ID, in.Squat.ID)
	require.NoError(t, err)
	require.Len(t, squat, 4)
	assert.Equal(t, 6, squat[0].TargetReps)
	assert.Equal(t, 150.0, squat[0].TargetWeight)

	// deload: half the sets rounded up, week 6 weight and reps
	deload := findWorkout(t, workouts, in.Monday.ID, 7)
	bench, err = in.Store.WorkoutSets().ListByWorkoutAndExercise(ctx, deload.ID, in.BenchPress.ID)
	require.NoError(t, err)
	require.Len(t, bench, 2)
	assert.Equal(t, 8, bench[0].TargetReps)
	assert.Equal(t, 115.0, bench[0].TargetWeight)
	squat, err = in.Store.WorkoutSets().ListByWorkoutAndExercise(ctx, deload.ID, in.Squat.ID)
	require.NoError(t, err)
	require.Len(t, squat, 2)
	assert.Equal(t, 170.0, squat[0].TargetWeight)
}

func TestService_Create_DayOffsetFromStartWeekday(t *testing.T) {
	in := testinternals.NewTestingInternals(t)
	service := mesocycles.NewService(in.Store, nil)
	ctx := context.Background()

	wednesday := startDate.AddDate(0, 0, 2)
	mesocycle, err := service.Create(ctx, in.Plan.ID, wednesday)
	require.NoError(t, err)

	workouts, err := in.Store.Workouts().ListByMesocycle(ctx, mesocycle.ID)
	require.NoError(t, err)

	// thursday is the next day, monday is 5 days later
	assert.Equal(t, wednesday.AddDate(0, 0, 1), findWorkout(t, workouts, in.Thursday.ID, 1).ScheduledDate)
	assert.Equal(t, wednesday.AddDate(0, 0, 5), findWorkout(t, workouts, in.Monday.ID, 1).ScheduledDate)
	assert.Equal(t, wednesday.AddDate(0, 0, 12), findWorkout(t, workouts, in.Monday.ID, 2).ScheduledDate)

	// workouts come back in date order
	for i := 1; i < len(workouts); i++ {
		assert.False(t, workouts[i].ScheduledDate.Before(workouts[i-1].ScheduledDate))
	}
}

func TestService_Create_SingleActiveMesocycle(t *testing.T) {
	in := testinternals.NewTestingInternals(t)
	service := mesocycles.NewService(in.Store, nil)
	ctx := context.Background()

	first, err := service.Create(ctx, in.Plan.ID, startDate)
	require.NoError(t, err)

	_, err = service.Create(ctx, in.Plan.ID, startDate.AddDate(0, 0, 7))
	require.ErrorIs(t, err, training.ErrActiveMesocycleExists)
	assert.ErrorIs(t, err, training.ErrConstraintViolation)
	assert.True(t, mesocycles.IsActiveMesocycleConflict(err))

	list, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// once the first one is finished a new one can be generated
	_, err = service.Complete(ctx, first.ID)
	require.NoError(t, err)
	second, err := service.Create(ctx, in.Plan.ID, startDate.AddDate(0, 0, 49))
	require.NoError(t, err)

	active, err := service.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestService_Create_PlanErrors(t *testing.T) {
	in := testinternals.NewTestingInternals(t)
	service := mesocycles.NewService(in.Store, nil)
	ctx := context.Background()

	_, err := service.Create(ctx, 9999, startDate)
	assert.ErrorIs(t, err, training.ErrNotFound)

	emptyPlan, err := in.Store.Plans().Create(ctx, training.Plan{Name: "empty"})
	require.NoError(t, err)
	assert.Equal(t, training.DefaultDurationWeeks, emptyPlan.DurationWeeks)

	_, err = service.Create(ctx, emptyPlan.ID, startDate)
	require.ErrorIs(t, err, training.ErrPlanHasNoDays)
	assert.ErrorIs(t, err, training.ErrConstraintViolation)

	// nothing left behind by the failed attempts
	_, err = service.GetActive(ctx)
	assert.ErrorIs(t, err, training.ErrNotFound)
}

func TestService_Preview(t *testing.T) {
	in := testinternals.NewTestingInternals(t)
	service := mesocycles.NewService(in.Store, nil)
	ctx := context.Background()

	schedule, err := service.Preview(ctx, in.Plan.ID, startDate)
	require.NoError(t, err)
	require.Len(t, schedule, 14)

	first := schedule[0]
	assert.Equal(t, 1, first.Workout.WeekNumber)
	assert.Equal(t, in.Monday.ID, first.Workout.PlanDayID)
	// bench 3 sets + squat 4 sets
	assert.Len(t, first.Sets, 7)
	assert.Zero(t, first.Workout.ID)

	last := schedule[len(schedule)-1]
	assert.Equal(t, 7, last.Workout.WeekNumber)
	assert.Equal(t, in.Thursday.ID, last.Workout.PlanDayID)
	assert.Len(t, last.Sets, 2)

	list, err := service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_CompleteAndCancel(t *testing.T) {
	in := testinternals.NewTestingInternals(t)
	service := mesocycles.NewService(in.Store, nil)
	ctx := context.Background()

	mesocycle, err := service.Create(ctx, in.Plan.ID, startDate)
	require.NoError(t, err)

	cancelled, err := service.Cancel(ctx, mesocycle.ID)
	require.NoError(t, err)
	assert.Equal(t, training.MesocycleStatusCancelled, cancelled.Status)

	// terminal statuses are one way
	_, err = service.Complete(ctx, mesocycle.ID)
	assert.ErrorIs(t, err, training.ErrInvalidTransition)
	_, err = service.Cancel(ctx, mesocycle.ID)
	assert.ErrorIs(t, err, training.ErrInvalidTransition)

	_, err = service.Complete(ctx, 12345)
	assert.ErrorIs(t, err, training.ErrNotFound)

	got, err := service.Get(ctx, mesocycle.ID)
	require.NoError(t, err)
	assert.Equal(t, training.MesocycleStatusCancelled, got.Status)
}

func TestService_RefreshCurrentWeek(t *testing.T) {
	in := testinternals.NewTestingInternals(t)
	service := mesocycles.NewService(in.Store, nil)
	ctx := context.Background()

	mesocycle, err := service.Create(ctx, in.Plan.ID, startDate)
	require.NoError(t, err)

	refreshed, err := service.RefreshCurrentWeek(ctx, mesocycle.ID, startDate.AddDate(0, 0, 16))
	require.NoError(t, err)
	assert.Equal(t, 3, refreshed.CurrentWeek)

	refreshed, err = service.RefreshCurrentWeek(ctx, mesocycle.ID, startDate.AddDate(0, 0, 200))
	require.NoError(t, err)
	assert.Equal(t, 7, refreshed.CurrentWeek)

	refreshed, err = service.RefreshCurrentWeek(ctx, mesocycle.ID, startDate.AddDate(0, 0, -3))
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.CurrentWeek)
}

func TestWeekAtAndScheduledDate(t *testing.T) {
	assert.Equal(t, 1, mesocycles.WeekAt(startDate, startDate, 7))
	assert.Equal(t, 1, mesocycles.WeekAt(startDate, startDate.AddDate(0, 0, 6), 7))
	assert.Equal(t, 2, mesocycles.WeekAt(startDate, startDate.AddDate(0, 0, 7), 7))

	// sunday plan day, monday start
	assert.Equal(t, startDate.AddDate(0, 0, 6), mesocycles.ScheduledDate(startDate, 1, 0))
	assert.Equal(t, startDate.AddDate(0, 0, 13), mesocycles.ScheduledDate(startDate, 2, 0))
}

func findWorkout(t *testing.T, workouts []training.Workout, planDayID, week int) training.Workout {
	t.Helper()
	for _, w := range workouts {
		if w.PlanDayID == planDayID && w.WeekNumber == week {
			return w
		}
	}
	t.Fatalf("workout for plan day %d week %d not found", planDayID, week)
	return training.Workout{}
}
