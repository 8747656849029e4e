package progression

import (
	"fmt"
	"math"

	"github.com/2beens/mesocycles/internal/training"
)

// Input is the base configuration a week's targets are computed from.
type Input struct {
	BaseWeight      float64
	BaseReps        int
	BaseSets        int
	WeightIncrement float64
	// MinReps and MaxReps bound the target reps, zero means unbounded.
	MinReps int
	MaxReps int
	// AssumePreviousWeeksCompleted credits the progression of all the weeks
	// before the target one. Without it, week 1 targets are returned.
	AssumePreviousWeeksCompleted bool
}

type Targets struct {
	Weight float64 `json:"targetWeight"`
	Reps   int     `json:"targetReps"`
	Sets   int     `json:"targetSets"`
}

func InputFrom(pde training.PlanDayExercise, exercise training.Exercise) Input {
	return Input{
		BaseWeight:                   pde.Weight,
		BaseReps:                     pde.Reps,
		BaseSets:                     pde.Sets,
		WeightIncrement:              exercise.WeightIncrement,
		MinReps:                      pde.MinReps,
		MaxReps:                      pde.MaxReps,
		AssumePreviousWeeksCompleted: true,
	}
}

// Calculate returns the targets of a regular (non deload) week.
// Weight goes up by one increment every two weeks, reps go one above base on
// odd weeks after the first one and are back at base on even weeks.
func Calculate(in Input, week int) Targets {
	if !in.AssumePreviousWeeksCompleted || week < 1 {
		week = 1
	}

	reps := in.BaseReps
	if week > 1 && week%2 == 1 {
		reps++
	}

	return Targets{
		Weight: in.BaseWeight + in.WeightIncrement*float64(week/2),
		Reps:   clampReps(reps, in.MinReps, in.MaxReps),
		Sets:   in.BaseSets,
	}
}

// Deload returns the targets of the deload week: half the sets (rounded up)
// at the weight and reps of the last regular week.
func Deload(in Input, lastRegularWeek int) Targets {
	t := Calculate(in, lastRegularWeek)
	t.Sets = int(math.Ceil(float64(in.BaseSets) * 0.5))
	return t
}

// ForWeek dispatches between a regular week and the deload week
// (durationWeeks+1) of a mesocycle.
func ForWeek(in Input, week, durationWeeks int) (Targets, error) {
	if week < 1 || week > durationWeeks+1 {
		return Targets{}, fmt.Errorf("week %d out of range [1, %d]: %w", week, durationWeeks+1, training.ErrValidation)
	}
	if week == durationWeeks+1 {
		return Deload(in, durationWeeks), nil
	}
	return Calculate(in, week), nil
}

func clampReps(reps, minReps, maxReps int) int {
	if minReps > 0 && reps < minReps {
		reps = minReps
	}
	if maxReps > 0 && reps > maxReps {
		reps = maxReps
	}
	return reps
}
