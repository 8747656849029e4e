package training

import (
	"fmt"
	"strings"
)

// ValidatePlanDayExercises checks the configuration of a plan day, an
// exercise can be listed only once per day.
func ValidatePlanDayExercises(exercises []PlanDayExercise) error {
	seen := make(map[int]struct{}, len(exercises))
	for _, pde := range exercises {
		if pde.ExerciseID <= 0 {
			return fmt.Errorf("exercise id missing: %w", ErrValidation)
		}
		if _, ok := seen[pde.ExerciseID]; ok {
			return fmt.Errorf("exercise %d listed twice: %w", pde.ExerciseID, ErrValidation)
		}
		seen[pde.ExerciseID] = struct{}{}

		if pde.Sets < 1 || pde.Reps < 0 || pde.Weight < 0 || pde.RestSeconds < 0 {
			return fmt.Errorf("exercise %d, invalid sets/reps/weight/rest: %w", pde.ExerciseID, ErrValidation)
		}
		if pde.MaxReps > 0 && pde.MinReps > pde.MaxReps {
			return fmt.Errorf("exercise %d, min reps above max reps: %w", pde.ExerciseID, ErrValidation)
		}
	}
	return nil
}

func ValidateExercise(e Exercise) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("exercise name missing: %w", ErrValidation)
	}
	if e.WeightIncrement <= 0 {
		return fmt.Errorf("exercise [%s], weight increment must be positive: %w", e.Name, ErrValidation)
	}
	return nil
}
