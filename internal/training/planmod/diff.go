package planmod

import (
	"github.com/2beens/mesocycles/internal/training"
	"github.com/2beens/mesocycles/internal/training/progression"
)

// ExerciseChanges holds only the fields that differ, nil means unchanged.
type ExerciseChanges struct {
	Sets        *int     `json:"sets,omitempty"`
	Reps        *int     `json:"reps,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	RestSeconds *int     `json:"restSeconds,omitempty"`
}

func (c ExerciseChanges) IsEmpty() bool {
	return c.Sets == nil && c.Reps == nil && c.Weight == nil && c.RestSeconds == nil
}

// ModifiedExercise carries the changed fields along with the complete new
// configuration, targets are always recomputed from Base.
type ModifiedExercise struct {
	ExerciseID int                      `json:"exerciseId"`
	Changes    ExerciseChanges          `json:"changes"`
	Base       training.PlanDayExercise `json:"base"`
}

// Diff describes how the exercise list of a plan day changed, keyed by exercise.
type Diff struct {
	PlanDayID int                        `json:"planDayId"`
	Added     []training.PlanDayExercise `json:"added"`
	Removed   []training.PlanDayExercise `json:"removed"`
	Modified  []ModifiedExercise         `json:"modified"`
}

func (d Diff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}

// DiffPlanDayExercises compares two exercise lists of a plan day.
// Added and modified entries follow the order of newList, removed the order of oldList.
func DiffPlanDayExercises(planDayID int, oldList, newList []training.PlanDayExercise) Diff {
	diff := Diff{
		PlanDayID: planDayID,
		Added:     []training.PlanDayExercise{},
		Removed:   []training.PlanDayExercise{},
		Modified:  []ModifiedExercise{},
	}

	oldByExercise := make(map[int]training.PlanDayExercise, len(oldList))
	for _, pde := range oldList {
		oldByExercise[pde.ExerciseID] = pde
	}
	newByExercise := make(map[int]struct{}, len(newList))

	for _, pde := range newList {
		newByExercise[pde.ExerciseID] = struct{}{}

		old, ok := oldByExercise[pde.ExerciseID]
		if !ok {
			diff.Added = append(diff.Added, pde)
			continue
		}
		if changes := compare(old, pde); !changes.IsEmpty() {
			diff.Modified = append(diff.Modified, ModifiedExercise{
				ExerciseID: pde.ExerciseID,
				Changes:    changes,
				Base:       pde,
			})
		}
	}

	for _, pde := range oldList {
		if _, ok := newByExercise[pde.ExerciseID]; !ok {
			diff.Removed = append(diff.Removed, pde)
		}
	}

	return diff
}

func compare(old, updated training.PlanDayExercise) ExerciseChanges {
	var changes ExerciseChanges
	if old.Sets != updated.Sets {
		changes.Sets = training.IntPtr(updated.Sets)
	}
	if old.Reps != updated.Reps {
		changes.Reps = training.IntPtr(updated.Reps)
	}
	if old.Weight != updated.Weight {
		changes.Weight = training.FloatPtr(updated.Weight)
	}
	if old.RestSeconds != updated.RestSeconds {
		changes.RestSeconds = training.IntPtr(updated.RestSeconds)
	}
	return changes
}

// diffWorkout compares the sets a workout currently holds against the targets
// the desired exercise list yields for the workout's week.
func diffWorkout(
	workout training.Workout,
	durationWeeks int,
	sets []training.WorkoutSet,
	desired []training.PlanDayExercise,
	exercises map[int]training.Exercise,
) (Diff, error) {
	diff := Diff{PlanDayID: workout.PlanDayID}

	setsByExercise := make(map[int][]training.WorkoutSet)
	var currentOrder []int
	for _, s := range sets {
		if _, ok := setsByExercise[s.ExerciseID]; !ok {
			currentOrder = append(currentOrder, s.ExerciseID)
		}
		setsByExercise[s.ExerciseID] = append(setsByExercise[s.ExerciseID], s)
	}

	desiredExercises := make(map[int]struct{}, len(desired))
	for _, pde := range desired {
		desiredExercises[pde.ExerciseID] = struct{}{}

		current, ok := setsByExercise[pde.ExerciseID]
		if !ok {
			diff.Added = append(diff.Added, pde)
			continue
		}

		targets, err := progression.ForWeek(
			progression.InputFrom(pde, exercises[pde.ExerciseID]),
			workout.WeekNumber,
			durationWeeks,
		)
		if err != nil {
			return Diff{}, err
		}

		var changes ExerciseChanges
		if len(current) != targets.Sets {
			changes.Sets = training.IntPtr(pde.Sets)
		}
		for _, s := range current {
			if s.Status != training.SetStatusPending {
				continue
			}
			if s.TargetReps != targets.Reps {
				changes.Reps = training.IntPtr(pde.Reps)
			}
			if s.TargetWeight != targets.Weight {
				changes.Weight = training.FloatPtr(pde.Weight)
			}
		}
		if !changes.IsEmpty() {
			diff.Modified = append(diff.Modified, ModifiedExercise{
				ExerciseID: pde.ExerciseID,
				Changes:    changes,
				Base:       pde,
			})
		}
	}

	for _, exerciseID := range currentOrder {
		if _, ok := desiredExercises[exerciseID]; !ok {
			diff.Removed = append(diff.Removed, training.PlanDayExercise{
				PlanDayID:  workout.PlanDayID,
				ExerciseID: exerciseID,
			})
		}
	}

	return diff, nil
}
