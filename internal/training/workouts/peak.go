package workouts

import (
	"context"
	"fmt"

	"github.com/2beens/mesocycles/internal/training"
)

// peak is the best completed performance of an exercise.
type peak struct {
	weight float64
	reps   int
}

func (p peak) betterThan(other peak) bool {
	if p.weight != other.weight {
		return p.weight > other.weight
	}
	return p.reps > other.reps
}

// findPeaks collects, per exercise, the best completed set done in the earlier
// weeks of the same mesocycle and plan day. Nothing is collected for week 1.
func findPeaks(ctx context.Context, store training.Store, workout training.Workout) (map[int]peak, error) {
	if workout.WeekNumber < 2 {
		return nil, nil
	}

	siblings, err := store.Workouts().ListByMesocycle(ctx, workout.MesocycleID)
	if err != nil {
		return nil, fmt.Errorf("list workouts of mesocycle %d: %w", workout.MesocycleID, err)
	}

	peaks := make(map[int]peak)
	for _, w := range siblings {
		if w.PlanDayID != workout.PlanDayID || w.WeekNumber >= workout.WeekNumber {
			continue
		}

		sets, err := store.WorkoutSets().ListByWorkout(ctx, w.ID)
		if err != nil {
			return nil, fmt.Errorf("list sets of workout %d: %w", w.ID, err)
		}
		for _, s := range sets {
			if s.Status != training.SetStatusCompleted || s.ActualReps == nil || s.ActualWeight == nil {
				continue
			}
			candidate := peak{weight: *s.ActualWeight, reps: *s.ActualReps}
			if current, ok := peaks[s.ExerciseID]; !ok || candidate.betterThan(current) {
				peaks[s.ExerciseID] = candidate
			}
		}
	}

	return peaks, nil
}

// applyPeaks raises the targets of the pending sets up to the peaks, in place.
// Targets are never lowered. Returns the indexes of the raised sets.
func applyPeaks(sets []training.WorkoutSet, peaks map[int]peak) []int {
	if len(peaks) == 0 {
		return nil
	}

	var raised []int
	for i := range sets {
		s := &sets[i]
		if s.Status != training.SetStatusPending {
			continue
		}
		p, ok := peaks[s.ExerciseID]
		if !ok {
			continue
		}

		changed := false
		if p.weight > s.TargetWeight {
			s.TargetWeight = p.weight
			changed = true
		}
		if p.reps > s.TargetReps {
			s.TargetReps = p.reps
			changed = true
		}
		if changed {
			raised = append(raised, i)
		}
	}
	return raised
}
