package planmod

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/mesocycles/internal/telemetry/metrics"
	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/internal/training"
	"github.com/2beens/mesocycles/internal/training/progression"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const loggedDataPreserved = "logged data preserved"

type exerciseGetter interface {
	Get(ctx context.Context, id int) (*training.Exercise, error)
}

type ModificationResult struct {
	AffectedWorkoutCount int      `json:"affectedWorkoutCount"`
	AddedSetsCount       int      `json:"addedSetsCount"`
	RemovedSetsCount     int      `json:"removedSetsCount"`
	ModifiedSetsCount    int      `json:"modifiedSetsCount"`
	Warnings             []string `json:"warnings"`

	preservedSets int
}

func newResult() *ModificationResult {
	return &ModificationResult{Warnings: []string{}}
}

// PlanDayEdit is the outcome of replacing the exercises of a plan day.
// Result is only set when an active mesocycle runs the edited plan.
type PlanDayEdit struct {
	Exercises   []training.PlanDayExercise `json:"exercises"`
	Diff        Diff                       `json:"diff"`
	MesocycleID int                        `json:"mesocycleId,omitempty"`
	Result      *ModificationResult        `json:"result,omitempty"`
}

// Engine keeps the future workouts of an active mesocycle in line with its
// plan. Only pending workouts are ever touched, and within them logged sets
// are never changed or deleted.
type Engine struct {
	store          training.Store
	exercises      exerciseGetter
	metricsManager *metrics.Manager
}

func NewEngine(store training.Store, exercises exerciseGetter, metricsManager *metrics.Manager) *Engine {
	return &Engine{
		store:          store,
		exercises:      exercises,
		metricsManager: metricsManager,
	}
}

// GetFutureWorkouts returns the pending workouts of the mesocycle.
func (e *Engine) GetFutureWorkouts(ctx context.Context, mesocycleID int) (_ []training.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.planmod.futureworkouts")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if _, err := e.store.Mesocycles().Get(ctx, mesocycleID); err != nil {
		return nil, fmt.Errorf("get mesocycle: %w", err)
	}
	return futureWorkouts(ctx, e.store, mesocycleID, 0)
}

// futureWorkouts lists the pending workouts of a mesocycle, limited to one
// plan day unless planDayID is 0.
func futureWorkouts(ctx context.Context, store training.Store, mesocycleID, planDayID int) ([]training.Workout, error) {
	all, err := store.Workouts().ListByMesocycle(ctx, mesocycleID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	future := make([]training.Workout, 0, len(all))
	for _, w := range all {
		if w.Status != training.WorkoutStatusPending {
			continue
		}
		if planDayID != 0 && w.PlanDayID != planDayID {
			continue
		}
		future = append(future, w)
	}
	return future, nil
}

// ApplyDiffToMesocycle applies the diff to every future workout of the diff's
// plan day, removed exercises first, then added, then modified ones.
// Exercises missing from exerciseInfo are looked up.
func (e *Engine) ApplyDiffToMesocycle(
	ctx context.Context,
	mesocycleID int,
	diff Diff,
	exerciseInfo map[int]training.Exercise,
) (_ *ModificationResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.planmod.applydiff")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.Int("mesocycle.id", mesocycleID),
		attribute.Int("planday.id", diff.PlanDayID),
	)

	var result *ModificationResult
	err = e.store.WithinTx(ctx, func(ctx context.Context, tx training.Store) error {
		var err error
		result, err = e.applyDiff(ctx, tx, mesocycleID, diff, exerciseInfo)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.record(result)
	return result, nil
}

func (e *Engine) applyDiff(
	ctx context.Context,
	tx training.Store,
	mesocycleID int,
	diff Diff,
	exerciseInfo map[int]training.Exercise,
) (*ModificationResult, error) {
	plan, err := activeMesocyclePlan(ctx, tx, mesocycleID, diff.PlanDayID)
	if err != nil {
		return nil, err
	}

	workouts, err := futureWorkouts(ctx, tx, mesocycleID, diff.PlanDayID)
	if err != nil {
		return nil, err
	}

	exercises, err := e.resolveExercises(ctx, diff, exerciseInfo)
	if err != nil {
		return nil, err
	}

	result := newResult()
	for _, workout := range workouts {
		if err := applyToWorkout(ctx, tx, workout, plan.DurationWeeks, diff, exercises, result); err != nil {
			return nil, err
		}
	}

	log.Debugf(
		"mesocycle [%d] plan day [%d] reconciled: %d workouts, +%d -%d ~%d sets, %d warnings",
		mesocycleID, diff.PlanDayID, result.AffectedWorkoutCount,
		result.AddedSetsCount, result.RemovedSetsCount, result.ModifiedSetsCount, len(result.Warnings),
	)
	return result, nil
}

// SyncPlanToMesocycle makes every future workout of the plan day match
// planExercises. It can be repeated, a second run changes nothing.
func (e *Engine) SyncPlanToMesocycle(
	ctx context.Context,
	mesocycleID int,
	planDayID int,
	planExercises []training.PlanDayExercise,
	exerciseMap map[int]training.Exercise,
) (_ *ModificationResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.planmod.sync")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.Int("mesocycle.id", mesocycleID),
		attribute.Int("planday.id", planDayID),
	)

	var result *ModificationResult
	err = e.store.WithinTx(ctx, func(ctx context.Context, tx training.Store) error {
		var err error
		result, err = e.sync(ctx, tx, mesocycleID, planDayID, planExercises, exerciseMap)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.record(result)
	return result, nil
}

// SyncPlanDay syncs the future workouts with the stored exercises of the plan day.
func (e *Engine) SyncPlanDay(ctx context.Context, mesocycleID, planDayID int) (_ *ModificationResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.planmod.syncplanday")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	planExercises, err := e.store.PlanDayExercises().ListByPlanDay(ctx, planDayID)
	if err != nil {
		return nil, fmt.Errorf("list plan day exercises: %w", err)
	}
	return e.SyncPlanToMesocycle(ctx, mesocycleID, planDayID, planExercises, nil)
}

func (e *Engine) sync(
	ctx context.Context,
	tx training.Store,
	mesocycleID int,
	planDayID int,
	planExercises []training.PlanDayExercise,
	exerciseMap map[int]training.Exercise,
) (*ModificationResult, error) {
	plan, err := activeMesocyclePlan(ctx, tx, mesocycleID, planDayID)
	if err != nil {
		return nil, err
	}

	workouts, err := futureWorkouts(ctx, tx, mesocycleID, planDayID)
	if err != nil {
		return nil, err
	}

	exercises, err := e.resolveExercises(ctx, Diff{Added: planExercises}, exerciseMap)
	if err != nil {
		return nil, err
	}

	result := newResult()
	for _, workout := range workouts {
		sets, err := tx.WorkoutSets().ListByWorkout(ctx, workout.ID)
		if err != nil {
			return nil, fmt.Errorf("list sets of workout %d: %w", workout.ID, err)
		}

		diff, err := diffWorkout(workout, plan.DurationWeeks, sets, planExercises, exercises)
		if err != nil {
			return nil, err
		}
		if diff.IsEmpty() {
			continue
		}
		if err := applyToWorkout(ctx, tx, workout, plan.DurationWeeks, diff, exercises, result); err != nil {
			return nil, err
		}
	}

	log.Debugf(
		"mesocycle [%d] plan day [%d] synced: %d workouts, +%d -%d ~%d sets",
		mesocycleID, planDayID, result.AffectedWorkoutCount,
		result.AddedSetsCount, result.RemovedSetsCount, result.ModifiedSetsCount,
	)
	return result, nil
}

// EditPlanDay replaces the exercises of a plan day. When the active mesocycle
// runs the plan, the change is applied to its future workouts right away.
func (e *Engine) EditPlanDay(
	ctx context.Context,
	planDayID int,
	exercises []training.PlanDayExercise,
) (_ *PlanDayEdit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.planmod.editplanday")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("planday.id", planDayID))

	if err := training.ValidatePlanDayExercises(exercises); err != nil {
		return nil, err
	}

	var edit *PlanDayEdit
	err = e.store.WithinTx(ctx, func(ctx context.Context, tx training.Store) error {
		planDay, err := tx.PlanDays().Get(ctx, planDayID)
		if err != nil {
			return fmt.Errorf("get plan day: %w", err)
		}

		old, err := tx.PlanDayExercises().ListByPlanDay(ctx, planDayID)
		if err != nil {
			return fmt.Errorf("list plan day exercises: %w", err)
		}
		for _, pde := range old {
			if _, err := tx.PlanDayExercises().Delete(ctx, pde.ID); err != nil {
				return fmt.Errorf("delete plan day exercise %d: %w", pde.ID, err)
			}
		}

		edit = &PlanDayEdit{Exercises: make([]training.PlanDayExercise, 0, len(exercises))}
		for i, pde := range exercises {
			pde.ID = 0
			pde.PlanDayID = planDayID
			pde.SortOrder = i + 1
			created, err := tx.PlanDayExercises().Create(ctx, pde)
			if err != nil {
				return fmt.Errorf("create plan day exercise for exercise %d: %w", pde.ExerciseID, err)
			}
			edit.Exercises = append(edit.Exercises, *created)
		}
		edit.Diff = DiffPlanDayExercises(planDayID, old, edit.Exercises)

		active, err := tx.Mesocycles().GetActive(ctx)
		if errors.Is(err, training.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get active mesocycle: %w", err)
		}
		if active.PlanID != planDay.PlanID || edit.Diff.IsEmpty() {
			return nil
		}

		edit.MesocycleID = active.ID
		edit.Result, err = e.applyDiff(ctx, tx, active.ID, edit.Diff, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	if edit.Result != nil {
		e.record(edit.Result)
	}
	return edit, nil
}

// activeMesocyclePlan checks the mesocycle can be reconciled with the plan day
// and returns its plan.
func activeMesocyclePlan(ctx context.Context, tx training.Store, mesocycleID, planDayID int) (*training.Plan, error) {
	mesocycle, err := tx.Mesocycles().Get(ctx, mesocycleID)
	if err != nil {
		return nil, fmt.Errorf("get mesocycle: %w", err)
	}
	if mesocycle.Status != training.MesocycleStatusActive {
		return nil, fmt.Errorf("mesocycle [%d] is %s: %w", mesocycleID, mesocycle.Status, training.ErrMesocycleNotActive)
	}

	planDay, err := tx.PlanDays().Get(ctx, planDayID)
	if err != nil {
		return nil, fmt.Errorf("get plan day: %w", err)
	}
	if planDay.PlanID != mesocycle.PlanID {
		return nil, fmt.Errorf("plan day [%d] is not part of plan [%d]: %w", planDayID, mesocycle.PlanID, training.ErrValidation)
	}

	plan, err := tx.Plans().Get(ctx, mesocycle.PlanID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return plan, nil
}

// resolveExercises completes the supplied exercise info with every exercise
// the added and modified entries need.
func (e *Engine) resolveExercises(ctx context.Context, diff Diff, known map[int]training.Exercise) (map[int]training.Exercise, error) {
	exercises := make(map[int]training.Exercise, len(known))
	for id, exercise := range known {
		exercises[id] = exercise
	}

	needed := make([]int, 0, len(diff.Added)+len(diff.Modified))
	for _, pde := range diff.Added {
		needed = append(needed, pde.ExerciseID)
	}
	for _, mod := range diff.Modified {
		needed = append(needed, mod.ExerciseID)
	}

	for _, id := range needed {
		if _, ok := exercises[id]; ok {
			continue
		}
		exercise, err := e.exercises.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get exercise %d: %w", id, err)
		}
		exercises[id] = *exercise
	}
	return exercises, nil
}

func (e *Engine) record(result *ModificationResult) {
	e.metricsManager.AddReconciledSets("added", result.AddedSetsCount)
	e.metricsManager.AddReconciledSets("removed", result.RemovedSetsCount)
	e.metricsManager.AddReconciledSets("modified", result.ModifiedSetsCount)
	e.metricsManager.AddPreservedSets(result.preservedSets)
}

// applyToWorkout reconciles the sets of a single pending workout with the diff.
func applyToWorkout(
	ctx context.Context,
	tx training.Store,
	workout training.Workout,
	durationWeeks int,
	diff Diff,
	exercises map[int]training.Exercise,
	result *ModificationResult,
) error {
	if workout.Status != training.WorkoutStatusPending {
		return nil
	}

	before := *result

	for _, removed := range diff.Removed {
		if err := removeExercise(ctx, tx, workout, removed.ExerciseID, result); err != nil {
			return err
		}
	}

	for _, added := range diff.Added {
		existing, err := tx.WorkoutSets().ListByWorkoutAndExercise(ctx, workout.ID, added.ExerciseID)
		if err != nil {
			return fmt.Errorf("list sets of workout %d: %w", workout.ID, err)
		}
		if len(existing) > 0 {
			continue
		}

		targets, err := targetsFor(added, exercises, workout.WeekNumber, durationWeeks)
		if err != nil {
			return err
		}
		for setNumber := 1; setNumber <= targets.Sets; setNumber++ {
			if err := createSet(ctx, tx, workout.ID, added.ExerciseID, setNumber, targets); err != nil {
				return err
			}
			result.AddedSetsCount++
		}
	}

	for _, modified := range diff.Modified {
		targets, err := targetsFor(modified.Base, exercises, workout.WeekNumber, durationWeeks)
		if err != nil {
			return err
		}
		if err := retargetExercise(ctx, tx, workout, modified.ExerciseID, targets, result); err != nil {
			return err
		}
	}

	if result.AddedSetsCount != before.AddedSetsCount ||
		result.RemovedSetsCount != before.RemovedSetsCount ||
		result.ModifiedSetsCount != before.ModifiedSetsCount {
		result.AffectedWorkoutCount++
	}
	return nil
}

// removeExercise deletes all the sets of the exercise, or none of them when
// any is logged.
func removeExercise(ctx context.Context, tx training.Store, workout training.Workout, exerciseID int, result *ModificationResult) error {
	sets, err := tx.WorkoutSets().ListByWorkoutAndExercise(ctx, workout.ID, exerciseID)
	if err != nil {
		return fmt.Errorf("list sets of workout %d: %w", workout.ID, err)
	}

	logged := 0
	for _, s := range sets {
		if s.IsLogged() {
			logged++
		}
	}
	if logged > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"workout %d (week %d): exercise %d has %d logged sets, %s",
			workout.ID, workout.WeekNumber, exerciseID, logged, loggedDataPreserved,
		))
		result.preservedSets += logged
		log.Warnf("workout [%d] exercise [%d] removed from plan, %d logged sets kept", workout.ID, exerciseID, logged)
		return nil
	}

	for _, s := range sets {
		if _, err := tx.WorkoutSets().Delete(ctx, s.ID); err != nil {
			return fmt.Errorf("delete set %d: %w", s.ID, err)
		}
		result.RemovedSetsCount++
	}
	return nil
}

// retargetExercise brings the pending sets of the exercise to the new targets.
// The number of pending sets is adjusted so pending and logged sets together
// make up targets.Sets, shrinking from the highest set numbers. Logged sets
// are left alone.
func retargetExercise(
	ctx context.Context,
	tx training.Store,
	workout training.Workout,
	exerciseID int,
	targets progression.Targets,
	result *ModificationResult,
) error {
	sets, err := tx.WorkoutSets().ListByWorkoutAndExercise(ctx, workout.ID, exerciseID)
	if err != nil {
		return fmt.Errorf("list sets of workout %d: %w", workout.ID, err)
	}

	var pending []training.WorkoutSet
	maxSetNumber := 0
	for _, s := range sets {
		if s.SetNumber > maxSetNumber {
			maxSetNumber = s.SetNumber
		}
		if s.Status == training.SetStatusPending && !s.IsLogged() {
			pending = append(pending, s)
		}
	}
	wantPending := max(0, targets.Sets-(len(sets)-len(pending)))

	// sets come ordered by set number
	for len(pending) > wantPending {
		last := pending[len(pending)-1]
		if _, err := tx.WorkoutSets().Delete(ctx, last.ID); err != nil {
			return fmt.Errorf("delete set %d: %w", last.ID, err)
		}
		pending = pending[:len(pending)-1]
		result.RemovedSetsCount++
	}

	for _, s := range pending {
		if s.TargetReps == targets.Reps && s.TargetWeight == targets.Weight {
			continue
		}
		if _, err := tx.WorkoutSets().Update(ctx, s.ID, training.WorkoutSetUpdate{
			TargetReps:   training.IntPtr(targets.Reps),
			TargetWeight: training.FloatPtr(targets.Weight),
		}); err != nil {
			return fmt.Errorf("retarget set %d: %w", s.ID, err)
		}
		result.ModifiedSetsCount++
	}

	for added := len(pending); added < wantPending; added++ {
		maxSetNumber++
		if err := createSet(ctx, tx, workout.ID, exerciseID, maxSetNumber, targets); err != nil {
			return err
		}
		result.AddedSetsCount++
	}

	return nil
}

func targetsFor(
	pde training.PlanDayExercise,
	exercises map[int]training.Exercise,
	week, durationWeeks int,
) (progression.Targets, error) {
	exercise, ok := exercises[pde.ExerciseID]
	if !ok {
		return progression.Targets{}, training.NotFound("exercise", pde.ExerciseID)
	}
	return progression.ForWeek(progression.InputFrom(pde, exercise), week, durationWeeks)
}

func createSet(ctx context.Context, tx training.Store, workoutID, exerciseID, setNumber int, targets progression.Targets) error {
	if _, err := tx.WorkoutSets().Create(ctx, training.WorkoutSet{
		WorkoutID:    workoutID,
		ExerciseID:   exerciseID,
		SetNumber:    setNumber,
		TargetReps:   targets.Reps,
		TargetWeight: targets.Weight,
		Status:       training.SetStatusPending,
	}); err != nil {
		return fmt.Errorf("create set %d of workout %d: %w", setNumber, workoutID, err)
	}
	return nil
}
