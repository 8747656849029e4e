package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/2beens/mesocycles/internal/training"
)

type exerciseRepo struct {
	s    *shared
	inTx bool
}

func (r *exerciseRepo) Get(_ context.Context, id int) (*training.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.data.exercises[id]
	if !ok {
		return nil, training.NotFound("exercise", id)
	}
	return &e, nil
}

func (r *exerciseRepo) List(_ context.Context) ([]training.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	exercises := make([]training.Exercise, 0, len(r.s.data.exercises))
	for _, e := range r.s.data.exercises {
		exercises = append(exercises, e)
	}
	sort.Slice(exercises, func(i, j int) bool {
		return exercises[i].ID < exercises[j].ID
	})
	return exercises, nil
}

func (r *exerciseRepo) Create(_ context.Context, exercise training.Exercise) (*training.Exercise, error) {
	defer r.s.lockWrite(r.inTx)()

	for _, e := range r.s.data.exercises {
		if e.Name == exercise.Name {
			return nil, fmt.Errorf("exercise name [%s] taken: %w", exercise.Name, training.ErrConstraintViolation)
		}
	}

	exercise.ID = r.s.data.nextID()
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now().UTC()
	}
	r.s.data.exercises[exercise.ID] = exercise
	return &exercise, nil
}

func (r *exerciseRepo) Delete(_ context.Context, id int) (bool, error) {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.data.exercises[id]; !ok {
		return false, nil
	}
	for _, pde := range r.s.data.planDayExercises {
		if pde.ExerciseID == id {
			return false, fmt.Errorf("exercise [%d] used by plan day exercise [%d]: %w", id, pde.ID, training.ErrConstraintViolation)
		}
	}
	for _, ws := range r.s.data.workoutSets {
		if ws.ExerciseID == id {
			return false, fmt.Errorf("exercise [%d] used by workout set [%d]: %w", id, ws.ID, training.ErrConstraintViolation)
		}
	}

	delete(r.s.data.exercises, id)
	return true, nil
}

type planRepo struct {
	s    *shared
	inTx bool
}

func (r *planRepo) Get(_ context.Context, id int) (*training.Plan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.data.plans[id]
	if !ok {
		return nil, training.NotFound("plan", id)
	}
	return &p, nil
}

func (r *planRepo) Create(_ context.Context, plan training.Plan) (*training.Plan, error) {
	defer r.s.lockWrite(r.inTx)()

	plan.ID = r.s.data.nextID()
	if plan.DurationWeeks == 0 {
		plan.DurationWeeks = training.DefaultDurationWeeks
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}
	r.s.data.plans[plan.ID] = plan
	return &plan, nil
}

// Delete removes the plan with its days and their exercises.
// Plans referenced by a mesocycle cannot be deleted.
func (r *planRepo) Delete(_ context.Context, id int) (bool, error) {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.data.plans[id]; !ok {
		return false, nil
	}
	for _, m := range r.s.data.mesocycles {
		if m.PlanID == id {
			return false, fmt.Errorf("plan [%d] used by mesocycle [%d]: %w", id, m.ID, training.ErrConstraintViolation)
		}
	}

	for dayID, day := range r.s.data.planDays {
		if day.PlanID != id {
			continue
		}
		r.s.data.deletePlanDayExercises(dayID)
		delete(r.s.data.planDays, dayID)
	}
	delete(r.s.data.plans, id)
	return true, nil
}

type planDayRepo struct {
	s    *shared
	inTx bool
}

func (r *planDayRepo) Get(_ context.Context, id int) (*training.PlanDay, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.data.planDays[id]
	if !ok {
		return nil, training.NotFound("plan day", id)
	}
	return &d, nil
}

func (r *planDayRepo) ListByPlan(_ context.Context, planID int) ([]training.PlanDay, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var days []training.PlanDay
	for _, d := range r.s.data.planDays {
		if d.PlanID == planID {
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].DayOfWeek != days[j].DayOfWeek {
			return days[i].DayOfWeek < days[j].DayOfWeek
		}
		return days[i].ID < days[j].ID
	})
	return days, nil
}

func (r *planDayRepo) Create(_ context.Context, day training.PlanDay) (*training.PlanDay, error) {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.data.plans[day.PlanID]; !ok {
		return nil, fmt.Errorf("plan [%d] missing: %w", day.PlanID, training.ErrConstraintViolation)
	}

	day.ID = r.s.data.nextID()
	r.s.data.planDays[day.ID] = day
	return &day, nil
}

// Delete removes the plan day with its exercises.
// Days with generated workouts cannot be deleted.
func (r *planDayRepo) Delete(_ context.Context, id int) (bool, error) {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.data.planDays[id]; !ok {
		return false, nil
	}
	for _, w := range r.s.data.workouts {
		if w.PlanDayID == id {
			return false, fmt.Errorf("plan day [%d] used by workout [%d]: %w", id, w.ID, training.ErrConstraintViolation)
		}
	}

	r.s.data.deletePlanDayExercises(id)
	delete(r.s.data.planDays, id)
	return true, nil
}

func (s *state) deletePlanDayExercises(planDayID int) {
	for id, pde := range s.planDayExercises {
		if pde.PlanDayID == planDayID {
			delete(s.planDayExercises, id)
		}
	}
}

type planDayExerciseRepo struct {
	s    *shared
	inTx bool
}

func (r *planDayExerciseRepo) Get(_ context.Context, id int) (*training.PlanDayExercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	pde, ok := r.s.data.planDayExercises[id]
	if !ok {
		return nil, training.NotFound("plan day exercise", id)
	}
	return &pde, nil
}

func (r *planDayExerciseRepo) ListByPlanDay(_ context.Context, planDayID int) ([]training.PlanDayExercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var pdes []training.PlanDayExercise
	for _, pde := range r.s.data.planDayExercises {
		if pde.PlanDayID == planDayID {
			pdes = append(pdes, pde)
		}
	}
	sort.Slice(pdes, func(i, j int) bool {
		if pdes[i].SortOrder != pdes[j].SortOrder {
			return pdes[i].SortOrder < pdes[j].SortOrder
		}
		return pdes[i].ID < pdes[j].ID
	})
	return pdes, nil
}

func (r *planDayExerciseRepo) Create(_ context.Context, pde training.PlanDayExercise) (*training.PlanDayExercise, error) {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.data.planDays[pde.PlanDayID]; !ok {
		return nil, fmt.Errorf("plan day [%d] missing: %w", pde.PlanDayID, training.ErrConstraintViolation)
	}
	if _, ok := r.s.data.exercises[pde.ExerciseID]; !ok {
		return nil, fmt.Errorf("exercise [%d] missing: %w", pde.ExerciseID, training.ErrConstraintViolation)
	}

	pde.ID = r.s.data.nextID()
	r.s.data.planDayExercises[pde.ID] = pde
	return &pde, nil
}

func (r *planDayExerciseRepo) Delete(_ context.Context, id int) (bool, error) {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.data.planDayExercises[id]; !ok {
		return false, nil
	}
	delete(r.s.data.planDayExercises, id)
	return true, nil
}

type mesocycleRepo struct {
	s    *shared
	inTx bool
}

func (r *mesocycleRepo) Get(_ context.Context, id int) (*training.Mesocycle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.data.mesocycles[id]
	if !ok {
		return nil, training.NotFound("mesocycle", id)
	}
	return &m, nil
}

func (r *mesocycleRepo) GetActive(_ context.Context) (*training.Mesocycle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if m, ok := r.s.data.activeMesocycle(); ok {
		return &m, nil
	}
	return nil, fmt.Errorf("active mesocycle: %w", training.ErrNotFound)
}

func (s *state) activeMesocycle() (training.Mesocycle, bool) {
	for _, m := range s.mesocycles {
		if m.Status == training.MesocycleStatusActive {
			return m, true
		}
	}
	return training.Mesocycle{}, false
}

// List returns the mesocycles, most recently started first.
func (r *mesocycleRepo) List(_ context.Context) ([]training.Mesocycle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	mesocycles := make([]training.Mesocycle, 0, len(r.s.data.mesocycles))
	for _, m := range r.s.data.mesocycles {
		mesocycles = append(mesocycles, m)
	}
	sort.Slice(mesocycles, func(i, j int) bool {
		if !mesocycles[i].StartDate.Equal(mesocycles[j].StartDate) {
			return mesocycles[i].StartDate.After(mesocycles[j].StartDate)
		}
		return mesocycles[i].ID > mesocycles[j].ID
	})
	return mesocycles, nil
}

func (r *mesocycleRepo) Create(_ context.Context, mesocycle training.Mesocycle) (*training.Mesocycle, error) {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.data.plans[mesocycle.PlanID]; !ok {
		return nil, fmt.Errorf("plan [%d] missing: %w", mesocycle.PlanID, training.ErrConstraintViolation)
	}
	if mesocycle.Status == training.MesocycleStatusActive {
		if _, ok := r.s.data.activeMesocycle(); ok {
			return nil, training.ErrActiveMesocycleExists
		}
	}

	mesocycle.ID = r.s.data.nextID()
	mesocycle.StartDate = training.DateOnly(mesocycle.StartDate)
	if mesocycle.CreatedAt.IsZero() {
		mesocycle.CreatedAt = time.Now().UTC()
	}
	r.s.data.mesocycles[mesocycle.ID] = mesocycle
	return &mesocycle, nil
}

func (r *mesocycleRepo) Update(_ context.Context, id int, upd training.MesocycleUpdate) (*training.Mesocycle, error) {
	defer r.s.lockWrite(r.inTx)()

	m, ok := r.s.data.mesocycles[id]
	if !ok {
		return nil, training.NotFound("mesocycle", id)
	}

	if upd.Status != nil {
		if *upd.Status == training.MesocycleStatusActive && m.Status != training.MesocycleStatusActive {
			if _, ok := r.s.data.activeMesocycle(); ok {
				return nil, training.ErrActiveMesocycleExists
			}
		}
		m.Status = *upd.Status
	}
	if upd.CurrentWeek != nil {
		m.CurrentWeek = *upd.CurrentWeek
	}

	r.s.data.mesocycles[id] = m
	return &m, nil
}

type workoutRepo struct {
	s    *shared
	inTx bool
}

func (r *workoutRepo) Get(_ context.Context, id int) (*training.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.data.workouts[id]
	if !ok {
		return nil, training.NotFound("workout", id)
	}
	return &w, nil
}

func (r *workoutRepo) ListByMesocycle(_ context.Context, mesocycleID int) ([]training.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var workouts []training.Workout
	for _, w := range r.s.data.workouts {
		if w.MesocycleID == mesocycleID {
			workouts = append(workouts, w)
		}
	}
	sort.Slice(workouts, func(i, j int) bool {
		if !workouts[i].ScheduledDate.Equal(workouts[j].ScheduledDate) {
			return workouts[i].ScheduledDate.Before(workouts[j].ScheduledDate)
		}
		return workouts[i].ID < workouts[j].ID
	})
	return workouts, nil
}

func (r *workoutRepo) Create(_ context.Context, workout training.Workout) (*training.Workout, error) {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.data.mesocycles[workout.MesocycleID]; !ok {
		return nil, fmt.Errorf("mesocycle [%d] missing: %w", workout.MesocycleID, training.ErrConstraintViolation)
	}
	if _, ok := r.s.data.planDays[workout.PlanDayID]; !ok {
		return nil, fmt.Errorf("plan day [%d] missing: %w", workout.PlanDayID, training.ErrConstraintViolation)
	}

	workout.ID = r.s.data.nextID()
	workout.ScheduledDate = training.DateOnly(workout.ScheduledDate)
	r.s.data.workouts[workout.ID] = workout
	return &workout, nil
}

func (r *workoutRepo) Update(_ context.Context, id int, upd training.WorkoutUpdate) (*training.Workout, error) {
	defer r.s.lockWrite(r.inTx)()

	w, ok := r.s.data.workouts[id]
	if !ok {
		return nil, training.NotFound("workout", id)
	}

	if upd.Status != nil {
		w.Status = *upd.Status
	}
	if upd.StartedAt != nil {
		w.StartedAt = training.TimePtr(*upd.StartedAt)
	}
	if upd.CompletedAt != nil {
		w.CompletedAt = training.TimePtr(*upd.CompletedAt)
	}

	r.s.data.workouts[id] = w
	return &w, nil
}

// Delete removes the workout together with its sets.
func (r *workoutRepo) Delete(_ context.Context, id int) (bool, error) {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.data.workouts[id]; !ok {
		return false, nil
	}
	for setID, ws := range r.s.data.workoutSets {
		if ws.WorkoutID == id {
			delete(r.s.data.workoutSets, setID)
		}
	}
	delete(r.s.data.workouts, id)
	return true, nil
}

type workoutSetRepo struct {
	s    *shared
	inTx bool
}

func (r *workoutSetRepo) Get(_ context.Context, id int) (*training.WorkoutSet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ws, ok := r.s.data.workoutSets[id]
	if !ok {
		return nil, training.NotFound("workout set", id)
	}
	return copySet(ws), nil
}

func (r *workoutSetRepo) ListByWorkout(_ context.Context, workoutID int) ([]training.WorkoutSet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sets := r.s.data.setsWhere(func(ws training.WorkoutSet) bool {
		return ws.WorkoutID == workoutID
	})
	sort.Slice(sets, func(i, j int) bool {
		return sets[i].ID < sets[j].ID
	})
	return sets, nil
}

func (r *workoutSetRepo) ListByWorkoutAndExercise(_ context.Context, workoutID, exerciseID int) ([]training.WorkoutSet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sets := r.s.data.setsWhere(func(ws training.WorkoutSet) bool {
		return ws.WorkoutID == workoutID && ws.ExerciseID == exerciseID
	})
	sort.Slice(sets, func(i, j int) bool {
		if sets[i].SetNumber != sets[j].SetNumber {
			return sets[i].SetNumber < sets[j].SetNumber
		}
		return sets[i].ID < sets[j].ID
	})
	return sets, nil
}

func (s *state) setsWhere(match func(ws training.WorkoutSet) bool) []training.WorkoutSet {
	var sets []training.WorkoutSet
	for _, ws := range s.workoutSets {
		if match(ws) {
			sets = append(sets, *copySet(ws))
		}
	}
	return sets
}

func (r *workoutSetRepo) Create(_ context.Context, set training.WorkoutSet) (*training.WorkoutSet, error) {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.data.workouts[set.WorkoutID]; !ok {
		return nil, fmt.Errorf("workout [%d] missing: %w", set.WorkoutID, training.ErrConstraintViolation)
	}
	if _, ok := r.s.data.exercises[set.ExerciseID]; !ok {
		return nil, fmt.Errorf("exercise [%d] missing: %w", set.ExerciseID, training.ErrConstraintViolation)
	}

	set.ID = r.s.data.nextID()
	stored := copySet(set)
	r.s.data.workoutSets[set.ID] = *stored
	return copySet(*stored), nil
}

func (r *workoutSetRepo) Update(_ context.Context, id int, upd training.WorkoutSetUpdate) (*training.WorkoutSet, error) {
	defer r.s.lockWrite(r.inTx)()

	ws, ok := r.s.data.workoutSets[id]
	if !ok {
		return nil, training.NotFound("workout set", id)
	}

	if upd.TargetReps != nil {
		ws.TargetReps = *upd.TargetReps
	}
	if upd.TargetWeight != nil {
		ws.TargetWeight = *upd.TargetWeight
	}
	if upd.Status != nil {
		ws.Status = *upd.Status
	}
	if upd.ClearActuals {
		ws.ActualReps = nil
		ws.ActualWeight = nil
	} else {
		if upd.ActualReps != nil {
			ws.ActualReps = training.IntPtr(*upd.ActualReps)
		}
		if upd.ActualWeight != nil {
			ws.ActualWeight = training.FloatPtr(*upd.ActualWeight)
		}
	}

	r.s.data.workoutSets[id] = ws
	return copySet(ws), nil
}

func (r *workoutSetRepo) Delete(_ context.Context, id int) (bool, error) {
	defer r.s.lockWrite(r.inTx)()

	if _, ok := r.s.data.workoutSets[id]; !ok {
		return false, nil
	}
	delete(r.s.data.workoutSets, id)
	return true, nil
}

// copySet detaches the actual value pointers from the stored set.
func copySet(ws training.WorkoutSet) *training.WorkoutSet {
	if ws.ActualReps != nil {
		ws.ActualReps = training.IntPtr(*ws.ActualReps)
	}
	if ws.ActualWeight != nil {
		ws.ActualWeight = training.FloatPtr(*ws.ActualWeight)
	}
	return &ws
}
