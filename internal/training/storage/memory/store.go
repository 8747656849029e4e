package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/2beens/mesocycles/internal/training"
)

type state struct {
	lastID           int
	exercises        map[int]training.Exercise
	plans            map[int]training.Plan
	planDays         map[int]training.PlanDay
	planDayExercises map[int]training.PlanDayExercise
	mesocycles       map[int]training.Mesocycle
	workouts         map[int]training.Workout
	workoutSets      map[int]training.WorkoutSet
}

func newState() *state {
	return &state{
		exercises:        make(map[int]training.Exercise),
		plans:            make(map[int]training.Plan),
		planDays:         make(map[int]training.PlanDay),
		planDayExercises: make(map[int]training.PlanDayExercise),
		mesocycles:       make(map[int]training.Mesocycle),
		workouts:         make(map[int]training.Workout),
		workoutSets:      make(map[int]training.WorkoutSet),
	}
}

func (s *state) clone() *state {
	return &state{
		lastID:           s.lastID,
		exercises:        maps.Clone(s.exercises),
		plans:            maps.Clone(s.plans),
		planDays:         maps.Clone(s.planDays),
		planDayExercises: maps.Clone(s.planDayExercises),
		mesocycles:       maps.Clone(s.mesocycles),
		workouts:         maps.Clone(s.workouts),
		workoutSets:      maps.Clone(s.workoutSets),
	}
}

func (s *state) nextID() int {
	s.lastID++
	return s.lastID
}

type shared struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *state
}

// lockWrite takes the write lock and returns its release. Writes made
// outside a transaction also wait for the running transaction to finish,
// so a rollback never drops them.
func (s *shared) lockWrite(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

// Store is an in-memory training.Store. Transactions are serialized and
// rolled back by restoring a snapshot of the whole state. Reads outside a
// transaction are not isolated from it and may see uncommitted writes.
type Store struct {
	shared *shared
	inTx   bool
}

var _ training.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		shared: &shared{data: newState()},
	}
}

func (s *Store) Exercises() training.ExerciseRepo {
	return &exerciseRepo{s: s.shared, inTx: s.inTx}
}

func (s *Store) Plans() training.PlanRepo {
	return &planRepo{s: s.shared, inTx: s.inTx}
}

func (s *Store) PlanDays() training.PlanDayRepo {
	return &planDayRepo{s: s.shared, inTx: s.inTx}
}

func (s *Store) PlanDayExercises() training.PlanDayExerciseRepo {
	return &planDayExerciseRepo{s: s.shared, inTx: s.inTx}
}

func (s *Store) Mesocycles() training.MesocycleRepo {
	return &mesocycleRepo{s: s.shared, inTx: s.inTx}
}

func (s *Store) Workouts() training.WorkoutRepo {
	return &workoutRepo{s: s.shared, inTx: s.inTx}
}

func (s *Store) WorkoutSets() training.WorkoutSetRepo {
	return &workoutSetRepo{s: s.shared, inTx: s.inTx}
}

// WithinTx joins the running transaction when called on a transaction bound store.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx training.Store) error) (err error) {
	if s.inTx {
		return fn(ctx, s)
	}

	s.shared.txMu.Lock()
	defer s.shared.txMu.Unlock()

	s.shared.mu.RLock()
	snapshot := s.shared.data.clone()
	s.shared.mu.RUnlock()

	defer func() {
		if r := recover(); r != nil {
			s.rollback(snapshot)
			panic(r)
		}
		if err != nil {
			s.rollback(snapshot)
		}
	}()

	return fn(ctx, &Store{shared: s.shared, inTx: true})
}

func (s *Store) rollback(snapshot *state) {
	s.shared.mu.Lock()
	s.shared.data = snapshot
	s.shared.mu.Unlock()
}
