package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/internal/training"
	"github.com/2beens/mesocycles/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const activeMesocycleConstraint = "mesocycle_single_active"

var _ training.Store = (*Store)(nil)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the postgres training.Store. A Store returned to a WithinTx
// callback runs every query in that transaction.
type Store struct {
	pool *pgxpool.Pool
	db   querier
	inTx bool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
		db:   pool,
	}
}

func (s *Store) Exercises() training.ExerciseRepo {
	return &exerciseRepo{db: s.db}
}

func (s *Store) Plans() training.PlanRepo {
	return &planRepo{db: s.db}
}

func (s *Store) PlanDays() training.PlanDayRepo {
	return &planDayRepo{db: s.db}
}

func (s *Store) PlanDayExercises() training.PlanDayExerciseRepo {
	return &planDayExerciseRepo{db: s.db}
}

func (s *Store) Mesocycles() training.MesocycleRepo {
	return &mesocycleRepo{db: s.db}
}

func (s *Store) Workouts() training.WorkoutRepo {
	return &workoutRepo{db: s.db}
}

func (s *Store) WorkoutSets() training.WorkoutSetRepo {
	return &workoutSetRepo{db: s.db}
}

// WithinTx runs fn in a transaction, committed when fn returns nil.
// Called on a transaction bound Store, fn joins the running transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx training.Store) error) (err error) {
	if s.inTx {
		return fn(ctx, s)
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.tx")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	return fn(ctx, &Store{pool: s.pool, db: tx, inTx: true})
}

// mapErr translates pgx and postgres errors into the training errors.
func mapErr(err error, entity string, id int) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return training.NotFound(entity, id)
	case pkg.IsUniqueViolationError(err) && pkg.PgConstraintName(err) == activeMesocycleConstraint:
		return training.ErrActiveMesocycleExists
	case pkg.IsUniqueViolationError(err),
		pkg.IsForeignKeyViolationError(err),
		pkg.IsCheckViolationError(err):
		return fmt.Errorf("%s [%s]: %w", entity, pkg.PgConstraintName(err), training.ErrConstraintViolation)
	default:
		return fmt.Errorf("%s: %w", entity, err)
	}
}
