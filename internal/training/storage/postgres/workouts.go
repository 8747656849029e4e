package postgres

import (
	"context"

	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/internal/training"

	"github.com/jackc/pgx/v5"
)

type workoutRepo struct {
	db querier
}

const workoutColumns = `id, mesocycle_id, plan_day_id, week_number, scheduled_date, status, started_at, completed_at`

func scanWorkout(row pgx.Row) (training.Workout, error) {
	var (
		w      training.Workout
		status string
	)
	err := row.Scan(
		&w.ID, &w.MesocycleID, &w.PlanDayID, &w.WeekNumber,
		&w.ScheduledDate, &status, &w.StartedAt, &w.CompletedAt,
	)
	if err != nil {
		return training.Workout{}, err
	}
	w.ScheduledDate = training.DateOnly(w.ScheduledDate)
	w.Status = training.WorkoutStatus(status)
	return w, nil
}

func (r *workoutRepo) Get(ctx context.Context, id int) (_ *training.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	w, err := scanWorkout(r.db.QueryRow(ctx, `SELECT `+workoutColumns+` FROM workout WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err, "workout", id)
	}
	return &w, nil
}

func (r *workoutRepo) ListByMesocycle(ctx context.Context, mesocycleID int) (_ []training.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listbymesocycle")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+workoutColumns+`
		FROM workout
		WHERE mesocycle_id = $1
		ORDER BY scheduled_date, id
	`, mesocycleID)
	if err != nil {
		return nil, mapErr(err, "workout", 0)
	}
	workouts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (training.Workout, error) {
		return scanWorkout(row)
	})
	if err != nil {
		return nil, mapErr(err, "workout", 0)
	}
	return workouts, nil
}

func (r *workoutRepo) Create(ctx context.Context, workout training.Workout) (_ *training.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	w, err := scanWorkout(r.db.QueryRow(ctx, `
		INSERT INTO workout (mesocycle_id, plan_day_id, week_number, scheduled_date, status, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+workoutColumns,
		workout.MesocycleID, workout.PlanDayID, workout.WeekNumber,
		training.DateOnly(workout.ScheduledDate), string(workout.Status),
		workout.StartedAt, workout.CompletedAt,
	))
	if err != nil {
		return nil, mapErr(err, "workout", 0)
	}
	return &w, nil
}

func (r *workoutRepo) Update(ctx context.Context, id int, upd training.WorkoutUpdate) (_ *training.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var status *string
	if upd.Status != nil {
		s := string(*upd.Status)
		status = &s
	}

	w, err := scanWorkout(r.db.QueryRow(ctx, `
		UPDATE workout
		SET status       = COALESCE($2, status),
		    started_at   = COALESCE($3, started_at),
		    completed_at = COALESCE($4, completed_at)
		WHERE id = $1
		RETURNING `+workoutColumns,
		id, status, upd.StartedAt, upd.CompletedAt,
	))
	if err != nil {
		return nil, mapErr(err, "workout", id)
	}
	return &w, nil
}

// Delete removes the workout, its sets go with it.
func (r *workoutRepo) Delete(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM workout WHERE id = $1`, id)
	if err != nil {
		return false, mapErr(err, "workout", id)
	}
	return tag.RowsAffected() > 0, nil
}

type workoutSetRepo struct {
	db querier
}

const workoutSetColumns = `id, workout_id, exercise_id, set_number, target_reps, target_weight, actual_reps, actual_weight, status`

func scanWorkoutSet(row pgx.Row) (training.WorkoutSet, error) {
	var (
		s      training.WorkoutSet
		status string
	)
	err := row.Scan(
		&s.ID, &s.WorkoutID, &s.ExerciseID, &s.SetNumber,
		&s.TargetReps, &s.TargetWeight, &s.ActualReps, &s.ActualWeight, &status,
	)
	if err != nil {
		return training.WorkoutSet{}, err
	}
	s.Status = training.SetStatus(status)
	return s, nil
}

func (r *workoutSetRepo) Get(ctx context.Context, id int) (_ *training.WorkoutSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutsets.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	s, err := scanWorkoutSet(r.db.QueryRow(ctx, `SELECT `+workoutSetColumns+` FROM workout_set WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err, "workout set", id)
	}
	return &s, nil
}

func (r *workoutSetRepo) ListByWorkout(ctx context.Context, workoutID int) (_ []training.WorkoutSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutsets.listbyworkout")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return r.list(ctx, `
		SELECT `+workoutSetColumns+`
		FROM workout_set
		WHERE workout_id = $1
		ORDER BY id
	`, workoutID)
}

func (r *workoutSetRepo) ListByWorkoutAndExercise(ctx context.Context, workoutID, exerciseID int) (_ []training.WorkoutSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutsets.listbyworkoutandexercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return r.list(ctx, `
		SELECT `+workoutSetColumns+`
		FROM workout_set
		WHERE workout_id = $1 AND exercise_id = $2
		ORDER BY set_number, id
	`, workoutID, exerciseID)
}

func (r *workoutSetRepo) list(ctx context.Context, query string, args ...any) ([]training.WorkoutSet, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err, "workout set", 0)
	}
	sets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (training.WorkoutSet, error) {
		return scanWorkoutSet(row)
	})
	if err != nil {
		return nil, mapErr(err, "workout set", 0)
	}
	return sets, nil
}

func (r *workoutSetRepo) Create(ctx context.Context, set training.WorkoutSet) (_ *training.WorkoutSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutsets.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	s, err := scanWorkoutSet(r.db.QueryRow(ctx, `
		INSERT INTO workout_set
			(workout_id, exercise_id, set_number, target_reps, target_weight, actual_reps, actual_weight, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+workoutSetColumns,
		set.WorkoutID, set.ExerciseID, set.SetNumber,
		set.TargetReps, set.TargetWeight, set.ActualReps, set.ActualWeight,
		string(set.Status),
	))
	if err != nil {
		return nil, mapErr(err, "workout set", 0)
	}
	return &s, nil
}

func (r *workoutSetRepo) Update(ctx context.Context, id int, upd training.WorkoutSetUpdate) (_ *training.WorkoutSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutsets.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var status *string
	if upd.Status != nil {
		s := string(*upd.Status)
		status = &s
	}

	s, err := scanWorkoutSet(r.db.QueryRow(ctx, `
		UPDATE workout_set
		SET target_reps   = COALESCE($2, target_reps),
		    target_weight = COALESCE($3, target_weight),
		    status        = COALESCE($4, status),
		    actual_reps   = CASE WHEN $7::boolean THEN NULL ELSE COALESCE($5, actual_reps) END,
		    actual_weight = CASE WHEN $7::boolean THEN NULL ELSE COALESCE($6, actual_weight) END
		WHERE id = $1
		RETURNING `+workoutSetColumns,
		id, upd.TargetReps, upd.TargetWeight, status,
		upd.ActualReps, upd.ActualWeight, upd.ClearActuals,
	))
	if err != nil {
		return nil, mapErr(err, "workout set", id)
	}
	return &s, nil
}

func (r *workoutSetRepo) Delete(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutsets.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_set WHERE id = $1`, id)
	if err != nil {
		return false, mapErr(err, "workout set", id)
	}
	return tag.RowsAffected() > 0, nil
}
