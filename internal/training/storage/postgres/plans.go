package postgres

import (
	"context"

	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/internal/training"

	"github.com/jackc/pgx/v5"
)

type exerciseRepo struct {
	db querier
}

func (r *exerciseRepo) Get(ctx context.Context, id int) (_ *training.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	e := &training.Exercise{}
	err = r.db.QueryRow(ctx, `
		SELECT id, name, weight_increment, is_custom, created_at
		FROM exercise
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.WeightIncrement, &e.IsCustom, &e.CreatedAt)
	if err != nil {
		return nil, mapErr(err, "exercise", id)
	}
	return e, nil
}

func (r *exerciseRepo) List(ctx context.Context) (_ []training.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, weight_increment, is_custom, created_at
		FROM exercise
		ORDER BY name
	`)
	if err != nil {
		return nil, mapErr(err, "exercise", 0)
	}
	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (training.Exercise, error) {
		var e training.Exercise
		err := row.Scan(&e.ID, &e.Name, &e.WeightIncrement, &e.IsCustom, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, mapErr(err, "exercise", 0)
	}
	return exercises, nil
}

func (r *exerciseRepo) Create(ctx context.Context, exercise training.Exercise) (_ *training.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx, `
		INSERT INTO exercise (name, weight_increment, is_custom)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, exercise.Name, exercise.WeightIncrement, exercise.IsCustom).Scan(&exercise.ID, &exercise.CreatedAt)
	if err != nil {
		return nil, mapErr(err, "exercise", 0)
	}
	return &exercise, nil
}

func (r *exerciseRepo) Delete(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM exercise WHERE id = $1`, id)
	if err != nil {
		return false, mapErr(err, "exercise", id)
	}
	return tag.RowsAffected() > 0, nil
}

type planRepo struct {
	db querier
}

func (r *planRepo) Get(ctx context.Context, id int) (_ *training.Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	p := &training.Plan{}
	err = r.db.QueryRow(ctx, `
		SELECT id, name, duration_weeks, created_at
		FROM plan
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.DurationWeeks, &p.CreatedAt)
	if err != nil {
		return nil, mapErr(err, "plan", id)
	}
	return p, nil
}

func (r *planRepo) Create(ctx context.Context, plan training.Plan) (_ *training.Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if plan.DurationWeeks == 0 {
		plan.DurationWeeks = training.DefaultDurationWeeks
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO plan (name, duration_weeks)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, plan.Name, plan.DurationWeeks).Scan(&plan.ID, &plan.CreatedAt)
	if err != nil {
		return nil, mapErr(err, "plan", 0)
	}
	return &plan, nil
}

// Delete removes the plan with its days, unless a mesocycle was generated from it.
func (r *planRepo) Delete(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM plan WHERE id = $1`, id)
	if err != nil {
		return false, mapErr(err, "plan", id)
	}
	return tag.RowsAffected() > 0, nil
}

type planDayRepo struct {
	db querier
}

const planDayColumns = `id, plan_id, day_of_week, name, sort_order`

func scanPlanDay(row pgx.Row) (training.PlanDay, error) {
	var d training.PlanDay
	err := row.Scan(&d.ID, &d.PlanID, &d.DayOfWeek, &d.Name, &d.SortOrder)
	return d, err
}

func (r *planDayRepo) Get(ctx context.Context, id int) (_ *training.PlanDay, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plandays.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	d, err := scanPlanDay(r.db.QueryRow(ctx, `SELECT `+planDayColumns+` FROM plan_day WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err, "plan day", id)
	}
	return &d, nil
}

func (r *planDayRepo) ListByPlan(ctx context.Context, planID int) (_ []training.PlanDay, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plandays.listbyplan")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+planDayColumns+`
		FROM plan_day
		WHERE plan_id = $1
		ORDER BY day_of_week, id
	`, planID)
	if err != nil {
		return nil, mapErr(err, "plan day", 0)
	}
	days, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (training.PlanDay, error) {
		return scanPlanDay(row)
	})
	if err != nil {
		return nil, mapErr(err, "plan day", 0)
	}
	return days, nil
}

func (r *planDayRepo) Create(ctx context.Context, day training.PlanDay) (_ *training.PlanDay, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plandays.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx, `
		INSERT INTO plan_day (plan_id, day_of_week, name, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, day.PlanID, day.DayOfWeek, day.Name, day.SortOrder).Scan(&day.ID)
	if err != nil {
		return nil, mapErr(err, "plan day", 0)
	}
	return &day, nil
}

func (r *planDayRepo) Delete(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plandays.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM plan_day WHERE id = $1`, id)
	if err != nil {
		return false, mapErr(err, "plan day", id)
	}
	return tag.RowsAffected() > 0, nil
}

type planDayExerciseRepo struct {
	db querier
}

const planDayExerciseColumns = `id, plan_day_id, exercise_id, sets, reps, weight, rest_seconds, min_reps, max_reps, sort_order`

func scanPlanDayExercise(row pgx.Row) (training.PlanDayExercise, error) {
	var e training.PlanDayExercise
	err := row.Scan(
		&e.ID, &e.PlanDayID, &e.ExerciseID,
		&e.Sets, &e.Reps, &e.Weight, &e.RestSeconds,
		&e.MinReps, &e.MaxReps, &e.SortOrder,
	)
	return e, err
}

func (r *planDayExerciseRepo) Get(ctx context.Context, id int) (_ *training.PlanDayExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plandayexercises.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	e, err := scanPlanDayExercise(r.db.QueryRow(ctx, `SELECT `+planDayExerciseColumns+` FROM plan_day_exercise WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err, "plan day exercise", id)
	}
	return &e, nil
}

func (r *planDayExerciseRepo) ListByPlanDay(ctx context.Context, planDayID int) (_ []training.PlanDayExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plandayexercises.listbyplanday")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+planDayExerciseColumns+`
		FROM plan_day_exercise
		WHERE plan_day_id = $1
		ORDER BY sort_order, id
	`, planDayID)
	if err != nil {
		return nil, mapErr(err, "plan day exercise", 0)
	}
	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (training.PlanDayExercise, error) {
		return scanPlanDayExercise(row)
	})
	if err != nil {
		return nil, mapErr(err, "plan day exercise", 0)
	}
	return exercises, nil
}

func (r *planDayExerciseRepo) Create(ctx context.Context, pde training.PlanDayExercise) (_ *training.PlanDayExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plandayexercises.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx, `
		INSERT INTO plan_day_exercise
			(plan_day_id, exercise_id, sets, reps, weight, rest_seconds, min_reps, max_reps, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`,
		pde.PlanDayID, pde.ExerciseID,
		pde.Sets, pde.Reps, pde.Weight, pde.RestSeconds,
		pde.MinReps, pde.MaxReps, pde.SortOrder,
	).Scan(&pde.ID)
	if err != nil {
		return nil, mapErr(err, "plan day exercise", 0)
	}
	return &pde, nil
}

func (r *planDayExerciseRepo) Delete(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plandayexercises.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM plan_day_exercise WHERE id = $1`, id)
	if err != nil {
		return false, mapErr(err, "plan day exercise", id)
	}
	return tag.RowsAffected() > 0, nil
}
