package postgres

import (
	"context"

	"github.com/2beens/mesocycles/internal/telemetry/tracing"
	"github.com/2beens/mesocycles/internal/training"

	"github.com/jackc/pgx/v5"
)

type mesocycleRepo struct {
	db querier
}

const mesocycleColumns = `id, plan_id, start_date, current_week, status, created_at`

func scanMesocycle(row pgx.Row) (training.Mesocycle, error) {
	var (
		m      training.Mesocycle
		status string
	)
	if err := row.Scan(&m.ID, &m.PlanID, &m.StartDate, &m.CurrentWeek, &status, &m.CreatedAt); err != nil {
		return training.Mesocycle{}, err
	}
	m.StartDate = training.DateOnly(m.StartDate)
	m.Status = training.MesocycleStatus(status)
	return m, nil
}

func (r *mesocycleRepo) Get(ctx context.Context, id int) (_ *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mesocycles.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	m, err := scanMesocycle(r.db.QueryRow(ctx, `SELECT `+mesocycleColumns+` FROM mesocycle WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err, "mesocycle", id)
	}
	return &m, nil
}

func (r *mesocycleRepo) GetActive(ctx context.Context) (_ *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mesocycles.getactive")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	m, err := scanMesocycle(r.db.QueryRow(ctx, `
		SELECT `+mesocycleColumns+`
		FROM mesocycle
		WHERE status = $1
	`, string(training.MesocycleStatusActive)))
	if err != nil {
		return nil, mapErr(err, "active mesocycle", 0)
	}
	return &m, nil
}

// List returns the newest mesocycles first.
func (r *mesocycleRepo) List(ctx context.Context) (_ []training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mesocycles.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT `+mesocycleColumns+`
		FROM mesocycle
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, mapErr(err, "mesocycle", 0)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (training.Mesocycle, error) {
		return scanMesocycle(row)
	})
	if err != nil {
		return nil, mapErr(err, "mesocycle", 0)
	}
	return list, nil
}

// Create relies on the mesocycle_single_active index to reject a second
// active mesocycle.
func (r *mesocycleRepo) Create(ctx context.Context, mesocycle training.Mesocycle) (_ *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mesocycles.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	m, err := scanMesocycle(r.db.QueryRow(ctx, `
		INSERT INTO mesocycle (plan_id, start_date, current_week, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+mesocycleColumns,
		mesocycle.PlanID, training.DateOnly(mesocycle.StartDate), mesocycle.CurrentWeek, string(mesocycle.Status),
	))
	if err != nil {
		return nil, mapErr(err, "mesocycle", 0)
	}
	return &m, nil
}

func (r *mesocycleRepo) Update(ctx context.Context, id int, upd training.MesocycleUpdate) (_ *training.Mesocycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mesocycles.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var status *string
	if upd.Status != nil {
		s := string(*upd.Status)
		status = &s
	}

	m, err := scanMesocycle(r.db.QueryRow(ctx, `
		UPDATE mesocycle
		SET status       = COALESCE($2, status),
		    current_week = COALESCE($3, current_week)
		WHERE id = $1
		RETURNING `+mesocycleColumns,
		id, status, upd.CurrentWeek,
	))
	if err != nil {
		return nil, mapErr(err, "mesocycle", id)
	}
	return &m, nil
}
