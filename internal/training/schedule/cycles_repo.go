package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterbs/brad-os-sub016/internal/telemetry/tracing"
)

var (
	ErrCycleNotFound   = errors.New("cycle not found")
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrSetNotFound     = errors.New("set not found")
	// ErrUpdateFailed - a write that should have touched an existing record
	// touched nothing; integrity failure, not recoverable locally.
	ErrUpdateFailed = errors.New("update failed")
)

type CyclesRepo struct {
	db *pgxpool.Pool
}

func NewCyclesRepo(db *pgxpool.Pool) *CyclesRepo {
	return &CyclesRepo{
		db: db,
	}
}

func (r *CyclesRepo) Add(ctx context.Context, cycle Cycle) (_ *Cycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.cycles.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if cycle.CreatedAt.IsZero() {
		cycle.CreatedAt = time.Now()
	}
	if cycle.Status == "" {
		cycle.Status = CycleStatusPending
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO training_cycle
				(plan_id, start_date, duration_weeks, current_week, status, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		cycle.PlanID, cycle.StartDate, cycle.DurationWeeks, cycle.CurrentWeek, cycle.Status, cycle.CreatedAt,
	).Scan(&cycle.ID)
	if err != nil {
		return nil, fmt.Errorf("insert cycle: %w", err)
	}

	span.SetAttributes(attribute.Int("cycle.id", cycle.ID))

	return &cycle, nil
}

func (r *CyclesRepo) Get(ctx context.Context, id int) (_ *Cycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.cycles.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var cycle Cycle
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
			    id, plan_id, start_date, duration_weeks, current_week, status, created_at
			FROM training_cycle
			WHERE id = $1;`,
		id,
	).Scan(
		&cycle.ID,
		&cycle.PlanID,
		&cycle.StartDate,
		&cycle.DurationWeeks,
		&cycle.CurrentWeek,
		&cycle.Status,
		&cycle.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCycleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cycle [query row]: %w", err)
	}

	return &cycle, nil
}

func (r *CyclesRepo) UpdateStatus(ctx context.Context, id int, status CycleStatus) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.cycles.update_status")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))
	span.SetAttributes(attribute.String("status", status.String()))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE training_cycle SET status = $1 WHERE id = $2;`,
		status, id,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}

	return nil
}

func (r *CyclesRepo) UpdateCurrentWeek(ctx context.Context, id, currentWeek int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.cycles.update_current_week")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))
	span.SetAttributes(attribute.Int("current_week", currentWeek))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE training_cycle SET current_week = $1 WHERE id = $2;`,
		currentWeek, id,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}

	return nil
}
