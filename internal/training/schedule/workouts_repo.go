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

type WorkoutsRepo struct {
	db *pgxpool.Pool
}

func NewWorkoutsRepo(db *pgxpool.Pool) *WorkoutsRepo {
	return &WorkoutsRepo{
		db: db,
	}
}

func (r *WorkoutsRepo) Add(ctx context.Context, workout ScheduledWorkout) (_ *ScheduledWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if workout.Status == "" {
		workout.Status = WorkoutStatusPending
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO scheduled_workout
				(cycle_id, training_day_id, week_number, scheduled_date, status, started_at, completed_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id;`,
		workout.CycleID, workout.TrainingDayID, workout.WeekNumber,
		workout.ScheduledDate, workout.Status, workout.StartedAt, workout.CompletedAt,
	).Scan(&workout.ID)
	if err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	span.SetAttributes(attribute.Int("workout.id", workout.ID))

	return &workout, nil
}

func (r *WorkoutsRepo) Get(ctx context.Context, id int) (_ *ScheduledWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var workout ScheduledWorkout
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
			    id, cycle_id, training_day_id, week_number, scheduled_date, status, started_at, completed_at
			FROM scheduled_workout
			WHERE id = $1;`,
		id,
	).Scan(
		&workout.ID,
		&workout.CycleID,
		&workout.TrainingDayID,
		&workout.WeekNumber,
		&workout.ScheduledDate,
		&workout.Status,
		&workout.StartedAt,
		&workout.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("workout [query row]: %w", err)
	}

	return &workout, nil
}

// ListForCycle returns all scheduled workouts of a cycle, ordered by date.
func (r *WorkoutsRepo) ListForCycle(ctx context.Context, cycleID int) (_ []ScheduledWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.workouts.list_for_cycle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("cycle_id", cycleID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    id, cycle_id, training_day_id, week_number, scheduled_date, status, started_at, completed_at
			FROM scheduled_workout
			WHERE cycle_id = $1
			ORDER BY scheduled_date;`,
		cycleID,
	)
	if err != nil {
		return nil, fmt.Errorf("workouts [query]: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workouts [rows]: %w", err)
	}

	return r.rows2workouts(rows)
}

// ListFuture returns the workouts of a cycle for one training day that are
// still eligible for structural change: not completed, not in progress, and
// scheduled today or later. A workout scheduled for today that is still
// pending is included; one already started is not. Ordered by scheduled date
// so that propagation counts and warnings are deterministic.
func (r *WorkoutsRepo) ListFuture(ctx context.Context, cycleID, trainingDayID int, from time.Time) (_ []ScheduledWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.workouts.list_future")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("cycle_id", cycleID))
	span.SetAttributes(attribute.Int("training_day_id", trainingDayID))
	span.SetAttributes(attribute.String("from", from.String()))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    id, cycle_id, training_day_id, week_number, scheduled_date, status, started_at, completed_at
			FROM scheduled_workout
			WHERE cycle_id = $1
				AND ($2::int = 0 OR training_day_id = $2)
				AND status NOT IN ('completed', 'in_progress')
				AND scheduled_date >= $3
			ORDER BY scheduled_date;`,
		cycleID, trainingDayID, from,
	)
	if err != nil {
		return nil, fmt.Errorf("future workouts [query]: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("future workouts [rows]: %w", err)
	}

	return r.rows2workouts(rows)
}

func (r *WorkoutsRepo) UpdateStatus(ctx context.Context, id int, status WorkoutStatus, startedAt, completedAt *time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.workouts.update_status")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))
	span.SetAttributes(attribute.String("status", status.String()))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE scheduled_workout
			SET status = $1,
				started_at = COALESCE($2, started_at),
				completed_at = COALESCE($3, completed_at)
			WHERE id = $4;`,
		status, startedAt, completedAt, id,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}

	return nil
}

func (r *WorkoutsRepo) rows2workouts(rows pgx.Rows) ([]ScheduledWorkout, error) {
	var workouts []ScheduledWorkout
	for rows.Next() {
		var workout ScheduledWorkout
		if err := rows.Scan(
			&workout.ID,
			&workout.CycleID,
			&workout.TrainingDayID,
			&workout.WeekNumber,
			&workout.ScheduledDate,
			&workout.Status,
			&workout.StartedAt,
			&workout.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("workouts [rows scan]: %w", err)
		}
		workouts = append(workouts, workout)
	}

	if workouts == nil {
		workouts = make([]ScheduledWorkout, 0)
	}

	return workouts, nil
}
