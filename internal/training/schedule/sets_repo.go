package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterbs/brad-os-sub016/internal/telemetry/tracing"
	"github.com/carterbs/brad-os-sub016/pkg"
)

type SetsRepo struct {
	db *pgxpool.Pool
}

func NewSetsRepo(db *pgxpool.Pool) *SetsRepo {
	return &SetsRepo{
		db: db,
	}
}

func (r *SetsRepo) Add(ctx context.Context, set ScheduledSet) (_ *ScheduledSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sets.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if set.Status == "" {
		set.Status = SetStatusPending
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO scheduled_set
				(workout_id, exercise_id, set_number, target_reps, target_weight, actual_reps, actual_weight, status)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;`,
		set.WorkoutID, set.ExerciseID, set.SetNumber,
		set.TargetReps, set.TargetWeight, set.ActualReps, set.ActualWeight, set.Status,
	).Scan(&set.ID)
	if pkg.IsForeignKeyViolationError(err) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("insert set: %w", err)
	}

	span.SetAttributes(attribute.Int("set.id", set.ID))

	return &set, nil
}

func (r *SetsRepo) Get(ctx context.Context, id int) (_ *ScheduledSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sets.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var set ScheduledSet
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
			    id, workout_id, exercise_id, set_number, target_reps, target_weight, actual_reps, actual_weight, status
			FROM scheduled_set
			WHERE id = $1;`,
		id,
	).Scan(
		&set.ID,
		&set.WorkoutID,
		&set.ExerciseID,
		&set.SetNumber,
		&set.TargetReps,
		&set.TargetWeight,
		&set.ActualReps,
		&set.ActualWeight,
		&set.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set [query row]: %w", err)
	}

	return &set, nil
}

// ListForWorkout returns all sets of a workout, ordered by exercise and
// set number.
func (r *SetsRepo) ListForWorkout(ctx context.Context, workoutID int) (_ []ScheduledSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sets.list_for_workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_id", workoutID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    id, workout_id, exercise_id, set_number, target_reps, target_weight, actual_reps, actual_weight, status
			FROM scheduled_set
			WHERE workout_id = $1
			ORDER BY exercise_id, set_number;`,
		workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("sets [query]: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sets [rows]: %w", err)
	}

	return r.rows2sets(rows)
}

// ListForExercise returns the sets of one exercise within one workout,
// ordered by set number.
func (r *SetsRepo) ListForExercise(ctx context.Context, workoutID int, exerciseID string) (_ []ScheduledSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sets.list_for_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_id", workoutID))
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    id, workout_id, exercise_id, set_number, target_reps, target_weight, actual_reps, actual_weight, status
			FROM scheduled_set
			WHERE workout_id = $1 AND exercise_id = $2
			ORDER BY set_number;`,
		workoutID, exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("exercise sets [query]: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercise sets [rows]: %w", err)
	}

	return r.rows2sets(rows)
}

func (r *SetsRepo) Update(ctx context.Context, set *ScheduledSet) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sets.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", set.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE scheduled_set
			SET set_number = $1, target_reps = $2, target_weight = $3,
				actual_reps = $4, actual_weight = $5, status = $6
			WHERE id = $7;`,
		set.SetNumber, set.TargetReps, set.TargetWeight,
		set.ActualReps, set.ActualWeight, set.Status, set.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}

	return nil
}

func (r *SetsRepo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.sets.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM scheduled_set WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}

	return nil
}

func (r *SetsRepo) rows2sets(rows pgx.Rows) ([]ScheduledSet, error) {
	var sets []ScheduledSet
	for rows.Next() {
		var set ScheduledSet
		if err := rows.Scan(
			&set.ID,
			&set.WorkoutID,
			&set.ExerciseID,
			&set.SetNumber,
			&set.TargetReps,
			&set.TargetWeight,
			&set.ActualReps,
			&set.ActualWeight,
			&set.Status,
		); err != nil {
			return nil, fmt.Errorf("sets [rows scan]: %w", err)
		}
		sets = append(sets, set)
	}

	if sets == nil {
		sets = make([]ScheduledSet, 0)
	}

	return sets, nil
}
