package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterbs/brad-os-sub016/internal/telemetry/tracing"
	"github.com/carterbs/brad-os-sub016/pkg"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseExists   = errors.New("exercise already exists")
)

type ListParams struct {
	MuscleGroup string
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := exercise.Validate(); err != nil {
		return err
	}

	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now()
	}

	_, err = r.db.Exec(
		ctx,
		`
			INSERT INTO exercise
			    (id, name, muscle_group, weight_increment, min_reps, max_reps, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
		exercise.ID,
		exercise.Name,
		exercise.MuscleGroup,
		exercise.WeightIncrement,
		exercise.MinReps,
		exercise.MaxReps,
		exercise.CreatedAt,
	)
	if pkg.IsUniqueViolationError(err) {
		return ErrExerciseExists
	}
	if err != nil {
		return err
	}

	return nil
}

func (r *Repo) Get(ctx context.Context, exerciseID string) (_ Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	var exercise Exercise
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
			    id, name, muscle_group, weight_increment, min_reps, max_reps, created_at
			FROM exercise
			WHERE id = $1
		`,
		exerciseID,
	).Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.MuscleGroup,
		&exercise.WeightIncrement,
		&exercise.MinReps,
		&exercise.MaxReps,
		&exercise.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Exercise{}, ErrExerciseNotFound
	}
	if err != nil {
		return Exercise{}, fmt.Errorf("exercise [query row]: %w", err)
	}

	return exercise, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.MuscleGroup != "" {
		span.SetAttributes(attribute.String("params.muscleGroup", params.MuscleGroup))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    id, name, muscle_group, weight_increment, min_reps, max_reps, created_at
			FROM exercise
			WHERE ($1::text = '' OR muscle_group = $1)
			ORDER BY name
		`,
		params.MuscleGroup,
	)
	if err != nil {
		return nil, fmt.Errorf("exercises [query]: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercises [rows error]: %w", err)
	}

	var exercises []Exercise
	for rows.Next() {
		var exercise Exercise
		err := rows.Scan(
			&exercise.ID,
			&exercise.Name,
			&exercise.MuscleGroup,
			&exercise.WeightIncrement,
			&exercise.MinReps,
			&exercise.MaxReps,
			&exercise.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("exercises [rows scan]: %w", err)
		}
		exercises = append(exercises, exercise)
	}

	return exercises, nil
}

func (r *Repo) Update(ctx context.Context, exercise Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := exercise.Validate(); err != nil {
		return err
	}

	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE exercise
			SET name = $2, muscle_group = $3, weight_increment = $4, min_reps = $5, max_reps = $6
			WHERE id = $1
		`,
		exercise.ID,
		exercise.Name,
		exercise.MuscleGroup,
		exercise.WeightIncrement,
		exercise.MinReps,
		exercise.MaxReps,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, exerciseID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM exercise WHERE id = $1`,
		exerciseID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	return nil
}
