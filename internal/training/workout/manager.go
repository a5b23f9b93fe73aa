package workout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/carterbs/brad-os-sub016/internal/telemetry/metrics"
	"github.com/carterbs/brad-os-sub016/internal/telemetry/tracing"
	"github.com/carterbs/brad-os-sub016/internal/training/plan"
	"github.com/carterbs/brad-os-sub016/internal/training/schedule"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=manager_mocks_test.go -package=workout_test

var (
	// ErrWorkoutFinished - structural edits against a completed or skipped workout
	ErrWorkoutFinished = errors.New("workout already finished")
	// ErrLastSet - an exercise always keeps at least one set
	ErrLastSet = errors.New("cannot remove the last set of an exercise")
	// ErrNoPendingSets - all existing sets are logged, nothing removable
	ErrNoPendingSets = errors.New("no pending sets to remove")
	// ErrInvalidInput - negative reps or weight
	ErrInvalidInput = errors.New("invalid input")
)

type workoutsRepo interface {
	Get(ctx context.Context, id int) (*schedule.ScheduledWorkout, error)
	UpdateStatus(ctx context.Context, id int, status schedule.WorkoutStatus, startedAt, completedAt *time.Time) error
}

type setsRepo interface {
	Get(ctx context.Context, id int) (*schedule.ScheduledSet, error)
	ListForExercise(ctx context.Context, workoutID int, exerciseID string) ([]schedule.ScheduledSet, error)
	Add(ctx context.Context, set schedule.ScheduledSet) (*schedule.ScheduledSet, error)
	Update(ctx context.Context, set *schedule.ScheduledSet) error
	Delete(ctx context.Context, id int) error
}

type propagator interface {
	UpdateExerciseTargets(
		ctx context.Context,
		cycleID, trainingDayID int,
		exerciseID string,
		changes plan.FieldChanges,
		weightIncrement float64,
		excludeWorkoutID int,
	) (affectedWorkouts, modifiedSets int, err error)
}

// Manager owns the per-set lifecycle: logging, skipping, undo, and the
// manual add/remove-one-set operations. A workout auto-transitions to
// in_progress on first interaction; completed and skipped workouts accept
// no structural edits at all. Set-count changes are forwarded to the
// propagator so the rest of the cycle stays on the same prescription.
type Manager struct {
	workouts       workoutsRepo
	sets           setsRepo
	propagator     propagator
	clock          schedule.Clock
	metricsManager *metrics.Manager
}

func NewManager(
	workouts workoutsRepo,
	sets setsRepo,
	propagator propagator,
	clock schedule.Clock,
	metricsManager *metrics.Manager,
) *Manager {
	return &Manager{
		workouts:       workouts,
		sets:           sets,
		propagator:     propagator,
		clock:          clock,
		metricsManager: metricsManager,
	}
}

// Log stores the actual reps and weight for a set and marks it completed.
func (m *Manager) Log(ctx context.Context, setID, actualReps int, actualWeight float64) (_ *schedule.ScheduledSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workout.log-set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("set_id", setID))

	if actualReps < 0 || actualWeight < 0 {
		return nil, fmt.Errorf("%w: reps and weight must not be negative", ErrInvalidInput)
	}

	set, _, err := m.editableSet(ctx, setID)
	if err != nil {
		return nil, err
	}

	set.Status = schedule.SetStatusCompleted
	set.ActualReps = &actualReps
	set.ActualWeight = &actualWeight
	if err := m.sets.Update(ctx, set); err != nil {
		return nil, m.wrapWriteErr("update set", set.ID, err)
	}

	if m.metricsManager != nil {
		m.metricsManager.CounterSetsLogged.Inc()
	}

	return set, nil
}

// Skip marks a set skipped without recording actuals.
func (m *Manager) Skip(ctx context.Context, setID int) (_ *schedule.ScheduledSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workout.skip-set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("set_id", setID))

	set, _, err := m.editableSet(ctx, setID)
	if err != nil {
		return nil, err
	}

	set.Status = schedule.SetStatusSkipped
	set.ActualReps = nil
	set.ActualWeight = nil
	if err := m.sets.Update(ctx, set); err != nil {
		return nil, m.wrapWriteErr("update set", set.ID, err)
	}

	if m.metricsManager != nil {
		m.metricsManager.CounterSetsSkipped.Inc()
	}

	return set, nil
}

// Unlog reverts a set to pending and clears its actuals. The owning
// workout stays in_progress; only the set moves backward.
func (m *Manager) Unlog(ctx context.Context, setID int) (_ *schedule.ScheduledSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workout.unlog-set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("set_id", setID))

	set, err := m.sets.Get(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("get set: %w", err)
	}

	workout, err := m.workouts.Get(ctx, set.WorkoutID)
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	if workout.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: workout %d is %s", ErrWorkoutFinished, workout.ID, workout.Status)
	}

	set.Status = schedule.SetStatusPending
	set.ActualReps = nil
	set.ActualWeight = nil
	if err := m.sets.Update(ctx, set); err != nil {
		return nil, m.wrapWriteErr("update set", set.ID, err)
	}

	if m.metricsManager != nil {
		m.metricsManager.CounterSetsUnlogged.Inc()
	}

	return set, nil
}

// AddSet appends one set to an exercise within a workout, copying the
// targets of the highest-numbered existing set, then propagates the new
// set count to the other future workouts of the same training day.
func (m *Manager) AddSet(ctx context.Context, workoutID int, exerciseID string) (_ *schedule.ScheduledSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workout.add-set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_id", workoutID))
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	workout, sets, err := m.editableExercise(ctx, workoutID, exerciseID)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: workout %d has no sets for exercise %s", schedule.ErrSetNotFound, workoutID, exerciseID)
	}

	last := sets[len(sets)-1]
	added, err := m.sets.Add(ctx, schedule.ScheduledSet{
		WorkoutID:    workoutID,
		ExerciseID:   exerciseID,
		SetNumber:    last.SetNumber + 1,
		TargetReps:   last.TargetReps,
		TargetWeight: last.TargetWeight,
		Status:       schedule.SetStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("add set: %w", err)
	}

	if err := m.propagateSetCount(ctx, workout, exerciseID, len(sets)+1); err != nil {
		return nil, err
	}

	return added, nil
}

// RemoveSet removes the highest-numbered pending set of an exercise within
// a workout, renumbers the sets above it, and propagates the new count.
// The last remaining set can never be removed.
func (m *Manager) RemoveSet(ctx context.Context, workoutID int, exerciseID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workout.remove-set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_id", workoutID))
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	workout, sets, err := m.editableExercise(ctx, workoutID, exerciseID)
	if err != nil {
		return err
	}
	if len(sets) < 2 {
		return fmt.Errorf("%w: exercise %s in workout %d", ErrLastSet, exerciseID, workoutID)
	}

	victim := -1
	for i := len(sets) - 1; i >= 0; i-- {
		if sets[i].Status == schedule.SetStatusPending {
			victim = i
			break
		}
	}
	if victim < 0 {
		return fmt.Errorf("%w: exercise %s in workout %d", ErrNoPendingSets, exerciseID, workoutID)
	}

	removed := sets[victim]
	if err := m.sets.Delete(ctx, removed.ID); err != nil {
		return m.wrapWriteErr("delete set", removed.ID, err)
	}

	// keep set numbers dense
	for i := victim + 1; i < len(sets); i++ {
		set := sets[i]
		set.SetNumber--
		if err := m.sets.Update(ctx, &set); err != nil {
			return m.wrapWriteErr("renumber set", set.ID, err)
		}
	}

	return m.propagateSetCount(ctx, workout, exerciseID, len(sets)-1)
}

// editableSet loads a set and its workout, rejects terminal workouts and
// auto-starts a pending one.
func (m *Manager) editableSet(ctx context.Context, setID int) (*schedule.ScheduledSet, *schedule.ScheduledWorkout, error) {
	set, err := m.sets.Get(ctx, setID)
	if err != nil {
		return nil, nil, fmt.Errorf("get set: %w", err)
	}

	workout, err := m.workouts.Get(ctx, set.WorkoutID)
	if err != nil {
		return nil, nil, fmt.Errorf("get workout: %w", err)
	}
	if workout.Status.IsTerminal() {
		return nil, nil, fmt.Errorf("%w: workout %d is %s", ErrWorkoutFinished, workout.ID, workout.Status)
	}

	if workout.Status == schedule.WorkoutStatusPending {
		startedAt := m.clock.Now()
		if err := m.workouts.UpdateStatus(ctx, workout.ID, schedule.WorkoutStatusInProgress, &startedAt, nil); err != nil {
			return nil, nil, m.wrapWriteErr("start workout", workout.ID, err)
		}
		workout.Status = schedule.WorkoutStatusInProgress
		workout.StartedAt = &startedAt
		log.Debugf("workout %d auto-started", workout.ID)
	}

	return set, workout, nil
}

// editableExercise loads a workout and the exercise's sets ordered by set
// number, rejecting terminal workouts.
func (m *Manager) editableExercise(ctx context.Context, workoutID int, exerciseID string) (*schedule.ScheduledWorkout, []schedule.ScheduledSet, error) {
	workout, err := m.workouts.Get(ctx, workoutID)
	if err != nil {
		return nil, nil, fmt.Errorf("get workout: %w", err)
	}
	if workout.Status.IsTerminal() {
		return nil, nil, fmt.Errorf("%w: workout %d is %s", ErrWorkoutFinished, workout.ID, workout.Status)
	}

	sets, err := m.sets.ListForExercise(ctx, workoutID, exerciseID)
	if err != nil {
		return nil, nil, fmt.Errorf("list sets: %w", err)
	}
	sort.Slice(sets, func(i, j int) bool {
		return sets[i].SetNumber < sets[j].SetNumber
	})

	return workout, sets, nil
}

func (m *Manager) propagateSetCount(ctx context.Context, workout *schedule.ScheduledWorkout, exerciseID string, newCount int) error {
	affected, modified, err := m.propagator.UpdateExerciseTargets(
		ctx,
		workout.CycleID, workout.TrainingDayID,
		exerciseID,
		plan.FieldChanges{Sets: &newCount},
		0,
		workout.ID,
	)
	if err != nil {
		return fmt.Errorf("propagate set count for exercise %s: %w", exerciseID, err)
	}
	log.Debugf(
		"set count %d for exercise %s propagated from workout %d: %d workouts, %d sets",
		newCount, exerciseID, workout.ID, affected, modified,
	)
	return nil
}

// wrapWriteErr upgrades a not-found on a record we just read into an
// integrity failure.
func (m *Manager) wrapWriteErr(op string, id int, err error) error {
	if errors.Is(err, schedule.ErrWorkoutNotFound) || errors.Is(err, schedule.ErrSetNotFound) {
		return fmt.Errorf("%s %d: %w: %s", op, id, schedule.ErrUpdateFailed, err)
	}
	return fmt.Errorf("%s %d: %w", op, id, err)
}
