package plan

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/carterbs/brad-os-sub016/internal/telemetry/metrics"
	"github.com/carterbs/brad-os-sub016/internal/telemetry/tracing"
	"github.com/carterbs/brad-os-sub016/internal/training/catalog"
	"github.com/carterbs/brad-os-sub016/internal/training/progression"
	"github.com/carterbs/brad-os-sub016/internal/training/schedule"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=propagator_mocks_test.go -package=plan_test

type workoutsRepo interface {
	ListFuture(ctx context.Context, cycleID, trainingDayID int, from time.Time) ([]schedule.ScheduledWorkout, error)
}

type setsRepo interface {
	ListForExercise(ctx context.Context, workoutID int, exerciseID string) ([]schedule.ScheduledSet, error)
	Add(ctx context.Context, set schedule.ScheduledSet) (*schedule.ScheduledSet, error)
	Update(ctx context.Context, set *schedule.ScheduledSet) error
	Delete(ctx context.Context, id int) error
}

// ExerciseContext pairs a prescription with its catalog exercise, so the
// propagator can snap prescribed weights to the exercise's own increment.
type ExerciseContext struct {
	Prescription Prescription     `json:"prescription"`
	Exercise     catalog.Exercise `json:"exercise"`
}

// PlanModificationResult accumulates what a template edit did to the
// remaining future workouts of a cycle. Warnings is the one non-fatal
// channel: sets with logged data block a removal without failing it.
type PlanModificationResult struct {
	AffectedWorkoutCount int      `json:"affectedWorkoutCount"`
	AddedSetsCount       int      `json:"addedSetsCount"`
	RemovedSetsCount     int      `json:"removedSetsCount"`
	ModifiedSetsCount    int      `json:"modifiedSetsCount"`
	PreservedCount       int      `json:"preservedCount"`
	Warnings             []string `json:"warnings"`
}

// RemovalResult is the outcome of removing one exercise from all future
// workouts: preservedCount + removedSetsCount always equals the number of
// sets that matched.
type RemovalResult struct {
	RemovedSetsCount int      `json:"removedSetsCount"`
	PreservedCount   int      `json:"preservedCount"`
	Warnings         []string `json:"warnings"`
}

// Propagator applies training-day template edits to every future,
// not-yet-started workout of a cycle. Historical sets are never deleted or
// overwritten; each per-workout step is idempotent so a partially applied
// propagation can simply be re-run to convergence.
type Propagator struct {
	workouts       workoutsRepo
	sets           setsRepo
	clock          schedule.Clock
	metricsManager *metrics.Manager
}

func NewPropagator(
	workouts workoutsRepo,
	sets setsRepo,
	clock schedule.Clock,
	metricsManager *metrics.Manager,
) *Propagator {
	return &Propagator{
		workouts:       workouts,
		sets:           sets,
		clock:          clock,
		metricsManager: metricsManager,
	}
}

// FutureWorkouts returns the cycle's workouts that are still eligible for
// structural change, in scheduled-date order.
func (p *Propagator) FutureWorkouts(ctx context.Context, cycleID, trainingDayID int) ([]schedule.ScheduledWorkout, error) {
	return p.workouts.ListFuture(ctx, cycleID, trainingDayID, schedule.Midnight(p.clock.Now()))
}

// AddExerciseToFutureWorkouts creates the prescribed sets for a newly added
// exercise in every future workout of the training day. Workouts that
// already carry sets for the exercise are left alone.
func (p *Propagator) AddExerciseToFutureWorkouts(
	ctx context.Context,
	cycleID, trainingDayID int,
	prescription Prescription,
	exercise catalog.Exercise,
) (addedSets int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "propagator.add-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("cycle_id", cycleID))
	span.SetAttributes(attribute.String("exercise_id", prescription.ExerciseID))

	futureWorkouts, err := p.FutureWorkouts(ctx, cycleID, trainingDayID)
	if err != nil {
		return 0, fmt.Errorf("list future workouts: %w", err)
	}

	targetWeight := snapWeight(prescription.Weight, exercise.WeightIncrement)

	for _, workout := range futureWorkouts {
		existing, err := p.sets.ListForExercise(ctx, workout.ID, prescription.ExerciseID)
		if err != nil {
			return addedSets, fmt.Errorf("list sets for workout %d: %w", workout.ID, err)
		}
		if len(existing) > 0 {
			// already applied, e.g. by a previous partially failed run
			continue
		}

		for setNumber := 1; setNumber <= prescription.Sets; setNumber++ {
			if _, err := p.sets.Add(ctx, schedule.ScheduledSet{
				WorkoutID:    workout.ID,
				ExerciseID:   prescription.ExerciseID,
				SetNumber:    setNumber,
				TargetReps:   prescription.Reps,
				TargetWeight: targetWeight,
				Status:       schedule.SetStatusPending,
			}); err != nil {
				return addedSets, fmt.Errorf("add set %d to workout %d: %w", setNumber, workout.ID, err)
			}
			addedSets++
		}
	}

	return addedSets, nil
}

// RemoveExerciseFromFutureWorkouts deletes every set of the exercise from
// every future workout, except sets that already carry logged actuals.
// Each preserved set is counted and surfaced as a warning instead of
// failing the operation.
func (p *Propagator) RemoveExerciseFromFutureWorkouts(
	ctx context.Context,
	cycleID, trainingDayID int,
	exerciseID string,
) (_ RemovalResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "propagator.remove-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("cycle_id", cycleID))
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	var result RemovalResult

	futureWorkouts, err := p.FutureWorkouts(ctx, cycleID, trainingDayID)
	if err != nil {
		return result, fmt.Errorf("list future workouts: %w", err)
	}

	for _, workout := range futureWorkouts {
		sets, err := p.sets.ListForExercise(ctx, workout.ID, exerciseID)
		if err != nil {
			return result, fmt.Errorf("list sets for workout %d: %w", workout.ID, err)
		}

		preservedHere := 0
		for _, set := range sets {
			if set.HasLoggedData() {
				preservedHere++
				continue
			}
			if err := p.sets.Delete(ctx, set.ID); err != nil {
				return result, fmt.Errorf("delete set %d: %w", set.ID, err)
			}
			result.RemovedSetsCount++
		}

		if preservedHere > 0 {
			result.PreservedCount += preservedHere
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"%d set(s) of exercise %s preserved in workout %d (%s) because they contain logged data",
				preservedHere, exerciseID, workout.ID, workout.ScheduledDate.Format("2006-01-02"),
			))
		}
	}

	if p.metricsManager != nil {
		p.metricsManager.CounterPreservedSets.Add(float64(result.PreservedCount))
	}

	return result, nil
}

// UpdateExerciseTargets propagates prescription field changes for one
// exercise to all future workouts of the training day. A set-count change
// resizes each workout's pending sets; reps/weight changes rewrite the
// targets of pending sets only. Logged sets are never touched. The workout
// with ID excludeWorkoutID (0 for none) is skipped; the lifecycle manager
// uses this to leave the workout it just edited alone.
func (p *Propagator) UpdateExerciseTargets(
	ctx context.Context,
	cycleID, trainingDayID int,
	exerciseID string,
	changes FieldChanges,
	weightIncrement float64,
	excludeWorkoutID int,
) (affectedWorkouts, modifiedSets int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "propagator.update-targets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("cycle_id", cycleID))
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	if changes.IsEmpty() {
		return 0, 0, nil
	}

	futureWorkouts, err := p.FutureWorkouts(ctx, cycleID, trainingDayID)
	if err != nil {
		return 0, 0, fmt.Errorf("list future workouts: %w", err)
	}

	for _, workout := range futureWorkouts {
		if workout.ID == excludeWorkoutID {
			continue
		}

		change, err := p.applyChangesToWorkout(ctx, workout, exerciseID, changes, weightIncrement)
		if err != nil {
			return affectedWorkouts, modifiedSets, err
		}
		if touched := change.total(); touched > 0 {
			affectedWorkouts++
			modifiedSets += touched
		}
	}

	return affectedWorkouts, modifiedSets, nil
}

// ApplyDiff applies a full template diff to the cycle: removed exercises
// first, then modified ones, then added ones, folding counts and warnings
// into one result. Applied workout-by-workout in scheduled-date order, so a
// mid-batch failure leaves a prefix that a re-run converges over.
func (p *Propagator) ApplyDiff(
	ctx context.Context,
	cycleID int,
	diff PlanDiff,
	newExerciseContexts []ExerciseContext,
) (_ *PlanModificationResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "propagator.apply-diff")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("cycle_id", cycleID))
	span.SetAttributes(attribute.Int("training_day_id", diff.TrainingDayID))

	result := &PlanModificationResult{}

	futureWorkouts, err := p.FutureWorkouts(ctx, cycleID, diff.TrainingDayID)
	if err != nil {
		return nil, fmt.Errorf("list future workouts: %w", err)
	}
	result.AffectedWorkoutCount = len(futureWorkouts)

	for _, exerciseID := range diff.RemovedExercises {
		removal, err := p.RemoveExerciseFromFutureWorkouts(ctx, cycleID, diff.TrainingDayID, exerciseID)
		if err != nil {
			return nil, fmt.Errorf("remove exercise %s: %w", exerciseID, err)
		}
		result.RemovedSetsCount += removal.RemovedSetsCount
		result.PreservedCount += removal.PreservedCount
		result.Warnings = append(result.Warnings, removal.Warnings...)
	}

	for _, modified := range diff.ModifiedExercises {
		increment := incrementFor(modified.ExerciseID, newExerciseContexts)
		for _, workout := range futureWorkouts {
			change, err := p.applyChangesToWorkout(ctx, workout, modified.ExerciseID, modified.Changes, increment)
			if err != nil {
				return nil, fmt.Errorf("modify exercise %s in workout %d: %w", modified.ExerciseID, workout.ID, err)
			}
			result.AddedSetsCount += change.added
			result.RemovedSetsCount += change.removed
			result.ModifiedSetsCount += change.modified
			result.PreservedCount += change.preserved
			result.Warnings = append(result.Warnings, change.warnings...)
		}
	}

	for _, added := range diff.AddedExercises {
		exercise := exerciseFor(added.ExerciseID, newExerciseContexts)
		addedSets, err := p.AddExerciseToFutureWorkouts(ctx, cycleID, diff.TrainingDayID, added, exercise)
		if err != nil {
			return nil, fmt.Errorf("add exercise %s: %w", added.ExerciseID, err)
		}
		result.AddedSetsCount += addedSets
	}

	if p.metricsManager != nil {
		p.metricsManager.CounterPlanPropagations.Inc()
	}

	log.Debugf(
		"plan diff applied to cycle %d, day %d: %d workouts, +%d/-%d/~%d sets, %d warnings",
		cycleID, diff.TrainingDayID, result.AffectedWorkoutCount,
		result.AddedSetsCount, result.RemovedSetsCount, result.ModifiedSetsCount,
		len(result.Warnings),
	)

	return result, nil
}

// workoutChange summarizes what applying field changes did to one
// exercise's sets in one workout.
type workoutChange struct {
	added     int
	removed   int
	modified  int
	preserved int
	warnings  []string
}

func (wc workoutChange) total() int {
	return wc.added + wc.removed + wc.modified
}

// applyChangesToWorkout resizes and retargets one exercise's sets in one
// workout. A set-count shrink deletes the sets whose number exceeds the new
// count (logged sets stay, with a warning); a grow appends new sets copying
// the last set's targets; reps/weight changes rewrite pending sets only.
// Workouts that do not carry the exercise at all are skipped.
func (p *Propagator) applyChangesToWorkout(
	ctx context.Context,
	workout schedule.ScheduledWorkout,
	exerciseID string,
	changes FieldChanges,
	weightIncrement float64,
) (change workoutChange, err error) {
	sets, err := p.sets.ListForExercise(ctx, workout.ID, exerciseID)
	if err != nil {
		return change, fmt.Errorf("list sets: %w", err)
	}
	if len(sets) == 0 {
		return change, nil
	}

	// shrink first: the desired state is sets numbered 1..N, so everything
	// above the new count goes, unless it already carries logged actuals
	if changes.Sets != nil && *changes.Sets < len(sets) {
		kept := sets[:0]
		for _, set := range sets {
			if set.SetNumber <= *changes.Sets {
				kept = append(kept, set)
				continue
			}
			if set.HasLoggedData() {
				change.preserved++
				change.warnings = append(change.warnings, fmt.Sprintf(
					"set %d of exercise %s preserved in workout %d (%s) because it contains logged data",
					set.SetNumber, exerciseID, workout.ID, workout.ScheduledDate.Format("2006-01-02"),
				))
				kept = append(kept, set)
				continue
			}
			if err := p.sets.Delete(ctx, set.ID); err != nil {
				return change, fmt.Errorf("delete set %d: %w", set.ID, err)
			}
			change.removed++
		}
		sets = kept
	}

	// retarget the remaining pending sets
	if changes.Reps != nil || changes.Weight != nil {
		for i := range sets {
			if sets[i].Status != schedule.SetStatusPending {
				continue
			}
			set := sets[i]
			if changes.Reps != nil {
				set.TargetReps = *changes.Reps
			}
			if changes.Weight != nil {
				set.TargetWeight = snapWeight(*changes.Weight, weightIncrement)
			}
			if set == sets[i] {
				continue
			}
			if err := p.sets.Update(ctx, &set); err != nil {
				return change, fmt.Errorf("update set %d: %w", set.ID, err)
			}
			sets[i] = set
			change.modified++
		}
	}

	// grow last: new sets copy the targets of the last existing set
	if changes.Sets != nil && *changes.Sets > len(sets) {
		last := sets[len(sets)-1]
		for setNumber := last.SetNumber + 1; len(sets) < *changes.Sets; setNumber++ {
			newSet := schedule.ScheduledSet{
				WorkoutID:    workout.ID,
				ExerciseID:   exerciseID,
				SetNumber:    setNumber,
				TargetReps:   last.TargetReps,
				TargetWeight: last.TargetWeight,
				Status:       schedule.SetStatusPending,
			}
			if changes.Reps != nil {
				newSet.TargetReps = *changes.Reps
			}
			if changes.Weight != nil {
				newSet.TargetWeight = snapWeight(*changes.Weight, weightIncrement)
			}
			added, err := p.sets.Add(ctx, newSet)
			if err != nil {
				return change, fmt.Errorf("add set %d: %w", setNumber, err)
			}
			sets = append(sets, *added)
			change.added++
		}
	}

	return change, nil
}

func snapWeight(weight, increment float64) float64 {
	if increment <= 0 {
		return weight
	}
	return progression.RoundToNearest(weight, increment)
}

func incrementFor(exerciseID string, contexts []ExerciseContext) float64 {
	return exerciseFor(exerciseID, contexts).WeightIncrement
}

func exerciseFor(exerciseID string, contexts []ExerciseContext) catalog.Exercise {
	for _, c := range contexts {
		if c.Exercise.ID == exerciseID {
			return c.Exercise
		}
	}
	return catalog.Exercise{ID: exerciseID}
}
