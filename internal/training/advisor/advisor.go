package advisor

import (
	"context"
	"fmt"
	"sort"

	"github.com/carterbs/brad-os-sub016/internal/telemetry/tracing"
	"github.com/carterbs/brad-os-sub016/internal/training/progression"
	"github.com/carterbs/brad-os-sub016/internal/training/schedule"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=advisor_mocks_test.go -package=advisor_test

type workoutsRepo interface {
	ListForCycle(ctx context.Context, cycleID int) ([]schedule.ScheduledWorkout, error)
}

type setsRepo interface {
	ListForExercise(ctx context.Context, workoutID int, exerciseID string) ([]schedule.ScheduledSet, error)
}

// Advice is next week's suggested targets plus the performance record they
// were derived from (nil when nothing has been lifted yet).
type Advice struct {
	Targets  progression.WeekTargets  `json:"targets"`
	BasedOn  *progression.Performance `json:"basedOn"`
	IsDeload bool                     `json:"isDeload"`
}

// Advisor answers "what should I lift next" for one exercise in a cycle:
// it replays the cycle's logged sets into week-by-week performance records
// and feeds the latest one into the adaptive engine. Independent of
// schedule materialization, invoked on demand.
type Advisor struct {
	workouts workoutsRepo
	sets     setsRepo
}

func NewAdvisor(workouts workoutsRepo, sets setsRepo) *Advisor {
	return &Advisor{
		workouts: workouts,
		sets:     sets,
	}
}

// NextTargets computes the adaptive targets for the week after the latest
// one with logged sets. With no logged sets anywhere it falls back to the
// baseline (first week).
func (a *Advisor) NextTargets(ctx context.Context, cycleID int, baseline progression.Baseline) (_ *Advice, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "advisor.next-targets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("cycle_id", cycleID))
	span.SetAttributes(attribute.String("exercise_id", baseline.ExerciseID))

	history, err := a.performanceHistory(ctx, cycleID, baseline)
	if err != nil {
		return nil, err
	}

	var previous *progression.Performance
	if len(history) > 0 {
		previous = &history[len(history)-1]
	}

	isDeload := previous != nil && previous.WeekNumber+1 >= progression.WorkingWeeks

	targets := progression.NextWeekTargets(baseline, previous, isDeload)
	return &Advice{
		Targets:  targets,
		BasedOn:  previous,
		IsDeload: isDeload,
	}, nil
}

// performanceHistory replays the cycle's workouts in week order and builds
// one best-set performance record per session that has completed sets for
// the exercise.
func (a *Advisor) performanceHistory(ctx context.Context, cycleID int, baseline progression.Baseline) ([]progression.Performance, error) {
	workouts, err := a.workouts.ListForCycle(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("list workouts for cycle %d: %w", cycleID, err)
	}

	sort.SliceStable(workouts, func(i, j int) bool {
		if workouts[i].WeekNumber != workouts[j].WeekNumber {
			return workouts[i].WeekNumber < workouts[j].WeekNumber
		}
		return workouts[i].ScheduledDate.Before(workouts[j].ScheduledDate)
	})

	var history []progression.Performance
	for _, workout := range workouts {
		if workout.Status == schedule.WorkoutStatusPending || workout.Status == schedule.WorkoutStatusSkipped {
			continue
		}

		sets, err := a.sets.ListForExercise(ctx, workout.ID, baseline.ExerciseID)
		if err != nil {
			return nil, fmt.Errorf("list sets for workout %d: %w", workout.ID, err)
		}

		completed := make([]progression.SetResult, 0, len(sets))
		targetWeight := baseline.Weight
		targetReps := baseline.Reps
		for _, set := range sets {
			if set.SetNumber == 1 {
				targetWeight = set.TargetWeight
				targetReps = set.TargetReps
			}
			if set.Status != schedule.SetStatusCompleted || set.ActualReps == nil || set.ActualWeight == nil {
				continue
			}
			completed = append(completed, progression.SetResult{
				ActualWeight: *set.ActualWeight,
				ActualReps:   *set.ActualReps,
			})
		}

		performance := progression.BestSetPerformance(
			baseline.ExerciseID,
			workout.WeekNumber,
			targetWeight,
			targetReps,
			completed,
			baseline.MinReps,
			history,
		)
		if performance != nil {
			history = append(history, *performance)
		}
	}

	return history, nil
}
