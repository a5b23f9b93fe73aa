package progression

import "sort"

// regressionFailureThreshold - a weight is regressed only after the second
// consecutive failure at that same weight. Product choice, not a derived
// invariant; tests encode it as a hard constant.
const regressionFailureThreshold = 2

// Performance is what the athlete actually lifted for one exercise in one
// week, represented by the single best set of that session.
type Performance struct {
	ExerciseID          string  `json:"exerciseId"`
	WeekNumber          int     `json:"weekNumber"`
	TargetWeight        float64 `json:"targetWeight"`
	TargetReps          int     `json:"targetReps"`
	ActualWeight        float64 `json:"actualWeight"`
	ActualReps          int     `json:"actualReps"`
	HitTarget           bool    `json:"hitTarget"`
	ConsecutiveFailures int     `json:"consecutiveFailures"`
}

// SetResult is a single completed set, as fed into best-set selection.
type SetResult struct {
	ActualWeight float64 `json:"actualWeight"`
	ActualReps   int     `json:"actualReps"`
}

// NextWeekTargets derives next week's targets from what was actually lifted.
//
// Branches, in order:
//   - no previous performance: first week, targets are the baseline
//   - deload week: overrides everything, deload math on the previous actuals
//   - reps at or above the top of the range: weight up, reps back to the floor
//   - target hit below the top: one more rep at the same weight
//   - reps within the range but target missed: hold the prescription
//   - first failure below the rep floor: hold at the floor, same weight
//   - second consecutive failure at the same weight: regress one increment,
//     never below the exercise's original base weight
func NextWeekTargets(baseline Baseline, previous *Performance, isDeload bool) WeekTargets {
	if previous == nil {
		targets := weekZeroTargets(baseline)
		targets.Reason = ReasonFirstWeek
		return targets
	}

	weekNumber := previous.WeekNumber + 1

	if isDeload {
		return WeekTargets{
			ExerciseID:     baseline.ExerciseID,
			PlanExerciseID: baseline.PlanExerciseID,
			WeekNumber:     weekNumber,
			Weight:         RoundToNearest(0.85*previous.ActualWeight, deloadRoundStep),
			Reps:           baseline.MinReps,
			Sets:           deloadSets(baseline.Sets),
			IsDeload:       true,
			Reason:         ReasonDeload,
		}
	}

	targets := WeekTargets{
		ExerciseID:     baseline.ExerciseID,
		PlanExerciseID: baseline.PlanExerciseID,
		WeekNumber:     weekNumber,
		Sets:           baseline.Sets,
	}

	switch {
	case previous.ActualReps >= baseline.MaxReps:
		targets.Weight = previous.ActualWeight + baseline.WeightIncrement
		targets.Reps = baseline.MinReps
		targets.Reason = ReasonHitMaxReps

	case previous.HitTarget:
		targets.Weight = previous.ActualWeight
		targets.Reps = previous.ActualReps + 1
		if targets.Reps > baseline.MaxReps {
			targets.Reps = baseline.MaxReps
		}
		targets.Reason = ReasonHitTarget

	case previous.ActualReps >= baseline.MinReps:
		// within the rep range, target missed: hold the prescription
		targets.Weight = previous.TargetWeight
		targets.Reps = previous.TargetReps
		targets.Reason = ReasonHold

	case previous.ConsecutiveFailures < regressionFailureThreshold:
		targets.Weight = previous.ActualWeight
		targets.Reps = baseline.MinReps
		targets.Reason = ReasonHold

	default:
		targets.Weight = previous.ActualWeight - baseline.WeightIncrement
		if targets.Weight < baseline.Weight {
			targets.Weight = baseline.Weight
		}
		targets.Reps = baseline.MinReps
		targets.Reason = ReasonRegress
	}

	return targets
}

// ConsecutiveFailures walks the history newest to oldest and counts entries
// that failed the rep floor at currentWeight. Counting stops at the first
// success or at the first entry lifted at a different weight.
func ConsecutiveFailures(history []Performance, currentWeight float64, minReps int) int {
	failures := 0
	for i := len(history) - 1; i >= 0; i-- {
		entry := history[i]
		if entry.TargetWeight != currentWeight {
			break
		}
		if entry.ActualReps >= minReps {
			break
		}
		failures++
	}
	return failures
}

// BestSetPerformance builds the Performance record for one exercise in one
// week out of its completed sets, or nil when none exist.
//
// The best set is the heaviest one; among equally heavy sets the one with the
// most reps wins. A heavier set at fewer reps always beats a lighter set at
// more reps. The consecutive-failure count includes this week's failure, if
// it is one, on top of the streak found in history at the same weight.
func BestSetPerformance(
	exerciseID string,
	weekNumber int,
	targetWeight float64,
	targetReps int,
	completedSets []SetResult,
	minReps int,
	history []Performance,
) *Performance {
	if len(completedSets) == 0 {
		return nil
	}

	sets := make([]SetResult, len(completedSets))
	copy(sets, completedSets)
	sort.SliceStable(sets, func(i, j int) bool {
		if sets[i].ActualWeight != sets[j].ActualWeight {
			return sets[i].ActualWeight > sets[j].ActualWeight
		}
		return sets[i].ActualReps > sets[j].ActualReps
	})
	best := sets[0]

	perf := &Performance{
		ExerciseID:   exerciseID,
		WeekNumber:   weekNumber,
		TargetWeight: targetWeight,
		TargetReps:   targetReps,
		ActualWeight: best.ActualWeight,
		ActualReps:   best.ActualReps,
		HitTarget:    best.ActualWeight >= targetWeight && best.ActualReps >= targetReps,
	}

	if best.ActualReps < minReps {
		perf.ConsecutiveFailures = ConsecutiveFailures(history, best.ActualWeight, minReps) + 1
	}

	return perf
}
