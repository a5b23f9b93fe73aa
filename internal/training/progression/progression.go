package progression

import "math"

// WorkingWeeks is the number of progressive weeks in a mesocycle.
// The week right after them (week index == WorkingWeeks) is the deload week.
const WorkingWeeks = 6

// deloadRoundStep - deload weights always snap to the nearest half of the
// smallest standard plate increment, regardless of the exercise's own increment.
const deloadRoundStep = 2.5

// Reason explains how the targets for a week were derived.
// It can be one of:
//   - first_week
//   - hit_max_reps
//   - hit_target
//   - hold
//   - regress
//   - deload
type Reason string

const (
	ReasonFirstWeek  Reason = "first_week"
	ReasonHitMaxReps Reason = "hit_max_reps"
	ReasonHitTarget  Reason = "hit_target"
	ReasonHold       Reason = "hold"
	ReasonRegress    Reason = "regress"
	ReasonDeload     Reason = "deload"
)

func (r Reason) String() string {
	return string(r)
}

func (r Reason) IsValid() bool {
	switch r {
	case ReasonFirstWeek,
		ReasonHitMaxReps,
		ReasonHitTarget,
		ReasonHold,
		ReasonRegress,
		ReasonDeload:
		return true
	default:
		return false
	}
}

// Baseline is the immutable prescription of an exercise within a plan:
// the starting weight/reps/sets, the smallest meaningful load increment
// (may be fractional, e.g. for smaller plates) and the closed rep range.
type Baseline struct {
	ExerciseID      string  `json:"exerciseId"`
	PlanExerciseID  string  `json:"planExerciseId"`
	Weight          float64 `json:"baseWeight"`
	Reps            int     `json:"baseReps"`
	Sets            int     `json:"baseSets"`
	WeightIncrement float64 `json:"weightIncrement"`
	MinReps         int     `json:"minReps"`
	MaxReps         int     `json:"maxReps"`
}

// WeekTargets is what the athlete should lift in a given week.
// Always re-derivable from the baseline and history, never the source of truth.
type WeekTargets struct {
	ExerciseID     string  `json:"exerciseId"`
	PlanExerciseID string  `json:"planExerciseId"`
	WeekNumber     int     `json:"weekNumber"`
	Weight         float64 `json:"targetWeight"`
	Reps           int     `json:"targetReps"`
	Sets           int     `json:"targetSets"`
	IsDeload       bool    `json:"isDeload"`
	Reason         Reason  `json:"reason"`
}

// CompletionStatus says whether all prescribed sets of an exercise
// were completed in a given week. Used only by the static calculator.
type CompletionStatus struct {
	ExerciseID       string `json:"exerciseId"`
	WeekNumber       int    `json:"weekNumber"`
	AllSetsCompleted bool   `json:"allSetsCompleted"`
	CompletedSets    int    `json:"completedSets"`
	PrescribedSets   int    `json:"prescribedSets"`
}

// TargetsForWeek derives the static (plan preview) targets for a week from
// the baseline and whether the previous week was fully completed.
//
// Week 0 is the baseline itself. On odd weeks a completed previous week adds
// one rep, on even weeks it adds one weight increment and resets reps to the
// base. An incomplete previous week repeats the previous targets unchanged.
// Weeks at or past WorkingWeeks are deload weeks, computed from the latest
// reached targets. Previous-week targets are threaded through the whole scan,
// with every week before the requested one assumed completed.
func TargetsForWeek(baseline Baseline, weekNumber int, previousWeekCompleted bool) WeekTargets {
	targets := weekZeroTargets(baseline)
	for week := 1; week <= weekNumber; week++ {
		completed := true
		if week == weekNumber {
			completed = previousWeekCompleted
		}
		targets = nextStaticWeek(baseline, targets, week, completed)
	}
	return targets
}

// History folds the static rule table across all weeks, threading each week's
// computed targets into the next week's "previous" reference. For N completion
// entries it returns N+1 targets: weeks 0..N, the last one being the upcoming
// week derived from the final completion entry.
func History(baseline Baseline, completionHistory []CompletionStatus) []WeekTargets {
	targets := make([]WeekTargets, 0, len(completionHistory)+1)
	targets = append(targets, weekZeroTargets(baseline))

	for i, completion := range completionHistory {
		week := i + 1
		targets = append(targets, nextStaticWeek(baseline, targets[i], week, completion.AllSetsCompleted))
	}

	return targets
}

func weekZeroTargets(baseline Baseline) WeekTargets {
	return WeekTargets{
		ExerciseID:     baseline.ExerciseID,
		PlanExerciseID: baseline.PlanExerciseID,
		WeekNumber:     0,
		Weight:         baseline.Weight,
		Reps:           baseline.Reps,
		Sets:           baseline.Sets,
		Reason:         ReasonFirstWeek,
	}
}

func nextStaticWeek(baseline Baseline, previous WeekTargets, weekNumber int, previousWeekCompleted bool) WeekTargets {
	if weekNumber >= WorkingWeeks {
		if previous.IsDeload {
			// already deloaded, do not compound the reduction
			targets := previous
			targets.WeekNumber = weekNumber
			return targets
		}
		return DeloadTargets(baseline, previous, weekNumber)
	}

	targets := previous
	targets.WeekNumber = weekNumber
	targets.IsDeload = false

	if !previousWeekCompleted {
		// absence of progress, not punishment
		targets.Reason = ReasonHold
		return targets
	}

	if weekNumber%2 == 1 {
		targets.Reps = previous.Reps + 1
	} else {
		targets.Weight = previous.Weight + baseline.WeightIncrement
		targets.Reps = baseline.Reps
	}
	targets.Reason = ReasonHitTarget
	return targets
}

// DeloadTargets computes the deload week from the latest reached targets:
// 85% of the last weight snapped to the deload rounding step, same reps,
// half the base sets (rounded up, never below one).
func DeloadTargets(baseline Baseline, last WeekTargets, weekNumber int) WeekTargets {
	return WeekTargets{
		ExerciseID:     baseline.ExerciseID,
		PlanExerciseID: baseline.PlanExerciseID,
		WeekNumber:     weekNumber,
		Weight:         RoundToNearest(0.85*last.Weight, deloadRoundStep),
		Reps:           last.Reps,
		Sets:           deloadSets(baseline.Sets),
		IsDeload:       true,
		Reason:         ReasonDeload,
	}
}

func deloadSets(baseSets int) int {
	sets := int(math.Ceil(0.5 * float64(baseSets)))
	if sets < 1 {
		sets = 1
	}
	return sets
}

// RoundToNearest snaps value to the nearest multiple of step.
// Idempotent: re-applying it to its own output changes nothing.
func RoundToNearest(value, step float64) float64 {
	if step <= 0 {
		return value
	}
	return math.Round(value/step) * step
}
