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

//go:generate mockgen -source=$GOFILE -destination=materializer_mocks_test.go -package=plan_test

type cyclesStore interface {
	Add(ctx context.Context, cycle schedule.Cycle) (*schedule.Cycle, error)
}

type workoutsStore interface {
	Add(ctx context.Context, workout schedule.ScheduledWorkout) (*schedule.ScheduledWorkout, error)
}

// DayExercise is one slot of a training day template: the prescription plus
// the catalog entry it refers to.
type DayExercise struct {
	Prescription Prescription     `json:"prescription"`
	Exercise     catalog.Exercise `json:"exercise"`
}

// TrainingDay is a reusable day template within a plan. Weekday anchors it
// inside each calendar week of the cycle.
type TrainingDay struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Weekday   time.Weekday  `json:"weekday"`
	Exercises []DayExercise `json:"exercises"`
}

// CycleTemplate is everything needed to materialize a full mesocycle.
type CycleTemplate struct {
	PlanID    int           `json:"planId"`
	StartDate time.Time     `json:"startDate"`
	Days      []TrainingDay `json:"days"`
}

// Materializer expands a plan into concrete calendar rows at cycle start:
// one cycle, one workout per training day per week, one row per prescribed
// set. Targets for every week are precomputed with the static calculator;
// the adaptive engine later overrides them week by week as results come in.
type Materializer struct {
	cycles         cyclesStore
	workouts       workoutsStore
	sets           setsRepo
	metricsManager *metrics.Manager
}

func NewMaterializer(
	cycles cyclesStore,
	workouts workoutsStore,
	sets setsRepo,
	metricsManager *metrics.Manager,
) *Materializer {
	return &Materializer{
		cycles:         cycles,
		workouts:       workouts,
		sets:           sets,
		metricsManager: metricsManager,
	}
}

// MaterializeCycle creates the cycle and all of its workouts and sets,
// spanning the working weeks plus the deload week.
func (m *Materializer) MaterializeCycle(ctx context.Context, template CycleTemplate) (_ *schedule.Cycle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "materializer.materialize-cycle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan_id", template.PlanID))

	if len(template.Days) == 0 {
		return nil, fmt.Errorf("cycle template for plan %d has no training days", template.PlanID)
	}

	durationWeeks := progression.WorkingWeeks + 1

	cycle, err := m.cycles.Add(ctx, schedule.Cycle{
		PlanID:        template.PlanID,
		StartDate:     schedule.Midnight(template.StartDate),
		DurationWeeks: durationWeeks,
		CurrentWeek:   0,
		Status:        schedule.CycleStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("add cycle: %w", err)
	}

	workoutCount := 0
	for week := 0; week < durationWeeks; week++ {
		for _, day := range template.Days {
			if err := m.materializeWorkout(ctx, cycle, day, week); err != nil {
				return nil, err
			}
			workoutCount++
		}
	}

	if m.metricsManager != nil {
		m.metricsManager.CounterMaterializedCycles.Inc()
	}

	log.Debugf(
		"materialized cycle %d for plan %d: %d weeks, %d workouts",
		cycle.ID, template.PlanID, durationWeeks, workoutCount,
	)

	return cycle, nil
}

func (m *Materializer) materializeWorkout(
	ctx context.Context,
	cycle *schedule.Cycle,
	day TrainingDay,
	week int,
) error {
	workout, err := m.workouts.Add(ctx, schedule.ScheduledWorkout{
		CycleID:       cycle.ID,
		TrainingDayID: day.ID,
		WeekNumber:    week,
		ScheduledDate: workoutDate(cycle.StartDate, day.Weekday, week),
		Status:        schedule.WorkoutStatusPending,
	})
	if err != nil {
		return fmt.Errorf("add workout for day %d week %d: %w", day.ID, week, err)
	}

	for _, dayExercise := range day.Exercises {
		targets := progression.TargetsForWeek(baselineFor(dayExercise), week, true)
		for setNumber := 1; setNumber <= targets.Sets; setNumber++ {
			if _, err := m.sets.Add(ctx, schedule.ScheduledSet{
				WorkoutID:    workout.ID,
				ExerciseID:   dayExercise.Exercise.ID,
				SetNumber:    setNumber,
				TargetReps:   targets.Reps,
				TargetWeight: targets.Weight,
				Status:       schedule.SetStatusPending,
			}); err != nil {
				return fmt.Errorf("add set %d for workout %d: %w", setNumber, workout.ID, err)
			}
		}
	}

	return nil
}

func baselineFor(dayExercise DayExercise) progression.Baseline {
	return progression.Baseline{
		ExerciseID:      dayExercise.Exercise.ID,
		Weight:          dayExercise.Prescription.Weight,
		Reps:            dayExercise.Prescription.Reps,
		Sets:            dayExercise.Prescription.Sets,
		WeightIncrement: dayExercise.Exercise.WeightIncrement,
		MinReps:         dayExercise.Exercise.MinReps,
		MaxReps:         dayExercise.Exercise.MaxReps,
	}
}

// workoutDate places a training day inside a calendar week: the first
// occurrence of its weekday on or after the week's start.
func workoutDate(cycleStart time.Time, weekday time.Weekday, week int) time.Time {
	weekStart := cycleStart.AddDate(0, 0, 7*week)
	offset := (int(weekday) - int(weekStart.Weekday()) + 7) % 7
	return weekStart.AddDate(0, 0, offset)
}
