package schedule

import "time"

// CycleStatus can be one of:
//   - pending
//   - active
//   - completed
//   - cancelled
type CycleStatus string

const (
	CycleStatusPending   CycleStatus = "pending"
	CycleStatusActive    CycleStatus = "active"
	CycleStatusCompleted CycleStatus = "completed"
	CycleStatusCancelled CycleStatus = "cancelled"
)

func (cs CycleStatus) String() string {
	return string(cs)
}

func (cs CycleStatus) IsValid() bool {
	switch cs {
	case CycleStatusPending,
		CycleStatusActive,
		CycleStatusCompleted,
		CycleStatusCancelled:
		return true
	default:
		return false
	}
}

// WorkoutStatus can be one of:
//   - pending
//   - in_progress
//   - completed
//   - skipped
type WorkoutStatus string

const (
	WorkoutStatusPending    WorkoutStatus = "pending"
	WorkoutStatusInProgress WorkoutStatus = "in_progress"
	WorkoutStatusCompleted  WorkoutStatus = "completed"
	WorkoutStatusSkipped    WorkoutStatus = "skipped"
)

func (ws WorkoutStatus) String() string {
	return string(ws)
}

func (ws WorkoutStatus) IsValid() bool {
	switch ws {
	case WorkoutStatusPending,
		WorkoutStatusInProgress,
		WorkoutStatusCompleted,
		WorkoutStatusSkipped:
		return true
	default:
		return false
	}
}

// IsTerminal workouts accept no structural edits: no logging, skipping,
// unlogging, adding or removing sets.
func (ws WorkoutStatus) IsTerminal() bool {
	return ws == WorkoutStatusCompleted || ws == WorkoutStatusSkipped
}

// SetStatus can be one of:
//   - pending
//   - completed
//   - skipped
type SetStatus string

const (
	SetStatusPending   SetStatus = "pending"
	SetStatusCompleted SetStatus = "completed"
	SetStatusSkipped   SetStatus = "skipped"
)

func (ss SetStatus) String() string {
	return string(ss)
}

func (ss SetStatus) IsValid() bool {
	switch ss {
	case SetStatusPending,
		SetStatusCompleted,
		SetStatusSkipped:
		return true
	default:
		return false
	}
}

// Cycle is a mesocycle: a multi-week block of scheduled training,
// typically six working weeks plus one deload week.
type Cycle struct {
	ID            int         `json:"id"`
	PlanID        int         `json:"planId"`
	StartDate     time.Time   `json:"startDate"`
	DurationWeeks int         `json:"durationWeeks"`
	CurrentWeek   int         `json:"currentWeek"`
	Status        CycleStatus `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// ScheduledWorkout is one training day materialized into the calendar.
type ScheduledWorkout struct {
	ID            int           `json:"id"`
	CycleID       int           `json:"cycleId"`
	TrainingDayID int           `json:"trainingDayId"`
	WeekNumber    int           `json:"weekNumber"`
	ScheduledDate time.Time     `json:"scheduledDate"`
	Status        WorkoutStatus `json:"status"`
	StartedAt     *time.Time    `json:"startedAt"`
	CompletedAt   *time.Time    `json:"completedAt"`
}

// ScheduledSet is a single prescribed set within a scheduled workout.
// Set numbers are 1-based and dense within an exercise.
// A pending set always has nil actuals; non-nil actuals imply the set
// was completed or skipped.
type ScheduledSet struct {
	ID           int       `json:"id"`
	WorkoutID    int       `json:"workoutId"`
	ExerciseID   string    `json:"exerciseId"`
	SetNumber    int       `json:"setNumber"`
	TargetReps   int       `json:"targetReps"`
	TargetWeight float64   `json:"targetWeight"`
	ActualReps   *int      `json:"actualReps"`
	ActualWeight *float64  `json:"actualWeight"`
	Status       SetStatus `json:"status"`
}

// HasLoggedData reports whether the set carries logged actuals and must
// therefore never be deleted or overwritten by plan propagation.
func (s ScheduledSet) HasLoggedData() bool {
	if s.Status == SetStatusPending {
		return false
	}
	return s.ActualReps != nil || s.ActualWeight != nil
}
