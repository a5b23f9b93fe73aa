package schedule

import "time"

// Clock is a current-date source, injectable so that the "is this workout
// in the future" checks are deterministic in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func NewClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

// FrozenClock always returns the same instant.
type FrozenClock struct {
	Time time.Time
}

func (c FrozenClock) Now() time.Time {
	return c.Time
}

// Midnight truncates t to the start of its day in UTC.
func Midnight(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
