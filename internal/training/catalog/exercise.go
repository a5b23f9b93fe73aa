package catalog

import (
	"errors"
	"time"
)

var ErrInvalidRepRange = errors.New("invalid rep range: min reps greater than max reps")

// Exercise is static reference data: consumed, never mutated, by all
// progression components. WeightIncrement is the smallest meaningful load
// increment for this exercise and may be fractional (smaller plates).
type Exercise struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	MuscleGroup     string    `json:"muscleGroup"`
	WeightIncrement float64   `json:"weightIncrement"`
	MinReps         int       `json:"minReps"`
	MaxReps         int       `json:"maxReps"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Validate checks the rep-range bounds: [MinReps, MaxReps] is a closed
// interval, so min must not exceed max.
func (e Exercise) Validate() error {
	if e.MinReps > e.MaxReps {
		return ErrInvalidRepRange
	}
	return nil
}
