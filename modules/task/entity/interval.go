package entity

import (
	"time"

	"go-task-scheduler/core/errors"
)

// Interval is a half-open time range [Start, End) bound to one task and one
// assignee.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval validates that the range is strictly positive. A zero-length
// interval is invalid.
func NewInterval(start, end time.Time) (Interval, *errors.AppError) {
	if !start.Before(end) {
		return Interval{}, errors.NewAppError(errors.ErrInvalidInterval, "start_at must be before end_at", nil)
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints (a.End == b.Start) do not overlap, so back-to-back
// tasks are legal.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration returns the interval length.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
