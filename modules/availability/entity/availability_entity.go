package entity

import (
	"time"

	"github.com/google/uuid"
)

// Availability is one materialized day-segment of a task interval: the
// portion of the generating task that falls within a single calendar day of
// the assignee. Rows are owned exclusively by the projector; they are never
// patched, only deleted and regenerated per (user, date range).
type Availability struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	TaskID    uuid.UUID `db:"task_id" json:"task_id"`
	Date      string    `db:"date" json:"date"`             // YYYY-MM-DD
	StartTime string    `db:"start_time" json:"start_time"` // HH:MM:SS
	EndTime   string    `db:"end_time" json:"end_time"`     // HH:MM:SS
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DaySegment is the pure day-split of an interval before it is bound to a
// user and task.
type DaySegment struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
