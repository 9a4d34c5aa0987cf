package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle status of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task represents a time-bounded assignment. While a task exists exactly one
// interval [StartAt, EndAt) is bound to it, and no two tasks of the same
// assignee may overlap.
type Task struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Description *string    `db:"description" json:"description,omitempty"`
	Status      TaskStatus `db:"status" json:"status"`
	AssigneeID  uuid.UUID  `db:"assignee_id" json:"assignee_id"`
	StartAt     time.Time  `db:"start_at" json:"start_at"`
	EndAt       time.Time  `db:"end_at" json:"end_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Interval returns the task's committed time range.
func (t *Task) Interval() Interval {
	return Interval{Start: t.StartAt, End: t.EndAt}
}
