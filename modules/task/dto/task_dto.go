package dto

import (
	"time"

	"github.com/google/uuid"

	"go-task-scheduler/modules/task/entity"
)

// ===================== Request DTOs =====================

// CreateTaskRequest for creating a new task
type CreateTaskRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=255"`
	Description string    `json:"description"`
	AssigneeID  uuid.UUID `json:"assignee_id" validate:"required"`
	StartAt     time.Time `json:"start_at" validate:"required"`
	EndAt       time.Time `json:"end_at" validate:"required"`
	Status      string    `json:"status"`
}

// UpdateTaskRequest for updating task fields; nil fields are left unchanged
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
}

// ReassignTaskRequest for rebinding a task to another assignee
type ReassignTaskRequest struct {
	AssigneeID uuid.UUID `json:"assignee_id" validate:"required"`
}

// HasTimeChange reports whether the update touches the task interval.
func (r *UpdateTaskRequest) HasTimeChange() bool {
	return r.StartAt != nil || r.EndAt != nil
}

// ===================== Response DTOs =====================

// TaskResponse for task details
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	AssigneeID  string    `json:"assignee_id"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PaginatedTaskResponse for the tasks list
type PaginatedTaskResponse struct {
	Items      []TaskResponse `json:"items"`
	TotalItems int            `json:"total_items"`
	PageNumber int            `json:"page_number"`
	PageSize   int            `json:"page_size"`
}

// ConflictDetails identifies the committed window that blocked a mutation.
type ConflictDetails struct {
	TaskID  string    `json:"task_id"`
	Title   string    `json:"title"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

// ===================== Mapper Functions =====================

// ToTaskResponse maps entity to DTO
func ToTaskResponse(t *entity.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:         t.ID.String(),
		Title:      t.Title,
		Slug:       t.Slug,
		Status:     string(t.Status),
		AssigneeID: t.AssigneeID.String(),
		StartAt:    t.StartAt,
		EndAt:      t.EndAt,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	if t.Description != nil {
		resp.Description = *t.Description
	}
	return resp
}

// ToConflictDetails maps the conflicting task to the 409 payload.
func ToConflictDetails(t *entity.Task) *ConflictDetails {
	return &ConflictDetails{
		TaskID:  t.ID.String(),
		Title:   t.Title,
		StartAt: t.StartAt,
		EndAt:   t.EndAt,
	}
}
