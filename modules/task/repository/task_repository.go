package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-task-scheduler/core/database"
	"go-task-scheduler/core/logger"
	"go-task-scheduler/core/params"
	"go-task-scheduler/modules/task/entity"

	"github.com/google/uuid"
)

// TaskRepository handles task database operations. Every method takes a
// database.Querier so it can run either on the pool or inside a caller's
// transaction scope.
type TaskRepository struct{}

// NewTaskRepository creates a new repository instance
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// TaskFilter narrows List results.
type TaskFilter struct {
	Status     *entity.TaskStatus
	AssigneeID *uuid.UUID
}

// TaskRepositoryInterface defines the repository contract
type TaskRepositoryInterface interface {
	Create(ctx context.Context, q database.Querier, task *entity.Task) (*entity.Task, error)
	GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Task, error)
	Update(ctx context.Context, q database.Querier, task *entity.Task) error
	Delete(ctx context.Context, q database.Querier, id uuid.UUID) (bool, error)
	List(ctx context.Context, q database.Querier, filter TaskFilter, p params.QueryParams) ([]entity.Task, int, error)
	Search(ctx context.Context, q database.Querier, term string) ([]entity.Task, error)
	FindConflicting(ctx context.Context, q database.Querier, assigneeID uuid.UUID, iv entity.Interval, excludeTaskID *uuid.UUID) (*entity.Task, error)
	ListOverlappingRange(ctx context.Context, q database.Querier, userID uuid.UUID, from, toExclusive time.Time) ([]entity.Task, error)
}

const taskColumns = `id, title, slug, description, status, assignee_id, start_at, end_at, created_at, updated_at`

func (r *TaskRepository) Create(ctx context.Context, q database.Querier, task *entity.Task) (*entity.Task, error) {
	query := `
		INSERT INTO tasks (title, slug, description, status, assignee_id, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + taskColumns

	var created entity.Task
	err := q.GetContext(ctx, &created, query,
		task.Title, task.Slug, task.Description, task.Status,
		task.AssigneeID, task.StartAt, task.EndAt)
	if err != nil {
		logger.Error("TaskRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	var task entity.Task
	err := q.GetContext(ctx, &task, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TaskRepository:GetByID", err)
		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) Update(ctx context.Context, q database.Querier, task *entity.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, slug = $3, description = $4, status = $5,
		    assignee_id = $6, start_at = $7, end_at = $8, updated_at = NOW()
		WHERE id = $1
	`

	_, err := q.ExecContext(ctx, query,
		task.ID, task.Title, task.Slug, task.Description, task.Status,
		task.AssigneeID, task.StartAt, task.EndAt)
	if err != nil {
		logger.Error("TaskRepository:Update", err)
		return err
	}

	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, q database.Querier, id uuid.UUID) (bool, error) {
	query := `DELETE FROM tasks WHERE id = $1`

	res, err := q.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("TaskRepository:Delete", err)
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *TaskRepository) List(ctx context.Context, q database.Querier, filter TaskFilter, p params.QueryParams) ([]entity.Task, int, error) {
	where := ` WHERE 1=1`
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += ` AND status = $1`
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		if len(args) == 1 {
			where += ` AND assignee_id = $1`
		} else {
			where += ` AND assignee_id = $2`
		}
	}

	var totalItems int
	if err := q.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM tasks`+where, args...); err != nil {
		logger.Error("TaskRepository:List:Count", err)
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+taskColumns+` FROM tasks`+where+
		` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		len(args)+1, len(args)+2)
	args = append(args, p.PageSize, p.Offset())

	var tasks []entity.Task
	if err := q.SelectContext(ctx, &tasks, query, args...); err != nil {
		logger.Error("TaskRepository:List", err)
		return nil, 0, err
	}

	return tasks, totalItems, nil
}

func (r *TaskRepository) Search(ctx context.Context, q database.Querier, term string) ([]entity.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE title ILIKE $1 OR description ILIKE $1
		ORDER BY created_at DESC
		LIMIT 50
	`

	var tasks []entity.Task
	if err := q.SelectContext(ctx, &tasks, query, "%"+term+"%"); err != nil {
		logger.Error("TaskRepository:Search", err)
		return nil, err
	}

	return tasks, nil
}

// FindConflicting returns the first committed task of the assignee whose
// half-open interval overlaps iv, or nil. The exclude id supports in-place
// updates and reassignment of the same task. Must be called after the
// assignee row is locked so the check runs against a consistent snapshot.
func (r *TaskRepository) FindConflicting(ctx context.Context, q database.Querier, assigneeID uuid.UUID, iv entity.Interval, excludeTaskID *uuid.UUID) (*entity.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE assignee_id = $1 AND start_at < $2 AND end_at > $3
	`
	args := []any{assigneeID, iv.End, iv.Start}

	if excludeTaskID != nil {
		query += ` AND id <> $4`
		args = append(args, *excludeTaskID)
	}
	query += ` ORDER BY start_at LIMIT 1`

	var task entity.Task
	err := q.GetContext(ctx, &task, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TaskRepository:FindConflicting", err)
		return nil, err
	}

	return &task, nil
}

// ListOverlappingRange returns the user's tasks whose intervals intersect
// [from, toExclusive). Used by the availability projector to regenerate a
// date span.
func (r *TaskRepository) ListOverlappingRange(ctx context.Context, q database.Querier, userID uuid.UUID, from, toExclusive time.Time) ([]entity.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE assignee_id = $1 AND start_at < $2 AND end_at > $3
		ORDER BY start_at
	`

	var tasks []entity.Task
	if err := q.SelectContext(ctx, &tasks, query, userID, toExclusive, from); err != nil {
		logger.Error("TaskRepository:ListOverlappingRange", err)
		return nil, err
	}

	return tasks, nil
}
