package service

import (
	"bytes"
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"go-task-scheduler/core/constants"
	"go-task-scheduler/core/database"
	"go-task-scheduler/core/errors"
	"go-task-scheduler/core/logger"
	"go-task-scheduler/core/params"
	"go-task-scheduler/core/queue"
	availservice "go-task-scheduler/modules/availability/service"
	"go-task-scheduler/modules/task/dto"
	"go-task-scheduler/modules/task/entity"
	"go-task-scheduler/modules/task/repository"
	userrepository "go-task-scheduler/modules/user/repository"
)

// TaskService coordinates the task lifecycle. Every mutation runs its
// overlap check, task write and availability refresh inside one transaction
// scoped by the locked assignee row, so concurrent mutations for the same
// assignee serialize and the check never acts on a stale snapshot.
type TaskService struct {
	db        database.Database
	taskRepo  repository.TaskRepositoryInterface
	userRepo  userrepository.UserRepositoryInterface
	projector availservice.ProjectorInterface
	splitter  *availservice.DaySplitter
	queue     *queue.Client
}

// TaskServiceInterface defines the service contract
type TaskServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, *errors.AppError)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.TaskResponse, *errors.AppError)
	List(ctx context.Context, filter repository.TaskFilter, p params.QueryParams) (*dto.PaginatedTaskResponse, *errors.AppError)
	Search(ctx context.Context, term string) ([]dto.TaskResponse, *errors.AppError)
	Update(ctx context.Context, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, *errors.AppError)
	Reassign(ctx context.Context, taskID uuid.UUID, newAssigneeID uuid.UUID) (*dto.TaskResponse, *errors.AppError)
	Delete(ctx context.Context, taskID uuid.UUID) *errors.AppError
}

// NewTaskService creates a new task service
func NewTaskService(
	db database.Database,
	taskRepo repository.TaskRepositoryInterface,
	userRepo userrepository.UserRepositoryInterface,
	projector availservice.ProjectorInterface,
	queueClient *queue.Client,
) TaskServiceInterface {
	return &TaskService{
		db:        db,
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		projector: projector,
		splitter:  availservice.NewDaySplitter(),
		queue:     queueClient,
	}
}

// Create validates the interval, checks the proposed assignee's committed
// intervals for overlap, commits the task and refreshes availability, all
// atomically. Any failure leaves no trace.
func (s *TaskService) Create(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, *errors.AppError) {
	iv, appErr := entity.NewInterval(req.StartAt, req.EndAt)
	if appErr != nil {
		return nil, appErr
	}

	status := entity.TaskStatusPending
	if req.Status != "" {
		status = entity.TaskStatus(req.Status)
		if !entity.ValidStatus(status) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "status must be pending, in_progress or completed", nil)
		}
	}

	var created *entity.Task
	txErr := s.db.Transaction(ctx, func(q database.Querier) error {
		assignee, err := s.userRepo.LockForUpdate(ctx, q, req.AssigneeID)
		if err != nil {
			return err
		}
		if assignee == nil {
			return errors.NewAppError(errors.ErrNotFound, "Assignee not found", nil)
		}

		if err := s.checkNoConflict(ctx, q, req.AssigneeID, iv, nil); err != nil {
			return err
		}

		task := &entity.Task{
			Title:      req.Title,
			Slug:       slug.Make(req.Title),
			Status:     status,
			AssigneeID: req.AssigneeID,
			StartAt:    iv.Start,
			EndAt:      iv.End,
		}
		if req.Description != "" {
			task.Description = &req.Description
		}

		created, err = s.taskRepo.Create(ctx, q, task)
		if err != nil {
			return err
		}

		from, to := s.splitter.DateSpan(iv)
		return s.projector.Refresh(ctx, q, req.AssigneeID, from, to)
	})
	if txErr != nil {
		return nil, asAppError(txErr, "Failed to create task")
	}

	logger.Info("TaskService:Create:Committed", "task_id", created.ID, "assignee_id", created.AssigneeID)
	s.enqueueReconcile(created.AssigneeID, iv)
	return dto.ToTaskResponse(created), nil
}

func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*dto.TaskResponse, *errors.AppError) {
	task, err := s.taskRepo.GetByID(ctx, s.db.Querier(), id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get task", err)
	}
	if task == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Task not found", nil)
	}

	return dto.ToTaskResponse(task), nil
}

func (s *TaskService) List(ctx context.Context, filter repository.TaskFilter, p params.QueryParams) (*dto.PaginatedTaskResponse, *errors.AppError) {
	tasks, totalItems, err := s.taskRepo.List(ctx, s.db.Querier(), filter, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list tasks", err)
	}

	items := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, *dto.ToTaskResponse(&t))
	}

	return &dto.PaginatedTaskResponse{
		Items:      items,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

// Search is a read-only filtered query over title and description; it has
// no consistency impact.
func (s *TaskService) Search(ctx context.Context, term string) ([]dto.TaskResponse, *errors.AppError) {
	tasks, err := s.taskRepo.Search(ctx, s.db.Querier(), term)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to search tasks", err)
	}

	items := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, *dto.ToTaskResponse(&t))
	}
	return items, nil
}

// Update re-runs the overlap check (excluding the task itself) when either
// boundary changes, then refreshes availability over the union of the old
// and new date spans so days the interval no longer touches are cleared.
// Non-temporal updates skip both the check and the refresh.
func (s *TaskService) Update(ctx context.Context, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, *errors.AppError) {
	if req.Status != nil && !entity.ValidStatus(entity.TaskStatus(*req.Status)) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "status must be pending, in_progress or completed", nil)
	}

	var updated *entity.Task
	var reconcileIv entity.Interval
	timeChanged := false

	txErr := s.db.Transaction(ctx, func(q database.Querier) error {
		task, err := s.taskRepo.GetByID(ctx, q, taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return errors.NewAppError(errors.ErrNotFound, "Task not found", nil)
		}

		var refreshFrom, refreshTo time.Time
		if req.HasTimeChange() {
			newStart, newEnd := task.StartAt, task.EndAt
			if req.StartAt != nil {
				newStart = *req.StartAt
			}
			if req.EndAt != nil {
				newEnd = *req.EndAt
			}
			iv, appErr := entity.NewInterval(newStart, newEnd)
			if appErr != nil {
				return appErr
			}

			if _, err := s.userRepo.LockForUpdate(ctx, q, task.AssigneeID); err != nil {
				return err
			}
			if err := s.checkNoConflict(ctx, q, task.AssigneeID, iv, &task.ID); err != nil {
				return err
			}

			oldFrom, oldTo := s.splitter.DateSpan(task.Interval())
			newFrom, newTo := s.splitter.DateSpan(iv)
			refreshFrom, refreshTo = minTime(oldFrom, newFrom), maxTime(oldTo, newTo)

			task.StartAt, task.EndAt = iv.Start, iv.End
			reconcileIv = iv
			timeChanged = true
		}

		if req.Title != nil {
			task.Title = *req.Title
			task.Slug = slug.Make(*req.Title)
		}
		if req.Description != nil {
			task.Description = req.Description
		}
		if req.Status != nil {
			task.Status = entity.TaskStatus(*req.Status)
		}

		if err := s.taskRepo.Update(ctx, q, task); err != nil {
			return err
		}

		if timeChanged {
			if err := s.projector.Refresh(ctx, q, task.AssigneeID, refreshFrom, refreshTo); err != nil {
				return err
			}
		}

		updated = task
		return nil
	})
	if txErr != nil {
		return nil, asAppError(txErr, "Failed to update task")
	}

	if timeChanged {
		s.enqueueReconcile(updated.AssigneeID, reconcileIv)
	}
	return dto.ToTaskResponse(updated), nil
}

// Reassign checks the task's existing interval against the new assignee's
// committed set, rebinds the task and refreshes both owners' ledgers: the
// old owner's stale segments are cleared and the new owner's are added in
// the same transaction.
func (s *TaskService) Reassign(ctx context.Context, taskID uuid.UUID, newAssigneeID uuid.UUID) (*dto.TaskResponse, *errors.AppError) {
	var result *entity.Task
	var oldOwner uuid.UUID
	var iv entity.Interval
	moved := false

	txErr := s.db.Transaction(ctx, func(q database.Querier) error {
		task, err := s.taskRepo.GetByID(ctx, q, taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return errors.NewAppError(errors.ErrNotFound, "Task not found", nil)
		}
		if task.AssigneeID == newAssigneeID {
			result = task
			return nil
		}

		// lock both user rows in id order so two opposite reassignments
		// cannot deadlock
		for _, id := range lockOrder(task.AssigneeID, newAssigneeID) {
			user, err := s.userRepo.LockForUpdate(ctx, q, id)
			if err != nil {
				return err
			}
			if user == nil {
				return errors.NewAppError(errors.ErrNotFound, "Assignee not found", nil)
			}
		}

		iv = task.Interval()
		if err := s.checkNoConflict(ctx, q, newAssigneeID, iv, &task.ID); err != nil {
			return err
		}

		oldOwner = task.AssigneeID
		task.AssigneeID = newAssigneeID
		if err := s.taskRepo.Update(ctx, q, task); err != nil {
			return err
		}

		from, to := s.splitter.DateSpan(iv)
		if err := s.projector.Refresh(ctx, q, oldOwner, from, to); err != nil {
			return err
		}
		if err := s.projector.Refresh(ctx, q, newAssigneeID, from, to); err != nil {
			return err
		}

		result = task
		moved = true
		return nil
	})
	if txErr != nil {
		return nil, asAppError(txErr, "Failed to reassign task")
	}

	if moved {
		logger.Info("TaskService:Reassign:Committed", "task_id", result.ID, "from", oldOwner, "to", newAssigneeID)
		s.enqueueReconcile(oldOwner, iv)
		s.enqueueReconcile(newAssigneeID, iv)
	}
	return dto.ToTaskResponse(result), nil
}

// Delete removes the task and clears its availability footprint by
// refreshing the former owner's date span from the remaining tasks.
// Deleting a missing task is a no-op.
func (s *TaskService) Delete(ctx context.Context, taskID uuid.UUID) *errors.AppError {
	var owner uuid.UUID
	var iv entity.Interval
	deleted := false

	txErr := s.db.Transaction(ctx, func(q database.Querier) error {
		task, err := s.taskRepo.GetByID(ctx, q, taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return nil
		}

		if _, err := s.userRepo.LockForUpdate(ctx, q, task.AssigneeID); err != nil {
			return err
		}

		if _, err := s.taskRepo.Delete(ctx, q, task.ID); err != nil {
			return err
		}

		owner = task.AssigneeID
		iv = task.Interval()
		from, to := s.splitter.DateSpan(iv)
		if err := s.projector.Refresh(ctx, q, owner, from, to); err != nil {
			return err
		}

		deleted = true
		return nil
	})
	if txErr != nil {
		return asAppError(txErr, "Failed to delete task")
	}

	if deleted {
		logger.Info("TaskService:Delete:Committed", "task_id", taskID, "assignee_id", owner)
		s.enqueueReconcile(owner, iv)
	}
	return nil
}

// checkNoConflict is pure validation against the assignee's committed
// intervals; the caller holds the assignee row lock so the snapshot is
// consistent until commit.
func (s *TaskService) checkNoConflict(ctx context.Context, q database.Querier, assigneeID uuid.UUID, iv entity.Interval, excludeTaskID *uuid.UUID) error {
	conflict, err := s.taskRepo.FindConflicting(ctx, q, assigneeID, iv, excludeTaskID)
	if err != nil {
		return err
	}
	if conflict != nil {
		return errors.NewAppErrorWithDetails(errors.ErrConflict,
			"Task overlaps with an existing assignment", dto.ToConflictDetails(conflict))
	}
	return nil
}

func (s *TaskService) enqueueReconcile(userID uuid.UUID, iv entity.Interval) {
	from, to := s.splitter.DateSpan(iv)
	s.queue.EnqueueReconcile(queue.ReconcilePayload{
		UserID:   userID,
		FromDate: from.Format(constants.DateFormat),
		ToDate:   to.Format(constants.DateFormat),
	})
}

func lockOrder(a, b uuid.UUID) [2]uuid.UUID {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return [2]uuid.UUID{a, b}
	}
	return [2]uuid.UUID{b, a}
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func asAppError(err error, message string) *errors.AppError {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return errors.NewAppError(errors.ErrInternalServer, message, err)
}
