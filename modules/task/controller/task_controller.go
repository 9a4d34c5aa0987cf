package controller

import (
	"go-task-scheduler/core/controller"
	"go-task-scheduler/core/errors"
	"go-task-scheduler/core/params"
	"go-task-scheduler/modules/task/dto"
	"go-task-scheduler/modules/task/entity"
	"go-task-scheduler/modules/task/repository"
	"go-task-scheduler/modules/task/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TaskController handles task HTTP requests
type TaskController struct {
	controller.BaseController
	TaskService service.TaskServiceInterface
}

// NewTaskController creates a new controller
func NewTaskController(svc service.TaskServiceInterface) *TaskController {
	return &TaskController{
		BaseController: controller.NewBaseController(),
		TaskService:    svc,
	}
}

// CreateTask handles POST /tasks
// @Summary Create a task
// @Description Creates a time-bounded task; fails with 409 when the interval overlaps an existing assignment of the assignee
// @Tags Task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task payload"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/tasks [post]
func (c *TaskController) CreateTask(ctx echo.Context) error {
	var req dto.CreateTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.Title == "" {
		return c.BadRequest(errors.ErrInvalidInput, "title is required")
	}
	if req.AssigneeID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "assignee_id is required")
	}

	result, appErr := c.TaskService.Create(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Task created successfully")
}

// ListTasks handles GET /tasks
// @Summary List tasks
// @Description Lists tasks optionally filtered by status and assignee
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Param assignee_id query string false "Filter by assignee"
// @Success 200 {object} dto.PaginatedTaskResponse
// @Router /private/tasks [get]
func (c *TaskController) ListTasks(ctx echo.Context) error {
	var filter repository.TaskFilter

	if raw := ctx.QueryParam("status"); raw != "" {
		status := entity.TaskStatus(raw)
		if !entity.ValidStatus(status) {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid status filter")
		}
		filter.Status = &status
	}
	if raw := ctx.QueryParam("assignee_id"); raw != "" {
		assigneeID, err := uuid.Parse(raw)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid assignee ID")
		}
		filter.AssigneeID = &assigneeID
	}

	result, appErr := c.TaskService.List(ctx.Request().Context(), filter, params.FromEcho(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// SearchTasks handles GET /tasks/search
// @Summary Search tasks
// @Description Read-only search over title and description
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {array} dto.TaskResponse
// @Router /private/tasks/search [get]
func (c *TaskController) SearchTasks(ctx echo.Context) error {
	result, appErr := c.TaskService.Search(ctx.Request().Context(), ctx.QueryParam("q"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetTask handles GET /tasks/:id
// @Summary Get a task
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} errors.AppError
// @Router /private/tasks/{id} [get]
func (c *TaskController) GetTask(ctx echo.Context) error {
	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid task ID")
	}

	result, appErr := c.TaskService.GetByID(ctx.Request().Context(), taskID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateTask handles PUT /tasks/:id
// @Summary Update a task
// @Description Updates task fields; a time change re-runs the overlap check and availability refresh
// @Tags Task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx echo.Context) error {
	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid task ID")
	}

	var req dto.UpdateTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.TaskService.Update(ctx.Request().Context(), taskID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Task updated successfully")
}

// ReassignTask handles PUT /tasks/:id/reassign
// @Summary Reassign a task
// @Description Rebinds the task to a new assignee after checking the new assignee's intervals
// @Tags Task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.ReassignTaskRequest true "New assignee"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/tasks/{id}/reassign [put]
func (c *TaskController) ReassignTask(ctx echo.Context) error {
	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid task ID")
	}

	var req dto.ReassignTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if req.AssigneeID == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "assignee_id is required")
	}

	result, appErr := c.TaskService.Reassign(ctx.Request().Context(), taskID, req.AssigneeID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Task reassigned successfully")
}

// DeleteTask handles DELETE /tasks/:id
// @Summary Delete a task
// @Description Removes the task and clears its availability footprint
// @Tags Task
// @Security BearerAuth
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx echo.Context) error {
	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid task ID")
	}

	if appErr := c.TaskService.Delete(ctx.Request().Context(), taskID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Task deleted successfully")
}
