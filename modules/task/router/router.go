package router

import (
	"go-task-scheduler/core/middleware"
	"go-task-scheduler/modules/task/controller"

	"github.com/labstack/echo/v4"
)

// TaskRouter handles task routes
type TaskRouter struct {
	TaskController *controller.TaskController
}

// NewTaskRouter creates a new router
func NewTaskRouter(taskController *controller.TaskController) *TaskRouter {
	return &TaskRouter{
		TaskController: taskController,
	}
}

// Setup registers task routes
func (r *TaskRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	taskRoutes := privateRoutes.Group("/tasks", mw.AuthMiddleware())

	taskRoutes.POST("", r.TaskController.CreateTask)
	taskRoutes.GET("", r.TaskController.ListTasks)
	// registered before /:id so "search" is not parsed as a task id
	taskRoutes.GET("/search", r.TaskController.SearchTasks)
	taskRoutes.GET("/:id", r.TaskController.GetTask)
	taskRoutes.PUT("/:id", r.TaskController.UpdateTask)
	taskRoutes.PUT("/:id/reassign", r.TaskController.ReassignTask)
	taskRoutes.DELETE("/:id", r.TaskController.DeleteTask)
}
