package task

import (
	"go-task-scheduler/core/cache"
	"go-task-scheduler/core/database"
	"go-task-scheduler/core/middleware"
	"go-task-scheduler/core/queue"
	availrepository "go-task-scheduler/modules/availability/repository"
	availservice "go-task-scheduler/modules/availability/service"
	"go-task-scheduler/modules/task/controller"
	"go-task-scheduler/modules/task/repository"
	"go-task-scheduler/modules/task/router"
	"go-task-scheduler/modules/task/service"
	userrepository "go-task-scheduler/modules/user/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the task module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, c *cache.Cache, qc *queue.Client) {
	taskRepo := repository.NewTaskRepository()
	userRepo := userrepository.NewUserRepository()
	availRepo := availrepository.NewAvailabilityRepository()
	projector := availservice.NewProjector(availRepo, taskRepo, c)

	svc := service.NewTaskService(db, taskRepo, userRepo, projector, qc)
	ctrl := controller.NewTaskController(svc)
	rtr := router.NewTaskRouter(ctrl)

	rtr.Setup(e, mw)
}
