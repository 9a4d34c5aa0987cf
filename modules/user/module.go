package user

import (
	"go-task-scheduler/core/database"
	"go-task-scheduler/core/middleware"
	"go-task-scheduler/modules/user/controller"
	"go-task-scheduler/modules/user/repository"
	"go-task-scheduler/modules/user/router"
	"go-task-scheduler/modules/user/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the user module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewUserRepository()
	svc := service.NewUserService(db, repo)
	ctrl := controller.NewUserController(svc)
	rtr := router.NewUserRouter(ctrl)

	rtr.Setup(e, mw)
}
