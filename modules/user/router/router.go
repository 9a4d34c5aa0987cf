package router

import (
	"go-task-scheduler/core/middleware"
	"go-task-scheduler/modules/user/controller"

	"github.com/labstack/echo/v4"
)

// UserRouter handles user routes
type UserRouter struct {
	UserController *controller.UserController
}

// NewUserRouter creates a new router
func NewUserRouter(userController *controller.UserController) *UserRouter {
	return &UserRouter{
		UserController: userController,
	}
}

// Setup registers user routes
func (r *UserRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	userRoutes := privateRoutes.Group("/users", mw.AuthMiddleware())
	userRoutes.GET("", r.UserController.ListUsers)
	userRoutes.GET("/:id", r.UserController.GetUser)
}
