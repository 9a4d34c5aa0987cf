package availability

import (
	"go-task-scheduler/core/cache"
	"go-task-scheduler/core/database"
	"go-task-scheduler/core/middleware"
	"go-task-scheduler/modules/availability/controller"
	"go-task-scheduler/modules/availability/repository"
	"go-task-scheduler/modules/availability/router"
	"go-task-scheduler/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, c *cache.Cache) {
	repo := repository.NewAvailabilityRepository()
	svc := service.NewAvailabilityService(db, repo, c)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
}
