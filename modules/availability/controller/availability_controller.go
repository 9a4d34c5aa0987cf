package controller

import (
	"go-task-scheduler/core/controller"
	"go-task-scheduler/core/errors"
	"go-task-scheduler/modules/availability/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AvailabilityController handles availability HTTP requests
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

// NewAvailabilityController creates a new controller
func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// GetUserAvailability handles GET /availability/:userId
// @Summary Get a user's availability ledger
// @Description Lists the user's committed day-segments with date in [from, to]
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param userId path string true "User ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} errors.AppError
// @Router /private/availability/{userId} [get]
func (c *AvailabilityController) GetUserAvailability(ctx echo.Context) error {
	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}

	fromDate := ctx.QueryParam("from")
	toDate := ctx.QueryParam("to")
	if fromDate == "" || toDate == "" {
		return c.BadRequest(errors.ErrInvalidInput, "from and to query parameters are required")
	}

	result, appErr := c.AvailabilityService.ListRange(ctx.Request().Context(), userID, fromDate, toDate)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
