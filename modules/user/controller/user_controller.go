package controller

import (
	"go-task-scheduler/core/controller"
	"go-task-scheduler/core/errors"
	"go-task-scheduler/core/params"
	"go-task-scheduler/modules/user/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserController handles user HTTP requests
type UserController struct {
	controller.BaseController
	UserService service.UserServiceInterface
}

// NewUserController creates a new controller
func NewUserController(svc service.UserServiceInterface) *UserController {
	return &UserController{
		BaseController: controller.NewBaseController(),
		UserService:    svc,
	}
}

// ListUsers handles GET /users
// @Summary List users
// @Tags User
// @Security BearerAuth
// @Produce json
// @Param page_number query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PaginatedUserResponse
// @Router /private/users [get]
func (c *UserController) ListUsers(ctx echo.Context) error {
	result, appErr := c.UserService.List(ctx.Request().Context(), params.FromEcho(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetUser handles GET /users/:id
// @Summary Get a user
// @Tags User
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} errors.AppError
// @Router /private/users/{id} [get]
func (c *UserController) GetUser(ctx echo.Context) error {
	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}

	result, appErr := c.UserService.GetByID(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
