package middleware

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"go-task-scheduler/core/constants"
	apperrors "go-task-scheduler/core/errors"
	"go-task-scheduler/core/utils"
)

// Middleware bundles the request middlewares shared by module routers.
type Middleware struct {
	jwtSecret string
}

func New(jwtSecret string) *Middleware {
	return &Middleware{jwtSecret: jwtSecret}
}

// AuthMiddleware validates the Bearer token and stores its claims on the
// request context under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorized(apperrors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return unauthorized(apperrors.ErrInvalidTokenFormat, "Authorization header must be a Bearer token")
			}

			claims, err := utils.ParseToken(parts[1], m.jwtSecret)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return unauthorized(apperrors.ErrTokenExpired, "Token has expired")
				}
				return unauthorized(apperrors.ErrUnauthorized, "Invalid token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequestID assigns a short request id header when the caller did not send one.
func (m *Middleware) RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = utils.GenerateID()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			return next(c)
		}
	}
}

func unauthorized(code apperrors.ErrorCode, message string) error {
	return echo.NewHTTPError(401, apperrors.NewAppError(code, message, nil))
}
