package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"skill-market.com/skill-market/pkg/constants"
)

const (
	callerIDKey = "callerID"
	roleKey     = "role"
)

type Authenticator interface {
	Authenticate(token string) (string, constants.Role, error)
}

// Auth resolves the bearer token into the caller id and role stored on the
// request context.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			id, role, err := auth.Authenticate(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(callerIDKey, id)
			c.Set(roleKey, role)
			return next(c)
		}
	}
}

func RequireRole(role constants.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Role(c) != role {
				return echo.NewHTTPError(http.StatusForbidden, "this action requires the "+string(role)+" role")
			}
			return next(c)
		}
	}
}

func CallerID(c echo.Context) string {
	id, _ := c.Get(callerIDKey).(string)
	return id
}

func Role(c echo.Context) constants.Role {
	role, _ := c.Get(roleKey).(constants.Role)
	return role
}
