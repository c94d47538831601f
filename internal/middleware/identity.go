package middleware

import (
	"net/http"
	"strconv"

	"github.com/campushub/campus-events/internal/models"
	"github.com/campushub/campus-events/internal/repository"
	"github.com/labstack/echo/v4"
)

// Session handling lives outside this service; callers identify themselves
// with the X-User-ID header set by the gateway. The middleware resolves it
// to a full User so every operation can do an explicit capability check.
const (
	HeaderUserID   = "X-User-ID"
	contextUserKey = "current_user"
)

func Identity(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderUserID)
			if raw == "" {
				return next(c)
			}

			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid "+HeaderUserID+" header")
			}

			user, err := users.FindByID(c.Request().Context(), uint(id))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}

			c.Set(contextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the resolved caller, or a 401 when the request
// carried no identity.
func CurrentUser(c echo.Context) (*models.User, error) {
	user, ok := c.Get(contextUserKey).(*models.User)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return user, nil
}

// SetCurrentUser injects a caller directly, for tests.
func SetCurrentUser(c echo.Context, user *models.User) {
	c.Set(contextUserKey, user)
}
