package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mavera/backoffice/internal/api/middleware"
	"github.com/mavera/backoffice/internal/core/domain"
)

// currentUser returns the profile restored by the Session middleware and
// fails fast when it is missing, which means the route was wired without it.
func currentUser(c echo.Context) (*domain.UserProfile, error) {
	user, _ := c.Get(middleware.ContextKeyUser).(*domain.UserProfile)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return user, nil
}

func sessionID(c echo.Context) string {
	sid, _ := c.Get(middleware.ContextKeySessionID).(string)
	return sid
}
