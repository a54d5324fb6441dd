package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mavera/backoffice/internal/api/metrics"
	"github.com/mavera/backoffice/internal/core/domain"
)

// SessionRestorer loads the profile stored for a session id.
type SessionRestorer interface {
	Session(ctx context.Context, sessionID string) (*domain.UserProfile, error)
}

// Session restores the session named by the token before any handler runs.
// It must be chained after Auth. The restored profile replaces the role
// claim, so a profile changed by a later login wins over a stale token.
func Session(sessions SessionRestorer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, _ := c.Get(ContextKeySessionID).(string)

			user, err := sessions.Session(c.Request().Context(), sid)
			if err != nil {
				if errors.Is(err, domain.ErrSessionDiscarded) {
					metrics.SessionRestoresTotal.WithLabelValues("discarded").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired or signed out")
				}
				if errors.Is(err, domain.ErrUnauthenticated) {
					metrics.SessionRestoresTotal.WithLabelValues("unauthenticated").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired or signed out")
				}
				metrics.SessionRestoresTotal.WithLabelValues("error").Inc()
				return err
			}
			metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyUserID, user.ID)
			c.Set(ContextKeyRole, string(user.Role))
			return next(c)
		}
	}
}
