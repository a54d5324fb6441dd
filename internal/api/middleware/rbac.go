package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mavera/backoffice/internal/api/metrics"
	"github.com/mavera/backoffice/internal/core/domain"
	"github.com/mavera/backoffice/internal/core/ports"
)

// RequirePermission runs the next handler only when the session user holds
// perm. Otherwise the fallback runs when given, or a 403 is returned. Every
// denial is counted and recorded on audit when it is non-nil.
func RequirePermission(perm domain.Permission, audit ports.AuditRecorder, fallback ...echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(ContextKeyUser).(*domain.UserProfile)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if domain.HasPermission(user, perm) {
				return next(c)
			}

			metrics.AccessDeniedTotal.WithLabelValues(string(perm)).Inc()
			if audit != nil {
				audit.Record(domain.AuditEvent{
					ActorID:   user.ID,
					Action:    domain.AuditAccessDenied,
					Subject:   string(perm) + " " + c.Request().Method + " " + c.Path(),
					Timestamp: time.Now().UTC(),
				})
			}

			if len(fallback) > 0 && fallback[0] != nil {
				return fallback[0](c)
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": domain.ErrForbidden.Error()})
		}
	}
}
