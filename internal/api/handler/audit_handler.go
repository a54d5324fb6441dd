package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mavera/backoffice/internal/core/domain"
	"github.com/mavera/backoffice/internal/core/ports"
)

// AuditHandler exposes the access audit trail.
type AuditHandler struct {
	query ports.AuditQuery
}

func NewAuditHandler(query ports.AuditQuery) *AuditHandler {
	return &AuditHandler{query: query}
}

type auditResponse struct {
	Events []domain.AuditEvent `json:"events"`
	Count  int                 `json:"count"`
}

// List handles GET /v1/audit, newest events first.
//
// @Summary      Audit trail
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum events (default 50, max 200)"
// @Success      200    {object}  auditResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	events, err := h.query.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if events == nil {
		events = []domain.AuditEvent{}
	}
	return c.JSON(http.StatusOK, auditResponse{Events: events, Count: len(events)})
}
