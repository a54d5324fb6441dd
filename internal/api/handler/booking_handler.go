package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mavera/backoffice/internal/api/metrics"
	"github.com/mavera/backoffice/internal/core/domain"
	"github.com/mavera/backoffice/internal/core/ports"
)

// BookingHandler serves the booking wizard pricing step.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Quote handles POST /v1/bookings/quote. It prices a booking and splits it into
// a payment plan.
//
// @Summary      Quote a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      quoteRequest  true  "Booking selections"
// @Success      200   {object}  ports.QuoteResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/bookings/quote [post]
func (h *BookingHandler) Quote(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	in, err := toQuoteInput(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.service.Quote(c.Request().Context(), user, in)
	if err != nil {
		return err
	}
	metrics.BookingQuotesTotal.WithLabelValues(strconv.FormatBool(in.DiscountPercent.IsPositive())).Inc()

	return c.JSON(http.StatusOK, res)
}

// toQuoteInput maps the HTTP request to the service DTO.
func toQuoteInput(r quoteRequest) (ports.QuoteInput, error) {
	in := ports.QuoteInput{
		BasePrice:       r.BasePrice,
		DiscountPercent: r.DiscountPercent,
		DepositPercent:  r.DepositPercent,
		Installments:    r.Installments,
		IntervalDays:    r.IntervalDays,
	}
	for _, a := range r.AddOns {
		in.AddOns = append(in.AddOns, domain.AddOn{Name: a.Name, Price: a.Price})
	}
	if r.StartDate != "" {
		start, err := time.Parse(time.DateOnly, r.StartDate)
		if err != nil {
			return ports.QuoteInput{}, err
		}
		in.StartDate = start
	}
	return in, nil
}
