package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mavera/backoffice/internal/core/domain"
)

// QuoteInput carries the booking wizard selections.
type QuoteInput struct {
	BasePrice       decimal.Decimal
	AddOns          []domain.AddOn
	DiscountPercent decimal.Decimal
	DepositPercent  decimal.Decimal
	Installments    int
	IntervalDays    int
	// StartDate defaults to today (UTC) when zero.
	StartDate time.Time
}

// QuoteResult is a priced booking with its payment plan.
type QuoteResult struct {
	Quote domain.BookingQuote `json:"quote"`
	Plan  domain.PaymentPlan  `json:"plan"`
}

// BookingService prices bookings on behalf of a signed-in user.
type BookingService interface {
	Quote(ctx context.Context, user *domain.UserProfile, in QuoteInput) (*QuoteResult, error)
}
