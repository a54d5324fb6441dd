package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mavera/backoffice/internal/core/domain"
	"github.com/mavera/backoffice/internal/core/ports"
)

const (
	maxInstallments     = 24
	defaultIntervalDays = 30
)

var (
	hundred = decimal.NewFromInt(100)
	// DefaultVATRate is the Saudi standard VAT rate.
	DefaultVATRate = decimal.RequireFromString("0.15")
)

// BookingService prices bookings and splits them into payment plans.
type BookingService struct {
	vatRate decimal.Decimal
	log     zerolog.Logger
	now     func() time.Time
}

func NewBookingService(vatRate decimal.Decimal, log zerolog.Logger) *BookingService {
	if vatRate.IsNegative() {
		vatRate = DefaultVATRate
	}
	return &BookingService{vatRate: vatRate, log: log, now: time.Now}
}

// Quote prices the booking for user. Discounts need sales.apply_discount.
func (s *BookingService) Quote(ctx context.Context, user *domain.UserProfile, in ports.QuoteInput) (*ports.QuoteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.DiscountPercent.IsPositive() && !domain.HasPermission(user, domain.PermSalesApplyDiscount) {
		return nil, fmt.Errorf("apply discount: %w", domain.ErrForbidden)
	}

	quote, err := PriceBooking(in.BasePrice, in.AddOns, in.DiscountPercent, s.vatRate)
	if err != nil {
		return nil, err
	}

	start := in.StartDate
	if start.IsZero() {
		n := s.now().UTC()
		start = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	}
	plan, err := BuildPaymentPlan(quote.Total, in.DepositPercent, in.Installments, start, in.IntervalDays)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("total", quote.Total.StringFixed(2)).
		Int("lines", len(plan.Lines)).
		Msg("booking quoted")

	return &ports.QuoteResult{Quote: quote, Plan: plan}, nil
}

// PriceBooking computes subtotal, discount, VAT and total, each rounded to
// two decimals.
func PriceBooking(base decimal.Decimal, addOns []domain.AddOn, discountPct, vatRate decimal.Decimal) (domain.BookingQuote, error) {
	if base.IsNegative() {
		return domain.BookingQuote{}, fmt.Errorf("%w: base price must not be negative", domain.ErrInvalidPlan)
	}
	if discountPct.IsNegative() || discountPct.GreaterThan(hundred) {
		return domain.BookingQuote{}, fmt.Errorf("%w: discount must be between 0 and 100", domain.ErrInvalidPlan)
	}

	subtotal := base
	for _, a := range addOns {
		if a.Price.IsNegative() {
			return domain.BookingQuote{}, fmt.Errorf("%w: add-on %q has a negative price", domain.ErrInvalidPlan, a.Name)
		}
		subtotal = subtotal.Add(a.Price)
	}
	subtotal = subtotal.Round(2)

	discount := subtotal.Mul(discountPct).Div(hundred).Round(2)
	taxable := subtotal.Sub(discount)
	vat := taxable.Mul(vatRate).Round(2)

	return domain.BookingQuote{
		BasePrice:       base,
		AddOns:          addOns,
		Subtotal:        subtotal,
		DiscountPercent: discountPct,
		Discount:        discount,
		Taxable:         taxable,
		VATRate:         vatRate,
		VAT:             vat,
		Total:           taxable.Add(vat),
	}, nil
}

// BuildPaymentPlan splits total into a deposit due on start and n equal
// installments every intervalDays. Installments are rounded down to the
// halala and the last one absorbs the remainder, so the lines always sum to
// total. Without a deposit the first installment is due on start.
func BuildPaymentPlan(total, depositPct decimal.Decimal, n int, start time.Time, intervalDays int) (domain.PaymentPlan, error) {
	if total.IsNegative() {
		return domain.PaymentPlan{}, fmt.Errorf("%w: total must not be negative", domain.ErrInvalidPlan)
	}
	if depositPct.IsNegative() || depositPct.GreaterThan(hundred) {
		return domain.PaymentPlan{}, fmt.Errorf("%w: deposit must be between 0 and 100", domain.ErrInvalidPlan)
	}
	if intervalDays <= 0 {
		intervalDays = defaultIntervalDays
	}

	plan := domain.PaymentPlan{Total: total, DepositPercent: depositPct}

	deposit := total.Mul(depositPct).Div(hundred).Round(2)
	remaining := total.Sub(deposit)
	if depositPct.Equal(hundred) || remaining.IsZero() {
		plan.Lines = []domain.PaymentLine{{Label: "Deposit", DueOn: start, Amount: total}}
		return plan, nil
	}

	if n < 1 || n > maxInstallments {
		return domain.PaymentPlan{}, fmt.Errorf("%w: installments must be between 1 and %d", domain.ErrInvalidPlan, maxInstallments)
	}

	offset := 0
	if deposit.IsPositive() {
		plan.Lines = append(plan.Lines, domain.PaymentLine{Label: "Deposit", DueOn: start, Amount: deposit})
		offset = 1
	}

	each := remaining.Div(decimal.NewFromInt(int64(n))).RoundFloor(2)
	for i := 0; i < n; i++ {
		amount := each
		if i == n-1 {
			amount = remaining.Sub(each.Mul(decimal.NewFromInt(int64(n - 1))))
		}
		plan.Lines = append(plan.Lines, domain.PaymentLine{
			Label:  fmt.Sprintf("Installment %d of %d", i+1, n),
			DueOn:  start.AddDate(0, 0, (i+offset)*intervalDays),
			Amount: amount,
		})
	}
	return plan, nil
}
