package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddOn is an optional extra priced on top of the venue (catering, decor, ...).
type AddOn struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// BookingQuote is the priced booking produced by the booking wizard.
type BookingQuote struct {
	BasePrice       decimal.Decimal `json:"base_price"`
	AddOns          []AddOn         `json:"add_ons"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Discount        decimal.Decimal `json:"discount"`
	Taxable         decimal.Decimal `json:"taxable"`
	VATRate         decimal.Decimal `json:"vat_rate"`
	VAT             decimal.Decimal `json:"vat"`
	Total           decimal.Decimal `json:"total"`
}

// PaymentLine is one scheduled payment of a plan.
type PaymentLine struct {
	Label  string          `json:"label"`
	DueOn  time.Time       `json:"due_on"`
	Amount decimal.Decimal `json:"amount"`
}

// PaymentPlan splits a quote total into a deposit and installments.
// The sum of Lines always equals Total.
type PaymentPlan struct {
	Total          decimal.Decimal `json:"total"`
	DepositPercent decimal.Decimal `json:"deposit_percent"`
	Lines          []PaymentLine   `json:"lines"`
}
