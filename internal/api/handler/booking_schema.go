package handler

import "github.com/shopspring/decimal"

type addOnRequest struct {
	Name  string          `json:"name"  validate:"required"`
	Price decimal.Decimal `json:"price"`
}

type quoteRequest struct {
	BasePrice       decimal.Decimal `json:"base_price"`
	AddOns          []addOnRequest  `json:"add_ons"          validate:"dive"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DepositPercent  decimal.Decimal `json:"deposit_percent"`
	Installments    int             `json:"installments"     validate:"gte=0,lte=24"`
	IntervalDays    int             `json:"interval_days"    validate:"gte=0,lte=365"`
	// StartDate is a calendar date, YYYY-MM-DD. Empty means today.
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}
