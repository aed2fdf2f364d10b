package request

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuoteTotal       = errors.New("invalid quote total")
	ErrInvalidChangeOrderValue = errors.New("invalid change order amount")
)

// QuoteCreateRequest is the owner payload for a new draft quote.
//
// `total` accepts a JSON number or string ("249.90").
type QuoteCreateRequest struct {
	Title         string          `json:"title" binding:"required"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Total         decimal.Decimal `json:"total"`
}

func (r QuoteCreateRequest) ResolveTotal() (decimal.Decimal, error) {
	if !r.Total.IsPositive() {
		return decimal.Zero, ErrInvalidQuoteTotal
	}
	return r.Total.Round(2), nil
}

func (r QuoteCreateRequest) Normalized() QuoteCreateRequest {
	r.Title = strings.TrimSpace(r.Title)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerEmail = strings.ToLower(strings.TrimSpace(r.CustomerEmail))
	return r
}

// ChangeOrderCreateRequest amends a shared quote. Amount may be negative for a
// discount but never zero.
type ChangeOrderCreateRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason" binding:"required"`
}

func (r ChangeOrderCreateRequest) ResolveAmount() (decimal.Decimal, error) {
	if r.Amount.IsZero() {
		return decimal.Zero, ErrInvalidChangeOrderValue
	}
	return r.Amount.Round(2), nil
}
