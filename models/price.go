package models

import "github.com/shopspring/decimal"

// Price is an amount denominated in a single currency, used for fee
// results.
type Price struct {
	Amount   decimal.Decimal
	Currency string
}

func NewPrice(amount decimal.Decimal, currency string) *Price {
	return &Price{
		Amount:   amount,
		Currency: currency,
	}
}
