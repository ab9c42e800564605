package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType int

const (
	Buy OrderType = iota
	Sell
)

// OrderKind distinguishes trades from currency transfers in and out of
// the exchange. Transfers have no counter currency and no price.
type OrderKind int

const (
	Trade OrderKind = iota
	Withdraw
	Deposit
)

type OrderStatus int

const (
	OrderStatusUnknown OrderStatus = iota
	OrderStatusPartiallyFilled
	OrderStatusFilled
	OrderStatusError
)

// RequestType classifies API calls for rate-limit checks.
type RequestType int

const (
	DepthRequest RequestType = iota
	TickerRequest
	TradesRequest
	OrderRequest
	AccountsRequest
)

// Order describes an order only as far as fee computation and order
// submission need it; no order state machine is kept client-side.
type Order struct {
	ExchangeOrderID string
	Kind            OrderKind
	Type            OrderType
	Pair            CurrencyPair
	Amount          decimal.Decimal
	Price           decimal.Decimal
}

// TradeRecord is one executed trade reported by an exchange.
type TradeRecord struct {
	ID     string
	Type   OrderType
	Price  float64
	Amount float64
	Time   time.Time
}
