package public

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/breadncircus/cryptocoin-tradelib/currency"
	"github.com/breadncircus/cryptocoin-tradelib/models"
)

//go:generate mockery -name=ExchangeClient

// ExchangeClient is the per-exchange API binding. Read-only queries
// (CurrencyPairs, Depth, Ticker, Volume) are independent blocking
// calls; implementations do not cache or de-duplicate them.
type ExchangeClient interface {
	CurrencyPairs() ([]models.CurrencyPair, error)
	RefreshCurrencyPairs() error
	IsSupportedCurrencyPair(pair models.CurrencyPair) bool
	Depth(pair models.CurrencyPair) (*models.Depth, error)
	Ticker(pair models.CurrencyPair) (*models.Ticker, error)
	Volume(trading string, settlement string) (float64, error)
	FeeForOrder(order *models.Order) (*models.Price, error)
	ExecuteOrder(order *models.Order) (models.OrderStatus, error)
	CancelOrder(orderID string) error
	OpenOrders() ([]*models.Order, error)
	Accounts() (map[string]float64, error)
	Trades(since time.Time, pair models.CurrencyPair) ([]*models.TradeRecord, error)
	UpdateInterval() time.Duration
	IsRequestAllowed(requestType models.RequestType) bool
}

// NewClient builds the client for the named exchange. Currencies seen
// on the exchange are resolved through registry.
func NewClient(exchangeName string, registry *currency.Registry) (ExchangeClient, error) {
	switch strings.ToLower(exchangeName) {
	case "poloniex":
		return NewPoloniexApi(registry)
	}
	return nil, errors.Errorf("failed to init exchange api: unknown exchange %s", exchangeName)
}
