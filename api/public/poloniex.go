package public

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Jeffail/gabs"
	"github.com/antonholmquist/jason"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/breadncircus/cryptocoin-tradelib/currency"
	"github.com/breadncircus/cryptocoin-tradelib/logger"
	"github.com/breadncircus/cryptocoin-tradelib/models"
)

const (
	POLONIEX_BASE_URL = "https://poloniex.com/public"

	// Polling hint only; nothing in the client enforces it.
	poloniexUpdateInterval = 15 * time.Second
)

// Poloniex charges 0.2% on trades, nothing on transfers.
var poloniexFeeRate = decimal.RequireFromString("0.002")

type PoloniexApiConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PoloniexApi is the Poloniex implementation of ExchangeClient. Pair
// discovery runs once at construction; Depth and Ticker always hit the
// exchange directly.
type PoloniexApi struct {
	BaseURL    string
	HttpClient http.Client

	registry *currency.Registry

	supportedPairs []models.CurrencyPair
	volumeMap      map[string]map[string]float64
	pairM          *sync.Mutex

	orderM *sync.Mutex
}

func NewPoloniexApi(registry *currency.Registry) (*PoloniexApi, error) {
	return NewPoloniexApiUsingConfigFunc(registry, func(*PoloniexApiConfig) {})
}

// NewPoloniexApiUsingConfigFunc builds a client after letting f adjust
// the defaults. A discovery failure is logged and leaves the supported
// set empty; construction itself never fails on it.
func NewPoloniexApiUsingConfigFunc(registry *currency.Registry, f func(*PoloniexApiConfig)) (*PoloniexApi, error) {
	conf := &PoloniexApiConfig{
		BaseURL: POLONIEX_BASE_URL,
		Timeout: 10 * time.Second,
	}
	f(conf)

	api := &PoloniexApi{
		BaseURL:    conf.BaseURL,
		HttpClient: http.Client{Timeout: conf.Timeout},
		registry:   registry,
		pairM:      new(sync.Mutex),
		orderM:     new(sync.Mutex),
	}

	if err := api.fetchSupportedCurrencyPairs(); err != nil {
		logger.Get().Errorf("cannot fetch the supported currency pairs for poloniex: %v", err)
	}
	return api, nil
}

func (p *PoloniexApi) publicApiUrl(command string) string {
	return p.BaseURL + "?command=" + command
}

// poloniexPairName renders a pair the way Poloniex keys its maps, e.g.
// "BTC_NXT". The format must be reproduced exactly in query URLs.
func poloniexPairName(pair models.CurrencyPair) string {
	return strings.ToUpper(pair.Trading) + "_" + strings.ToUpper(pair.Settlement)
}

// parsePoloniexCurrencyPair is the inverse of poloniexPairName.
func parsePoloniexCurrencyPair(s string) (string, string, error) {
	xs := strings.Split(s, "_")
	if len(xs) != 2 {
		return "", "", errors.Errorf("invalid currency pair name %q", s)
	}
	return xs[0], xs[1], nil
}

// fetchSupportedCurrencyPairs replaces the supported-pair set and the
// 24h volume map from the return24hVolume payload, whose object keys
// are pair names. A fetch or parse failure leaves the previous set
// untouched.
func (p *PoloniexApi) fetchSupportedCurrencyPairs() error {
	url := p.publicApiUrl("return24hVolume")
	resp, err := p.HttpClient.Get(url)
	if err != nil {
		return errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	json, err := jason.NewObjectFromReader(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to parse json")
	}

	pairs := make([]models.CurrencyPair, 0)
	volumeMap := make(map[string]map[string]float64)
	for k, v := range json.Map() {
		// Keys without an underscore are aggregates like "totalBTC".
		if !strings.Contains(k, "_") {
			continue
		}
		trading, settlement, err := parsePoloniexCurrencyPair(k)
		if err != nil {
			logger.Get().Warnf("couldn't parse currency pair %q: %v", k, err)
			continue
		}

		tc := p.registry.LookupOrRegister(trading)
		sc := p.registry.LookupOrRegister(settlement)
		pairs = append(pairs, models.CurrencyPair{
			Trading:    tc.Code,
			Settlement: sc.Code,
		})

		// Each pair maps to per-leg 24h volumes keyed by currency code.
		obj, err := v.Object()
		if err != nil {
			continue
		}
		volStr, err := obj.GetString(tc.Code)
		if err != nil {
			continue
		}
		volume, err := strconv.ParseFloat(volStr, 64)
		if err != nil {
			continue
		}
		m, ok := volumeMap[tc.Code]
		if !ok {
			m = make(map[string]float64)
			volumeMap[tc.Code] = m
		}
		m[sc.Code] = volume
	}

	p.pairM.Lock()
	p.supportedPairs = pairs
	p.volumeMap = volumeMap
	p.pairM.Unlock()
	return nil
}

// RefreshCurrencyPairs re-runs pair discovery on demand.
func (p *PoloniexApi) RefreshCurrencyPairs() error {
	return p.fetchSupportedCurrencyPairs()
}

// CurrencyPairs returns the pairs seen in the last successful
// discovery.
func (p *PoloniexApi) CurrencyPairs() ([]models.CurrencyPair, error) {
	p.pairM.Lock()
	defer p.pairM.Unlock()

	pairs := make([]models.CurrencyPair, len(p.supportedPairs))
	copy(pairs, p.supportedPairs)
	return pairs, nil
}

// IsSupportedCurrencyPair reports whether both legs are registered and
// the pair appeared in the last successful discovery.
func (p *PoloniexApi) IsSupportedCurrencyPair(pair models.CurrencyPair) bool {
	if _, ok := p.registry.Lookup(pair.Trading); !ok {
		return false
	}
	if _, ok := p.registry.Lookup(pair.Settlement); !ok {
		return false
	}

	p.pairM.Lock()
	defer p.pairM.Unlock()

	name := poloniexPairName(pair)
	for _, supported := range p.supportedPairs {
		if poloniexPairName(supported) == name {
			return true
		}
	}
	return false
}

// Volume returns the 24h volume recorded for the pair at the last
// discovery, denominated in the trading currency.
func (p *PoloniexApi) Volume(trading string, settlement string) (float64, error) {
	p.pairM.Lock()
	defer p.pairM.Unlock()

	m, ok := p.volumeMap[strings.ToUpper(trading)]
	if !ok {
		return 0, errors.New("trading volume not found")
	}
	volume, ok := m[strings.ToUpper(settlement)]
	if !ok {
		return 0, errors.New("settlement volume not found")
	}
	return volume, nil
}

// Depth fetches the order book for pair. The pair is checked against
// the supported set before any network access.
func (p *PoloniexApi) Depth(pair models.CurrencyPair) (*models.Depth, error) {
	if !p.IsSupportedCurrencyPair(pair) {
		return nil, errors.Wrapf(ErrCurrencyPairNotSupported,
			"currency pair %v is currently not supported on poloniex", pair)
	}

	url := p.publicApiUrl("returnOrderBook") + "&currencyPair=" + poloniexPairName(pair)
	resp, err := p.HttpClient.Get(url)
	if err != nil {
		return nil, errors.Wrapf(ErrTradeDataUnavailable,
			"poloniex did not respond to depth request: %v", err)
	}
	defer resp.Body.Close()

	json, err := jason.NewObjectFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(ErrTradeDataUnavailable,
			"cannot parse depth data from poloniex: %v", err)
	}
	return newDepthFromJson(json, pair)
}

func newDepthFromJson(json *jason.Object, pair models.CurrencyPair) (*models.Depth, error) {
	asks, err := parseDepthSide(json, "asks")
	if err != nil {
		return nil, err
	}
	bids, err := parseDepthSide(json, "bids")
	if err != nil {
		return nil, err
	}
	return &models.Depth{
		Pair: pair,
		Asks: asks,
		Bids: bids,
	}, nil
}

func parseDepthSide(json *jason.Object, key string) ([]models.DepthOrder, error) {
	rows, err := json.GetValueArray(key)
	if err != nil {
		return nil, errors.Wrapf(ErrTradeDataUnavailable,
			"cannot parse depth data from poloniex: missing %s", key)
	}

	orders := make([]models.DepthOrder, 0, len(rows))
	for _, row := range rows {
		cols, err := row.Array()
		if err != nil || len(cols) != 2 {
			return nil, errors.Wrapf(ErrTradeDataUnavailable,
				"cannot parse depth data from poloniex: bad %s entry", key)
		}
		price, err := parseJsonNumber(cols[0])
		if err != nil {
			return nil, errors.Wrapf(ErrTradeDataUnavailable,
				"cannot parse depth price: %v", err)
		}
		amount, err := parseJsonNumber(cols[1])
		if err != nil {
			return nil, errors.Wrapf(ErrTradeDataUnavailable,
				"cannot parse depth amount: %v", err)
		}
		orders = append(orders, models.DepthOrder{
			Price:  price,
			Amount: amount,
		})
	}
	return orders, nil
}

// Poloniex mixes strings and raw numbers within order book rows.
func parseJsonNumber(v *jason.Value) (float64, error) {
	if f, err := v.Float64(); err == nil {
		return f, nil
	}
	s, err := v.String()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}

// Ticker fetches the ticker for pair. The endpoint returns every pair
// at once, so the requested pair is filtered out of the payload
// client-side.
func (p *PoloniexApi) Ticker(pair models.CurrencyPair) (*models.Ticker, error) {
	if !p.IsSupportedCurrencyPair(pair) {
		return nil, errors.Wrapf(ErrCurrencyPairNotSupported,
			"currency pair %v is currently not supported on poloniex", pair)
	}

	url := p.publicApiUrl("returnTicker")
	resp, err := p.HttpClient.Get(url)
	if err != nil {
		return nil, errors.Wrapf(ErrTradeDataUnavailable,
			"poloniex did not respond to ticker request: %v", err)
	}
	defer resp.Body.Close()

	byteArray, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(ErrTradeDataUnavailable,
			"failed to read ticker response: %v", err)
	}
	return newTickerFromJson(byteArray, pair)
}

func newTickerFromJson(byteArray []byte, pair models.CurrencyPair) (*models.Ticker, error) {
	if !gjson.ValidBytes(byteArray) {
		return nil, errors.Wrap(ErrTradeDataUnavailable,
			"cannot parse ticker data from poloniex")
	}
	entry := gjson.ParseBytes(byteArray).Get(poloniexPairName(pair))
	if !entry.Exists() {
		return nil, errors.Wrapf(ErrTradeDataUnavailable,
			"no ticker entry for %v on poloniex", pair)
	}

	return &models.Ticker{
		Pair:          pair,
		Last:          entry.Get("last").Float(),
		LowestAsk:     entry.Get("lowestAsk").Float(),
		HighestBid:    entry.Get("highestBid").Float(),
		PercentChange: entry.Get("percentChange").Float(),
		BaseVolume:    entry.Get("baseVolume").Float(),
		QuoteVolume:   entry.Get("quoteVolume").Float(),
		High24h:       entry.Get("high24hr").Float(),
		Low24h:        entry.Get("low24hr").Float(),
		Frozen:        entry.Get("isFrozen").String() != "0",
	}, nil
}

// FeeForOrder computes the exchange fee for order. Serialized with
// ExecuteOrder; the result depends only on the order itself.
func (p *PoloniexApi) FeeForOrder(order *models.Order) (*models.Price, error) {
	p.orderM.Lock()
	defer p.orderM.Unlock()

	switch {
	case order.Kind == models.Withdraw || order.Kind == models.Deposit:
		// Poloniex does not charge for transfers.
		return models.NewPrice(decimal.Zero, order.Pair.Trading), nil
	case order.Kind == models.Trade && order.Type == models.Buy:
		// 0.2% of the traded amount, charged in the traded currency.
		return models.NewPrice(order.Amount.Mul(poloniexFeeRate), order.Pair.Trading), nil
	case order.Kind == models.Trade && order.Type == models.Sell:
		// 0.2% of the proceeds, charged in the settlement currency.
		return models.NewPrice(order.Amount.Mul(order.Price).Mul(poloniexFeeRate), order.Pair.Settlement), nil
	}
	return nil, errors.Errorf("unknown order kind %d / type %d in fee computation", order.Kind, order.Type)
}

func (p *PoloniexApi) ExecuteOrder(order *models.Order) (models.OrderStatus, error) {
	p.orderM.Lock()
	defer p.orderM.Unlock()

	return models.OrderStatusError, errors.Wrap(ErrNotImplemented,
		"executing an order is not implemented for poloniex")
}

func (p *PoloniexApi) CancelOrder(orderID string) error {
	return errors.Wrap(ErrNotImplemented,
		"cancelling an order is not implemented for poloniex")
}

func (p *PoloniexApi) Accounts() (map[string]float64, error) {
	return nil, errors.Wrap(ErrNotImplemented,
		"getting the accounts is not implemented for poloniex")
}

func (p *PoloniexApi) OpenOrders() ([]*models.Order, error) {
	return nil, errors.Wrap(ErrNotImplemented,
		"getting the open orders is not implemented for poloniex")
}

func (p *PoloniexApi) Trades(since time.Time, pair models.CurrencyPair) ([]*models.TradeRecord, error) {
	return nil, errors.Wrap(ErrNotImplemented,
		"getting the trades is not implemented for poloniex")
}

func (p *PoloniexApi) UpdateInterval() time.Duration {
	return poloniexUpdateInterval
}

// IsRequestAllowed always allows; Poloniex rate limits are not modeled
// here.
func (p *PoloniexApi) IsRequestAllowed(requestType models.RequestType) bool {
	return true
}

// PoloniexCurrency is one entry of the returnCurrencies payload.
type PoloniexCurrency struct {
	ID             int
	Name           string
	TxFee          float64
	MinConf        int
	DepositAddress string
	Disabled       int
	Delisted       int
	Frozen         int
}

// Currencies fetches the exchange currency catalog and registers every
// entry in the registry under its display name.
func (p *PoloniexApi) Currencies() (map[string]PoloniexCurrency, error) {
	url := p.publicApiUrl("returnCurrencies")
	resp, err := p.HttpClient.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	byteArray, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", url)
	}
	json, err := gabs.ParseJSON(byteArray)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse json")
	}
	children, err := json.ChildrenMap()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse json")
	}

	out := make(map[string]PoloniexCurrency)
	for code, child := range children {
		cur := PoloniexCurrency{}
		if id, ok := child.Path("id").Data().(float64); ok {
			cur.ID = int(id)
		}
		if name, ok := child.Path("name").Data().(string); ok {
			cur.Name = name
		}
		if txFee, ok := child.Path("txFee").Data().(string); ok {
			if f, err := strconv.ParseFloat(txFee, 64); err == nil {
				cur.TxFee = f
			}
		}
		if minConf, ok := child.Path("minConf").Data().(float64); ok {
			cur.MinConf = int(minConf)
		}
		if addr, ok := child.Path("depositAddress").Data().(string); ok {
			cur.DepositAddress = addr
		}
		if disabled, ok := child.Path("disabled").Data().(float64); ok {
			cur.Disabled = int(disabled)
		}
		if delisted, ok := child.Path("delisted").Data().(float64); ok {
			cur.Delisted = int(delisted)
		}
		if frozen, ok := child.Path("frozen").Data().(float64); ok {
			cur.Frozen = int(frozen)
		}
		out[strings.ToUpper(code)] = cur

		p.registry.Register(models.NewCurrency(code, cur.Name, "", models.Cryptocurrency))
	}
	return out, nil
}
