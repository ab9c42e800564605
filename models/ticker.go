package models

// Ticker is a summary price and volume snapshot for one currency pair.
type Ticker struct {
	Pair          CurrencyPair
	Last          float64
	LowestAsk     float64
	HighestBid    float64
	PercentChange float64
	BaseVolume    float64
	QuoteVolume   float64
	High24h       float64
	Low24h        float64
	Frozen        bool
}
