package models

// DepthOrder is one price level of an order book side.
type DepthOrder struct {
	Price  float64
	Amount float64
}

// Depth is a single-use order-book snapshot for one currency pair.
type Depth struct {
	Pair CurrencyPair
	Asks []DepthOrder
	Bids []DepthOrder
}

// BestBidPrice is the highest bid, 0 when the bid side is empty.
func (d *Depth) BestBidPrice() float64 {
	best := 0.0
	for _, o := range d.Bids {
		if o.Price > best {
			best = o.Price
		}
	}
	return best
}

// BestAskPrice is the lowest ask, 0 when the ask side is empty.
func (d *Depth) BestAskPrice() float64 {
	best := 0.0
	for _, o := range d.Asks {
		if best == 0 || o.Price < best {
			best = o.Price
		}
	}
	return best
}
