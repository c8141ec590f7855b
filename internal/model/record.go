package model

import "time"

// Record is one joined hour: an hour for which both a spot price and a
// consumed quantity are known.
//
// Units:
// - Price: c/kWh, tax included (as maintained by the price store)
// - Quantity: kWh
// - Cost: cents, (Price + margin) * Quantity
type Record struct {
	Time     time.Time
	Price    float64
	Quantity float64
	Cost     float64
}
