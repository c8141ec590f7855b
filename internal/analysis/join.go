package analysis

import (
	"time"

	"spotcost/internal/model"
)

// clipRange applies advisory [start, end] bounds to the consumption
// series. The end bound is extended 23 hours past midnight so a date-only
// bound keeps its entire final day. A bound that would leave one entry or
// fewer is ignored and the series passes through unclipped; a bad range
// must not empty the report. Start is applied first, then end.
func clipRange(s model.Series, start, end time.Time) model.Series {
	if !start.IsZero() {
		if clipped := s.Between(start, time.Time{}); clipped.Len() > 1 {
			s = clipped
		}
	}
	if !end.IsZero() {
		if clipped := s.Between(time.Time{}, end.Add(23*time.Hour)); clipped.Len() > 1 {
			s = clipped
		}
	}
	return s
}

// join inner-joins consumption hours with spot prices on exact hour keys
// and prices each joined hour. Hours present in only one series are
// silently dropped; there is no fill and no nearest-hour matching.
func join(consumption, prices model.Series, margin float64) []model.Record {
	idx := prices.Index()
	records := make([]model.Record, 0, consumption.Len())
	for _, p := range consumption.Points() {
		price, ok := idx[p.Time.Unix()]
		if !ok {
			continue
		}
		records = append(records, model.Record{
			Time:     p.Time,
			Price:    price,
			Quantity: p.Value,
			Cost:     hourCost(price, p.Value, margin),
		})
	}
	return records
}

// hourCost is the cost model: price and margin in c/kWh, quantity in kWh,
// cost in cents. The cent-to-euro conversion happens exactly once, when
// the aggregator derives the euro total.
func hourCost(price, quantity, margin float64) float64 {
	return (price + margin) * quantity
}
