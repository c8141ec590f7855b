package data

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"spotcost/internal/model"
)

// PricePoint is one row of the price store file: the hour start and its
// spot price in c/kWh, VAT included.
type PricePoint struct {
	Time  time.Time `json:"datetime"`
	Price float64   `json:"price"`
}

// LoadPrices reads a normalized price store file into an hourly series
// localized to loc.
func LoadPrices(path string, loc *time.Location) (model.Series, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Series{}, fmt.Errorf("read price store: %w", err)
	}
	var rows []PricePoint
	if err := json.Unmarshal(raw, &rows); err != nil {
		return model.Series{}, fmt.Errorf("parse price store: %w", err)
	}
	points := make([]model.Point, 0, len(rows))
	for _, r := range rows {
		points = append(points, model.Point{Time: r.Time.In(loc), Value: r.Price})
	}
	return model.NewSeries(points), nil
}

// SavePrices writes a price series as a price store file, creating the
// directory if needed.
func SavePrices(path string, s model.Series) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create price store directory: %w", err)
	}
	rows := make([]PricePoint, 0, s.Len())
	for _, p := range s.Points() {
		rows = append(rows, PricePoint{Time: p.Time, Price: p.Value})
	}
	raw, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal price store: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write price store: %w", err)
	}
	return nil
}

// ReadDayAheadCSV reads a raw day-ahead export: a delimited table with
// datetime and price columns, price in EUR/MWh without VAT.
func ReadDayAheadCSV(path string, sep rune, loc *time.Location) (model.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Series{}, fmt.Errorf("open day-ahead export: %w", err)
	}
	defer f.Close()
	s, err := ParseConsumption(f, CSVOptions{
		Separator:      sep,
		TimeColumn:     "datetime",
		QuantityColumn: "price",
		Location:       loc,
	})
	if err != nil {
		return model.Series{}, fmt.Errorf("parse day-ahead export: %w", err)
	}
	return s, nil
}

// VATSpan is an inclusive instant range with its VAT multiplier.
type VATSpan struct {
	From, To time.Time
	Rate     float64
}

// VATSchedule resolves the VAT multiplier active at a given time.
type VATSchedule struct {
	Default float64
	Windows []VATSpan
}

func (s VATSchedule) RateAt(t time.Time) float64 {
	for _, w := range s.Windows {
		if t.Before(w.From) || t.After(w.To) {
			continue
		}
		return w.Rate
	}
	return s.Default
}

// NormalizeDayAhead converts a raw day-ahead series (EUR/MWh, VAT
// exclusive) into the price store unit: tax-adjusted c/kWh. EUR/MWh divided
// by ten is c/kWh; the VAT multiplier depends on the hour's date. Prices
// are rounded to three decimals like the upstream store.
func NormalizeDayAhead(raw model.Series, vat VATSchedule) model.Series {
	points := make([]model.Point, 0, raw.Len())
	for _, p := range raw.Points() {
		price := p.Value * vat.RateAt(p.Time) / 10
		price = math.Round(price*1000) / 1000
		points = append(points, model.Point{Time: p.Time, Value: price})
	}
	return model.NewSeries(points)
}
