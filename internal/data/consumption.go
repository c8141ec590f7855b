package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"spotcost/internal/model"
)

// CSVOptions describes the consumption table layout. Zero values fall back
// to the semicolon / timestamp / quantity defaults and UTC.
type CSVOptions struct {
	Separator      rune
	TimeColumn     string
	QuantityColumn string
	Location       *time.Location
}

func (o CSVOptions) withDefaults() CSVOptions {
	if o.Separator == 0 {
		o.Separator = ';'
	}
	if o.TimeColumn == "" {
		o.TimeColumn = "timestamp"
	}
	if o.QuantityColumn == "" {
		o.QuantityColumn = "quantity"
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	return o
}

// ReadConsumptionCSV parses an uploaded consumption table into an hourly
// series named by its quantity column. The file is only read, never
// deleted; discarding a bad upload is the caller's job.
func ReadConsumptionCSV(path string, opts CSVOptions) (model.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Series{}, &model.IngestionError{Reason: "open file", Err: err}
	}
	defer f.Close()
	return ParseConsumption(f, opts)
}

// ParseConsumption reads a delimited consumption table. Header columns are
// matched case-insensitively. Rows whose timestamp or quantity does not
// parse are dropped, not zero-filled. Quantities accept a comma decimal
// separator.
func ParseConsumption(r io.Reader, opts CSVOptions) (model.Series, error) {
	opts = opts.withDefaults()

	cr := csv.NewReader(r)
	cr.Comma = opts.Separator
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return model.Series{}, &model.IngestionError{Reason: "table is empty", Err: err}
	}

	timeIdx, qtyIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case strings.ToLower(opts.TimeColumn):
			timeIdx = i
		case strings.ToLower(opts.QuantityColumn):
			qtyIdx = i
		}
	}
	if timeIdx < 0 || qtyIdx < 0 {
		return model.Series{}, &model.IngestionError{
			Reason: fmt.Sprintf("required columns %q and %q not found in header", opts.TimeColumn, opts.QuantityColumn),
		}
	}

	rows := 0
	var points []model.Point
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row; skip it like any other unparsable row.
			continue
		}
		rows++
		if len(rec) <= timeIdx || len(rec) <= qtyIdx {
			continue
		}
		t, err := ParseLocalTime(rec[timeIdx], opts.Location)
		if err != nil {
			continue
		}
		q, err := ParseDecimal(rec[qtyIdx])
		if err != nil {
			continue
		}
		points = append(points, model.Point{Time: t, Value: q})
	}

	if rows == 0 {
		return model.Series{}, &model.IngestionError{Reason: "no data rows"}
	}
	if len(points) == 0 {
		return model.Series{}, &model.IngestionError{Reason: "no row survived parsing"}
	}
	return model.NewSeries(points), nil
}

// ParseDecimal parses a decimal number that may use either a comma or a
// full stop as the fractional separator.
func ParseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}
