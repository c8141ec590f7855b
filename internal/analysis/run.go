package analysis

import (
	"time"

	"spotcost/internal/model"
)

// Options are the per-request knobs for one analysis run.
type Options struct {
	// Margin in c/kWh. Use ParseMargin for raw caller strings.
	Margin float64

	// Start and End are advisory range bounds as day-first date strings.
	// Empty or unparsable values mean no bound.
	Start string
	End   string

	// Location is the reference zone for bucketing and bound parsing.
	// Nil falls back to UTC.
	Location *time.Location
}

// Run executes the full pipeline over already-materialized series: clip
// the consumption series to the advisory bounds, inner-join it with the
// spot prices on the hour, and aggregate into the outcome bundle.
//
// Run is pure and request-scoped. Concurrent calls are safe as long as the
// price snapshot is treated as immutable; Run never mutates either series.
func Run(consumption, prices model.Series, opts Options) (*model.Outcome, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	var start, end time.Time
	if t, ok := ParseDate(opts.Start, loc); ok {
		start = t
	}
	if t, ok := ParseDate(opts.End, loc); ok {
		end = t
	}

	records := join(clipRange(consumption, start, end), prices, opts.Margin)
	if len(records) == 0 {
		return nil, model.ErrEmptyJoin
	}
	return aggregate(records, loc), nil
}
