package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"spotcost/internal/model"
)

// centsPerEuro converts cent-denominated cost sums into euros. It is
// applied exactly once, in the euro total below; every other aggregate
// stays in cents so realized and spot prices share a unit.
const centsPerEuro = 100.0

// aggregate builds the outcome bundle from chronologically ordered joined
// records. The caller guarantees len(records) > 0.
func aggregate(records []model.Record, loc *time.Location) *model.Outcome {
	out := &model.Outcome{}

	totalCost := lo.SumBy(records, func(r model.Record) float64 { return r.Cost })
	totalEnergy := lo.SumBy(records, func(r model.Record) float64 { return r.Quantity })

	out.WeightedPrice = totalCost / totalEnergy
	out.WeightedPriceText = commaDecimal(out.WeightedPrice)
	out.TotalEnergyKWh = totalEnergy
	out.TotalEnergyText = commaDecimal(totalEnergy)
	out.TotalCostEUR = totalCost / centsPerEuro
	out.TotalCostText = commaDecimal(out.TotalCostEUR)

	first := records[0].Time.In(loc)
	last := records[len(records)-1].Time.In(loc)
	out.Begin = first.Format("02.01.2006")
	out.End = last.Format("02.01.2006")
	out.First = first.Format("2006-01-02")
	out.Last = last.Format("2006-01-02")

	weekKeys, weekAggs := bucketize(records, loc, weekBuckets)
	dayKeys, dayAggs := bucketize(records, loc, dayBuckets)
	monthKeys, monthAggs := bucketize(records, loc, monthBuckets)

	out.WeekPrice = weightedCurve(weekKeys, weekAggs, 1)
	out.DayPrice = weightedCurve(dayKeys, dayAggs, 1)
	out.MonthPrice = weightedCurve(monthKeys, monthAggs, 1)

	out.WeekDelta = deltaCurve(weekKeys, weekAggs)
	out.DayDelta = deltaCurve(dayKeys, dayAggs)

	dayTotals := lo.Map(dayAggs, func(a bucketAgg, _ int) float64 { return a.quantity })
	out.DailyConsumption = histogram(dayTotals)

	out.ConsumptionProfile = profile(records, loc, func(r model.Record) float64 { return r.Quantity })
	out.SpotProfile = profile(records, loc, func(r model.Record) float64 { return r.Price })

	return out
}

// bucketAgg accumulates one calendar bucket.
type bucketAgg struct {
	cost     float64
	quantity float64
	priceSum float64
	count    int
}

// bucketDef maps a record time to its bucket key and steps to the next
// bucket. Keys are midnights in the reference zone.
type bucketDef struct {
	key  func(time.Time, *time.Location) time.Time
	next func(time.Time) time.Time
}

var (
	// Day buckets are calendar dates.
	dayBuckets = bucketDef{
		key:  dateOf,
		next: func(t time.Time) time.Time { return t.AddDate(0, 0, 1) },
	}
	// Week buckets are keyed by the Sunday ending the week.
	weekBuckets = bucketDef{
		key:  weekAnchor,
		next: func(t time.Time) time.Time { return t.AddDate(0, 0, 7) },
	}
	// Month buckets are keyed by the first day of the calendar month and
	// left-closed: a boundary instant belongs to its own month.
	monthBuckets = bucketDef{
		key:  monthAnchor,
		next: func(t time.Time) time.Time { return t.AddDate(0, 1, 0) },
	}
)

func dateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func weekAnchor(t time.Time, loc *time.Location) time.Time {
	d := dateOf(t, loc)
	return d.AddDate(0, 0, (7-int(d.Weekday()))%7)
}

func monthAnchor(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// bucketize sums records into every bucket the range spans, gaps included.
// Chart consumers expect one label per bucket, so empty buckets appear as
// zero aggregates instead of being dropped.
func bucketize(records []model.Record, loc *time.Location, def bucketDef) ([]time.Time, []bucketAgg) {
	sums := make(map[int64]*bucketAgg)
	for _, r := range records {
		k := def.key(r.Time, loc).Unix()
		a := sums[k]
		if a == nil {
			a = &bucketAgg{}
			sums[k] = a
		}
		a.cost += r.Cost
		a.quantity += r.Quantity
		a.priceSum += r.Price
		a.count++
	}

	lastKey := def.key(records[len(records)-1].Time, loc)
	var keys []time.Time
	var aggs []bucketAgg
	for k := def.key(records[0].Time, loc); ; k = def.next(k) {
		keys = append(keys, k)
		if a := sums[k.Unix()]; a != nil {
			aggs = append(aggs, *a)
		} else {
			aggs = append(aggs, bucketAgg{})
		}
		if !k.Before(lastKey) {
			break
		}
	}
	return keys, aggs
}

// weightedCurve is the weighted average realized price per bucket, c/kWh.
// Buckets without quantity have an undefined ratio and yield null.
func weightedCurve(keys []time.Time, aggs []bucketAgg, decimals int) model.ChartSeries {
	cs := model.ChartSeries{
		Labels: lo.Map(keys, func(k time.Time, _ int) string { return k.Format("2006-01-02") }),
	}
	for _, a := range aggs {
		if a.quantity == 0 {
			cs.Values = append(cs.Values, nil)
			continue
		}
		v := roundTo(a.cost/a.quantity, decimals)
		cs.Values = append(cs.Values, &v)
	}
	return cs
}

// deltaCurve is the weighted realized price minus the simple mean spot
// price per bucket. A positive value means consumption was timed into
// expensive hours relative to a flat-average spot exposure.
func deltaCurve(keys []time.Time, aggs []bucketAgg) model.ChartSeries {
	cs := model.ChartSeries{
		Labels: lo.Map(keys, func(k time.Time, _ int) string { return k.Format("2006-01-02") }),
	}
	for _, a := range aggs {
		if a.quantity == 0 || a.count == 0 {
			cs.Values = append(cs.Values, nil)
			continue
		}
		v := roundTo(a.cost/a.quantity-a.priceSum/float64(a.count), 2)
		cs.Values = append(cs.Values, &v)
	}
	return cs
}

// histogram bins per-day consumption totals into at most ten equal-width
// bins. A near-constant daily usage collapses the value range; the bin
// count then falls back to max(1, floor(range/2)) to avoid degenerate bins.
func histogram(days []float64) model.Histogram {
	if len(days) == 0 {
		return model.Histogram{}
	}
	minv := lo.Min(days)
	maxv := lo.Max(days)
	span := maxv - minv

	bins := 10
	if fallback := int(span / 2); fallback < bins {
		bins = fallback
	}
	if bins < 1 {
		bins = 1
	}

	h := model.Histogram{
		Labels: make([]string, bins),
		Counts: make([]int, bins),
	}
	width := span / float64(bins)
	for i := 0; i < bins; i++ {
		left := minv + width*float64(i)
		right := minv + width*float64(i+1)
		h.Labels[i] = fmt.Sprintf("%d...%d", int(left), int(right))
	}
	for _, v := range days {
		idx := 0
		if width > 0 {
			idx = int((v - minv) / width)
			if idx >= bins {
				idx = bins - 1
			}
		}
		h.Counts[idx]++
	}
	return h
}

// profile groups value(r) by hour of day in loc and summarizes each hour
// with its mean and a 10th/90th percentile band. Hours with no records
// report zeros so the four arrays always hold 24 entries.
func profile(records []model.Record, loc *time.Location, value func(model.Record) float64) model.Profile {
	groups := make([][]float64, 24)
	for _, r := range records {
		h := r.Time.In(loc).Hour()
		groups[h] = append(groups[h], value(r))
	}

	p := model.Profile{
		Hours: make([]int, 24),
		Mean:  make([]float64, 24),
		Low:   make([]float64, 24),
		High:  make([]float64, 24),
	}
	for h := 0; h < 24; h++ {
		p.Hours[h] = h
		vals := groups[h]
		if len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		p.Mean[h] = roundTo(lo.Sum(vals)/float64(len(vals)), 3)
		p.Low[h] = roundTo(quantileSorted(vals, 0.1), 3)
		p.High[h] = roundTo(quantileSorted(vals, 0.9), 3)
	}
	return p
}

// quantileSorted reads the q-quantile off a sorted slice with linear
// interpolation between order statistics.
func quantileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	low := int(math.Floor(pos))
	high := int(math.Ceil(pos))
	if low == high {
		return sorted[low]
	}
	frac := pos - float64(low)
	return sorted[low]*(1-frac) + sorted[high]*frac
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// commaDecimal renders a number for display with a comma decimal
// separator, two decimals.
func commaDecimal(v float64) string {
	return strings.ReplaceAll(fmt.Sprintf("%.2f", v), ".", ",")
}
