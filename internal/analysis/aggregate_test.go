package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotcost/internal/model"
)

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestRun_EndToEndConstantDay(t *testing.T) {
	loc := helsinki(t)
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, loc) // a Monday

	consumption := hourly(start, repeat(1.0, 24)...)
	prices := hourly(start, repeat(10.0, 24)...)

	out, err := Run(consumption, prices, Options{Margin: 0, Location: loc})
	require.NoError(t, err)

	assert.InDelta(t, 10.0, out.WeightedPrice, 1e-12)
	assert.Equal(t, "10,00", out.WeightedPriceText)
	assert.InDelta(t, 24.0, out.TotalEnergyKWh, 1e-12)
	assert.Equal(t, "24,00", out.TotalEnergyText)
	// 24 h × 10 c/kWh × 1 kWh = 240 cents = 2.40 EUR.
	assert.InDelta(t, 2.4, out.TotalCostEUR, 1e-12)
	assert.Equal(t, "2,40", out.TotalCostText)

	assert.Equal(t, "02.01.2023", out.Begin)
	assert.Equal(t, "02.01.2023", out.End)
	assert.Equal(t, "2023-01-02", out.First)
	assert.Equal(t, "2023-01-02", out.Last)

	// One bucket per granularity; the week is labeled by its closing Sunday,
	// the month by its first day.
	require.Equal(t, []string{"2023-01-08"}, out.WeekPrice.Labels)
	require.Equal(t, []string{"2023-01-02"}, out.DayPrice.Labels)
	require.Equal(t, []string{"2023-01-01"}, out.MonthPrice.Labels)
	require.NotNil(t, out.DayPrice.Values[0])
	assert.Equal(t, 10.0, *out.DayPrice.Values[0])

	// Constant daily usage collapses the histogram into a single bin.
	require.Equal(t, []string{"24...24"}, out.DailyConsumption.Labels)
	assert.Equal(t, []int{1}, out.DailyConsumption.Counts)

	// Flat load: mean 1.0 everywhere with a zero-width percentile band.
	require.Len(t, out.ConsumptionProfile.Mean, 24)
	for h := 0; h < 24; h++ {
		assert.Equal(t, h, out.ConsumptionProfile.Hours[h])
		assert.Equal(t, 1.0, out.ConsumptionProfile.Mean[h])
		assert.Equal(t, 1.0, out.ConsumptionProfile.Low[h])
		assert.Equal(t, 1.0, out.ConsumptionProfile.High[h])
		assert.Equal(t, 10.0, out.SpotProfile.Mean[h])
	}

	// Flat consumption against flat prices: no timing effect.
	require.NotNil(t, out.WeekDelta.Values[0])
	assert.Equal(t, 0.0, *out.WeekDelta.Values[0])
	require.NotNil(t, out.DayDelta.Values[0])
	assert.Equal(t, 0.0, *out.DayDelta.Values[0])
}

func TestRun_EmptyJoin(t *testing.T) {
	loc := helsinki(t)
	consumption := hourly(time.Date(2023, 1, 2, 0, 0, 0, 0, loc), 1, 2)
	prices := hourly(time.Date(2023, 6, 1, 0, 0, 0, 0, loc), 10, 20)

	_, err := Run(consumption, prices, Options{Location: loc})
	assert.ErrorIs(t, err, model.ErrEmptyJoin)
}

func TestRun_SelfJoinRoundTrip(t *testing.T) {
	loc := helsinki(t)
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, loc)
	quantities := []float64{1.5, 2, 3.25, 0.5, 4, 2.75, 1, 6}
	series := hourly(start, quantities...)

	// Quantity reused as price at margin 0: total cost must come out as
	// sum(q^2)/100 euros, pinning the unit scale to a single application.
	out, err := Run(series, series, Options{Margin: 0, Location: loc})
	require.NoError(t, err)

	want := 0.0
	for _, q := range quantities {
		want += q * q
	}
	want /= 100
	assert.InDelta(t, want, out.TotalCostEUR, 1e-9)
	// Weighted average stays consistent with the totals.
	assert.InDelta(t, out.TotalCostEUR*100/out.TotalEnergyKWh, out.WeightedPrice, 1e-9)
}

func TestRun_UnusableRangeFallsBackToFullSeries(t *testing.T) {
	loc := helsinki(t)
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, loc)
	consumption := hourly(start, repeat(1.0, 24)...)
	prices := hourly(start, repeat(10.0, 24)...)

	out, err := Run(consumption, prices, Options{
		Location: loc,
		Start:    "1.1.2030", // would leave nothing; advisory, so ignored
		End:      "soonish",  // unparsable, treated as absent
	})
	require.NoError(t, err)
	assert.InDelta(t, 24.0, out.TotalEnergyKWh, 1e-12)
}

func TestAggregate_BucketCoverageWithGaps(t *testing.T) {
	loc := helsinki(t)
	day1 := time.Date(2023, 1, 2, 0, 0, 0, 0, loc)
	day2 := time.Date(2023, 1, 9, 0, 0, 0, 0, loc)

	var records []model.Record
	for _, d := range []time.Time{day1, day2} {
		for h := 0; h < 2; h++ {
			records = append(records, model.Record{
				Time: d.Add(time.Duration(h) * time.Hour), Price: 10, Quantity: 1, Cost: 10,
			})
		}
	}

	out := aggregate(records, loc)

	// Every day between the bounds gets a label; the empty ones are null.
	require.Len(t, out.DayPrice.Labels, 8)
	assert.Equal(t, "2023-01-02", out.DayPrice.Labels[0])
	assert.Equal(t, "2023-01-09", out.DayPrice.Labels[7])
	require.NotNil(t, out.DayPrice.Values[0])
	assert.Equal(t, 10.0, *out.DayPrice.Values[0])
	for i := 1; i < 7; i++ {
		assert.Nil(t, out.DayPrice.Values[i], "day %d should be null", i)
	}
	require.NotNil(t, out.DayPrice.Values[7])

	assert.Equal(t, []string{"2023-01-08", "2023-01-15"}, out.WeekPrice.Labels)
	assert.Equal(t, []string{"2023-01-01"}, out.MonthPrice.Labels)
}

func TestAggregate_Deltas(t *testing.T) {
	loc := helsinki(t)
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, loc)

	consumption := hourly(start, 1, 3)
	prices := hourly(start, 10, 20)

	out, err := Run(consumption, prices, Options{Margin: 0, Location: loc})
	require.NoError(t, err)

	// Weighted realized: (10*1 + 20*3) / 4 = 17.5; simple mean spot: 15.
	require.Len(t, out.DayDelta.Values, 1)
	require.NotNil(t, out.DayDelta.Values[0])
	assert.Equal(t, 2.5, *out.DayDelta.Values[0])
	require.NotNil(t, out.WeekDelta.Values[0])
	assert.Equal(t, 2.5, *out.WeekDelta.Values[0])
}

func TestHistogram_BinFallback(t *testing.T) {
	tests := []struct {
		name     string
		days     []float64
		wantBins int
	}{
		{"range 0", []float64{5, 5, 5}, 1},
		{"range 1", []float64{10, 10.5, 11}, 1},
		{"range 3", []float64{10, 11, 13}, 1},
		{"range 20", []float64{0, 10, 20}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := histogram(tt.days)
			assert.Len(t, h.Labels, tt.wantBins)
			assert.Len(t, h.Counts, tt.wantBins)
			total := 0
			for _, c := range h.Counts {
				total += c
			}
			assert.Equal(t, len(tt.days), total)
		})
	}
}

func TestHistogram_Assignment(t *testing.T) {
	h := histogram([]float64{0, 10, 20})
	require.Len(t, h.Counts, 10)
	assert.Equal(t, "0...2", h.Labels[0])
	assert.Equal(t, "18...20", h.Labels[9])
	assert.Equal(t, 1, h.Counts[0])
	assert.Equal(t, 1, h.Counts[5])
	// The maximum lands in the last bin, not past it.
	assert.Equal(t, 1, h.Counts[9])
}

func TestProfile_MeanAndBand(t *testing.T) {
	loc := helsinki(t)
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, loc)

	// One record per hour of day over three days, quantities 1, 2, 3.
	var consumption, prices []model.Point
	for d := 0; d < 3; d++ {
		for h := 0; h < 24; h++ {
			ts := start.AddDate(0, 0, d).Add(time.Duration(h) * time.Hour)
			consumption = append(consumption, model.Point{Time: ts, Value: float64(d + 1)})
			prices = append(prices, model.Point{Time: ts, Value: 10})
		}
	}

	out, err := Run(model.NewSeries(consumption), model.NewSeries(prices), Options{Location: loc})
	require.NoError(t, err)

	p := out.ConsumptionProfile
	require.Len(t, p.Hours, 24)
	for h := 0; h < 24; h++ {
		assert.Equal(t, 2.0, p.Mean[h])
		// Interpolated deciles of {1, 2, 3}.
		assert.Equal(t, 1.2, p.Low[h])
		assert.Equal(t, 2.8, p.High[h])
	}
}

func TestQuantileSorted(t *testing.T) {
	vals := []float64{1, 2, 3}
	assert.Equal(t, 2.0, quantileSorted(vals, 0.5))
	assert.InDelta(t, 1.2, quantileSorted(vals, 0.1), 1e-12)
	assert.InDelta(t, 2.8, quantileSorted(vals, 0.9), 1e-12)
	assert.Equal(t, 1.0, quantileSorted(vals, 0))
	assert.Equal(t, 3.0, quantileSorted(vals, 1))
	assert.Equal(t, 0.0, quantileSorted(nil, 0.5))
}
