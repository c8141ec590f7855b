package model

// ChartSeries pairs x-axis labels with y values for one chart. Values are
// pointers so that buckets without any consumption serialize as null while
// the label and value arrays stay aligned.
type ChartSeries struct {
	Labels []string   `json:"labels"`
	Values []*float64 `json:"values"`
}

// Histogram is a binned count chart; labels are inclusive value ranges.
type Histogram struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// Profile summarizes a value by hour of day: mean plus a 10th/90th
// percentile band, one entry per hour 0-23.
type Profile struct {
	Hours []int     `json:"hours"`
	Mean  []float64 `json:"mean"`
	Low   []float64 `json:"low"`
	High  []float64 `json:"high"`
}

// Outcome is the full result bundle for one analysis run. It is built once
// per request and read-only afterwards; callers serialize it as-is.
//
// The *Text fields repeat their numeric counterparts formatted for display
// with a comma decimal separator.
type Outcome struct {
	// Weighted average price over the whole joined range, c/kWh.
	WeightedPrice     float64 `json:"weighted_price"`
	WeightedPriceText string  `json:"weighted_price_text"`

	TotalEnergyKWh  float64 `json:"total_energy_kwh"`
	TotalEnergyText string  `json:"total_energy_text"`
	TotalCostEUR    float64 `json:"total_cost_eur"`
	TotalCostText   string  `json:"total_cost_text"`

	// Coverage bounds of the joined range: dd.mm.yyyy for display,
	// yyyy-mm-dd for machine use.
	Begin string `json:"begin"`
	End   string `json:"end"`
	First string `json:"first"`
	Last  string `json:"last"`

	// Weighted realized price per calendar bucket, c/kWh.
	WeekPrice  ChartSeries `json:"week_price"`
	DayPrice   ChartSeries `json:"day_price"`
	MonthPrice ChartSeries `json:"month_price"`

	// Distribution of per-day consumption, kWh.
	DailyConsumption Histogram `json:"daily_consumption"`

	ConsumptionProfile Profile `json:"consumption_profile"`
	SpotProfile        Profile `json:"spot_profile"`

	// Weighted realized price minus the simple mean spot price per bucket,
	// c/kWh. Isolates the effect of consumption timing.
	WeekDelta ChartSeries `json:"week_delta"`
	DayDelta  ChartSeries `json:"day_delta"`
}
