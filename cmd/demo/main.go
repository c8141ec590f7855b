package main

import (
	"flag"
	"fmt"
	"time"

	"spotcost/internal/analysis"
	"spotcost/internal/model"
)

// Demo:
// - Generate a synthetic month of hourly consumption and spot prices
// - Run the full pipeline with a small margin
// - Print the headline numbers and a few chart rows to show the shapes
func main() {
	days := flag.Int("days", 30, "Number of synthetic days to generate")
	margin := flag.Float64("margin", 0.42, "Tariff margin in c/kWh")
	flag.Parse()

	loc, err := time.LoadLocation("Europe/Helsinki")
	if err != nil {
		panic(err)
	}

	start := time.Date(2023, 1, 2, 0, 0, 0, 0, loc)
	var consumption, prices []model.Point
	for d := 0; d < *days; d++ {
		for h := 0; h < 24; h++ {
			t := start.AddDate(0, 0, d).Add(time.Duration(h) * time.Hour)

			// Morning and evening load peaks, a bit more midweek.
			load := 0.6
			if h >= 7 && h <= 9 || h >= 17 && h <= 21 {
				load = 1.8
			}
			if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
				load += 0.2
			}
			consumption = append(consumption, model.Point{Time: t, Value: load})

			// Cheap nights, expensive evenings, c/kWh.
			price := 4.0
			switch {
			case h >= 17 && h <= 20:
				price = 18.0
			case h >= 7 && h <= 16:
				price = 9.0
			}
			prices = append(prices, model.Point{Time: t, Value: price})
		}
	}

	outcome, err := analysis.Run(model.NewSeries(consumption), model.NewSeries(prices), analysis.Options{
		Margin:   *margin,
		Location: loc,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Period %s - %s (%d synthetic days)\n", outcome.Begin, outcome.End, *days)
	fmt.Printf("Energy %.1f kWh, cost %.2f EUR, weighted avg %.2f c/kWh (margin %.2f)\n\n",
		outcome.TotalEnergyKWh, outcome.TotalCostEUR, outcome.WeightedPrice, *margin)

	fmt.Println("Weekly weighted price, c/kWh:")
	for i, label := range outcome.WeekPrice.Labels {
		v := outcome.WeekPrice.Values[i]
		if v == nil {
			fmt.Printf("  %s  (no consumption)\n", label)
			continue
		}
		fmt.Printf("  %s  %5.1f\n", label, *v)
	}

	fmt.Println("\nHourly load profile (mean / p10 / p90 kWh):")
	for _, h := range []int{3, 8, 13, 19} {
		fmt.Printf("  %02d:00  %5.3f / %5.3f / %5.3f\n",
			h, outcome.ConsumptionProfile.Mean[h], outcome.ConsumptionProfile.Low[h], outcome.ConsumptionProfile.High[h])
	}

	fmt.Println("\nDaily consumption histogram:")
	for i, label := range outcome.DailyConsumption.Labels {
		fmt.Printf("  %-12s %d days\n", label, outcome.DailyConsumption.Counts[i])
	}
}
