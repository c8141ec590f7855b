package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"spotcost/internal/analysis"
	"spotcost/internal/config"
	"spotcost/internal/data"
	"spotcost/internal/model"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	With().Timestamp().Logger()

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "analyze":
		cmdAnalyze(os.Args[2:])
	case "prices":
		cmdPrices(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli analyze --consumption usage.csv --prices data/prices.json [--margin 0,45] [--start 1.1.2023] [--end 31.3.2023] [--out report.json]")
	fmt.Println("  cli prices --in dayahead.csv --out data/prices.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - analyze reconciles an hourly consumption CSV against the spot price store")
	fmt.Println("  - prices normalizes a raw day-ahead export (EUR/MWh, no VAT) into the store format (c/kWh, VAT included)")
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	consumptionPath := fs.String("consumption", "", "Path to consumption CSV (semicolon separated)")
	pricesPath := fs.String("prices", "data/prices.json", "Path to the normalized price store")
	cfgPath := fs.String("config", "", "Optional YAML config path")
	margin := fs.String("margin", "", "Tariff margin in c/kWh; comma or dot decimals (default from config)")
	start := fs.String("start", "", "Optional first date to include (d.m.yyyy)")
	end := fs.String("end", "", "Optional last date to include, whole day (d.m.yyyy)")
	outPath := fs.String("out", "", "Write outcome JSON here instead of stdout")
	_ = fs.Parse(args)

	if *consumptionPath == "" {
		log.Fatal().Msg("--consumption is required")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("resolve timezone")
	}

	consumption, err := data.ReadConsumptionCSV(*consumptionPath, data.CSVOptions{
		Separator:      []rune(cfg.CSV.Separator)[0],
		TimeColumn:     cfg.CSV.TimeColumn,
		QuantityColumn: cfg.CSV.QuantityColumn,
		Location:       loc,
	})
	if err != nil {
		log.Fatal().Err(err).Str("file", *consumptionPath).Msg("consumption file is unusable")
	}

	prices, err := data.LoadPrices(*pricesPath, loc)
	if err != nil {
		log.Fatal().Err(err).Str("file", *pricesPath).Msg("load price store")
	}

	outcome, err := analysis.Run(consumption, prices, analysis.Options{
		Margin:   analysis.ParseMargin(*margin, cfg.DefaultMargin),
		Start:    *start,
		End:      *end,
		Location: loc,
	})
	if errors.Is(err, model.ErrEmptyJoin) {
		log.Fatal().Msg("consumption and price store do not overlap; check the file period and the price store coverage")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("analyze")
	}

	raw, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode outcome")
	}
	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			log.Fatal().Err(err).Msg("create output directory")
		}
		if err := os.WriteFile(*outPath, raw, 0o644); err != nil {
			log.Fatal().Err(err).Msg("write outcome")
		}
		log.Info().Str("file", *outPath).Msg("wrote outcome")
	} else {
		fmt.Println(string(raw))
	}

	log.Info().
		Str("period", outcome.Begin+" - "+outcome.End).
		Str("avg_price_c_per_kwh", outcome.WeightedPriceText).
		Str("energy_kwh", outcome.TotalEnergyText).
		Str("cost_eur", outcome.TotalCostText).
		Msg("analysis done")
}

func cmdPrices(args []string) {
	fs := flag.NewFlagSet("prices", flag.ExitOnError)
	inPath := fs.String("in", "", "Raw day-ahead export CSV with datetime and price columns (EUR/MWh, no VAT)")
	outPath := fs.String("out", "data/prices.json", "Price store path to write")
	cfgPath := fs.String("config", "", "Optional YAML config path")
	_ = fs.Parse(args)

	if *inPath == "" {
		log.Fatal().Msg("--in is required")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("resolve timezone")
	}

	raw, err := data.ReadDayAheadCSV(*inPath, []rune(cfg.CSV.Separator)[0], loc)
	if err != nil {
		log.Fatal().Err(err).Str("file", *inPath).Msg("read day-ahead export")
	}

	schedule := data.VATSchedule{
		Default: cfg.VAT.Default,
		Windows: lo.Map(cfg.VAT.Windows, func(w config.VATWindow, _ int) data.VATSpan {
			from, to := w.Bounds(loc)
			return data.VATSpan{From: from, To: to, Rate: w.Rate}
		}),
	}

	normalized := data.NormalizeDayAhead(raw, schedule)
	if err := data.SavePrices(*outPath, normalized); err != nil {
		log.Fatal().Err(err).Str("file", *outPath).Msg("write price store")
	}

	log.Info().
		Int("hours", normalized.Len()).
		Str("first", normalized.First().Time.Format("2006-01-02 15:04")).
		Str("last", normalized.Last().Time.Format("2006-01-02 15:04")).
		Str("file", *outPath).
		Msg("price store updated")
}
