package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML). Every field has a
// working default, so an absent or partial file is fine.
type Config struct {
	// Timezone is the IANA reference zone both series are interpreted in.
	Timezone string `yaml:"timezone"`

	// DefaultMargin is the additive tariff margin (c/kWh) applied when the
	// caller supplies none or an unparsable one.
	DefaultMargin float64 `yaml:"default_margin"`

	CSV CSVConfig `yaml:"csv"`
	VAT VATConfig `yaml:"vat"`
}

// CSVConfig describes the consumption table layout. Column names are
// matched against the header case-insensitively, so localized exports can
// be mapped without touching the file.
type CSVConfig struct {
	Separator      string `yaml:"separator"`
	TimeColumn     string `yaml:"time_column"`
	QuantityColumn string `yaml:"quantity_column"`
}

// VATConfig maps dates to VAT multipliers for day-ahead normalization.
type VATConfig struct {
	// Default multiplier outside every window, e.g. 1.24 for 24% VAT.
	Default float64     `yaml:"default"`
	Windows []VATWindow `yaml:"windows"`
}

// VATWindow is an inclusive date range (yyyy-mm-dd) with its multiplier.
type VATWindow struct {
	From string  `yaml:"from"`
	To   string  `yaml:"to"`
	Rate float64 `yaml:"rate"`
}

// Default returns the built-in configuration: Europe/Helsinki, 0.42 c/kWh
// margin, semicolon CSV with timestamp/quantity columns, and the Finnish
// VAT history (10% between 2022-12-01 and 2023-04-30, otherwise 24%).
func Default() Config {
	return Config{
		Timezone:      "Europe/Helsinki",
		DefaultMargin: 0.42,
		CSV: CSVConfig{
			Separator:      ";",
			TimeColumn:     "timestamp",
			QuantityColumn: "quantity",
		},
		VAT: VATConfig{
			Default: 1.24,
			Windows: []VATWindow{
				{From: "2022-12-01", To: "2023-04-30", Rate: 1.10},
			},
		},
	}
}

// Load reads a YAML config, fills zero-value fields from Default, and
// validates the result. An empty path returns Default unchanged.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		c.applyDefaults()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.DefaultMargin == 0 {
		c.DefaultMargin = def.DefaultMargin
	}
	if c.CSV.Separator == "" {
		c.CSV.Separator = def.CSV.Separator
	}
	if c.CSV.TimeColumn == "" {
		c.CSV.TimeColumn = def.CSV.TimeColumn
	}
	if c.CSV.QuantityColumn == "" {
		c.CSV.QuantityColumn = def.CSV.QuantityColumn
	}
	if c.VAT.Default == 0 {
		c.VAT = def.VAT
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q invalid: %w", c.Timezone, err)
	}
	if len([]rune(c.CSV.Separator)) != 1 {
		return fmt.Errorf("csv.separator must be a single character, got %q", c.CSV.Separator)
	}
	if c.VAT.Default <= 0 {
		return errors.New("vat.default must be > 0")
	}
	for _, w := range c.VAT.Windows {
		if w.Rate <= 0 {
			return fmt.Errorf("vat window %s..%s: rate must be > 0", w.From, w.To)
		}
		from, err := time.Parse("2006-01-02", w.From)
		if err != nil {
			return fmt.Errorf("vat window from %q: %w", w.From, err)
		}
		to, err := time.Parse("2006-01-02", w.To)
		if err != nil {
			return fmt.Errorf("vat window to %q: %w", w.To, err)
		}
		if to.Before(from) {
			return fmt.Errorf("vat window %s..%s: to precedes from", w.From, w.To)
		}
	}
	return nil
}

// Location resolves the configured timezone. Validate guarantees this
// succeeds for a loaded config.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Bounds resolves a VAT window to inclusive instants in loc, covering the
// whole final day.
func (w VATWindow) Bounds(loc *time.Location) (time.Time, time.Time) {
	from, _ := time.ParseInLocation("2006-01-02", w.From, loc)
	to, _ := time.ParseInLocation("2006-01-02", w.To, loc)
	return from, to.Add(24*time.Hour - time.Second)
}
