package analysis

import (
	"strconv"
	"strings"
	"time"
)

// DefaultMargin is the fallback tariff margin in c/kWh.
const DefaultMargin = 0.42

// Date layouts accepted for range bounds, day-first when ambiguous.
var dateLayouts = []string{
	"2.1.2006",
	"2006-01-02",
	"2.1.2006 15:04",
	"2006-01-02 15:04",
}

// ParseMargin parses a locale-flexible decimal margin; both comma and full
// stop work as the separator. Anything empty or unparsable falls back to
// def. This never errors: the user-supplied margin is advisory.
func ParseMargin(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return def
	}
	return v
}

// ParseDate parses an advisory range bound into midnight in loc. A false
// return means "no bound", never an error.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
