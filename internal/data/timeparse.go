package data

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for consumption and price timestamps. Dotted forms are
// day-first, matching the exports this tool sees.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2.1.2006 15:04:05",
	"2.1.2006 15:04",
	"2.1.2006",
	"2006-01-02",
}

// ParseLocalTime parses s and localizes it into loc. Layouts carrying an
// explicit offset are converted into loc; naive ones are interpreted as
// wall-clock time in loc.
func ParseLocalTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
