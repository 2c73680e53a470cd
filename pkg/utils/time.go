package utils

import (
	"fmt"
	"time"
)

// isoLayouts are tried in order by ParseISO
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseISO parses an ISO-8601 instant or calendar date.
// Values without an explicit offset are treated as UTC.
func ParseISO(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised ISO timestamp %q", s)
}
