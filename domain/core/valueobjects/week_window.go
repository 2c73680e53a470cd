package valueobjects

import (
	"fmt"
	"time"

	"forzeit/pkg/utils"
)

// WeekWindow is the half-open interval [Start, End) covered by a week
type WeekWindow struct {
	start time.Time
	end   time.Time
}

// NewWeekWindow builds the window starting at the given ISO date.
// Dates without a zone are interpreted as UTC midnight.
func NewWeekWindow(startISO string) (WeekWindow, error) {
	start, err := utils.ParseISO(startISO)
	if err != nil {
		return WeekWindow{}, fmt.Errorf("invalid week start %q: %w", startISO, err)
	}
	return WeekWindow{
		start: start,
		end:   start.AddDate(0, 0, 7),
	}, nil
}

// Start returns the inclusive lower bound
func (w WeekWindow) Start() time.Time {
	return w.start
}

// End returns the exclusive upper bound
func (w WeekWindow) End() time.Time {
	return w.end
}

// Contains reports whether t falls inside [Start, End)
func (w WeekWindow) Contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}
