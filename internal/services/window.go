package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shelterpartner/report-service/internal/models"
)

// ErrInvalidFrequency is returned for any frequency outside
// Daily/Weekly/Monthly. The job never falls back to a default window.
var ErrInvalidFrequency = errors.New("invalid frequency")

// Window is the inclusive [Start, End] range a report covers. End is the
// start of the current day in the report timezone, so "today" is never
// part of a report.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window. Both boundaries
// are inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ResolveWindow converts a report frequency into the window it covers,
// anchored to the start of the current day in loc.
func ResolveWindow(frequency string, now time.Time, loc *time.Location) (Window, error) {
	local := now.In(loc)
	end := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	var days int
	switch frequency {
	case models.FrequencyDaily:
		days = 1
	case models.FrequencyWeekly:
		days = 7
	case models.FrequencyMonthly:
		days = 30
	default:
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidFrequency, frequency)
	}

	return Window{Start: end.AddDate(0, 0, -days), End: end}, nil
}
