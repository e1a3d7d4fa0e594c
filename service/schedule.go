package service

import (
	"fmt"
	"time"

	"storepulse/models"
)

// OverlapPeriod is a maximal sub-interval where a store's declared open
// hours intersect a requested time range.
type OverlapPeriod struct {
	Start    time.Time
	End      time.Time
	Duration float64 // minutes
}

// IsAlwaysOpen reports whether every declared interval is the literal
// full-day sentinel pair, meaning the store is continuously open and the
// interval math can be skipped entirely.
func IsAlwaysOpen(hours []*models.BusinessHours) bool {
	for _, bh := range hours {
		if !bh.IsFullDay() {
			return false
		}
	}
	return true
}

// CalculateOverlap intersects the weekly open intervals with [start, end].
// Both bounds must already be expressed in the store's local location; the
// walk combines each calendar date in that location with the clock times of
// every interval declared for the matching weekday. An interval whose close
// does not come after its open wraps past midnight onto the next day.
// Zero-length overlaps are discarded. The result may be empty, which is a
// distinct outcome from a 24/7 store.
func CalculateOverlap(hours []*models.BusinessHours, start, end time.Time) ([]OverlapPeriod, error) {
	var periods []OverlapPeriod

	loc := start.Location()
	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	lastDate := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)

	for !date.After(lastDate) {
		weekday := mondayIndexedWeekday(date)

		for _, bh := range hours {
			if bh.DayOfWeek != weekday {
				continue
			}

			open, err := combineClock(date, bh.StartTimeLocal)
			if err != nil {
				return nil, fmt.Errorf("invalid start time %q for store %s: %w", bh.StartTimeLocal, bh.StoreID, err)
			}
			close, err := combineClock(date, bh.EndTimeLocal)
			if err != nil {
				return nil, fmt.Errorf("invalid end time %q for store %s: %w", bh.EndTimeLocal, bh.StoreID, err)
			}
			if !close.After(open) {
				// close time falls on the next calendar day
				close = close.AddDate(0, 0, 1)
			}

			overlapStart := maxTime(start, open)
			overlapEnd := minTime(end, close)
			if overlapStart.Before(overlapEnd) {
				periods = append(periods, OverlapPeriod{
					Start:    overlapStart,
					End:      overlapEnd,
					Duration: overlapEnd.Sub(overlapStart).Minutes(),
				})
			}
		}

		date = date.AddDate(0, 0, 1)
	}

	return periods, nil
}

// TotalOverlapMinutes sums the durations of a set of overlap periods
func TotalOverlapMinutes(periods []OverlapPeriod) float64 {
	var total float64
	for _, p := range periods {
		total += p.Duration
	}
	return total
}

// mondayIndexedWeekday converts Go's Sunday-based weekday to the 0=Monday
// convention the business hours data uses.
func mondayIndexedWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// combineClock attaches an HH:MM:SS clock string to a calendar date in the
// date's location.
func combineClock(date time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04:05", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0,
		date.Location(),
	), nil
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
