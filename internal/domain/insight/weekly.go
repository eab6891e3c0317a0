package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/lumokids/playledger/internal/domain/calendar"
)

// DayTotals answers the summed day averages recorded across every ledger
// for one calendar day.
type DayTotals interface {
	TotalAverageOn(ctx context.Context, day calendar.Day) (float64, error)
}

// WeekdayTotal is one weekly consistency bucket.
type WeekdayTotal struct {
	Weekday string  `json:"day"`
	Total   float64 `json:"total"`
}

// WeeklyTotals buckets cross-game day totals into the seven weekdays of
// the ISO week containing ref, Monday through Sunday. Days of the week
// not yet reached simply total 0; the result always has seven entries.
func WeeklyTotals(ctx context.Context, src DayTotals, ref time.Time) ([]WeekdayTotal, error) {
	days := calendar.WeekDays(ref)
	totals := make([]WeekdayTotal, len(days))
	for i, day := range days {
		total, err := src.TotalAverageOn(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("weekly totals at %s: %w", day, err)
		}
		totals[i] = WeekdayTotal{Weekday: calendar.Weekdays[i], Total: total}
	}
	return totals, nil
}
