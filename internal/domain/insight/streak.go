// Package insight derives the dashboard's read aggregates: the day
// streak, the weekly consistency buckets and the cross-game average.
package insight

import (
	"context"
	"fmt"

	"github.com/lumokids/playledger/internal/domain/calendar"
)

// ActivitySource answers whether any stored ledger records activity on a
// given calendar day. The repository implements it with a whole-namespace
// store scan.
type ActivitySource interface {
	ActiveOn(ctx context.Context, day calendar.Day) (bool, error)
}

// Streak counts consecutive active calendar days ending at and including
// asOf. An inactive asOf means a streak of 0, however active yesterday
// was.
func Streak(ctx context.Context, src ActivitySource, asOf calendar.Day) (int, error) {
	count := 0
	for day := asOf; ; day = day.Prev() {
		active, err := src.ActiveOn(ctx, day)
		if err != nil {
			return 0, fmt.Errorf("streak at %s: %w", day, err)
		}
		if !active {
			return count, nil
		}
		count++
	}
}
