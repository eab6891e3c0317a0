// Package calendar derives and manipulates Calendar Day Keys: local-date
// identifiers in the canonical YYYY-MM-DD form used to bucket activity.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the canonical Calendar Day Key form.
const Layout = "2006-01-02"

// Day is a Calendar Day Key, e.g. "2025-03-14". Two moments on the same
// local calendar day map to the same Day regardless of time-of-day.
type Day string

// DayOf buckets t into its calendar day in t's location.
func DayOf(t time.Time) Day {
	return Day(t.Format(Layout))
}

// Parse validates s as a Calendar Day Key.
func Parse(s string) (Day, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("invalid day key %q: %w", s, err)
	}
	return DayOf(t), nil
}

// Valid reports whether s is a well-formed Calendar Day Key.
func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return err == nil
}

// Prev returns the calendar day before d.
func (d Day) Prev() Day {
	return d.AddDays(-1)
}

// AddDays steps d by n calendar days. The arithmetic runs in UTC so day
// stepping is immune to DST transitions in the caller's zone.
func (d Day) AddDays(n int) Day {
	t, err := time.Parse(Layout, string(d))
	if err != nil {
		return d
	}
	return DayOf(t.AddDate(0, 0, n))
}

// Time returns the midnight instant of d in loc.
func (d Day) Time(loc *time.Location) time.Time {
	t, err := time.ParseInLocation(Layout, string(d), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Day) String() string { return string(d) }
