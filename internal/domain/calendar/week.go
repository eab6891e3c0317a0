package calendar

import "time"

// Weekdays in reporting order. Weekly aggregates always run Monday through
// Sunday regardless of where the reference date falls in the week.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekStart returns the Monday that opens the ISO week containing t.
func WeekStart(t time.Time) Day {
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(t.Weekday()) + 6) % 7
	return DayOf(t.AddDate(0, 0, -offset))
}

// WeekDays enumerates the seven Calendar Day Keys of the ISO week
// containing t, Monday first.
func WeekDays(t time.Time) [7]Day {
	var days [7]Day
	monday := WeekStart(t)
	for i := range days {
		days[i] = monday.AddDays(i)
	}
	return days
}
