// Package model contains the ledger domain model: per-game histories of
// day records, each holding the matches played that calendar day.
package model

import (
	"sort"

	"github.com/lumokids/playledger/internal/domain/calendar"
	"github.com/lumokids/playledger/internal/domain/score"
)

// MatchRecord is one completed play session. Records are immutable once
// appended; the only exception is the in-progress upsert flow (see
// Ledger.Upsert) which replaces the record at an ordinal until the session
// finishes.
type MatchRecord struct {
	// Ordinal is the 1-based sequence number within the owning day,
	// assigned as the previous match count plus one.
	Ordinal        int
	NetScore       int
	Correct        int
	Incorrect      int
	TotalQuestions int
	// AverageScore is NetScore/Correct, 0 when Correct is 0.
	AverageScore float64
}

// NewMatch builds a MatchRecord with its derived fields.
func NewMatch(ordinal, correct, incorrect, totalQuestions int) MatchRecord {
	return MatchRecord{
		Ordinal:        ordinal,
		NetScore:       score.Net(correct, incorrect),
		Correct:        correct,
		Incorrect:      incorrect,
		TotalQuestions: totalQuestions,
		AverageScore:   score.Average(correct, incorrect),
	}
}

// DayRecord is one calendar day's activity for one game category. Created
// on the first match of a new day, never deleted.
type DayRecord struct {
	Date calendar.Day
	// TotalMatches always equals len(Matches).
	TotalMatches int
	// TotalAverageScore is the mean of the matches' AverageScore values,
	// recomputed on every append or upsert.
	TotalAverageScore float64
	// Matches in insertion order; ordinals form a contiguous 1..N run.
	Matches []MatchRecord
}

// recompute refreshes the derived day totals from the match list. The
// stored wire format truncates each match average to two decimals, so the
// mean runs over the formatted values to stay equal to what a reload
// would produce.
func (d *DayRecord) recompute() {
	d.TotalMatches = len(d.Matches)
	avgs := make([]float64, len(d.Matches))
	for i, m := range d.Matches {
		avgs[i] = score.ParseAverage(score.FormatAverage(m.AverageScore))
	}
	d.TotalAverageScore = score.Mean(avgs)
}

// Ledger is one game category's full history, keyed by day. Write order is
// append order; consumers may re-sort for display.
type Ledger struct {
	Days []DayRecord
}

// Empty reports whether the ledger has no recorded days.
func (l *Ledger) Empty() bool { return len(l.Days) == 0 }

// Day returns the record for date, if present.
func (l *Ledger) Day(date calendar.Day) (*DayRecord, bool) {
	for i := range l.Days {
		if l.Days[i].Date == date {
			return &l.Days[i], true
		}
	}
	return nil, false
}

// ActiveOn reports whether any match was recorded on date.
func (l *Ledger) ActiveOn(date calendar.Day) bool {
	_, ok := l.Day(date)
	return ok
}

// Record appends one finished session to date's day record, creating the
// day on first play, and refreshes the day totals. The new match's ordinal
// continues the day's contiguous run.
func (l *Ledger) Record(date calendar.Day, correct, incorrect, totalQuestions int) MatchRecord {
	day, ok := l.Day(date)
	if !ok {
		l.Days = append(l.Days, DayRecord{Date: date})
		day = &l.Days[len(l.Days)-1]
	}
	m := NewMatch(len(day.Matches)+1, correct, incorrect, totalQuestions)
	day.Matches = append(day.Matches, m)
	day.recompute()
	return m
}

// Upsert replaces the match at ordinal on date, or appends it when the
// ordinal is new. This is the in-progress flow used by the musical
// patterns game, which rewrites the current match after every answer until
// the session completes. Matches stay sorted by ordinal and days are kept
// newest-first, matching how that game has always stored its ledger.
func (l *Ledger) Upsert(date calendar.Day, ordinal, correct, incorrect, totalQuestions int) MatchRecord {
	day, ok := l.Day(date)
	if !ok {
		l.Days = append(l.Days, DayRecord{Date: date})
		day = &l.Days[len(l.Days)-1]
	}
	m := NewMatch(ordinal, correct, incorrect, totalQuestions)
	replaced := false
	for i := range day.Matches {
		if day.Matches[i].Ordinal == ordinal {
			day.Matches[i] = m
			replaced = true
			break
		}
	}
	if !replaced {
		day.Matches = append(day.Matches, m)
	}
	sort.Slice(day.Matches, func(i, j int) bool {
		return day.Matches[i].Ordinal < day.Matches[j].Ordinal
	})
	day.recompute()
	l.SortNewestFirst()
	return m
}

// NextOrdinal is the ordinal the next finished session on date would get.
func (l *Ledger) NextOrdinal(date calendar.Day) int {
	if day, ok := l.Day(date); ok {
		return len(day.Matches) + 1
	}
	return 1
}

// SortNewestFirst orders the day records date-descending for display.
func (l *Ledger) SortNewestFirst() {
	sort.Slice(l.Days, func(i, j int) bool {
		return l.Days[i].Date > l.Days[j].Date
	})
}

// Total sums the ledger's day means and counts its days, the inputs to
// the cross-game blend.
func (l *Ledger) Total() score.CategoryTotal {
	t := score.CategoryTotal{Days: len(l.Days)}
	for _, d := range l.Days {
		t.Total += d.TotalAverageScore
	}
	return t
}

// TotalAverageOn returns the day mean recorded for date, 0 when the day is
// absent.
func (l *Ledger) TotalAverageOn(date calendar.Day) float64 {
	if day, ok := l.Day(date); ok {
		return day.TotalAverageScore
	}
	return 0
}
