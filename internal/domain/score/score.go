// Package score computes the per-match and per-day score figures recorded
// in the ledgers.
package score

import (
	"fmt"
	"strconv"
)

// Display scaling for percentage-style dashboard figures.
const DisplayScale = 100

// Net is the raw match score: correct minus incorrect. It may be negative.
func Net(correct, incorrect int) int {
	return correct - incorrect
}

// Average is the per-match average score: net score divided by the number
// of correct answers, or 0 when nothing was answered correctly.
//
// The denominator is correct answers, not total attempts. That makes the
// figure exceed 1.0 whenever incorrect answers are few relative to correct
// ones and it disagrees with a 0-1 percentage-correct reading. Every ledger
// already on disk was written with this formula, so it is kept verbatim;
// do not "fix" the denominator without migrating stored data.
func Average(correct, incorrect int) float64 {
	if correct <= 0 {
		return 0
	}
	return float64(Net(correct, incorrect)) / float64(correct)
}

// FormatAverage renders an average score the way the wire format stores
// it: fixed two decimals.
func FormatAverage(avg float64) string {
	return strconv.FormatFloat(avg, 'f', 2, 64)
}

// ParseAverage reads a stored average back to a number. Stored values are
// 2-decimal strings; anything unreadable counts as 0 rather than failing,
// matching the engine-wide recovery rule for malformed stored data.
func ParseAverage(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Mean is the arithmetic mean of a day's match averages, 0 for an empty
// day. Recomputing it from the same list always yields the same value.
func Mean(averages []float64) float64 {
	if len(averages) == 0 {
		return 0
	}
	var sum float64
	for _, a := range averages {
		sum += a
	}
	return sum / float64(len(averages))
}

// WeightedGrand blends per-category day totals into one figure: the sum of
// all day means divided by the number of day records, across every
// category. A category with no days contributes nothing to either side, so
// it cannot drag the blend toward zero. The result is a count-weighted
// grand mean of day-level averages, not a mean of per-category means.
func WeightedGrand(totals []CategoryTotal) float64 {
	var sum float64
	var count int
	for _, t := range totals {
		sum += t.Total
		count += t.Days
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// CategoryTotal carries one category's summed day means and day count.
type CategoryTotal struct {
	Total float64
	Days  int
}

// CategoryAverage is one category's own mean of day means, 0 without days.
func (t CategoryTotal) CategoryAverage() float64 {
	if t.Days == 0 {
		return 0
	}
	return t.Total / float64(t.Days)
}

func (t CategoryTotal) String() string {
	return fmt.Sprintf("total=%.4f days=%d", t.Total, t.Days)
}
