package testsessions

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/lumokids/playledger/pkg/logger"
)

// meanTolerance absorbs the two-decimal truncation of stored match
// averages.
const meanTolerance = 0.005

// verifyLedgers checks every fetched ledger against the recording
// invariants: contiguous match ordinals per day, day totals that match
// the match list, and parseable two-decimal averages.
func verifyLedgers(ctx context.Context, ledgers map[string][]WireDay, stats *Stats) error {
	logger.Get().Info(ctx, "verifying ledgers", logger.Int("count", len(ledgers)))

	for gameKey, days := range ledgers {
		for _, day := range days {
			if err := verifyDay(gameKey, day); err != nil {
				return err
			}
		}
		stats.LedgersVerified++
	}

	logger.Get().Info(ctx, "ledger verification completed",
		logger.Int("ledgersVerified", stats.LedgersVerified))
	return nil
}

// verifyDay checks one day record's internal consistency.
func verifyDay(gameKey string, day WireDay) error {
	if day.TotalMatches != len(day.Matches) {
		return fmt.Errorf("%s %s: TotalMatches %d but %d matches",
			gameKey, day.Date, day.TotalMatches, len(day.Matches))
	}

	// Ordinals must be exactly 1..N with no gaps or repeats.
	ordinals := make([]int, len(day.Matches))
	for i, m := range day.Matches {
		ordinals[i] = m.Match
	}
	sort.Ints(ordinals)
	for i, ord := range ordinals {
		if ord != i+1 {
			return fmt.Errorf("%s %s: ordinals not contiguous, want %d got %d",
				gameKey, day.Date, i+1, ord)
		}
	}

	// The day mean must equal the mean of the stored match averages.
	var sum float64
	for _, m := range day.Matches {
		avg, err := strconv.ParseFloat(m.AverageScore, 64)
		if err != nil {
			return fmt.Errorf("%s %s match %d: averageScore %q is not numeric",
				gameKey, day.Date, m.Match, m.AverageScore)
		}
		if m.Correct == 0 && avg != 0 {
			return fmt.Errorf("%s %s match %d: zero correct must mean zero average, got %q",
				gameKey, day.Date, m.Match, m.AverageScore)
		}
		sum += avg
	}
	if len(day.Matches) > 0 {
		mean := sum / float64(len(day.Matches))
		if math.Abs(mean-day.TotalAverageScore) > meanTolerance {
			return fmt.Errorf("%s %s: TotalAverageScore %.4f but match mean %.4f",
				gameKey, day.Date, day.TotalAverageScore, mean)
		}
	}

	return nil
}

// verifySummary sanity-checks the aggregates against what the run
// submitted.
func verifySummary(ctx context.Context, summary *SummaryResponse, stats *Stats) error {
	logger.Get().Info(ctx, "verifying summary")

	if len(summary.WeeklyTotals) != 7 {
		return fmt.Errorf("weekly totals must have 7 buckets, got %d", len(summary.WeeklyTotals))
	}

	if stats.SessionsSuccessful > 0 {
		// Everything landed today, so today must count toward the streak.
		if summary.CurrentStreak < 1 {
			return fmt.Errorf("sessions recorded today but streak is %d", summary.CurrentStreak)
		}
		var weekTotal float64
		for _, bucket := range summary.WeeklyTotals {
			weekTotal += bucket.Total
		}
		if weekTotal <= 0 {
			return fmt.Errorf("sessions recorded today but weekly totals sum to %.4f", weekTotal)
		}
	}

	// The expected duplicate count is exact: the guard admits each
	// session id once.
	if stats.SessionsFailed == 0 && stats.SessionsDuplicate != stats.SessionsSubmitted-stats.SessionsSuccessful {
		return fmt.Errorf("duplicate count mismatch: %d duplicates of %d submitted, %d successful",
			stats.SessionsDuplicate, stats.SessionsSubmitted, stats.SessionsSuccessful)
	}

	logger.Get().Info(ctx, "summary verification completed",
		logger.Float64("overallAverage", summary.OverallAverage),
		logger.Int("currentStreak", summary.CurrentStreak))
	return nil
}
