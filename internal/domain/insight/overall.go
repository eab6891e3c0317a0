package insight

import (
	"github.com/lumokids/playledger/internal/domain/game"
	"github.com/lumokids/playledger/internal/domain/model"
	"github.com/lumokids/playledger/internal/domain/score"
)

// OverallAverage blends every category's day-level averages into one
// display figure: the count-weighted grand mean of day means across all
// ledgers, scaled by 100. Categories without days contribute nothing to
// either side of the division, so the result is unclamped but never NaN.
func OverallAverage(ledgers map[game.Category]model.Ledger) float64 {
	totals := make([]score.CategoryTotal, 0, len(ledgers))
	for _, l := range ledgers {
		totals = append(totals, l.Total())
	}
	return score.WeightedGrand(totals) * score.DisplayScale
}

// CategorySeries is each category's own mean of day means scaled by 100,
// keyed by display name, 0 for an empty ledger. This is the per-game bar
// series the dashboard charts.
func CategorySeries(ledgers map[game.Category]model.Ledger) map[string]float64 {
	series := make(map[string]float64, len(ledgers))
	for c, l := range ledgers {
		series[c.DisplayName()] = l.Total().CategoryAverage() * score.DisplayScale
	}
	return series
}
