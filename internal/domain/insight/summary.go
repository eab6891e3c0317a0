package insight

// Summary bundles the read aggregates the dashboard consumes.
type Summary struct {
	OverallAverage float64            `json:"overall_average"`
	CurrentStreak  int                `json:"current_streak"`
	WeeklyTotals   []WeekdayTotal     `json:"weekly_totals"`
	PerCategory    map[string]float64 `json:"per_category"`
}
