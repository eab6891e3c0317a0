package testsessions

import "time"

// Config holds configuration for the session replay test
type Config struct {
	BaseURL     string        // Base URL of the service
	NumSessions int           // Number of sessions to generate
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for generated sessions
	LogFile     string        // Log file for test output
	Duplicates  int           // Extra retries replaying already-sent session IDs
	Verbose     bool          // Enable verbose logging
}

// Session represents one finished match outcome to submit
type Session struct {
	Game      string `json:"game"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
	SessionID string `json:"session_id"`
}

// AckResponse represents the response from a session submission
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
	Game      string `json:"game"`
	Date      string `json:"date"`
	Match     int    `json:"match"`
}

// SummaryResponse mirrors GET /summary
type SummaryResponse struct {
	OverallAverage float64 `json:"overall_average"`
	CurrentStreak  int     `json:"current_streak"`
	WeeklyTotals   []struct {
		Day   string  `json:"day"`
		Total float64 `json:"total"`
	} `json:"weekly_totals"`
	PerCategory map[string]float64 `json:"per_category"`
}

// WireDay is one day record as served by GET /ledgers/{game}
type WireDay struct {
	Date              string      `json:"date"`
	TotalMatches      int         `json:"TotalMatches"`
	TotalAverageScore float64     `json:"TotalAverageScore"`
	Matches           []WireMatch `json:"matches"`
}

// WireMatch is one match as served by GET /ledgers/{game}
type WireMatch struct {
	Match          int    `json:"match"`
	Score          int    `json:"score"`
	Correct        int    `json:"correct"`
	Incorrect      int    `json:"incorrect"`
	TotalQuestions int    `json:"totalQuestions"`
	AverageScore   string `json:"averageScore"`
}

// Stats holds test statistics
type Stats struct {
	SessionsGenerated  int
	SessionsSubmitted  int
	SessionsSuccessful int
	SessionsDuplicate  int
	SessionsFailed     int
	LedgersVerified    int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
