// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lumokids/playledger/internal/domain/game"
	"github.com/lumokids/playledger/internal/domain/insight"
	"github.com/lumokids/playledger/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Write operations append to or rewrite the per-game ledgers.
	RecordOutcome(ctx context.Context, gameID string, correct, incorrect int, sessionID string) (Outcome, error)
	UpsertOutcome(ctx context.Context, gameID string, ordinal, correct, incorrect, totalQuestions int) (Outcome, error)

	// Read operations expose the dashboard aggregates and histories.
	Summary(ctx context.Context) (Summary, error)
	ExportLedger(ctx context.Context, gameID string) ([]byte, game.Category, error)
}

// Summary mirrors the read shape returned by the summary query.
type Summary = insight.Summary

// Outcome mirrors the result of a ledger write.
type Outcome = model.Outcome

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	matchesHandler    *MatchesHandler
	inProgressHandler *InProgressHandler
	summaryHandler    *SummaryHandler
	ledgersHandler    *LedgersHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		matchesHandler:    NewMatchesHandler(deps),
		inProgressHandler: NewInProgressHandler(deps),
		summaryHandler:    NewSummaryHandler(deps),
		ledgersHandler:    NewLedgersHandler(deps),
		dashboardHandler:  newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/matches/in-progress", MetricsMiddleware(s.inProgressHandler.HandlePutInProgress, "matches_in_progress"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandlePostMatch, "matches"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.summaryHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/ledgers/", MetricsMiddleware(s.ledgersHandler.HandleGetLedger, "ledgers"))
}

// matchRequest is the body for POST /matches: one finished session.
type matchRequest struct {
	Game      string `json:"game"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
	SessionID string `json:"session_id"`
}

func (m matchRequest) validate() error {
	if strings.TrimSpace(m.Game) == "" {
		return errors.New("missing game")
	}
	return nil
}

// upsertRequest is the body for PUT /matches/in-progress: a running
// session snapshot rewritten after every answer.
type upsertRequest struct {
	Game           string `json:"game"`
	Match          int    `json:"match"`
	Correct        int    `json:"correct"`
	Incorrect      int    `json:"incorrect"`
	TotalQuestions int    `json:"total_questions"`
}

func (u upsertRequest) validate() error {
	if strings.TrimSpace(u.Game) == "" {
		return errors.New("missing game")
	}
	return nil
}

type ackResponse struct {
	Status       string  `json:"status"`
	Duplicate    bool    `json:"duplicate"`
	Game         string  `json:"game,omitempty"`
	Date         string  `json:"date,omitempty"`
	Match        int     `json:"match,omitempty"`
	Score        int     `json:"score"`
	AverageScore float64 `json:"average_score"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
