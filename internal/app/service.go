// Package service provides the progress engine that implements the
// dependencies required by the HTTP API: it records match outcomes into
// the per-game ledgers and derives the dashboard aggregates from them.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lumokids/playledger/internal/adapters/kvstore"
	repository "github.com/lumokids/playledger/internal/adapters/repository"
	"github.com/lumokids/playledger/internal/domain/calendar"
	"github.com/lumokids/playledger/internal/domain/dedupe"
	"github.com/lumokids/playledger/internal/domain/game"
	"github.com/lumokids/playledger/internal/domain/insight"
	"github.com/lumokids/playledger/internal/domain/model"
	"github.com/lumokids/playledger/pkg/logger"
	"github.com/lumokids/playledger/pkg/metrics"
)

// Outcome is the result of a recorded or upserted match.
type Outcome = model.Outcome

// Service is the progress engine. A single mutex serializes every
// ledger operation: each write is a read-modify-write of a whole
// category ledger, and reads taken under the same lock always observe
// the latest completed write.
type Service struct {
	mu sync.Mutex

	// Core components
	store   kvstore.Store
	ledgers *repository.LedgerRepo
	guard   dedupe.Deduper

	// Configuration
	dedupeWindow int
	now          func() time.Time
	location     *time.Location

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the key-value store backing the ledgers. Without it the
// service runs on an in-memory store.
func WithStore(store kvstore.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDedupeWindow sets how many session IDs the duplicate guard
// remembers.
func WithDedupeWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.dedupeWindow = n
		}
	}
}

// WithClock overrides the time source. Tests use it to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the timezone that decides which calendar day a
// submission lands on.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeWindow: 1024,
		now:          time.Now,
		location:     time.Local,
		logger:       nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting progress service...")

	if s.store == nil {
		s.store = kvstore.NewMemStore()
		s.logger.Info(ctx, "using in-memory store")
	}
	s.ledgers = repository.New(s.store, repository.WithLogger(s.logger))
	s.guard = dedupe.NewSessionGuard(
		dedupe.WithWindowSize(s.dedupeWindow),
	)

	s.started = true
	s.logger.Info(ctx, "progress service started",
		logger.Int("dedupeWindow", s.dedupeWindow),
		logger.String("timezone", s.location.String()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping progress service...")

	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "progress service stopped")
}

// today resolves the current calendar day in the configured timezone.
// Callers hold s.mu.
func (s *Service) today() calendar.Day {
	return calendar.DayOf(s.now().In(s.location))
}

// RecordOutcome appends one finished session to the game's ledger under
// today's date. A sessionID, when present, makes the write idempotent
// across retries; an empty sessionID records unconditionally. Negative
// counts are clamped to zero rather than rejected.
func (s *Service) RecordOutcome(ctx context.Context, gameID string, correct, incorrect int, sessionID string) (Outcome, error) {
	correct, incorrect = clamp(correct), clamp(incorrect)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID != "" && s.guard.SeenAndRecord(ctx, sessionID) {
		metrics.RecordDuplicateSession()
		s.logger.Debug(ctx, "duplicate session dropped",
			logger.String("sessionID", sessionID),
			logger.String("game", gameID),
		)
		return Outcome{Category: game.Parse(gameID), Duplicate: true}, nil
	}

	start := time.Now()
	category := game.Parse(gameID)
	date := s.today()

	ledger := s.ledgers.Load(ctx, category)
	match := ledger.Record(date, correct, incorrect, category.QuestionsPerMatch())

	if err := s.ledgers.Save(ctx, category, ledger); err != nil {
		if sessionID != "" {
			s.guard.Unrecord(ctx, sessionID)
		}
		metrics.RecordStoreSaveError()
		return Outcome{}, fmt.Errorf("record outcome: %w", err)
	}

	metrics.RecordMatch(category.Key())
	metrics.RecordRecordLatency(float64(time.Since(start).Milliseconds()))
	metrics.UpdateLedgerDays(category.Key(), len(ledger.Days))

	s.logger.Debug(ctx, "outcome recorded",
		logger.String("game", category.Key()),
		logger.String("date", date.String()),
		logger.Int("match", match.Ordinal),
		logger.Int("score", match.NetScore),
	)
	return Outcome{Category: category, Date: date, Match: match}, nil
}

// UpsertOutcome writes the in-progress match at ordinal under today's
// date, replacing any previous snapshot of the same ordinal. This is
// the per-answer flow: the same ordinal is rewritten after every answer
// until the session completes, so no duplicate guard applies. An
// ordinal of zero or less targets the day's next match; a non-positive
// totalQuestions falls back to the game's session length.
func (s *Service) UpsertOutcome(ctx context.Context, gameID string, ordinal, correct, incorrect, totalQuestions int) (Outcome, error) {
	correct, incorrect = clamp(correct), clamp(incorrect)

	s.mu.Lock()
	defer s.mu.Unlock()

	category := game.Parse(gameID)
	date := s.today()

	ledger := s.ledgers.Load(ctx, category)
	if ordinal <= 0 {
		ordinal = ledger.NextOrdinal(date)
	}
	if totalQuestions <= 0 {
		totalQuestions = category.QuestionsPerMatch()
	}
	match := ledger.Upsert(date, ordinal, correct, incorrect, totalQuestions)

	if err := s.ledgers.Save(ctx, category, ledger); err != nil {
		metrics.RecordStoreSaveError()
		return Outcome{}, fmt.Errorf("upsert outcome: %w", err)
	}

	metrics.RecordUpsert(category.Key())
	metrics.UpdateLedgerDays(category.Key(), len(ledger.Days))

	s.logger.Debug(ctx, "in-progress match upserted",
		logger.String("game", category.Key()),
		logger.String("date", date.String()),
		logger.Int("match", match.Ordinal),
	)
	return Outcome{Category: category, Date: date, Match: match}, nil
}

// Summary derives the dashboard aggregates: the overall average, the
// current day streak, the weekly consistency buckets and the per-game
// series.
func (s *Service) Summary(ctx context.Context) (insight.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledgers := s.ledgers.Ledgers(ctx)
	overall := insight.OverallAverage(ledgers)

	streak, err := insight.Streak(ctx, s.ledgers, s.today())
	if err != nil {
		return insight.Summary{}, fmt.Errorf("summary: %w", err)
	}

	weekly, err := insight.WeeklyTotals(ctx, s.ledgers, s.now().In(s.location))
	if err != nil {
		return insight.Summary{}, fmt.Errorf("summary: %w", err)
	}

	metrics.UpdateCurrentStreak(streak)
	metrics.UpdateOverallAverage(overall)

	return insight.Summary{
		OverallAverage: overall,
		CurrentStreak:  streak,
		WeeklyTotals:   weekly,
		PerCategory:    insight.CategorySeries(ledgers),
	}, nil
}

// Ledger returns one game's full history, day records newest first.
func (s *Service) Ledger(ctx context.Context, gameID string) (model.Ledger, game.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := game.Parse(gameID)
	ledger := s.ledgers.Load(ctx, category)
	ledger.SortNewestFirst()
	return ledger, category
}

// ExportLedger renders one game's history in the stored wire format,
// ready to serve as a JSON body.
func (s *Service) ExportLedger(ctx context.Context, gameID string) ([]byte, game.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := game.Parse(gameID)
	data, err := s.ledgers.Export(ctx, category)
	if err != nil {
		return nil, category, fmt.Errorf("export ledger: %w", err)
	}
	return data, category, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"dedupeWindow": s.dedupeWindow,
		"timezone":     s.location.String(),
	}

	if s.started {
		ctx := context.Background()
		days := make(map[string]int, len(game.Categories()))
		for category, ledger := range s.ledgers.Ledgers(ctx) {
			days[category.Key()] = len(ledger.Days)
			metrics.UpdateLedgerDays(category.Key(), len(ledger.Days))
		}
		stats["ledgerDays"] = days
		stats["sessionsRemembered"] = s.guard.Size()
	}

	return stats
}

// Size returns the current number of session IDs in the duplicate guard.
func (s *Service) Size() int64 {
	if s.guard == nil {
		return 0
	}
	return s.guard.Size()
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
