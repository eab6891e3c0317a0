package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lumokids/playledger/internal/adapters/kvstore"
	"github.com/lumokids/playledger/internal/domain/calendar"
	"github.com/lumokids/playledger/internal/domain/game"
	"github.com/lumokids/playledger/internal/domain/model"
	"github.com/lumokids/playledger/pkg/logger"
	"github.com/lumokids/playledger/pkg/metrics"
)

// LedgerRepo reads and writes per-category ledgers through the key-value
// store. Loads never fail: a missing key yields an empty ledger and a
// malformed stored value is replaced by an empty ledger rather than
// surfacing a parse error, since the cost of a bad read is a wrong
// displayed number, not a crash.
type LedgerRepo struct {
	store  kvstore.Store
	logger logger.Logger
}

// New creates a LedgerRepo over store.
func New(store kvstore.Store, opts ...Option) *LedgerRepo {
	r := &LedgerRepo{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the ledger for category. Absent key or malformed value
// yields an empty ledger, never an error.
func (r *LedgerRepo) Load(ctx context.Context, category game.Category) model.Ledger {
	data, ok, err := r.store.Load(ctx, category.Key())
	if err != nil {
		r.warn(ctx, "ledger load failed, substituting empty ledger", category, err)
		metrics.RecordLedgerRecovery()
		return model.Ledger{}
	}
	if !ok {
		return model.Ledger{}
	}
	ledger, err := decodeLedger(data)
	if err != nil {
		r.warn(ctx, "stored ledger is malformed, substituting empty ledger", category, err)
		metrics.RecordLedgerRecovery()
		return model.Ledger{}
	}
	return ledger
}

// Save persists the whole ledger for category as a single overwrite.
func (r *LedgerRepo) Save(ctx context.Context, category game.Category, ledger model.Ledger) error {
	data, err := encodeLedger(ledger)
	if err != nil {
		return fmt.Errorf("save %s: %w", category.Key(), err)
	}
	if err := r.store.Save(ctx, category.Key(), data); err != nil {
		return fmt.Errorf("save %s: %w", category.Key(), err)
	}
	return nil
}

// Export loads the ledger for category and renders it in the stored
// wire format with day records newest first, the shape the dashboard
// history views read.
func (r *LedgerRepo) Export(ctx context.Context, category game.Category) ([]byte, error) {
	ledger := r.Load(ctx, category)
	ledger.SortNewestFirst()
	return encodeLedger(ledger)
}

// Ledgers loads every known category's ledger.
func (r *LedgerRepo) Ledgers(ctx context.Context) map[game.Category]model.Ledger {
	ledgers := make(map[game.Category]model.Ledger, len(game.Categories()))
	for _, c := range game.Categories() {
		ledgers[c] = r.Load(ctx, c)
	}
	return ledgers
}

// scanDay is the loose day shape used by the namespace scans. Anything in
// the store whose value is an array of objects carrying a date counts,
// whatever the key; extra fields are ignored and an unreadable day total
// scans as zero.
type scanDay struct {
	Date              string `json:"date"`
	TotalAverageScore any    `json:"TotalAverageScore"`
}

// ActiveOn reports whether any stored value records activity on day. The
// scan walks every store key, not just the six game ledgers: the key
// namespace is part of the stored contract, and any future key whose
// value resembles a day-record array counts toward the streak.
func (r *LedgerRepo) ActiveOn(ctx context.Context, day calendar.Day) (bool, error) {
	found := false
	err := r.scan(ctx, func(days []scanDay) {
		for _, d := range days {
			if d.Date == day.String() {
				found = true
				return
			}
		}
	})
	return found, err
}

// TotalAverageOn sums the stored day totals recorded for day across every
// store key, 0 when nothing matches.
func (r *LedgerRepo) TotalAverageOn(ctx context.Context, day calendar.Day) (float64, error) {
	var total float64
	err := r.scan(ctx, func(days []scanDay) {
		for _, d := range days {
			if d.Date == day.String() {
				total += looseFloat(d.TotalAverageScore)
			}
		}
	})
	return total, err
}

// scan feeds every store value that parses as a day array to visit.
// Values of any other shape are skipped silently; the scan is
// shape-driven, not key-driven.
func (r *LedgerRepo) scan(ctx context.Context, visit func([]scanDay)) error {
	keys, err := r.store.Keys(ctx)
	if err != nil {
		return fmt.Errorf("activity scan: %w", err)
	}
	for _, key := range keys {
		data, ok, err := r.store.Load(ctx, key)
		if err != nil || !ok {
			continue
		}
		var days []scanDay
		if err := json.Unmarshal(data, &days); err != nil {
			continue
		}
		visit(days)
	}
	return nil
}

// looseFloat mirrors how the scans have always read day totals: numbers
// pass through, numeric strings parse, everything else is 0.
func looseFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		var n wireNumber
		if err := n.UnmarshalJSON([]byte(fmt.Sprintf("%q", t))); err != nil {
			return 0
		}
		return float64(n)
	default:
		return 0
	}
}

func (r *LedgerRepo) warn(ctx context.Context, msg string, category game.Category, err error) {
	if r.logger == nil {
		return
	}
	r.logger.Warn(ctx, msg,
		logger.String("category", category.Key()),
		logger.Error(err),
	)
}
