// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/lumokids/playledger/internal/domain/game"
)

// LedgerDependencies defines the interface for ledger exports.
type LedgerDependencies interface {
	ExportLedger(ctx context.Context, gameID string) ([]byte, game.Category, error)
}

// LedgersHandler serves raw per-game histories.
type LedgersHandler struct {
	deps LedgerDependencies
}

// NewLedgersHandler creates a new ledgers handler.
func NewLedgersHandler(deps LedgerDependencies) *LedgersHandler {
	return &LedgersHandler{deps: deps}
}

// HandleGetLedger handles GET /ledgers/{game} requests. The response is
// the stored wire format, day records newest first; an unknown game
// yields an empty array, not a 404.
func (h *LedgersHandler) HandleGetLedger(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_ledger"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /ledgers/
	path := strings.TrimPrefix(r.URL.Path, "/ledgers/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	data, _, err := h.deps.ExportLedger(r.Context(), path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(data)
}
