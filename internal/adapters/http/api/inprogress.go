// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// InProgressDependencies defines the interface for in-progress match
// snapshots.
type InProgressDependencies interface {
	UpsertOutcome(ctx context.Context, gameID string, ordinal, correct, incorrect, totalQuestions int) (Outcome, error)
}

// InProgressHandler handles the per-answer upsert flow: the same match
// ordinal is rewritten after every answer until the session completes.
type InProgressHandler struct {
	deps InProgressDependencies
}

// NewInProgressHandler creates a new in-progress handler.
func NewInProgressHandler(deps InProgressDependencies) *InProgressHandler {
	return &InProgressHandler{deps: deps}
}

// HandlePutInProgress handles PUT /matches/in-progress requests.
func (h *InProgressHandler) HandlePutInProgress(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_in_progress"
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	out, err := h.deps.UpsertOutcome(r.Context(), req.Game, req.Match, req.Correct, req.Incorrect, req.TotalQuestions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{
		Status:       "recorded",
		Game:         out.Category.Key(),
		Date:         out.Date.String(),
		Match:        out.Match.Ordinal,
		Score:        out.Match.NetScore,
		AverageScore: out.Match.AverageScore,
	})
}
