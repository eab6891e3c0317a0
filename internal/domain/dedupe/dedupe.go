// Package dedupe guards against duplicate session submissions. Games can
// emit the same end-of-session outcome twice (a re-render, a double tap on
// the finish button); submissions carrying a session id are recorded at
// most once.
package dedupe

import (
	"context"
	"sync"
)

// Deduper tracks seen session IDs for at-most-once recording.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it
	// if not. Returns true when id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so a submission can be retried. Used when an id
	// was marked seen but the ledger write then failed.
	Unrecord(ctx context.Context, id string)

	// Size is the number of IDs currently remembered.
	Size() int64
}

// sessionGuard implements Deduper with a bounded FIFO window: once the
// window fills, the oldest remembered id is forgotten. The window only
// needs to cover the burst of retries around one session's end, so a
// modest bound is plenty.
type sessionGuard struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // ring buffer of ids in arrival order
	nextIdx int
	maxSize int
}

// NewSessionGuard creates a bounded in-memory deduper.
func NewSessionGuard(opts ...Option) Deduper {
	g := &sessionGuard{maxSize: defaultWindow}
	for _, opt := range opts {
		opt(g)
	}
	g.seen = make(map[string]struct{}, g.maxSize)
	g.order = make([]string, g.maxSize)
	return g
}

func (g *sessionGuard) SeenAndRecord(_ context.Context, id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.seen[id]; ok {
		return true
	}

	// Overwrite the oldest slot once the window wraps.
	if old := g.order[g.nextIdx]; old != "" {
		delete(g.seen, old)
	}
	g.order[g.nextIdx] = id
	g.nextIdx = (g.nextIdx + 1) % g.maxSize
	g.seen[id] = struct{}{}
	return false
}

func (g *sessionGuard) Unrecord(_ context.Context, id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.seen[id]; !ok {
		return
	}
	delete(g.seen, id)
	for i, v := range g.order {
		if v == id {
			g.order[i] = ""
			break
		}
	}
}

func (g *sessionGuard) Size() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return int64(len(g.seen))
}
