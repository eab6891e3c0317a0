package dedupe

// defaultWindow bounds the remembered session IDs. One device submits a
// handful of sessions a day; the window exists to cap memory, not to
// provide long-term idempotency.
const defaultWindow = 1024

// Option applies a configuration option to the session guard.
type Option func(*sessionGuard)

// WithWindowSize sets how many session IDs the guard remembers before the
// oldest is forgotten. Non-positive values keep the default.
func WithWindowSize(n int) Option {
	return func(g *sessionGuard) {
		if n > 0 {
			g.maxSize = n
		}
	}
}
