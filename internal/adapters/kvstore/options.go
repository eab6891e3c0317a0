package kvstore

// Option applies a configuration option to a store backend.
type Option func(*options)

type options struct {
	recoverCorrupt bool
}

func newOptions(opts ...Option) options {
	cfg := options{recoverCorrupt: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithRecovery controls whether an unreadable LevelDB directory is
// repaired on open. Enabled by default: a wrong displayed number beats a
// service that cannot start.
func WithRecovery(enabled bool) Option {
	return func(o *options) {
		o.recoverCorrupt = enabled
	}
}
