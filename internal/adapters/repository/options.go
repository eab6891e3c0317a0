package repository

import "github.com/lumokids/playledger/pkg/logger"

// Option applies a configuration option to the LedgerRepo.
type Option func(*LedgerRepo)

// WithLogger sets the logger used to report recovery from malformed
// stored values. Without one, recovery is silent.
func WithLogger(l logger.Logger) Option {
	return func(r *LedgerRepo) {
		if l != nil {
			r.logger = l
		}
	}
}
