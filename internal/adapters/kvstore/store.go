// Package kvstore defines the persisted key-value store the engine writes
// ledgers to, with a durable LevelDB backend and an in-memory backend for
// tests.
package kvstore

import "context"

// Store is a durable string-keyed store of opaque values. A Save is a full
// overwrite of the key's value, not a patch; there is no transaction
// support. The engine assumes one logical writer at a time.
type Store interface {
	// Load returns the value for key. A missing key yields ok=false and a
	// nil error: absence is an ordinary state, not a failure.
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Save overwrites the value for key.
	Save(ctx context.Context, key string, value []byte) error

	// Keys lists every key currently in the store. The streak scan walks
	// the whole namespace, so enumeration is part of the contract.
	Keys(ctx context.Context) ([]string, error)

	// Close releases the backing resources.
	Close() error
}
