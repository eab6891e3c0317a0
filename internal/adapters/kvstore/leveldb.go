package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDBStore is the durable Store backend, one LevelDB database per
// user device.
type LevelDBStore struct {
	db *leveldb.DB
}

// NewLevelDBStore opens (or creates) the database under path.
func NewLevelDBStore(path string, opts ...Option) (*LevelDBStore, error) {
	cfg := newOptions(opts...)
	db, err := leveldb.OpenFile(path, nil)
	if err != nil && cfg.recoverCorrupt {
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	return &LevelDBStore{db: db}, nil
}

// Load returns the stored value for key, reporting absence without error.
func (s *LevelDBStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}
	value, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %q: %w", ErrLoad, key, err)
	}
	return value, true, nil
}

// Save overwrites the value for key.
func (s *LevelDBStore) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	if err := s.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrSave, key, err)
	}
	return nil
}

// Keys walks the whole key namespace in store order.
func (s *LevelDBStore) Keys(ctx context.Context) ([]string, error) {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	var keys []string
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("keys: %w", err)
		}
		keys = append(keys, string(iter.Key()))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return keys, nil
}

// Close closes the underlying database.
func (s *LevelDBStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
