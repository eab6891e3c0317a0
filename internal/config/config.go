// Package config defines process configuration and its loading.
//
// Conventions:
// - Defaults come from New; file and env layers only override.
// - External errors are wrapped via this package's sentinel kinds.
package config

import "errors"

// Store backend names accepted in store_backend.
const (
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// DataDir is where the LevelDB store lives.
	DataDir string `koanf:"data_dir"`

	// StoreBackend selects the store implementation: leveldb or memory.
	// Memory keeps nothing across restarts; it exists for demos and
	// tests.
	StoreBackend string `koanf:"store_backend"`

	// DedupeWindow bounds the duplicate-session guard.
	DedupeWindow int `koanf:"dedupe_window"`

	// Timezone is an IANA zone name for calendar day bucketing. Empty
	// means the system's local zone, which is what the games' users
	// almost always want.
	Timezone string `koanf:"timezone"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":8090",
		DataDir:      "data/progress",
		StoreBackend: BackendLevelDB,
		DedupeWindow: 1024,
		Timezone:     "",
	}
}

// Validate checks invariants the layers cannot express.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.Join(ErrInvalidConfig, errors.New("addr must not be empty"))
	}
	switch c.StoreBackend {
	case BackendLevelDB, BackendMemory:
	default:
		return errors.Join(ErrInvalidConfig, errors.New("store_backend must be leveldb or memory"))
	}
	if c.StoreBackend == BackendLevelDB && c.DataDir == "" {
		return errors.Join(ErrInvalidConfig, errors.New("data_dir must not be empty for the leveldb backend"))
	}
	return nil
}
