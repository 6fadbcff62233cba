package types

import (
	"errors"
	"time"
)

// Config holds backend selection and parameters for opening the record store.
type Config struct {
	Backend string        `json:"backend" yaml:"backend"`
	DataDir string        `json:"data_dir" yaml:"data_dir"`
	Latency time.Duration `json:"latency" yaml:"latency"`
	Seed    bool          `json:"seed" yaml:"seed"`
}

// Supported backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultLatency is the simulated round trip applied by the query facade.
const DefaultLatency = 500 * time.Millisecond

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDataDirEmpty   = errors.New("data directory must not be empty")
	ErrLatencyInvalid = errors.New("latency must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendFile:   true,
	BackendSQLite: true,
	BackendMemory: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend != BackendMemory && c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.Latency < 0 {
		return ErrLatencyInvalid
	}
	return nil
}
