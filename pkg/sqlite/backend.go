// Package sqlite provides the public API for the SQLite blob backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/achievements/internal/sqlite"
	"github.com/mesh-intelligence/achievements/pkg/types"
)

// Backend is a SQLite-backed types.BlobStore with an Attach/Detach lifecycle.
type Backend interface {
	types.BlobStore
	Attach(config types.Config) error
	Detach() error
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "/var/lib/achievements",
//	})
//	defer backend.Detach()
func NewBackend() Backend {
	return sqlite.NewBackend()
}
