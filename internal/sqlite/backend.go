// Package sqlite implements a SQLite blob backend for the achievements log.
// Each named blob is one row of the blobs table; Put replaces the row inside
// a transaction so readers see the old or the new value, never a mix.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

// Compile-time interface check: Backend must implement BlobStore.
var _ types.BlobStore = (*Backend)(nil)

// Backend implements types.BlobStore on a SQLite database file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens (or creates) the database in config.DataDir and applies the
// schema. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", types.ErrStorageUnavailable, dataDir, err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", types.ErrStorageUnavailable, dbPath, err)
	}
	// One connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("%w: applying schema: %v", types.ErrStorageUnavailable, err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent. After Detach, Get and Put return
// ErrStorageUnavailable.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		if err != nil {
			return err
		}
	}
	return nil
}

// Close is Detach, satisfying types.BlobStore.
func (b *Backend) Close() error {
	return b.Detach()
}

// Path returns the database file, or "" when detached.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return ""
	}
	return filepath.Join(b.config.DataDir, dbFileName)
}

// Get reads the blob stored under key.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, false, fmt.Errorf("%w: %w", types.ErrStorageUnavailable, types.ErrDetached)
	}

	var data []byte
	err := b.db.QueryRowContext(ctx, "SELECT value FROM blobs WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, false, fmt.Errorf("%w: reading %s: %v", types.ErrStorageUnavailable, key, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, true, nil
}

// Put replaces the blob stored under key.
func (b *Backend) Put(ctx context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return fmt.Errorf("%w: %w", types.ErrStorageUnavailable, types.ErrDetached)
	}
	if data == nil {
		data = []byte{}
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: beginning transaction: %v", types.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: writing %s: %v", types.ErrStorageUnavailable, key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing %s: %v", types.ErrStorageUnavailable, key, err)
	}
	return nil
}
