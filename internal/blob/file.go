package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

// Compile-time interface check.
var _ types.BlobStore = (*FileStore)(nil)

// fileExt is appended to the key to form the blob's file name.
const fileExt = ".json"

// FileStore stores each key as <dir>/<key>.json.
type FileStore struct {
	dir string

	mu     sync.RWMutex
	closed bool
}

// OpenFileStore returns a FileStore rooted at dir, creating the directory if
// needed.
func OpenFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, types.ErrDataDirEmpty
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", types.ErrStorageUnavailable, dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the blob files.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file that holds key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// Get reads the file for key.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, types.ErrStorageUnavailable
	}

	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: reading %s: %v", types.ErrStorageUnavailable, key, err)
	}
	return data, true, nil
}

// Put atomically replaces the file for key.
func (s *FileStore) Put(ctx context.Context, key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStorageUnavailable
	}

	if err := writeAtomic(s.Path(key), data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", types.ErrStorageUnavailable, key, err)
	}
	return nil
}

// Close marks the store closed. Idempotent.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// checkKey rejects keys that would escape the data directory.
func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid blob key %q", key)
	}
	return nil
}

// writeAtomic writes data to path using the temp-file, fsync, rename
// pattern.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".blob-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
