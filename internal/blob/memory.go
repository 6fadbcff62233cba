package blob

import (
	"context"
	"sync"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

// Compile-time interface check.
var _ types.BlobStore = (*MemoryStore)(nil)

// MemoryStore keeps blobs in a map. FailGet and FailPut, when set, are
// returned by the next and every following Get or Put; tests use them to
// simulate a broken backend.
type MemoryStore struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	closed  bool
	puts    int
	FailGet error
	FailPut error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, false, types.ErrStorageUnavailable
	}
	if m.FailGet != nil {
		return nil, false, m.FailGet
	}
	data, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Put stores a copy of data.
func (m *MemoryStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return types.ErrStorageUnavailable
	}
	if m.FailPut != nil {
		return m.FailPut
	}
	m.blobs[key] = append([]byte(nil), data...)
	m.puts++
	return nil
}

// SetFailures installs the error hooks under the store lock.
func (m *MemoryStore) SetFailures(getErr, putErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailGet = getErr
	m.FailPut = putErr
}

// Puts returns the number of successful Put calls.
func (m *MemoryStore) Puts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}

// Close marks the store closed. Idempotent.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
