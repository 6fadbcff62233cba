package types

import (
	"context"
	"errors"
)

// BlobKey names the single blob that holds the achievement list.
const BlobKey = "achievementsData"

// BlobStore is a key-value store of whole blobs. Callers read and replace a
// value in one piece; there are no partial updates.
type BlobStore interface {
	// Get returns the value stored under key. found is false and err is nil
	// when the key has never been written.
	Get(ctx context.Context, key string) (data []byte, found bool, err error)

	// Put replaces the value under key. Readers observe either the old or
	// the new value, never a mix.
	Put(ctx context.Context, key string, data []byte) error

	// Close releases backend resources. Idempotent. Get and Put after Close
	// return ErrStorageUnavailable.
	Close() error
}

// Backend lifecycle errors.
var (
	ErrAlreadyAttached = errors.New("backend is already attached")
	ErrDetached        = errors.New("backend is detached")
)
