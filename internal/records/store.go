// Package records implements the record store: the canonical achievement
// list held in a single blob of a types.BlobStore, read and replaced whole.
package records

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

// InitializationPolicy records how the store found its blob when opened.
type InitializationPolicy int

const (
	// Uninitialized: no blob existed and seeding was disabled.
	Uninitialized InitializationPolicy = iota
	// Seeded: no blob existed, so the default dataset was written.
	Seeded
	// UserModified: the blob already existed, or this store has saved.
	UserModified
)

func (p InitializationPolicy) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Seeded:
		return "seeded"
	case UserModified:
		return "user_modified"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Store owns the achievement blob for one process.
type Store struct {
	blobs  types.BlobStore
	key    string
	logger *zap.Logger

	mu     sync.RWMutex
	policy InitializationPolicy
}

// Option configures Open.
type Option func(*options)

type options struct {
	key    string
	seed   []types.Achievement
	noSeed bool
	logger *zap.Logger
}

// WithKey stores the list under key instead of types.BlobKey.
func WithKey(key string) Option {
	return func(o *options) { o.key = key }
}

// WithSeed replaces the first-run dataset.
func WithSeed(recs []types.Achievement) Option {
	return func(o *options) { o.seed = recs }
}

// WithoutSeed disables first-run seeding.
func WithoutSeed() Option {
	return func(o *options) { o.noSeed = true }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Open decides the initialization policy once. When the blob is absent and
// seeding is enabled, the seed dataset is written before Open returns. A
// present blob, even an empty list, is never re-seeded.
func Open(ctx context.Context, blobs types.BlobStore, opts ...Option) (*Store, error) {
	o := options{key: types.BlobKey, seed: defaultSeed, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{blobs: blobs, key: o.key, logger: o.logger}

	_, found, err := blobs.Get(ctx, o.key)
	if err != nil {
		return nil, unavailable("checking for existing blob", err)
	}

	switch {
	case found:
		s.policy = UserModified
	case o.noSeed:
		s.policy = Uninitialized
	default:
		data, err := encode(o.seed)
		if err != nil {
			return nil, err
		}
		if err := blobs.Put(ctx, o.key, data); err != nil {
			return nil, unavailable("writing seed dataset", err)
		}
		s.policy = Seeded
		s.logger.Info("seeded achievement store",
			zap.String("key", o.key), zap.Int("records", len(o.seed)))
	}
	return s, nil
}

// Policy reports how the store was initialized.
func (s *Store) Policy() InitializationPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// Load returns every record in stored order. It returns an empty slice when
// no blob exists. Backend failures are ErrStorageUnavailable; an unparseable
// blob is ErrStorageCorrupt.
func (s *Store) Load(ctx context.Context) ([]types.Achievement, error) {
	data, found, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		return nil, unavailable("loading achievements", err)
	}
	if !found {
		return []types.Achievement{}, nil
	}
	recs, err := decode(data)
	if err != nil {
		s.logger.Error("achievement blob is corrupt", zap.String("key", s.key), zap.Error(err))
		return nil, err
	}
	return recs, nil
}

// Save replaces the whole blob with recs.
func (s *Store) Save(ctx context.Context, recs []types.Achievement) error {
	data, err := encode(recs)
	if err != nil {
		return err
	}
	if err := s.blobs.Put(ctx, s.key, data); err != nil {
		return unavailable("saving achievements", err)
	}

	s.mu.Lock()
	s.policy = UserModified
	s.mu.Unlock()
	return nil
}

// unavailable wraps a backend failure in ErrStorageUnavailable unless it
// already carries a storage sentinel or is a context error.
func unavailable(op string, err error) error {
	switch {
	case errors.Is(err, types.ErrStorageUnavailable),
		errors.Is(err, types.ErrStorageCorrupt),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %v", op, types.ErrStorageUnavailable, err)
	}
}
