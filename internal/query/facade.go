// Package query implements the query facade: asynchronous-style CRUD over
// the record store with simulated latency and cache invalidation, shaped
// like the contract a remote API would have.
package query

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

// ErrClosed is returned by operations issued after Close.
var ErrClosed = errors.New("query facade is closed")

// Store is the persistence the facade reads and replaces.
type Store interface {
	Load(ctx context.Context) ([]types.Achievement, error)
	Save(ctx context.Context, recs []types.Achievement) error
}

// DeleteResult is returned by Delete.
type DeleteResult struct {
	ID int `json:"id"`
}

// Facade exposes CRUD over a Store. It is safe for concurrent use, but
// read-modify-write cycles are not serialized: overlapping mutations race
// and the last complete write wins.
type Facade struct {
	store   Store
	latency time.Duration
	logger  *zap.Logger
	metrics *Metrics
	cache   *cache
	flight  singleflight.Group

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// Option configures New.
type Option func(*Facade)

// WithLatency sets the simulated latency applied to every operation.
func WithLatency(d time.Duration) Option {
	return func(f *Facade) { f.latency = d }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(f *Facade) { f.logger = l }
}

// WithMetrics records operation metrics.
func WithMetrics(m *Metrics) Option {
	return func(f *Facade) { f.metrics = m }
}

// WithCacheSize bounds the per-id cache.
func WithCacheSize(n int) Option {
	return func(f *Facade) { f.cache = newCache(n) }
}

// New returns a Facade over store with types.DefaultLatency.
func New(store Store, opts ...Option) *Facade {
	f := &Facade{
		store:   store,
		latency: types.DefaultLatency,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.cache == nil {
		f.cache = newCache(DefaultCacheSize)
	}
	return f
}

// FetchAll returns every record in stored order. Concurrent callers that
// miss the cache share one store read. Failures are *types.FetchError.
func (f *Facade) FetchAll(ctx context.Context) ([]types.Achievement, error) {
	start := time.Now()
	recs, err := f.fetchAll(ctx)
	f.metrics.observe(opFetch, err, time.Since(start))
	return recs, err
}

func (f *Facade) fetchAll(ctx context.Context) ([]types.Achievement, error) {
	if recs, ok := f.cache.getList(); ok {
		f.metrics.lookup("list", true)
		return recs, nil
	}
	f.metrics.lookup("list", false)

	gen := f.cache.generation()
	key := "list:" + strconv.FormatUint(gen, 10)
	recs, err := run(f, ctx, func(ctx context.Context) ([]types.Achievement, error) {
		v, err, _ := f.flight.Do(key, func() (any, error) {
			if err := sleep(ctx, f.latency); err != nil {
				return nil, err
			}
			recs, err := f.store.Load(ctx)
			if err != nil {
				return nil, err
			}
			f.cache.fillList(gen, recs)
			return recs, nil
		})
		if err != nil {
			return nil, err
		}
		return clone(v.([]types.Achievement)), nil
	})
	if err != nil {
		if errors.Is(err, ErrClosed) || isContextErr(err) {
			return nil, err
		}
		f.logger.Error("fetch achievements failed", zap.Error(err))
		return nil, &types.FetchError{Err: err}
	}
	return recs, nil
}

// Get returns the record with id, or types.ErrNotFound.
func (f *Facade) Get(ctx context.Context, id int) (types.Achievement, error) {
	start := time.Now()
	rec, err := f.get(ctx, id)
	f.metrics.observe(opGet, err, time.Since(start))
	return rec, err
}

func (f *Facade) get(ctx context.Context, id int) (types.Achievement, error) {
	if id <= 0 {
		return types.Achievement{}, types.ErrInvalidID
	}
	if rec, ok := f.cache.getByID(id); ok {
		f.metrics.lookup("id", true)
		return rec, nil
	}
	f.metrics.lookup("id", false)

	recs, err := f.fetchAll(ctx)
	if err != nil {
		return types.Achievement{}, err
	}
	for _, rec := range recs {
		if rec.ID == id {
			return rec, nil
		}
	}
	return types.Achievement{}, fmt.Errorf("achievement %d: %w", id, types.ErrNotFound)
}

// Create assigns the next id (max existing id + 1, or 1), appends the
// record, and persists the list. Invalid input is a *types.ValidationError;
// store failures are *types.PersistError.
func (f *Facade) Create(ctx context.Context, in types.AchievementInput) (types.Achievement, error) {
	start := time.Now()
	rec, err := f.create(ctx, in)
	f.metrics.observe(opCreate, err, time.Since(start))
	return rec, err
}

func (f *Facade) create(ctx context.Context, in types.AchievementInput) (types.Achievement, error) {
	if err := in.Validate(); err != nil {
		return types.Achievement{}, err
	}
	return mutate(f, ctx, opCreate, func(ctx context.Context) (types.Achievement, error) {
		recs, err := f.store.Load(ctx)
		if err != nil {
			return types.Achievement{}, err
		}
		rec := in.WithID(NextID(recs))
		if err := f.store.Save(ctx, append(recs, rec)); err != nil {
			return types.Achievement{}, err
		}
		f.cache.invalidateList()
		f.logger.Info("created achievement", zap.Int("id", rec.ID), zap.String("title", rec.Title))
		return rec, nil
	})
}

// Update replaces the record whose id matches rec.ID. When no record has that
// id the store is left untouched and rec is returned unchanged.
func (f *Facade) Update(ctx context.Context, rec types.Achievement) (types.Achievement, error) {
	start := time.Now()
	out, err := f.update(ctx, rec)
	f.metrics.observe(opUpdate, err, time.Since(start))
	return out, err
}

func (f *Facade) update(ctx context.Context, rec types.Achievement) (types.Achievement, error) {
	if err := rec.Validate(); err != nil {
		return types.Achievement{}, err
	}
	return mutate(f, ctx, opUpdate, func(ctx context.Context) (types.Achievement, error) {
		recs, err := f.store.Load(ctx)
		if err != nil {
			return types.Achievement{}, err
		}
		replaced := false
		for i := range recs {
			if recs[i].ID == rec.ID {
				recs[i] = rec
				replaced = true
			}
		}
		if !replaced {
			f.logger.Warn("update of unknown achievement ignored", zap.Int("id", rec.ID))
			f.cache.invalidateID(rec.ID)
			return rec, nil
		}
		if err := f.store.Save(ctx, recs); err != nil {
			return types.Achievement{}, err
		}
		f.cache.invalidateID(rec.ID)
		f.logger.Info("updated achievement", zap.Int("id", rec.ID))
		return rec, nil
	})
}

// Delete removes the record with id. Deleting an absent id is a no-op: it
// writes nothing, so it never fails with a PersistError and leaves the
// store's seeding policy as it was. It still returns DeleteResult{ID: id}.
func (f *Facade) Delete(ctx context.Context, id int) (DeleteResult, error) {
	start := time.Now()
	out, err := f.delete(ctx, id)
	f.metrics.observe(opDelete, err, time.Since(start))
	return out, err
}

func (f *Facade) delete(ctx context.Context, id int) (DeleteResult, error) {
	if id <= 0 {
		return DeleteResult{}, types.ErrInvalidID
	}
	return mutate(f, ctx, opDelete, func(ctx context.Context) (DeleteResult, error) {
		recs, err := f.store.Load(ctx)
		if err != nil {
			return DeleteResult{}, err
		}
		kept := recs[:0]
		for _, rec := range recs {
			if rec.ID != id {
				kept = append(kept, rec)
			}
		}
		if len(kept) == len(recs) {
			f.logger.Debug("delete of unknown achievement ignored", zap.Int("id", id))
			f.cache.invalidateID(id)
			return DeleteResult{ID: id}, nil
		}
		if err := f.store.Save(ctx, kept); err != nil {
			return DeleteResult{}, err
		}
		f.cache.invalidateID(id)
		f.logger.Info("deleted achievement", zap.Int("id", id))
		return DeleteResult{ID: id}, nil
	})
}

// Invalidate drops every cached view. Call it when the blob changed outside
// this facade.
func (f *Facade) Invalidate() {
	f.cache.invalidateAll()
}

// Close rejects new operations and waits for in-flight ones, including
// mutations whose callers stopped waiting. Idempotent.
func (f *Facade) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.wg.Wait()
	return nil
}

// NextID returns max(ids)+1, or 1 for an empty list.
func NextID(recs []types.Achievement) int {
	highest := 0
	for _, rec := range recs {
		if rec.ID > highest {
			highest = rec.ID
		}
	}
	return highest + 1
}

// mutate runs work after the simulated latency on a goroutine detached from
// the caller's cancellation, so a started mutation always completes and
// persists. The caller stops waiting when ctx ends. Store failures become
// *types.PersistError and leave the caches untouched.
func mutate[T any](f *Facade, ctx context.Context, op string, work func(context.Context) (T, error)) (T, error) {
	out, err := run(f, ctx, func(ctx context.Context) (T, error) {
		if err := sleep(ctx, f.latency); err != nil {
			var zero T
			return zero, err
		}
		return work(ctx)
	})
	if err != nil && !errors.Is(err, ErrClosed) && !isContextErr(err) {
		f.logger.Error("persist failed", zap.String("op", op), zap.Error(err))
		var zero T
		return zero, &types.PersistError{Op: op, Err: err}
	}
	return out, err
}

type result[T any] struct {
	val T
	err error
}

// run executes work on a tracked goroutine with a context that keeps ctx's
// values but not its cancellation, and waits for it or for ctx.
func run[T any](f *Facade, ctx context.Context, work func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	f.mu.RLock()
	if f.closed {
		f.mu.RUnlock()
		return zero, ErrClosed
	}
	f.wg.Add(1)
	f.mu.RUnlock()

	done := make(chan result[T], 1)
	detached := context.WithoutCancel(ctx)
	go func() {
		defer f.wg.Done()
		v, err := work(detached)
		done <- result[T]{val: v, err: err}
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-done:
		return r.val, r.err
	}
}

// sleep waits for d or until ctx ends.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
