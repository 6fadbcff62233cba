package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/achievements/internal/blob"
	"github.com/mesh-intelligence/achievements/internal/query"
	"github.com/mesh-intelligence/achievements/internal/records"
	"github.com/mesh-intelligence/achievements/pkg/sqlite"
	"github.com/mesh-intelligence/achievements/pkg/types"
)

// session is an opened backend with its record store and facade.
type session struct {
	blobs  types.BlobStore
	file   *blob.FileStore
	store  *records.Store
	facade *query.Facade
}

// openBlobs opens the blob backend named by cfg.Backend.
func openBlobs(cfg types.Config) (types.BlobStore, *blob.FileStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	switch cfg.Backend {
	case types.BackendMemory:
		return blob.NewMemoryStore(), nil, nil
	case types.BackendSQLite:
		b := sqlite.NewBackend()
		if err := b.Attach(cfg); err != nil {
			return nil, nil, sysErr(fmt.Errorf("attach sqlite backend: %w", err))
		}
		return b, nil, nil
	default:
		fs, err := blob.OpenFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, sysErr(fmt.Errorf("open data dir: %w", err))
		}
		return fs, fs, nil
	}
}

// open attaches the configured backend and builds a facade over it. The
// caller must Close the session.
func (a *app) open(ctx context.Context, opts ...query.Option) (*session, error) {
	blobs, file, err := openBlobs(a.settings.Config)
	if err != nil {
		return nil, err
	}

	recOpts := []records.Option{records.WithLogger(a.logger)}
	if !a.settings.Seed {
		recOpts = append(recOpts, records.WithoutSeed())
	}
	store, err := records.Open(ctx, blobs, recOpts...)
	if err != nil {
		_ = blobs.Close()
		return nil, fmt.Errorf("open records: %w", err)
	}
	a.logger.Debug("records opened",
		zap.String("backend", a.settings.Backend),
		zap.String("data_dir", a.settings.DataDir),
		zap.Stringer("policy", store.Policy()))

	base := []query.Option{
		query.WithLatency(a.settings.Latency),
		query.WithLogger(a.logger),
	}
	return &session{
		blobs:  blobs,
		file:   file,
		store:  store,
		facade: query.New(store, append(base, opts...)...),
	}, nil
}

// Close drains the facade and releases the backend.
func (s *session) Close() error {
	return errors.Join(s.facade.Close(), s.blobs.Close())
}
