// Tests for the SQLite blob backend.
package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

func attachTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	err := b.Attach(config)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "achievements.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("achievements.db not created")
	}
	if got := b.Path(); got != dbPath {
		t.Errorf("Path() = %q, want %q", got, dbPath)
	}

	err = b.Attach(config)
	if err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}

	b.Detach()
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{Backend: types.BackendSQLite}), types.ErrDataDirEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{DataDir: t.TempDir()}), types.ErrBackendEmpty)
}

func TestBackend_Detach(t *testing.T) {
	b, _ := attachTemp(t)

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	ctx := context.Background()
	_, _, err := b.Get(ctx, types.BlobKey)
	assert.ErrorIs(t, err, types.ErrStorageUnavailable)
	assert.ErrorIs(t, err, types.ErrDetached)
	err = b.Put(ctx, types.BlobKey, []byte("[]"))
	assert.ErrorIs(t, err, types.ErrStorageUnavailable)
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.Equal(t, "", b.Path())
}

func TestBackend_GetMissing(t *testing.T) {
	b, _ := attachTemp(t)

	data, found, err := b.Get(context.Background(), types.BlobKey)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data)
}

func TestBackend_PutReplaces(t *testing.T) {
	b, _ := attachTemp(t)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, types.BlobKey, []byte(`[{"id":1}]`)))
	require.NoError(t, b.Put(ctx, types.BlobKey, []byte(`[{"id":1},{"id":2}]`)))

	data, found, err := b.Get(ctx, types.BlobKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[{"id":1},{"id":2}]`, string(data))
}

func TestBackend_EmptyValueIsFound(t *testing.T) {
	b, _ := attachTemp(t)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "empty", nil))
	data, found, err := b.Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, found, "an empty value is still present")
	assert.Empty(t, data)
}

func TestBackend_DataSurvivesReattach(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}
	ctx := context.Background()

	first := NewBackend()
	require.NoError(t, first.Attach(cfg))
	require.NoError(t, first.Put(ctx, types.BlobKey, []byte(`[]`)))
	require.NoError(t, first.Detach())

	second := NewBackend()
	require.NoError(t, second.Attach(cfg))
	defer second.Detach()

	data, found, err := second.Get(ctx, types.BlobKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(data))
}

func TestBackend_OneRowPerKey(t *testing.T) {
	b, dir := attachTemp(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Put(ctx, "a", []byte("x")))
	}
	require.NoError(t, b.Put(ctx, "b", []byte("y")))
	require.NoError(t, b.Detach())

	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM blobs").Scan(&count))
	assert.Equal(t, 2, count)
}
