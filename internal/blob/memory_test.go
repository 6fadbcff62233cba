package blob

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

func TestMemoryStoreCopiesValues(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", in))
	in[0] = 'z'

	out, found, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "abc", string(out))

	out[1] = 'z'
	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
	assert.Equal(t, 1, m.Puts())
}

func TestMemoryStoreFailureHooks(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	boom := errors.New("boom")

	m.SetFailures(boom, nil)
	_, _, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, m.Put(ctx, "k", []byte("v")))

	m.SetFailures(nil, boom)
	assert.ErrorIs(t, m.Put(ctx, "k", []byte("w")), boom)
	got, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got), "failed put leaves the old value")
}

func TestMemoryStoreClose(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, _, err := m.Get(context.Background(), "k")
	assert.ErrorIs(t, err, types.ErrStorageUnavailable)
	assert.ErrorIs(t, m.Put(context.Background(), "k", nil), types.ErrStorageUnavailable)
}
