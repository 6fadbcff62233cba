package blob

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReportsExternalWrites(t *testing.T) {
	s, err := OpenFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan fsnotify.Op, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, "watched", func(op fsnotify.Op) { changes <- op })
	}()

	// fsnotify registers the watch asynchronously; retry the write until an
	// event arrives.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
loop:
	for {
		select {
		case <-changes:
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(s.Path("watched"), []byte("[]"), 0o644))
		case <-deadline:
			t.Fatal("no change event received")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchIgnoresOtherKeys(t *testing.T) {
	s, err := OpenFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	changes := make(chan fsnotify.Op, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, "watched", func(op fsnotify.Op) { changes <- op })
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(s.Path("other"), []byte("[]"), 0o644))

	require.NoError(t, <-done)
	assert.Empty(t, changes)
}

func TestWatchRejectsBadKey(t *testing.T) {
	s, err := OpenFileStore(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, s.Watch(context.Background(), "../x", func(fsnotify.Op) {}))
}
