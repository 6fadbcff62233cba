package blob

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange whenever the file holding key is created, written,
// replaced, or removed, including by other processes. It watches the
// directory rather than the file because Put replaces the file by rename.
// Watch blocks until ctx is done, returning nil, or until the watcher
// fails.
func (s *FileStore) Watch(ctx context.Context, key string, onChange func(fsnotify.Op)) error {
	if err := checkKey(key); err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("watching %s: %w", s.dir, err)
	}

	target := filepath.Base(s.Path(key))
	const mask = fsnotify.Create | fsnotify.Write | fsnotify.Rename | fsnotify.Remove
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != target || ev.Op&mask == 0 {
				continue
			}
			onChange(ev.Op)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", s.dir, err)
		}
	}
}
