package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/assort/internal/core"
	"github.com/fsnotify/fsnotify"
)

// DefaultSettleDelay is how long a file must stay quiet before it is reloaded.
const DefaultSettleDelay = 250 * time.Millisecond

// ReloadFunc is called after every reload attempt.
// err is nil when the new catalog was installed.
type ReloadFunc func(cat *core.Catalog, err error)

// Watcher reloads a catalog file into a store whenever it changes.
// The parent directory is watched so editors that replace the file by
// rename are handled.
type Watcher struct {
	file     File
	store    *core.Store
	settle   time.Duration
	onReload ReloadFunc
	fsw      *fsnotify.Watcher
}

// NewWatcher creates a watcher for f. onReload may be nil.
func NewWatcher(f File, store *core.Store, settle time.Duration, onReload ReloadFunc) (*Watcher, error) {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(f.Path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(f.Path), err)
	}

	return &Watcher{
		file:     f,
		store:    store,
		settle:   settle,
		onReload: onReload,
		fsw:      fsw,
	}, nil
}

// Run processes events until ctx is cancelled, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	target := filepath.Clean(w.file.Path)
	timer := time.NewTimer(w.settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Restart the settle window on every burst of writes.
			timer.Reset(w.settle)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("catalog watcher error", "path", target, "error", err)

		case <-timer.C:
			w.reload(ctx)
		}
	}
}

// reload loads the file and swaps it in. On failure the previous snapshot
// stays live.
func (w *Watcher) reload(ctx context.Context) {
	cat, err := w.file.Load(ctx)
	if err != nil {
		slog.Error("catalog reload failed, keeping previous snapshot",
			"path", w.file.Path,
			"error", err,
		)
	} else {
		prev := w.store.Swap(cat)
		if prev != nil && prev.SnapshotID() == cat.SnapshotID() {
			slog.Debug("catalog reloaded without changes", "path", w.file.Path)
		}
	}

	if w.onReload != nil {
		w.onReload(cat, err)
	}
}
