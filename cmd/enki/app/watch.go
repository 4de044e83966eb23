package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before the
// watcher fires.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports writes to a set of files, coalescing bursts of events.
type Watcher struct {
	files    map[string]bool
	dirs     []string
	debounce time.Duration
	log      *slog.Logger
}

// NewWatcher returns a watcher of files.
func NewWatcher(files []string, debounce time.Duration, log *slog.Logger) (*Watcher, error) {
	w := &Watcher{
		files:    make(map[string]bool, len(files)),
		debounce: debounce,
		log:      log,
	}
	seen := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		w.files[abs] = true
		// Editors replace files on save, so the directory is watched.
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// Run calls onChange after every burst of writes until ctx is done. Calls
// never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create watcher: %w", err)
	}
	defer fsw.Close()
	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("cannot watch %q: %w", dir, err)
		}
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.files[filepath.Clean(event.Name)] || !isWriteOrCreateOp(event.Op) {
				continue
			}
			w.log.Debug("file changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		case <-timer.C:
			onChange()
		case <-ctx.Done():
			return nil
		}
	}
}

func isWriteOrCreateOp(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create)
}
