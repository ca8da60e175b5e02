package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sab110/Sharepoint-RAG/internal/logger"
)

// DefaultDebounce is the quiet period after the last event before notify runs.
const DefaultDebounce = 500 * time.Millisecond

type watcher struct {
	fs       *fsnotify.Watcher
	root     string
	debounce time.Duration
	once     sync.Once
}

func (w *watcher) close() error {
	var err error
	w.once.Do(func() { err = w.fs.Close() })
	return err
}

// Watch reports changes below the root until ctx is cancelled. notify is
// called once per burst of events, after DefaultDebounce of quiet.
func (r *Repository) Watch(ctx context.Context, notify func()) error {
	return r.watch(ctx, DefaultDebounce, notify)
}

func (r *Repository) watch(ctx context.Context, debounce time.Duration, notify func()) error {
	if err := r.checkRoot(); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	w := &watcher{fs: fsw, root: r.root, debounce: debounce}
	defer w.close()

	if err := w.addTree(r.root); err != nil {
		return err
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return fmt.Errorf("filesystem: repository closed")
	}
	r.watchers[w] = struct{}{}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.watchers, w)
		r.mu.Unlock()
	}()

	logger.Info("Watching %s for changes", r.root)
	return w.run(ctx, notify)
}

// addTree watches dir and every visible directory below it.
func (w *watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Directories can vanish between the event and the walk.
			if p == dir {
				return fmt.Errorf("watch %s: %w", p, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *watcher) run(ctx context.Context, notify func()) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Filesystem watch error: %v", err)

		case <-timer.C:
			notify()
		}
	}
}

// handleEvent reports whether the event can change the listing. New
// directories are watched as they appear.
func (w *watcher) handleEvent(event fsnotify.Event) bool {
	if isHidden(filepath.Base(event.Name)) {
		return false
	}

	// Chmod alone never changes content or the listing.
	if event.Op == fsnotify.Chmod {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				logger.Warn("Cannot watch new directory %s: %v", event.Name, err)
			}
		}
	}

	logger.Debug("Filesystem change: %s", event)
	return true
}
