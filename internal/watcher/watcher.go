// Package watcher triggers a callback when files land in the screenshot folder.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

// DefaultDebounce is how long the folder must stay quiet before the callback runs.
const DefaultDebounce = 2 * time.Second

// Watcher calls OnChange once per burst of file events in a folder.
type Watcher struct {
	onChange func(ctx context.Context)
	debounce time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a Watcher that calls onChange after file activity settles.
func New(onChange func(ctx context.Context), opts ...Option) *Watcher {
	w := &Watcher{onChange: onChange, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func relevant(ev fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Rename)
}

// Watch blocks until ctx is done, calling OnChange after each burst of
// create, write or rename events in dir. Subdirectories are not watched.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	logger := contextutil.LoggerFromContext(ctx).With("folder", dir)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = fw.Close()
	}()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch folder: %w", err)
	}
	logger.InfoContext(ctx, "watching folder", "debounce", w.debounce)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			logger.DebugContext(ctx, "folder changed")
			w.onChange(ctx)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.WarnContext(ctx, "watch error", "error", err)
		}
	}
}

// Follow watches the folder returned by resolve and re-resolves it whenever
// a preferences change arrives, moving the watch when the folder changes.
// An empty folder means nothing is watched until the next change.
func (w *Watcher) Follow(ctx context.Context, resolve func(ctx context.Context) (string, error), changes <-chan storage.Change) error {
	logger := contextutil.LoggerFromContext(ctx)

	for {
		dir, err := resolve(ctx)
		if err != nil {
			logger.WarnContext(ctx, "failed to resolve watch folder", "error", err)
		}

		watchCtx, cancel := context.WithCancel(ctx)
		var done chan error
		if dir != "" {
			done = make(chan error, 1)
			go func() {
				done <- w.Watch(watchCtx, dir)
			}()
		}

		stop := func() {
			cancel()
			if done != nil {
				<-done
			}
		}

	wait:
		for {
			select {
			case <-ctx.Done():
				stop()
				return nil
			case err := <-done:
				done = nil
				if err != nil {
					logger.WarnContext(ctx, "folder watch stopped", "folder", dir, "error", err)
				}
			case c, ok := <-changes:
				if !ok {
					changes = nil
					continue
				}
				if c.Topic != storage.TopicPreferences {
					continue
				}
				next, err := resolve(ctx)
				if err != nil || next == dir {
					continue
				}
				logger.InfoContext(ctx, "watch folder changed", "from", dir, "to", next)
				stop()
				break wait
			}
		}
	}
}
