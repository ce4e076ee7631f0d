// Package watcher reloads the corpus when its file changes on disk.
//
// The parent directory is watched rather than the file itself, so editors
// that save by writing a temp file and renaming it over the original are
// still seen. Bursts of events are debounced into one notification, and
// notifications are throttled by a token bucket.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/litarchive/internal/core/ports/driven"
	"github.com/custodia-labs/litarchive/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.CorpusWatcher = (*Watcher)(nil)

// ErrNoPath is returned when there is no file to watch, e.g. for the
// bundled sample corpus.
var ErrNoPath = errors.New("watcher: no corpus file to watch")

// Default timings.
const (
	DefaultDebounce    = 250 * time.Millisecond
	DefaultMinInterval = time.Second
)

// Options configures a Watcher.
type Options struct {
	// Debounce is how long the file must be quiet before a reload.
	Debounce time.Duration

	// MinInterval is the minimum spacing between reloads.
	MinInterval time.Duration
}

// Watcher notifies when one file changes.
type Watcher struct {
	path    string
	opts    Options
	limiter *rate.Limiter

	mu      sync.Mutex
	reloads int
}

// New creates a watcher for path. Zero options take the defaults.
func New(path string, opts Options) (*Watcher, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = DefaultMinInterval
	}
	return &Watcher{
		path:    abs,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(opts.MinInterval), 1),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Reloads returns how many times onChange has been called.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

// Watch blocks until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Watch(ctx context.Context, onChange func(ctx context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watcher: watching %s: %w", dir, err)
	}
	logger.Info("Watching %s for changes", w.path)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Corpus event: %s", event)
			pending = true
			timer.Reset(w.opts.Debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			w.mu.Lock()
			w.reloads++
			w.mu.Unlock()
			if err := onChange(ctx); err != nil {
				logger.Warn("Reload rejected, keeping previous corpus: %v", err)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
