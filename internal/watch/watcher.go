// Package watch follows a file on disk and re-reads it whenever it changes.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"corrodedrsvp/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// LoadFunc re-reads the followed file.
type LoadFunc func(ctx context.Context, path string) (string, error)

// Event carries the file's new contents, or the error from reading it.
type Event struct {
	Path string
	Text string
	Err  error
}

// Stats tracks watcher activity for debugging.
type Stats struct {
	Writes        int
	Creates       int
	Reloads       int
	Errors        int
	LastEventTime time.Time
}

// Watcher follows one file. Its parent directory is watched so editors that
// replace the file on save are still seen.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	path        string
	load        LoadFunc
	debounceDur time.Duration
	pending     time.Time
	events      chan Event
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	stats       Stats
	log         *logging.Logger
}

// New creates a Watcher for path. debounce coalesces bursts of writes.
func New(path string, debounce time.Duration, load LoadFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if load == nil {
		load = readFile
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{
		watcher:     w,
		path:        abs,
		load:        load,
		debounceDur: debounce,
		events:      make(chan Event, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		log:         logging.Get(logging.CategoryWatch).With("path", abs),
	}, nil
}

func readFile(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}

// Path returns the absolute path being followed.
func (w *Watcher) Path() string { return w.path }

// Start begins watching. It is non-blocking; events arrive on the returned
// channel, which is closed when the watcher stops.
func (w *Watcher) Start(ctx context.Context) (<-chan Event, error) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return w.events, nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return nil, err
	}
	logging.Watch("following %s", w.path)

	go w.run(ctx)
	return w.events, nil
}

// Stop stops the watcher and waits for cleanup.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.log.Error("error closing watcher: %v", err)
	}
	logging.Watch("stopped following %s", w.path)
}

// Stats returns a copy of the activity counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.events)

	ticker := time.NewTicker(w.debounceDur / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case event.Has(fsnotify.Create):
		w.stats.Creates++
	case event.Has(fsnotify.Write):
		w.stats.Writes++
	default:
		return // removes, renames and chmods wait for the following create
	}
	w.stats.LastEventTime = time.Now()
	w.pending = w.stats.LastEventTime
}

// flush reloads the file once events have settled past the debounce window.
func (w *Watcher) flush(ctx context.Context, now time.Time) {
	w.mu.Lock()
	if w.pending.IsZero() || now.Sub(w.pending) < w.debounceDur {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.stats.Reloads++
	w.mu.Unlock()

	text, err := w.load(ctx, w.path)
	if err != nil {
		w.log.Warn("reload failed: %v", err)
	} else {
		w.log.Info("reloaded (%d bytes)", len(text))
	}

	ev := Event{Path: w.path, Text: text, Err: err}
	select {
	case w.events <- ev:
	case <-ctx.Done():
	case <-w.stopCh:
	}
}
