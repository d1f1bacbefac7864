package app

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/bundlescope/internal/ports"
)

// DefaultWatchInterval is the polling interval of a SchemaWatcher.
const DefaultWatchInterval = time.Second

// WatchOptions configures a SchemaWatcher.
type WatchOptions struct {
	Path     string
	Interval time.Duration
	// LoadOnStart loads the document before the first poll.
	LoadOnStart bool
}

// SchemaWatcher reloads a schema registry document when its modification
// time changes. A document that fails to load is logged and the previous
// registry stays published.
type SchemaWatcher struct {
	app         *Bundlescope
	path        string
	interval    time.Duration
	loadOnStart bool
	stopCh      chan struct{}
	stopOnce    sync.Once

	mu      sync.Mutex
	lastMod time.Time
	reloads int
}

// NewSchemaWatcher creates a watcher for opts.Path.
func (b *Bundlescope) NewSchemaWatcher(opts WatchOptions) *SchemaWatcher {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	return &SchemaWatcher{
		app:         b,
		path:        opts.Path,
		interval:    interval,
		loadOnStart: opts.LoadOnStart,
		stopCh:      make(chan struct{}),
	}
}

// Start polls until ctx is done or Stop is called.
func (w *SchemaWatcher) Start(ctx context.Context) error {
	if mod, err := w.app.fs.ModTime(w.path); err == nil {
		w.mu.Lock()
		w.lastMod = mod
		w.mu.Unlock()
	}
	if w.loadOnStart {
		w.reload(ctx)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.app.logger.Info(ctx, "watching schemas", ports.F("source", w.path), ports.F("interval", w.interval.String()))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// Stop ends a running Start. It is safe to call more than once.
func (w *SchemaWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// Reloads returns the number of successful reloads.
func (w *SchemaWatcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

// poll reloads the document if it changed since the last poll and reports
// whether a reload was attempted.
func (w *SchemaWatcher) poll(ctx context.Context) bool {
	mod, err := w.app.fs.ModTime(w.path)
	if err != nil {
		w.app.logger.Warn(ctx, "schema document unavailable", ports.F("source", w.path), ports.Err(err))
		return false
	}

	w.mu.Lock()
	changed := mod.After(w.lastMod)
	if changed {
		w.lastMod = mod
	}
	w.mu.Unlock()

	if !changed {
		return false
	}
	w.reload(ctx)
	return true
}

func (w *SchemaWatcher) reload(ctx context.Context) {
	start := time.Now()
	if _, err := w.app.LoadSchemas(ctx, w.path); err != nil {
		w.app.logger.Warn(ctx, "schema reload failed, keeping previous registry", ports.F("source", w.path))
		return
	}
	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()
	w.app.logger.Debug(ctx, "schema reload done", ports.F("elapsed", time.Since(start).Round(time.Millisecond).String()))
}
