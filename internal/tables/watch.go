// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tables

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// =============================================================================
// SOURCE WATCHER
// =============================================================================

// DefaultDebounce is how long a path must be quiet before it is reported.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports source files that changed after they were loaded.
// Editors often write a file in several steps, so changes are debounced and
// batches are rate limited before they reach Changes.
type Watcher struct {
	fs       *fsnotify.Watcher
	log      zerolog.Logger
	debounce time.Duration
	limiter  *rate.Limiter
	changes  chan []string

	mu      sync.Mutex
	files   map[string]bool      // watched file -> true
	dirs    map[string]int       // watched directory -> file count
	pending map[string]time.Time // changed file -> last event

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher starts a watcher. A debounce of zero uses DefaultDebounce.
func NewWatcher(debounce time.Duration, log zerolog.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fs:       fs,
		log:      log,
		debounce: debounce,
		limiter:  rate.NewLimiter(rate.Every(debounce), 1),
		changes:  make(chan []string, 8),
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Add starts watching path. The parent directory is watched so that
// rename-over saves are still seen.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[abs] {
		return nil
	}
	if w.dirs[dir] == 0 {
		if err := w.fs.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	return nil
}

// Changes delivers batches of changed absolute paths, sorted.
func (w *Watcher) Changes() <-chan []string {
	return w.changes
}

// Close stops the watcher and closes Changes.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.changes)

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.touch(event.Name)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watch error")

		case now := <-ticker.C:
			batch := w.due(now)
			if len(batch) == 0 {
				continue
			}
			if !w.limiter.Allow() {
				w.requeue(batch, now)
				continue
			}
			w.log.Debug().Strs("paths", batch).Msg("source files changed")
			select {
			case w.changes <- batch:
			case <-w.ctx.Done():
				return
			}
		}
	}
}

func (w *Watcher) touch(name string) {
	abs := filepath.Clean(name)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[abs] {
		w.pending[abs] = time.Now()
	}
}

// due removes and returns the pending paths that have been quiet long
// enough.
func (w *Watcher) due(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			out = append(out, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(out)
	return out
}

func (w *Watcher) requeue(paths []string, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range paths {
		if _, ok := w.pending[p]; !ok {
			w.pending[p] = now.Add(-w.debounce)
		}
	}
}
