// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tables

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/tabq/internal/ingest"
)

// Name returns the n-th table name (0-based) in bijective base 26:
// 0 is "a", 25 is "z", 26 is "aa", 701 is "zz", 702 is "aaa".
func Name(n int) string {
	if n < 0 {
		return ""
	}
	var buf []byte
	for n++; n > 0; n = (n - 1) / 26 {
		buf = append(buf, byte('a'+(n-1)%26))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// Entry is one registered table.
type Entry struct {
	Name     string
	Path     string
	Format   ingest.Format
	LoadedAt time.Time
	Stale    bool
}

// DisplayName is how the table appears in the results title.
func (e Entry) DisplayName() string {
	s := fmt.Sprintf("%s: %s", e.Name, filepath.Base(e.Path))
	if e.Stale {
		s += "*"
	}
	return s
}

// Registry holds the loaded tables. It is safe for concurrent readers; the
// event loop is its only writer.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
}

// NewRegistry returns an empty registry whose next name is "a".
func NewRegistry() *Registry {
	return &Registry{}
}

// NextName returns the name the next successful registration will get.
func (r *Registry) NextName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Name(r.next)
}

// Add records a successful registration under name and advances the
// counter. The path is stored absolute so watcher events can match it.
func (r *Registry) Add(name, path string, format ingest.Format) Entry {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	e := Entry{Name: name, Path: path, Format: format, LoadedAt: time.Now()}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	r.next++
	return e
}

// Entries returns the tables in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of tables.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Names returns every entry's display name in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.DisplayName()
	}
	return out
}

// Title joins the display names for the results panel.
func (r *Registry) Title() string {
	return strings.Join(r.Names(), ", ")
}

// MarkStale flags every table loaded from one of paths and returns their
// names.
func (r *Registry) MarkStale(paths []string) []string {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[filepath.Clean(p)] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var names []string
	for i := range r.entries {
		if set[filepath.Clean(r.entries[i].Path)] && !r.entries[i].Stale {
			r.entries[i].Stale = true
			names = append(names, r.entries[i].Name)
		}
	}
	return names
}
