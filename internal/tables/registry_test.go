// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tables

import (
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/jeranaias/tabq/internal/ingest"
)

func TestName(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{-1, ""},
		{0, "a"},
		{1, "b"},
		{25, "z"},
		{26, "aa"},
		{27, "ab"},
		{51, "az"},
		{52, "ba"},
		{701, "zz"},
		{702, "aaa"},
	}
	for _, tt := range tests {
		if got := Name(tt.n); got != tt.want {
			t.Errorf("Name(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestNameUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 2000; i++ {
		n := Name(i)
		if seen[n] {
			t.Fatalf("duplicate name %q at %d", n, i)
		}
		seen[n] = true
	}
}

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()
	if got := r.NextName(); got != "a" {
		t.Errorf("NextName() on empty registry = %q, want %q", got, "a")
	}
	if r.Len() != 0 || r.Title() != "" {
		t.Errorf("empty registry: Len() = %d, Title() = %q", r.Len(), r.Title())
	}

	r.Add(r.NextName(), "data.csv", ingest.FormatCSV)
	if got := r.NextName(); got != "b" {
		t.Errorf("NextName() = %q, want %q", got, "b")
	}
	r.Add(r.NextName(), filepath.Join("sub", "people.json"), ingest.FormatJSON)
	if got := r.NextName(); got != "c" {
		t.Errorf("NextName() = %q, want %q", got, "c")
	}

	entries := r.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() has %d entries, want 2", len(entries))
	}
	if entries[0].Name != "a" || !filepath.IsAbs(entries[0].Path) || entries[0].LoadedAt.IsZero() {
		t.Errorf("entries[0] = %+v, want name a, absolute path and load time", entries[0])
	}
	if entries[1].Format != ingest.FormatJSON {
		t.Errorf("entries[1].Format = %v, want json", entries[1].Format)
	}
	if want := "a: data.csv, b: people.json"; r.Title() != want {
		t.Errorf("Title() = %q, want %q", r.Title(), want)
	}
}

func TestRegistryNameNotConsumedWithoutAdd(t *testing.T) {
	r := NewRegistry()
	_ = r.NextName()
	_ = r.NextName()
	if got := r.NextName(); got != "a" {
		t.Errorf("NextName() = %q, want %q", got, "a")
	}
}

func TestRegistryMarkStale(t *testing.T) {
	r := NewRegistry()
	a := r.Add("a", "x.csv", ingest.FormatCSV)
	r.Add("b", "y.csv", ingest.FormatCSV)

	if names := r.MarkStale([]string{a.Path}); !slices.Equal(names, []string{"a"}) {
		t.Errorf("MarkStale() = %q, want [a]", names)
	}
	if want := "a: x.csv*, b: y.csv"; r.Title() != want {
		t.Errorf("Title() = %q, want %q", r.Title(), want)
	}

	if names := r.MarkStale([]string{a.Path}); len(names) != 0 {
		t.Errorf("MarkStale() on stale table = %q, want none", names)
	}
	if names := r.MarkStale([]string{"/nowhere.csv"}); len(names) != 0 {
		t.Errorf("MarkStale() on unknown path = %q, want none", names)
	}
}

func TestRegistryConcurrentReaders(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = r.Title()
				_ = r.NextName()
			}
		}()
	}
	for i := 0; i < 50; i++ {
		r.Add(r.NextName(), "f.csv", ingest.FormatCSV)
	}
	wg.Wait()
	if r.Len() != 50 {
		t.Errorf("Len() = %d, want 50", r.Len())
	}
}
