// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"slices"
	"testing"
)

func TestHistoryRecord(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		commands []string
		want     []string
	}{
		{"trims and skips blanks", 0, []string{"select 1", "   ", "  select 2  "}, []string{"select 2", "select 1"}},
		{"drops oldest past capacity", 2, []string{"one", "two", "three"}, []string{"three", "two"}},
		{"keeps duplicates", 0, []string{"a", "a"}, []string{"a", "a"}},
	}
	for _, tt := range tests {
		h := NewHistory(tt.capacity)
		for _, c := range tt.commands {
			h.Record(c)
		}
		if !slices.Equal(h.entries, tt.want) {
			t.Errorf("%s: entries = %q, want %q", tt.name, h.entries, tt.want)
		}
	}
}

func TestHistoryNextMostRecentFirst(t *testing.T) {
	h := NewHistory(0)
	for _, c := range []string{"q1", "q2", "q3"} {
		h.Record(c)
	}

	var e Editor
	var seen []string
	for i := 0; i < 5; i++ {
		h.Next(&e)
		seen = append(seen, e.String())
		if h.Index() > h.Len()-1 {
			t.Fatalf("Index() = %d past last entry", h.Index())
		}
		if e.Cursor() != e.Len() {
			t.Errorf("cursor = %d, want end of loaded text %d", e.Cursor(), e.Len())
		}
	}
	if want := []string{"q3", "q2", "q1", "q1", "q1"}; !slices.Equal(seen, want) {
		t.Errorf("Next sequence = %q, want %q", seen, want)
	}
}

func TestHistoryPrev(t *testing.T) {
	h := NewHistory(0)
	h.Record("old")
	h.Record("new")

	var e Editor
	h.Next(&e) // loads "new", index 1
	h.Next(&e) // loads "old", index stays 1

	h.Prev(&e)
	if e.String() != "new" || h.Index() != 0 {
		t.Errorf("after Prev: (%q, %d), want (%q, 0)", e.String(), h.Index(), "new")
	}
	h.Prev(&e)
	if e.String() != "" || h.Index() != 0 {
		t.Errorf("after Prev at 0: (%q, %d), want (\"\", 0)", e.String(), h.Index())
	}
}

func TestHistoryEmptyIsNoOp(t *testing.T) {
	h := NewHistory(0)
	var e Editor
	typeString(&e, "draft")

	h.Prev(&e)
	h.Next(&e)
	if e.String() != "draft" || h.Index() != 0 {
		t.Errorf("editor = (%q, %d), want (%q, 0)", e.String(), h.Index(), "draft")
	}
}

func TestHistoryEmptyPrevLeavesFreshEditor(t *testing.T) {
	h := NewHistory(0)
	var e Editor

	h.Prev(&e)
	if e.String() != "" || e.Cursor() != 0 {
		t.Errorf("editor = (%q, %d), want unset", e.String(), e.Cursor())
	}
}
