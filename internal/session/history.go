// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "strings"

// History is the most-recent-first log of submitted commands.
//
// The traversal index starts at 0, meaning "fresh". Next loads the entry at
// the index and then advances it, saturating at Len()-1. Prev steps back and
// loads, or clears the editor once the index is back at 0.
type History struct {
	entries  []string
	index    int
	capacity int
}

// NewHistory returns a history holding at most capacity entries. A capacity
// of zero or less means unbounded.
func NewHistory(capacity int) *History {
	return &History{capacity: capacity}
}

// Record pushes the trimmed command to the front. Blank commands are ignored.
func (h *History) Record(command string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return
	}
	h.entries = append(h.entries, "")
	copy(h.entries[1:], h.entries)
	h.entries[0] = command
	if h.capacity > 0 && len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}
}

// Next loads the entry at the traversal index into ed and moves the index
// toward the oldest entry.
func (h *History) Next(ed *Editor) {
	if len(h.entries) == 0 {
		return
	}
	ed.Load(h.entries[h.index])
	h.index = min(h.index+1, len(h.entries)-1)
}

// Prev moves the index toward the newest entry and loads it. At index 0 the
// editor is cleared instead.
func (h *History) Prev(ed *Editor) {
	if len(h.entries) == 0 {
		return
	}
	if h.index == 0 {
		ed.Clear()
		return
	}
	h.index--
	ed.Load(h.entries[h.index])
}

// Reset returns the traversal index to 0.
func (h *History) Reset() { h.index = 0 }

// Index returns the traversal index.
func (h *History) Index() int { return h.index }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }
