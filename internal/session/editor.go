// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// Editor is the command line buffer. The cursor is a rune index in
// [0, Len()].
type Editor struct {
	text   []rune
	cursor int
}

// Insert places r at the cursor and advances the cursor past it.
func (e *Editor) Insert(r rune) {
	e.text = append(e.text, 0)
	copy(e.text[e.cursor+1:], e.text[e.cursor:])
	e.text[e.cursor] = r
	e.cursor++
}

// DeleteBeforeCursor removes the rune left of the cursor. No-op at 0.
func (e *Editor) DeleteBeforeCursor() {
	if e.cursor == 0 {
		return
	}
	e.text = append(e.text[:e.cursor-1], e.text[e.cursor:]...)
	e.cursor--
}

// MoveLeft moves the cursor one rune left, stopping at 0.
func (e *Editor) MoveLeft() {
	e.cursor = max(0, e.cursor-1)
}

// MoveRight moves the cursor one rune right. The right bound is the last
// character, not the end-of-line slot; only a history load parks the cursor
// at Len().
func (e *Editor) MoveRight() {
	if len(e.text) == 0 {
		return
	}
	e.cursor = min(len(e.text)-1, e.cursor+1)
}

// Clear empties the buffer and resets the cursor.
func (e *Editor) Clear() {
	e.text = e.text[:0]
	e.cursor = 0
}

// Load replaces the buffer with s and parks the cursor at the end.
func (e *Editor) Load(s string) {
	e.text = append(e.text[:0], []rune(s)...)
	e.cursor = len(e.text)
}

// String returns the buffer contents.
func (e *Editor) String() string { return string(e.text) }

// Runes returns a copy of the buffer.
func (e *Editor) Runes() []rune {
	out := make([]rune, len(e.text))
	copy(out, e.text)
	return out
}

// Len returns the number of runes in the buffer.
func (e *Editor) Len() int { return len(e.text) }

// Cursor returns the cursor position.
func (e *Editor) Cursor() int { return e.cursor }
