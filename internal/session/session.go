// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "strings"

// =============================================================================
// SESSION
// =============================================================================

// Options configures a Session.
type Options struct {
	// HistoryCapacity bounds the history; 0 means unbounded.
	HistoryCapacity int

	// ScrollStep is the unit row step.
	ScrollStep int

	// PageMultiplier scales ScrollStep for page up/down.
	PageMultiplier int

	// ClampScroll bounds offsets by the table size.
	ClampScroll bool
}

// DefaultOptions mirrors the default configuration.
func DefaultOptions() Options {
	return Options{
		HistoryCapacity: 1000,
		ScrollStep:      2,
		PageMultiplier:  3,
		ClampScroll:     true,
	}
}

// Effect tells the event loop what to do after Apply.
type Effect int

const (
	EffectNone Effect = iota
	EffectQuit
	EffectSubmit
)

// Session aggregates the editor, history, viewport and display table.
type Session struct {
	Editor   Editor
	History  *History
	Viewport Viewport
	Table    Table

	opts Options
}

// New returns an empty session.
func New(opts Options) *Session {
	if opts.ScrollStep <= 0 {
		opts.ScrollStep = 1
	}
	if opts.PageMultiplier <= 0 {
		opts.PageMultiplier = 1
	}
	return &Session{
		History:  NewHistory(opts.HistoryCapacity),
		Viewport: Viewport{Clamp: opts.ClampScroll},
		opts:     opts,
	}
}

// PageStep returns the row step used by page up/down.
func (s *Session) PageStep() int {
	return s.opts.ScrollStep * s.opts.PageMultiplier
}

// Apply performs every action that does not need the dispatcher. Submit and
// Quit are reported back as effects for the loop to carry out.
func (s *Session) Apply(in Input) Effect {
	rows, cols := len(s.Table.Rows), s.Table.Width()

	switch in.Kind {
	case InputQuit:
		return EffectQuit
	case InputSubmit:
		return EffectSubmit
	case InputScrollUp:
		s.Viewport.ScrollUp(s.opts.ScrollStep)
	case InputScrollDown:
		s.Viewport.ScrollDown(s.opts.ScrollStep, rows)
	case InputPageUp:
		s.Viewport.ScrollUp(s.PageStep())
	case InputPageDown:
		s.Viewport.ScrollDown(s.PageStep(), rows)
	case InputScrollLeft, InputHome:
		s.Viewport.ScrollLeft(1)
	case InputScrollRight, InputEnd:
		s.Viewport.ScrollRight(1, cols)
	case InputHistoryNext:
		s.History.Next(&s.Editor)
	case InputHistoryPrev:
		s.History.Prev(&s.Editor)
	case InputCursorLeft:
		s.Editor.MoveLeft()
	case InputCursorRight:
		s.Editor.MoveRight()
	case InputDelete:
		s.Editor.DeleteBeforeCursor()
	case InputInsert:
		s.Editor.Insert(in.Char)
	}
	return EffectNone
}

// Complete finishes a non-blank submission: the command is recorded, the
// editor cleared, the display replaced, and the viewport and traversal index
// reset. Blank submissions must not reach Complete.
func (s *Session) Complete(submitted string, t Table) {
	if strings.TrimSpace(submitted) != "" {
		s.History.Record(submitted)
		s.Editor.Clear()
	}
	s.Table = t
	s.Viewport.Reset()
	s.History.Reset()
}

// Show replaces the display without touching the editor or history. It is
// used for startup outcomes that were not typed by the user.
func (s *Session) Show(t Table) {
	s.Table = t
	s.Viewport.Reset()
}
