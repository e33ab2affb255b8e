// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tabq/internal/session"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the console key bindings.
type KeyMap struct {
	Quit        key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	HistoryNext key.Binding
	HistoryPrev key.Binding
	CursorLeft  key.Binding
	CursorRight key.Binding
	Submit      key.Binding
	Delete      key.Binding
	Help        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("shift+up", "ctrl+up"),
			key.WithHelp("S-↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("shift+down", "ctrl+down"),
			key.WithHelp("S-↓", "scroll down"),
		),
		ScrollLeft: key.NewBinding(
			key.WithKeys("shift+left", "ctrl+left"),
			key.WithHelp("S-←", "scroll left"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("shift+right", "ctrl+right"),
			key.WithHelp("S-→", "scroll right"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "column left"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("End", "column right"),
		),
		HistoryNext: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "older command"),
		),
		HistoryPrev: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "newer command"),
		),
		CursorLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "cursor left"),
		),
		CursorRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "cursor right"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "run"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("Bksp", "delete"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ScrollDown, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped by concern.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ScrollUp, k.ScrollDown, k.ScrollLeft, k.ScrollRight},
		{k.PageUp, k.PageDown, k.Home, k.End},
		{k.HistoryNext, k.HistoryPrev, k.CursorLeft, k.CursorRight},
		{k.Submit, k.Delete, k.Help, k.Quit},
	}
}

// =============================================================================
// KEY RESOLUTION
// =============================================================================

// Inputs resolves a key press into session inputs. A paste or a burst of
// runes yields one Insert per printable rune; an unbound key yields a single
// Ignored input.
func (k KeyMap) Inputs(msg tea.KeyMsg) []session.Input {
	switch {
	case key.Matches(msg, k.Quit):
		return one(session.InputQuit)
	case key.Matches(msg, k.ScrollUp):
		return one(session.InputScrollUp)
	case key.Matches(msg, k.ScrollDown):
		return one(session.InputScrollDown)
	case key.Matches(msg, k.ScrollLeft):
		return one(session.InputScrollLeft)
	case key.Matches(msg, k.ScrollRight):
		return one(session.InputScrollRight)
	case key.Matches(msg, k.PageUp):
		return one(session.InputPageUp)
	case key.Matches(msg, k.PageDown):
		return one(session.InputPageDown)
	case key.Matches(msg, k.Home):
		return one(session.InputHome)
	case key.Matches(msg, k.End):
		return one(session.InputEnd)
	case key.Matches(msg, k.HistoryNext):
		return one(session.InputHistoryNext)
	case key.Matches(msg, k.HistoryPrev):
		return one(session.InputHistoryPrev)
	case key.Matches(msg, k.CursorLeft):
		return one(session.InputCursorLeft)
	case key.Matches(msg, k.CursorRight):
		return one(session.InputCursorRight)
	case key.Matches(msg, k.Submit):
		return one(session.InputSubmit)
	case key.Matches(msg, k.Delete):
		return one(session.InputDelete)
	}

	switch msg.Type {
	case tea.KeySpace:
		return []session.Input{session.Insert(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			break
		}
		var ins []session.Input
		for _, r := range msg.Runes {
			if unicode.IsPrint(r) {
				ins = append(ins, session.Insert(r))
			}
		}
		if len(ins) > 0 {
			return ins
		}
	}
	return one(session.InputIgnored)
}

func one(kind session.InputKind) []session.Input {
	return []session.Input{session.Key(kind)}
}
