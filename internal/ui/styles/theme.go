// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the console.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// PANELS
	// ==========================================================================

	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	// Border is the color of panel borders, drawn by the renderer
	Border lipgloss.TerminalColor

	// ==========================================================================
	// GRID
	// ==========================================================================

	GridHeader lipgloss.Style
	GridCell   lipgloss.Style
	GridNull   lipgloss.Style
	GridBorder lipgloss.Style
	Diagnostic lipgloss.Style
	Stale      lipgloss.Style

	// ==========================================================================
	// COMMAND LINE
	// ==========================================================================

	Prompt lipgloss.Style
	Input  lipgloss.Style
	Caret  lipgloss.Style
	// Highlight enables SQL token colors in the command line
	Highlight bool

	SyntaxKeyword  lipgloss.Style
	SyntaxString   lipgloss.Style
	SyntaxNumber   lipgloss.Style
	SyntaxComment  lipgloss.Style
	SyntaxFunction lipgloss.Style
	SyntaxOperator lipgloss.Style

	// ==========================================================================
	// STATUS AND OVERLAYS
	// ==========================================================================

	Status      lipgloss.Style
	StatusLabel lipgloss.Style
	StatusValue lipgloss.Style
	Spinner     lipgloss.Style
	Modal       lipgloss.Style
}

// NewTheme creates a theme for the current terminal.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
		Highlight:    true,
	}
	t.initStyles()
	return t
}

// Plain returns a theme that adds no color. Reverse video is kept for the
// caret so it stays visible.
func Plain() *Theme {
	t := &Theme{ColorProfile: termenv.Ascii}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	if t.ColorProfile == termenv.Ascii {
		t.initPlain()
		return
	}

	t.Border = Cyan
	t.Panel = lipgloss.NewStyle().Foreground(TextPrimary)
	t.PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(Purple)

	t.GridHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Background(SurfaceDim)
	t.GridCell = lipgloss.NewStyle().Foreground(TextPrimary)
	t.GridNull = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.GridBorder = lipgloss.NewStyle().Foreground(Overlay)
	t.Diagnostic = lipgloss.NewStyle().Foreground(Rose)
	t.Stale = lipgloss.NewStyle().Foreground(Amber)

	t.Prompt = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.Input = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Caret = lipgloss.NewStyle().Reverse(true).Underline(true)

	t.SyntaxKeyword = lipgloss.NewStyle().Foreground(SyntaxKeyword).Bold(true)
	t.SyntaxString = lipgloss.NewStyle().Foreground(SyntaxString)
	t.SyntaxNumber = lipgloss.NewStyle().Foreground(SyntaxNumber)
	t.SyntaxComment = lipgloss.NewStyle().Foreground(SyntaxComment).Italic(true)
	t.SyntaxFunction = lipgloss.NewStyle().Foreground(SyntaxFunction)
	t.SyntaxOperator = lipgloss.NewStyle().Foreground(SyntaxOperator)

	t.Status = lipgloss.NewStyle().Background(SurfaceDim).Foreground(TextSecondary)
	t.StatusLabel = lipgloss.NewStyle().Foreground(TextMuted)
	t.StatusValue = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
	t.Spinner = lipgloss.NewStyle().Foreground(Amber)
	t.Modal = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)
}

func (t *Theme) initPlain() {
	plain := lipgloss.NewStyle()
	t.Border = lipgloss.NoColor{}
	t.Panel, t.PanelTitle = plain, plain
	t.GridHeader, t.GridCell, t.GridNull, t.GridBorder = plain, plain, plain, plain
	t.Diagnostic, t.Stale = plain, plain
	t.Prompt, t.Input = plain, plain
	t.Caret = lipgloss.NewStyle().Reverse(true)
	t.SyntaxKeyword, t.SyntaxString, t.SyntaxNumber = plain, plain, plain
	t.SyntaxComment, t.SyntaxFunction, t.SyntaxOperator = plain, plain, plain
	t.Status, t.StatusLabel, t.StatusValue, t.Spinner = plain, plain, plain, plain
	t.Modal = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).Padding(0, 1)
}
