// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Purple - column headers, focused titles
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - panel borders, prompt
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Rose - diagnostics
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - stale markers, busy state
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE AND TEXT
// =============================================================================

// SurfaceDim - header row and status line background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - grid separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// TextPrimary - cell text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - status labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - null cells, hints
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// SYNTAX HIGHLIGHTING (Catppuccin Latte/Mocha)
// =============================================================================

var SyntaxKeyword = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}  // Mauve
var SyntaxString = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"}   // Green
var SyntaxNumber = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"}   // Peach
var SyntaxComment = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"}  // Overlay0
var SyntaxFunction = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // Blue
var SyntaxOperator = lipgloss.AdaptiveColor{Light: "#04A5E5", Dark: "#89DCEB"} // Sky

// =============================================================================
// BUSY INDICATOR
// =============================================================================

// BusySpinner is shown in the command panel title while a dispatch runs.
var BusySpinner = spinner.Spinner{
	Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	FPS:    spinner.MiniDot.FPS,
}
