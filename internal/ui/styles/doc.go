// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for tabq.

All colors use Lip Gloss AdaptiveColor so the console reads well on both
light and dark terminals.

# Color System (colors.go)

  - Cyan: panel borders and the command prompt
  - Purple: column headers and focused titles
  - Rose: diagnostics
  - Amber: stale table markers and the busy spinner

SQL tokens in the command line use the Syntax* colors (Catppuccin
Latte/Mocha).

# Theme (theme.go)

Theme bundles every lipgloss.Style the renderer needs. NewTheme detects the
terminal with termenv; Plain returns an uncolored theme for tests and dumb
terminals.

# Usage

	theme := styles.NewTheme()
	title := theme.PanelTitle.Render("a: data.csv")
*/
package styles
