// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/tabq/internal/session"
	"github.com/jeranaias/tabq/internal/ui/styles"
	"github.com/jeranaias/tabq/internal/util"
)

// Fixed parts of the layout, in lines.
const (
	commandHeight = 3
	statusHeight  = 1
	minResults    = 3
)

// Snapshot is everything a frame shows.
type Snapshot struct {
	Table    session.Table
	Viewport session.Viewport

	// Text and Cursor are the command-line editor state.
	Text   []rune
	Cursor int

	// Title is the joined table display names.
	Title string

	// ColumnWidth is the fixed cell budget per grid column.
	ColumnWidth int

	Driver string
	Stale  int

	// Busy is true while a dispatch runs; Spinner is its current frame.
	Busy    bool
	Spinner string

	// Overlay replaces the results body when set (help, file browser).
	Overlay      string
	OverlayTitle string

	// Help is the short key reference shown in the status bar.
	Help string
}

// Geometry is the size of the results window for a frame.
type Geometry struct {
	ResultsHeight int
	InnerWidth    int
	VisibleRows   int
	VisibleCols   int
}

// Measure derives the results geometry for a frame of width x height.
func Measure(width, height, columnWidth int) Geometry {
	resultsHeight := max(minResults, height-commandHeight-statusHeight)
	inner := max(1, width-2)
	return Geometry{
		ResultsHeight: resultsHeight,
		InnerWidth:    inner,
		VisibleRows:   session.VisibleRows(resultsHeight),
		VisibleCols:   session.VisibleCols(inner, columnWidth),
	}
}

// Frame renders the whole screen.
func Frame(s Snapshot, theme *styles.Theme, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	geo := Measure(width, height, s.ColumnWidth)

	var results []string
	title := s.Title
	if s.Overlay != "" {
		title = s.OverlayTitle
		results = strings.Split(s.Overlay, "\n")
	} else {
		win := s.Viewport.Window(s.Table, geo.VisibleRows, geo.VisibleCols)
		results = Grid(s.Table, win, theme, s.ColumnWidth)
	}
	if title == "" {
		title = "results"
	}

	cmdTitle := "command line"
	if s.Busy {
		cmdTitle = theme.Spinner.Render(s.Spinner) + " running"
	}

	parts := []string{
		Panel(title, results, theme, width, geo.ResultsHeight),
		Panel(cmdTitle, []string{CommandLine(s.Text, s.Cursor, theme, geo.InnerWidth)}, theme, width, commandHeight),
		Status(s, geo, theme, width),
	}
	return strings.Join(parts, "\n")
}

// Panel draws a rounded box of exactly width x height with title set into
// the top border. Body lines are clipped and padded to fit.
func Panel(title string, body []string, theme *styles.Theme, width, height int) string {
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(theme.Border)
	inner := max(0, width-2)

	label := ""
	if title != "" && inner > 4 {
		label = " " + ansi.Truncate(title, inner-3, util.Ellipsis) + " "
	}
	fill := max(0, inner-1-ansi.StringWidth(label))
	lines := make([]string, 0, height)
	lines = append(lines, edge.Render(border.TopLeft+border.Top)+theme.PanelTitle.Render(label)+
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight))

	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(body) {
			line = fitLine(body[i], inner)
		} else {
			line = strings.Repeat(" ", inner)
		}
		lines = append(lines, edge.Render(border.Left)+line+edge.Render(border.Right))
	}
	lines = append(lines, edge.Render(border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight))
	return strings.Join(lines, "\n")
}

// fitLine clips or pads a possibly styled line to width cells.
func fitLine(line string, width int) string {
	w := ansi.StringWidth(line)
	if w > width {
		line = ansi.Truncate(line, width, "")
		w = ansi.StringWidth(line)
	}
	return line + strings.Repeat(" ", max(0, width-w))
}
