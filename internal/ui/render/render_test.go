// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tabq/internal/session"
	"github.com/jeranaias/tabq/internal/ui/styles"
)

func numbered(rows, cols int) session.Table {
	t := session.Table{}
	for c := 0; c < cols; c++ {
		t.Headers = append(t.Headers, fmt.Sprintf("h%d", c))
	}
	for r := 0; r < rows; r++ {
		row := make([]string, cols)
		for c := range row {
			row[c] = fmt.Sprintf("r%dc%d", r, c)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func plainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestMeasure(t *testing.T) {
	geo := Measure(62, 12, 10)
	assert.Equal(t, 8, geo.ResultsHeight)
	assert.Equal(t, 60, geo.InnerWidth)
	assert.Equal(t, 5, geo.VisibleRows)
	assert.Equal(t, 6, geo.VisibleCols)

	tiny := Measure(1, 1, 10)
	assert.Equal(t, 1, tiny.VisibleRows)
	assert.Equal(t, 1, tiny.VisibleCols)
}

func TestFrameGeometry(t *testing.T) {
	s := Snapshot{
		Table:       numbered(30, 9),
		Text:        []rune("select"),
		Cursor:      6,
		Title:       "a: data.csv, b: people.json",
		ColumnWidth: 10,
		Driver:      "sqlite",
	}
	out := Frame(s, styles.Plain(), 62, 12)
	lines := plainLines(out)
	require.Len(t, lines, 12)
	for i, l := range lines {
		assert.Equal(t, 62, ansi.StringWidth(l), "line %d: %q", i, l)
	}

	assert.Contains(t, lines[0], "a: data.csv, b: people.json")
	assert.Contains(t, lines[1], "h0")
	assert.Contains(t, lines[1], "h5")
	assert.NotContains(t, lines[1], "h6", "only six columns fit")
	assert.Contains(t, lines[2], "r0c0")
	assert.Contains(t, lines[6], "r4c0")
	assert.NotContains(t, out, "r5c0", "only five rows fit")
	assert.Contains(t, lines[9], "> select")
	assert.Contains(t, lines[11], "rows 1-5 of 30")
	assert.Contains(t, lines[11], "sqlite")
}

func TestFrameFollowsViewport(t *testing.T) {
	s := Snapshot{
		Table:       numbered(30, 9),
		Viewport:    session.Viewport{RowOffset: 10, ColOffset: 2},
		ColumnWidth: 10,
	}
	out := ansi.Strip(Frame(s, styles.Plain(), 62, 12))
	assert.Contains(t, out, "h2")
	assert.NotContains(t, out, "h1 ")
	assert.Contains(t, out, "r10c2")
	assert.Contains(t, out, "r14c7")
	assert.NotContains(t, out, "r9c2")
	assert.NotContains(t, out, "r15c2")
	assert.Contains(t, out, "rows 11-15 of 30 · cols 3-8 of 9")
}

func TestFrameDiagnostic(t *testing.T) {
	s := Snapshot{Table: session.Diagnostic(`parse error: near "SELEC": syntax error`)}
	out := ansi.Strip(Frame(s, styles.Plain(), 80, 10))
	assert.Contains(t, out, `parse error: near "SELEC": syntax error`)
	assert.Contains(t, out, "message")
	assert.Contains(t, out, "results", "untitled panel")
}

func TestFrameOverlayAndBusy(t *testing.T) {
	s := Snapshot{
		Table:        numbered(3, 2),
		Overlay:      "press F1 to close",
		OverlayTitle: "help",
		Busy:         true,
		Spinner:      "*",
	}
	out := ansi.Strip(Frame(s, styles.Plain(), 60, 12))
	assert.Contains(t, out, "help")
	assert.Contains(t, out, "press F1 to close")
	assert.NotContains(t, out, "r0c0")
	assert.Contains(t, out, "* running")
}

func TestFrameZeroSize(t *testing.T) {
	assert.Empty(t, Frame(Snapshot{}, styles.Plain(), 0, 10))
	assert.Empty(t, Frame(Snapshot{}, styles.Plain(), 10, 0))
}

func TestGrid(t *testing.T) {
	theme := styles.Plain()

	assert.Nil(t, Grid(session.Table{}, session.Window{}, theme, 10), "cleared table draws nothing")

	tbl := session.Table{
		Headers: []string{"name", "note"},
		Rows:    [][]string{{"ann", "null"}, {"a very long value here", "two\nlines"}},
	}
	v := session.Viewport{}
	lines := Grid(tbl, v.Window(tbl, 10, 10), theme, 10)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "name")
	assert.Contains(t, lines[1], "null")
	assert.Contains(t, lines[2], "a very l…")
	assert.Contains(t, lines[2], "two lines")
	for _, l := range lines {
		assert.Equal(t, 19, ansi.StringWidth(l), "two cells of 9 and one separator: %q", l)
	}

	past := session.Viewport{ColOffset: 5}
	assert.Nil(t, Grid(tbl, past.Window(tbl, 10, 10), theme, 10))
}

func TestCommandLineCaret(t *testing.T) {
	theme := styles.Plain()
	tests := []struct {
		name   string
		text   string
		cursor int
		width  int
		want   string
	}{
		{"empty shows placeholder", "", 0, 20, ">  "},
		{"end of line", "ab", 2, 20, "> ab "},
		{"mid line", "abc", 1, 20, "> abc"},
		{"start", "abc", 0, 20, "> abc"},
		{"scrolls to caret", "abcdefghijklmnop", 16, 8, "> lmnop "},
		{"cursor clamped", "ab", 9, 20, "> ab "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(CommandLine([]rune(tt.text), tt.cursor, theme, tt.width))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuneStyles(t *testing.T) {
	theme := styles.NewTheme()
	classes := runeStyles([]rune("SELECT 1 FROM a"), theme)
	require.Len(t, classes, 15)
	for i := 0; i < 6; i++ {
		assert.Equal(t, classKeyword, classes[i], "rune %d", i)
	}
	assert.Equal(t, classNumber, classes[7])
	assert.Equal(t, classKeyword, classes[9])

	off := styles.Plain()
	for _, c := range runeStyles([]rune("SELECT 1"), off) {
		assert.Equal(t, classPlain, c)
	}
}

func TestSummary(t *testing.T) {
	geo := Geometry{VisibleRows: 20, VisibleCols: 3}
	tests := []struct {
		name  string
		table session.Table
		view  session.Viewport
		want  string
	}{
		{"cleared", session.Table{}, session.Viewport{}, "no results"},
		{"diagnostic", session.Diagnostic("x"), session.Viewport{}, "message"},
		{"no rows", session.Table{Headers: []string{"a", "b"}}, session.Viewport{}, "0 rows · 2 cols"},
		{"top", numbered(1234, 7), session.Viewport{}, "rows 1-20 of 1,234 · cols 1-3 of 7"},
		{"tail", numbered(1234, 7), session.Viewport{RowOffset: 1230, ColOffset: 6}, "rows 1,231-1,234 of 1,234 · cols 7-7 of 7"},
		{"past end", numbered(5, 2), session.Viewport{RowOffset: 9}, "rows - of 5 · cols 1-2 of 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.table, tt.view, geo))
		})
	}
}

func TestStatusStaleAndHelp(t *testing.T) {
	s := Snapshot{Stale: 2, Help: "F1 help"}
	out := ansi.Strip(Status(s, Geometry{}, styles.Plain(), 60))
	assert.Contains(t, out, "2 changed on disk")
	assert.True(t, strings.HasSuffix(strings.TrimRight(out, " "), "F1 help"))
	assert.Equal(t, 60, ansi.StringWidth(out))
}
