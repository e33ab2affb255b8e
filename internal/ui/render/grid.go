// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jeranaias/tabq/internal/session"
	"github.com/jeranaias/tabq/internal/ui/styles"
	"github.com/jeranaias/tabq/internal/util"
)

// nullText matches how the dispatcher renders SQL NULL.
const nullText = "null"

// Grid renders the results body: the header row, then the windowed data
// rows. A diagnostic table renders as its message.
func Grid(t session.Table, win session.Window, theme *styles.Theme, columnWidth int) []string {
	if t.IsEmpty() {
		return nil
	}
	if t.IsDiagnostic() {
		var lines []string
		for _, row := range win.Rows {
			lines = append(lines, theme.Diagnostic.Render(util.CellText(strings.Join(row, " "))))
		}
		return lines
	}
	if len(win.Headers) == 0 {
		// scrolled past the last column
		return nil
	}
	if columnWidth <= 0 {
		columnWidth = session.DefaultColumnWidth
	}
	cellWidth := max(1, columnWidth-1)

	headers := fitCells(win.Headers, cellWidth)
	rows := make([][]string, len(win.Rows))
	for i, row := range win.Rows {
		rows[i] = fitCells(row, cellWidth)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(true).
		BorderStyle(theme.GridBorder).
		Wrap(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.GridHeader.Width(cellWidth)
			case row >= 0 && row < len(win.Rows) && col < len(win.Rows[row]) && win.Rows[row][col] == nullText:
				return theme.GridNull.Width(cellWidth)
			default:
				return theme.GridCell.Width(cellWidth)
			}
		})
	tbl = tbl.Headers(headers...).Rows(rows...)

	out := tbl.Render()
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func fitCells(cells []string, width int) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = util.FitWidth(util.CellText(c), width)
	}
	return out
}
