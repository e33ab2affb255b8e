// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// DefaultColumnWidth is the cell budget of one grid column.
const DefaultColumnWidth = 24

// VisibleRows returns how many data rows fit in a results frame of the given
// height. Three lines go to the frame borders and the header row.
func VisibleRows(height int) int {
	return max(1, height-3)
}

// VisibleCols returns how many fixed-width columns fit in width.
func VisibleCols(width, columnWidth int) int {
	if columnWidth <= 0 {
		columnWidth = DefaultColumnWidth
	}
	return max(1, width/columnWidth)
}

// Viewport holds the scroll offsets into the display table. Offsets only
// reset on submission, never on resize.
type Viewport struct {
	RowOffset int
	ColOffset int

	// Clamp keeps offsets at or below the last row/column. Without it,
	// downward and rightward scrolling is unbounded.
	Clamp bool
}

// ScrollUp moves the row window up by step, stopping at 0.
func (v *Viewport) ScrollUp(step int) {
	v.RowOffset = saturatingSub(v.RowOffset, step)
}

// ScrollDown moves the row window down by step. total is the row count and
// only matters when clamping.
func (v *Viewport) ScrollDown(step, total int) {
	v.RowOffset = v.advance(v.RowOffset, step, total)
}

// ScrollLeft moves the column window left by step, stopping at 0.
func (v *Viewport) ScrollLeft(step int) {
	v.ColOffset = saturatingSub(v.ColOffset, step)
}

// ScrollRight moves the column window right by step.
func (v *Viewport) ScrollRight(step, total int) {
	v.ColOffset = v.advance(v.ColOffset, step, total)
}

// Reset returns both offsets to 0.
func (v *Viewport) Reset() {
	v.RowOffset, v.ColOffset = 0, 0
}

func (v *Viewport) advance(offset, step, total int) int {
	offset += max(0, step)
	if v.Clamp {
		offset = min(offset, max(0, total-1))
	}
	return offset
}

func saturatingSub(a, b int) int {
	return max(0, a-max(0, b))
}

// Window is the part of a table that is on screen.
type Window struct {
	Headers  []string
	Rows     [][]string
	RowStart int
	ColStart int
}

// Window slices t to at most rows x cols starting at the current offsets.
// Every row is sliced independently, so a headerless diagnostic row still
// shows while the column offset is 0.
func (v Viewport) Window(t Table, rows, cols int) Window {
	w := Window{
		Headers:  sliceWindow(t.Headers, v.ColOffset, cols),
		RowStart: v.RowOffset,
		ColStart: v.ColOffset,
	}
	if v.RowOffset >= len(t.Rows) || rows <= 0 {
		return w
	}
	end := min(len(t.Rows), v.RowOffset+rows)
	w.Rows = make([][]string, 0, end-v.RowOffset)
	for _, row := range t.Rows[v.RowOffset:end] {
		w.Rows = append(w.Rows, sliceWindow(row, v.ColOffset, cols))
	}
	return w
}

func sliceWindow(s []string, offset, n int) []string {
	if offset >= len(s) || n <= 0 {
		return nil
	}
	return s[offset:min(len(s), offset+n)]
}
