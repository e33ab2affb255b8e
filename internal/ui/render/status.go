// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/tabq/internal/session"
	"github.com/jeranaias/tabq/internal/ui/styles"
	"github.com/jeranaias/tabq/internal/util"
)

// Summary describes what part of the table is on screen, for example
// "rows 1-20 of 1,234 · cols 1-3 of 7".
func Summary(t session.Table, v session.Viewport, geo Geometry) string {
	switch {
	case t.IsDiagnostic():
		return "message"
	case t.IsEmpty():
		return "no results"
	case len(t.Rows) == 0:
		return fmt.Sprintf("0 rows · %s cols", util.FormatCount(t.Width()))
	}
	return fmt.Sprintf("rows %s of %s · cols %s of %s",
		span(v.RowOffset, geo.VisibleRows, len(t.Rows)), util.FormatCount(len(t.Rows)),
		span(v.ColOffset, geo.VisibleCols, t.Width()), util.FormatCount(t.Width()))
}

// span formats the 1-based visible range, or "-" when scrolled past the end.
func span(offset, visible, total int) string {
	if offset >= total {
		return "-"
	}
	last := min(total, offset+visible)
	return util.FormatCount(offset+1) + "-" + util.FormatCount(last)
}

// Status renders the bottom bar.
func Status(s Snapshot, geo Geometry, theme *styles.Theme, width int) string {
	left := []string{theme.StatusValue.Render(Summary(s.Table, s.Viewport, geo))}
	if s.Driver != "" {
		left = append(left, theme.StatusLabel.Render(s.Driver))
	}
	if s.Stale > 0 {
		left = append(left, theme.Stale.Render(fmt.Sprintf("%d changed on disk", s.Stale)))
	}
	line := " " + strings.Join(left, theme.StatusLabel.Render(" · "))

	if s.Help != "" {
		gap := width - ansi.StringWidth(line) - ansi.StringWidth(s.Help) - 1
		if gap >= 2 {
			line += strings.Repeat(" ", gap) + s.Help
		}
	}
	return theme.Status.Render(fitLine(line, width))
}
