// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"github.com/jeranaias/tabq/internal/commands"
)

const helpTitle = "help · F1 closes"

// helpMarkdown builds the key and command reference.
func helpMarkdown(keys KeyMap, reg *commands.Registry) string {
	var b strings.Builder
	b.WriteString("# tabq\n\n")
	b.WriteString("Type a query and press **Enter**. Results replace the grid.\n\n")

	b.WriteString("## Commands\n\n")
	b.WriteString("| Input | Action |\n|---|---|\n")
	if reg != nil {
		for _, c := range reg.All() {
			fmt.Fprintf(&b, "| `%s` | %s |\n", c.Name, c.Description)
		}
	}
	b.WriteString("| anything else | sent to the engine as a query |\n\n")

	b.WriteString("## Keys\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	for _, group := range keys.FullHelp() {
		for _, k := range group {
			writeBinding(&b, k)
		}
	}
	return b.String()
}

func writeBinding(b *strings.Builder, k key.Binding) {
	h := k.Help()
	fmt.Fprintf(b, "| %s | %s |\n", h.Key, h.Desc)
}

// helpView renders the reference for width columns, caching the last
// rendering. Rendering failures fall back to the raw markdown.
type helpView struct {
	markdown string
	dark     bool
	plain    bool

	width    int
	rendered string
}

func (h *helpView) Render(width int) string {
	if h.rendered != "" && h.width == width {
		return h.rendered
	}
	style := styles.LightStyle
	switch {
	case h.plain:
		style = styles.NoTTYStyle
	case h.dark:
		style = styles.DarkStyle
	}

	out := h.markdown
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(20, width-2)),
	)
	if err == nil {
		if s, rerr := r.Render(h.markdown); rerr == nil {
			out = strings.Trim(s, "\n")
		}
	}
	h.width, h.rendered = width, out
	return out
}
