// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tabq/internal/ingest"
	"github.com/jeranaias/tabq/internal/picker"
	"github.com/jeranaias/tabq/internal/ui/styles"
)

// browserTitle is the results panel title while the browser is open.
const browserTitle = "create table · choose a data file (esc cancels)"

// browser is the in-terminal file dialog used when no external picker is
// configured. It is modal: while open it receives every key press.
type browser struct {
	fp     filepicker.Model
	cancel key.Binding
}

// browserResult is what one key press did to the browser.
type browserResult int

const (
	browserOpen browserResult = iota
	browserPicked
	browserCancelled
)

func newBrowser(dir string, height int, theme *styles.Theme) browser {
	fp := filepicker.New()
	if dir != "" {
		fp.CurrentDirectory = dir
	}
	fp.AllowedTypes = picker.AllowedTypes(ingest.Extensions)
	fp.AutoHeight = false
	fp.Height = max(1, height)
	fp.ShowPermissions = false

	// esc belongs to the dialog, not to directory navigation.
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "back"),
	)
	if !theme.IsDark {
		fp.Styles.Selected = fp.Styles.Selected.Foreground(styles.Purple)
		fp.Styles.Cursor = fp.Styles.Cursor.Foreground(styles.Purple)
	}
	return browser{
		fp:     fp,
		cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c")),
	}
}

func (b browser) Init() tea.Cmd { return b.fp.Init() }

// Update feeds msg to the file picker. The returned path is set only for
// browserPicked.
func (b browser) Update(msg tea.Msg) (browser, browserResult, string, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, b.cancel) {
		return b, browserCancelled, "", nil
	}

	var cmd tea.Cmd
	b.fp, cmd = b.fp.Update(msg)
	if ok, path := b.fp.DidSelectFile(msg); ok {
		return b, browserPicked, path, cmd
	}
	return b, browserOpen, "", cmd
}

// Resize sets the number of listed entries.
func (b *browser) Resize(height int) {
	b.fp.Height = max(1, height)
}

func (b browser) View() string {
	return b.fp.CurrentDirectory + "\n\n" + b.fp.View()
}
