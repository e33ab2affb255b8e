// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the bubbletea event loop of the console.
//
// It turns key presses into session inputs, hands submissions to the
// dispatcher and draws one frame per event through the render package.
//
// # Key Types
//
//   - Model: the tea.Model that owns the session
//   - KeyMap: key bindings and the help footer they produce
//   - Options: collaborators and tunables for New
//
// # Usage
//
//	m := app.New(app.Options{Dispatcher: disp, Registry: reg, Theme: theme})
//	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
//
// While a dispatch is in flight every key press is dropped. Only window
// resizes, spinner ticks and watcher notices are applied until the
// dispatch resolves.
package app
