// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render draws one frame of the console from a state snapshot.
//
// Frame is a pure function: the same Snapshot and size always give the same
// string, and nothing in here mutates session state. The frame is three
// stacked parts:
//
//   - the results panel, titled with the loaded table names, holding the
//     header row and the viewport window of data rows
//   - the command-line panel with the caret
//   - a one-line status bar
//
// # Usage
//
//	out := render.Frame(render.Snapshot{Table: sess.Table, ...}, theme, w, h)
package render
