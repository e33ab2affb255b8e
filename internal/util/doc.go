// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides display helpers shared by the renderer.
//
// # Key Functions
//
//   - TruncateWidth: display-width aware truncation with ellipsis
//   - FitWidth: truncate and pad to an exact width
//   - CellText: flatten control characters so a cell stays on one line
//   - FormatCount: thousands-separated counts for the status line
//
// # Usage
//
//	cell := util.FitWidth(util.CellText(value), 24)
//	status := util.FormatCount(1234567) // "1,234,567"
package util
