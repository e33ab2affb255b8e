// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import "github.com/jeranaias/tabq/internal/dispatch"

// =============================================================================
// MESSAGES
// =============================================================================

// dispatchDoneMsg carries the outcome of one dispatch back to the loop.
type dispatchDoneMsg struct {
	out dispatch.Outcome

	// typed is true when the dispatch came from the command line.
	typed bool

	// text is the line as submitted, before trimming.
	text string
}

// startupDoneMsg carries the outcomes of the startup preloads, in order.
type startupDoneMsg struct {
	outs []dispatch.Outcome
}

// sourcesChangedMsg reports registered files that changed on disk.
type sourcesChangedMsg struct {
	paths []string
}

// sourcesClosedMsg reports that the watcher stopped.
type sourcesClosedMsg struct{}
