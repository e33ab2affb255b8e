// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the interactive state of a tabq console.
//
// Everything in this package is plain data plus total operations: no I/O,
// no goroutines, no terminal types. The event loop in internal/ui/app owns a
// single Session and is the only thing that mutates it.
//
// # Key Types
//
//   - Editor: cursor-aware command line buffer
//   - History: most-recent-first log of submitted commands
//   - Viewport: row/column scroll offsets and window math
//   - Table: the display table (headers plus stringified rows)
//   - Input: closed variant of recognized key actions
//   - Session: aggregate of the above with Apply and Complete
//
// # Usage
//
//	s := session.New(session.Options{HistoryCapacity: 1000, ScrollStep: 2, PageMultiplier: 3})
//	switch s.Apply(session.Insert('x')) {
//	case session.EffectSubmit:
//	    outcome := dispatcher.Submit(ctx, s.Editor.String(), pick)
//	    s.Complete(outcome.Table, outcome.Record)
//	case session.EffectQuit:
//	    return tea.Quit
//	}
package session
