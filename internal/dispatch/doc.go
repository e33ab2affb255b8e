// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch runs submitted command lines.
//
// A line is classified against the reserved tokens and then routed to one of
// three flows: create-table, clear, or query. Every flow returns an Outcome
// holding the display table to show. Failures never escape as errors; they
// become the single diagnostic row of that table.
//
// Query results arrive as Arrow record batches. Batches are stringified in
// parallel and merged back in engine order.
//
// # Key Types
//
//   - Dispatcher: routes lines to the engine and table registry
//   - Outcome: the display table plus what ran
//   - PickFunc: asks the user for a file
//
// # Usage
//
//	d := dispatch.New(eng, reg, commands.NewParser(commands.NewRegistry()), log, dispatch.Options{})
//	out := d.Submit(ctx, "SELECT * FROM a", pick)
//	if !out.Blank {
//	    sess.Complete(out.Text, out.Table)
//	}
package dispatch
