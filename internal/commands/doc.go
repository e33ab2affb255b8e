// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands recognizes the console's reserved control tokens.
//
// A submitted line is either a control token or query text. The registry
// owns the token set; the parser trims input and looks it up. Matching is
// whole-line and case-insensitive, so "CLS" clears but "cls;" is a query.
//
// # Key Types
//
//   - Registry: reserved tokens and their aliases
//   - Command: one token with its action and help text
//   - ParseResult: trimmed input plus the matched command, if any
//
// # Built-in Tokens
//
//   - c: load a CSV or JSON file as a new table
//   - cls (alias clear): clear the results panel
//
// # Usage
//
//	p := commands.NewParser(commands.NewRegistry())
//	res := p.Parse("  CLS ")
//	if res.Command != nil && res.Command.Action == commands.ActionClear {
//	    // clear the display
//	}
package commands
