// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tables tracks the files loaded into the query engine.
//
// Names are handed out in order: a through z, then aa, ab and so on. A name
// is only consumed by a successful registration, and entries live for the
// whole process.
//
// # Key Types
//
//   - Registry: loaded tables in registration order
//   - Entry: one table with its source path and stale flag
//   - Watcher: fsnotify watcher reporting changed source files
//
// # Usage
//
//	reg := tables.NewRegistry()
//	name := reg.NextName()
//	if err := eng.Register(ctx, name, path, format); err == nil {
//	    reg.Add(name, path, format)
//	}
package tables
