// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine is the query engine behind the console.
//
// Files are decoded by internal/ingest, loaded into a database/sql backend
// as tables, and queries come back as an Arrow schema plus record batches.
// The default backend is an in-memory SQLite database; postgres and mysql
// are available for loading into an existing server.
//
// # Key Types
//
//   - Engine: Register / Execute / Close
//   - SQLEngine: database/sql implementation with per-driver dialects
//   - Result: schema plus ordered batches
//   - QueryError: a parse, plan or execution failure with the driver cause
//
// # Usage
//
//	eng, err := engine.Open(ctx, engine.Config{Driver: "sqlite"}, logger)
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	if err := eng.Register(ctx, "a", "data.csv", ingest.FormatCSV); err != nil {
//	    return err
//	}
//	res, err := eng.Execute(ctx, "SELECT * FROM a LIMIT 1")
//	if err != nil {
//	    return err
//	}
//	defer res.Release()
package engine
