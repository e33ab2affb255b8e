// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ingest decodes CSV and JSON files into Arrow record batches.
//
// Column types are inferred from a leading sample of the file. A column
// starts out unknown and widens through Int64, Float64, Boolean and Utf8 as
// cells disagree. Empty CSV cells and JSON nulls are null. Nested JSON
// values are kept as JSON text.
//
// # Key Types
//
//   - Format: csv or json, derived from the file extension
//   - Options: batch size, sample size and allocator
//   - Table: the inferred schema plus the decoded batches
//
// # Usage
//
//	format, err := ingest.FormatFromPath("data.csv")
//	if err != nil {
//	    return err
//	}
//	tbl, err := ingest.Read("data.csv", format, ingest.DefaultOptions())
//	if err != nil {
//	    return err // wraps ErrFileFormat or ErrFileAccess
//	}
//	defer tbl.Release()
package ingest
