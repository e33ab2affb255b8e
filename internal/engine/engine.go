// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"

	"github.com/jeranaias/tabq/internal/ingest"
)

// Engine loads files as tables and runs queries over them.
type Engine interface {
	// Register loads path under the table name.
	Register(ctx context.Context, name, path string, format ingest.Format) error

	// Execute runs query and returns its schema and batches in order. The
	// caller releases the result.
	Execute(ctx context.Context, query string) (*Result, error)

	// Close releases the backend.
	Close() error
}
