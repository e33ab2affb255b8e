// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

var (
	// ErrFileFormat reports a missing or unsupported file extension.
	ErrFileFormat = errors.New("unsupported file format")

	// ErrFileAccess reports an unreadable path or malformed content.
	ErrFileAccess = errors.New("could not read file")
)

// Format is a supported source file format.
type Format int

const (
	FormatCSV Format = iota + 1
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Extensions lists the accepted extensions, without the dot.
var Extensions = []string{"csv", "json"}

// FormatFromPath maps a file extension (case-insensitive) to a Format.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "csv":
		return FormatCSV, nil
	case "json", "ndjson", "jsonl":
		return FormatJSON, nil
	case "":
		return 0, fmt.Errorf("%w: %s has no extension", ErrFileFormat, filepath.Base(path))
	default:
		return 0, fmt.Errorf("%w: .%s", ErrFileFormat, ext)
	}
}

// Options tunes decoding.
type Options struct {
	// BatchSize is the number of rows per record batch.
	BatchSize int

	// InferRows is how many leading rows are sampled for column types.
	InferRows int

	// Allocator backs the Arrow buffers. Nil means a Go allocator.
	Allocator memory.Allocator
}

// DefaultOptions returns the default decoding options.
func DefaultOptions() Options {
	return Options{BatchSize: 1024, InferRows: 1000}
}

func (o Options) normalized() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = 1024
	}
	if o.InferRows <= 0 {
		o.InferRows = 1000
	}
	if o.Allocator == nil {
		o.Allocator = memory.NewGoAllocator()
	}
	return o
}

// Table is a decoded file.
type Table struct {
	Schema  *arrow.Schema
	Records []arrow.Record
}

// NumRows returns the total row count across batches.
func (t *Table) NumRows() int64 {
	var n int64
	for _, rec := range t.Records {
		n += rec.NumRows()
	}
	return n
}

// Release frees every batch.
func (t *Table) Release() {
	for _, rec := range t.Records {
		rec.Release()
	}
	t.Records = nil
}

// Read decodes path as the given format.
func Read(path string, format Format, opts Options) (*Table, error) {
	opts = opts.normalized()
	switch format {
	case FormatCSV:
		return readCSV(path, opts)
	case FormatJSON:
		return readJSON(path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrFileFormat, format)
	}
}

func releaseAll(recs []arrow.Record) {
	for _, rec := range recs {
		rec.Release()
	}
}
