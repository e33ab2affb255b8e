// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"bufio"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/csv"
)

// separators are tried in this order; the first with the highest count on
// the header line wins.
var separators = []rune{',', ';', '\t', '|'}

// detectSeparator picks the delimiter from the header line.
func detectSeparator(header string) rune {
	best, bestCount := ',', 0
	for _, sep := range separators {
		if n := strings.Count(header, string(sep)); n > bestCount {
			best, bestCount = sep, n
		}
	}
	return best
}

func readCSV(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer f.Close()

	header, kinds, sep, err := sampleCSV(f, opts.InferRows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileAccess, path, err)
	}
	schema := buildSchema(header, kinds)
	recs, err := decodeCSV(f, schema, sep, opts)

	// A cell past the sample that does not parse as its column's type:
	// infer again over every row and decode once more.
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		if _, err = f.Seek(0, io.SeekStart); err == nil {
			header, kinds, sep, err = sampleCSV(f, -1)
		}
		if err == nil {
			schema = buildSchema(header, kinds)
			recs, err = decodeCSV(f, schema, sep, opts)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileAccess, path, err)
	}
	return &Table{Schema: schema, Records: recs}, nil
}

// decodeCSV rewinds f and decodes it against schema.
func decodeCSV(f io.ReadSeeker, schema *arrow.Schema, sep rune, opts Options) ([]arrow.Record, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	r := csv.NewReader(f, schema,
		csv.WithHeader(true),
		csv.WithComma(sep),
		csv.WithChunk(opts.BatchSize),
		csv.WithNullReader(true, ""),
		csv.WithLazyQuotes(true),
		csv.WithAllocator(opts.Allocator),
	)
	defer r.Release()

	var recs []arrow.Record
	for r.Next() {
		if r.Err() != nil {
			break
		}
		rec := r.Record()
		rec.Retain()
		recs = append(recs, rec)
	}
	if err := r.Err(); err != nil {
		releaseAll(recs)
		return nil, err
	}
	return recs, nil
}

// sampleCSV reads the header and up to limit records to infer column kinds.
// A negative limit reads every record.
func sampleCSV(r io.Reader, limit int) ([]string, []kind, rune, error) {
	br := bufio.NewReader(r)
	first, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, 0, err
	}
	if strings.TrimSpace(first) == "" {
		return nil, nil, 0, errors.New("missing header row")
	}
	sep := detectSeparator(first)

	cr := stdcsv.NewReader(io.MultiReader(strings.NewReader(first), br))
	cr.Comma = sep
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	rec, err := cr.Read()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("header: %w", err)
	}
	header := append([]string(nil), rec...)
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	kinds := make([]kind, len(header))

	for i := 0; limit < 0 || i < limit; i++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, 0, err
		}
		for col, cell := range rec {
			kinds[col] = widen(kinds[col], textKind(cell))
		}
	}
	return header, kinds, sep, nil
}
