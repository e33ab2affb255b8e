// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"context"
	"errors"
	"runtime"

	"github.com/apache/arrow-go/v18/arrow"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/tabq/internal/engine"
	"github.com/jeranaias/tabq/internal/session"
)

// NullText is how a null cell is displayed.
const NullText = "null"

// errRaggedResult is returned when a batch's width disagrees with the
// result schema.
var errRaggedResult = errors.New("result batches do not match the result columns")

// toTable turns an engine result into a display table.
func toTable(ctx context.Context, res *engine.Result, workers int) (session.Table, error) {
	rows, err := flatten(ctx, res.Records, workers)
	if err != nil {
		return session.Table{}, err
	}
	t := session.Table{Headers: headers(res.Schema), Rows: rows}
	if !t.Valid() {
		return session.Table{}, errRaggedResult
	}
	return t, nil
}

func headers(schema *arrow.Schema) []string {
	if schema == nil {
		return nil
	}
	fields := schema.Fields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

// flatten stringifies every batch. Batches are converted concurrently, each
// into its own slot, and the slots are concatenated in batch order so the
// rows come out exactly as the engine produced them.
func flatten(ctx context.Context, recs []arrow.Record, workers int) ([][]string, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	parts := make([][][]string, len(recs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range recs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i] = recordRows(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	rows := make([][]string, 0, total)
	for _, p := range parts {
		rows = append(rows, p...)
	}
	return rows, nil
}

// recordRows stringifies one batch column by column.
func recordRows(rec arrow.Record) [][]string {
	nrows, ncols := int(rec.NumRows()), int(rec.NumCols())
	rows := make([][]string, nrows)
	for r := range rows {
		rows[r] = make([]string, ncols)
	}
	for c := 0; c < ncols; c++ {
		col := rec.Column(c)
		for r := 0; r < nrows; r++ {
			rows[r][c] = cellText(col, r)
		}
	}
	return rows
}

func cellText(col arrow.Array, i int) string {
	if col.IsNull(i) {
		return NullText
	}
	return col.ValueStr(i)
}
