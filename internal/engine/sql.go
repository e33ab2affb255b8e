// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/jeranaias/tabq/internal/ingest"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config selects and tunes the backend.
type Config struct {
	// Driver is "sqlite", "postgres" or "mysql".
	Driver string

	// DSN is the driver data source. Empty means the driver default; for
	// sqlite that is a private in-memory database.
	DSN string

	// BatchSize is the number of rows per result batch and per ingest batch.
	BatchSize int

	// InferRows is the ingest type-inference sample size.
	InferRows int

	// Allocator backs Arrow buffers. Nil means a Go allocator.
	Allocator memory.Allocator
}

// =============================================================================
// SQL ENGINE
// =============================================================================

// SQLEngine is an Engine over database/sql.
type SQLEngine struct {
	db      *sql.DB
	dialect dialect
	cfg     Config
	mem     memory.Allocator
	log     zerolog.Logger
}

var _ Engine = (*SQLEngine)(nil)

// Open connects to the configured backend and pings it.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*SQLEngine, error) {
	d, err := lookupDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if cfg.DSN == "" {
		cfg.DSN = d.defaultDSN
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("driver %s needs a dsn", d.name)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = ingest.DefaultOptions().BatchSize
	}
	if cfg.InferRows <= 0 {
		cfg.InferRows = ingest.DefaultOptions().InferRows
	}
	mem := cfg.Allocator
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	db, err := sql.Open(d.driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}
	if d.singleConn {
		// every sqlite connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.name, err)
	}

	log.Debug().Str("driver", d.name).Msg("engine opened")
	return &SQLEngine{db: db, dialect: d, cfg: cfg, mem: mem, log: log}, nil
}

// Driver returns the backend name.
func (e *SQLEngine) Driver() string { return e.dialect.name }

// Close closes the database handle.
func (e *SQLEngine) Close() error {
	return e.db.Close()
}

// Register decodes path and loads it into a new table inside one
// transaction. A failed load leaves no table behind.
func (e *SQLEngine) Register(ctx context.Context, name, path string, format ingest.Format) error {
	start := time.Now()

	tbl, err := ingest.Read(path, format, ingest.Options{
		BatchSize: e.cfg.BatchSize,
		InferRows: e.cfg.InferRows,
		Allocator: e.mem,
	})
	if err != nil {
		return err
	}
	defer tbl.Release()

	cols := columnNames(tbl.Schema)
	if len(cols) == 0 {
		return fmt.Errorf("%w: %s has no columns", ErrFileAccess, path)
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrQueryExecution, err)
	}
	defer func() { _ = tx.Rollback() }()

	ddl := e.dialect.createTable(name, cols, tbl.Schema)
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return queryError(ddl, err)
	}

	if err := e.insertRecords(ctx, tx, name, cols, tbl.Records); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrQueryExecution, err)
	}

	e.log.Debug().
		Str("table", name).
		Str("path", path).
		Stringer("format", format).
		Int64("rows", tbl.NumRows()).
		Int("batches", len(tbl.Records)).
		Dur("elapsed", time.Since(start)).
		Msg("table registered")
	return nil
}

func (e *SQLEngine) insertRecords(ctx context.Context, tx *sql.Tx, name string, cols []string, recs []arrow.Record) error {
	query := e.dialect.insert(name, cols)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return queryError(query, err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for _, rec := range recs {
		for r := 0; r < int(rec.NumRows()); r++ {
			for c := range args {
				args[c] = cellValue(rec.Column(c), r)
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return queryError(query, err)
			}
		}
	}
	return nil
}

// Execute runs query and collects every row before building batches, so
// columns the backend leaves untyped can be typed from their values.
func (e *SQLEngine) Execute(ctx context.Context, query string) (*Result, error) {
	start := time.Now()

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, queryError(query, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, queryError(query, err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, queryError(query, err)
	}

	var data [][]any
	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, queryError(query, err)
		}
		data = append(data, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(query, err)
	}

	schema := resultSchema(names, types, data)
	recs, err := buildRecords(e.mem, schema, data, e.cfg.BatchSize)
	if err != nil {
		return nil, &QueryError{Kind: ErrQueryExecution, Query: query, Err: err}
	}

	e.log.Debug().
		Int("rows", len(data)).
		Int("batches", len(recs)).
		Dur("elapsed", time.Since(start)).
		Msg("query executed")
	return &Result{Schema: schema, Records: recs}, nil
}

func resultSchema(names []string, types []*sql.ColumnType, data [][]any) *arrow.Schema {
	fields := make([]arrow.Field, len(names))
	column := make([]any, len(data))
	for i, name := range names {
		for r, row := range data {
			column[r] = row[i]
		}
		var dbType string
		if i < len(types) && types[i] != nil {
			dbType = types[i].DatabaseTypeName()
		}
		fields[i] = arrow.Field{Name: name, Type: resolveType(dbType, column), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}
