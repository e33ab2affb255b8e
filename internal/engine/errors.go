// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"

	"github.com/jeranaias/tabq/internal/ingest"
)

var (
	// ErrFileFormat reports a missing or unsupported file extension.
	ErrFileFormat = ingest.ErrFileFormat

	// ErrFileAccess reports an unreadable path or malformed content.
	ErrFileAccess = ingest.ErrFileAccess

	ErrQueryParse     = errors.New("parse error")
	ErrQueryPlan      = errors.New("plan error")
	ErrQueryExecution = errors.New("execution error")
)

// QueryError is a failed statement. It matches both its Kind sentinel and
// the driver error under errors.Is / errors.As.
type QueryError struct {
	Kind  error
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func queryError(query string, err error) error {
	return &QueryError{Kind: classify(err), Query: query, Err: err}
}

// classify maps a driver error to a query error kind.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "42601":
			return ErrQueryParse
		case strings.HasPrefix(pgErr.Code, "42"):
			return ErrQueryPlan
		}
		return ErrQueryExecution
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1064:
			return ErrQueryParse
		case 1052, 1054, 1146:
			return ErrQueryPlan
		}
		return ErrQueryExecution
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		msg := liteErr.Error()
		switch {
		case containsAny(msg, "syntax error", "incomplete input", "unrecognized token"):
			return ErrQueryParse
		case containsAny(msg, "no such table", "no such column", "no such function", "ambiguous column"):
			return ErrQueryPlan
		}
	}
	return ErrQueryExecution
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
