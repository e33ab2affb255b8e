// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeranaias/tabq/internal/commands"
	"github.com/jeranaias/tabq/internal/engine"
	"github.com/jeranaias/tabq/internal/ingest"
	"github.com/jeranaias/tabq/internal/picker"
	"github.com/jeranaias/tabq/internal/session"
	"github.com/jeranaias/tabq/internal/tables"
)

// PickFunc asks the user for a file. It returns picker.ErrCancelled when the
// user closes the dialog.
type PickFunc func(ctx context.Context) (string, error)

// SourceWatcher is told about every registered file.
type SourceWatcher interface {
	Add(path string) error
}

// Options tunes a Dispatcher.
type Options struct {
	// Workers bounds parallel batch conversion. Zero means GOMAXPROCS.
	Workers int

	// Watcher, if set, watches registered files.
	Watcher SourceWatcher
}

// Outcome is the result of one dispatch.
type Outcome struct {
	// Text is the trimmed submitted line. Empty for outcomes not typed by
	// the user.
	Text string

	// Blank is true when nothing should change.
	Blank bool

	Action commands.Action
	Table  session.Table

	// Err is the failure that produced a diagnostic, if any.
	Err error

	// Created is the table name registered by a successful create-table.
	Created string

	Elapsed time.Duration
}

// Dispatcher routes submitted lines. Only one dispatch runs at a time; the
// event loop guarantees that.
type Dispatcher struct {
	eng     engine.Engine
	reg     *tables.Registry
	parser  *commands.Parser
	log     zerolog.Logger
	workers int
	watcher SourceWatcher
}

// New creates a dispatcher.
func New(eng engine.Engine, reg *tables.Registry, parser *commands.Parser, log zerolog.Logger, opts Options) *Dispatcher {
	return &Dispatcher{
		eng:     eng,
		reg:     reg,
		parser:  parser,
		log:     log,
		workers: opts.Workers,
		watcher: opts.Watcher,
	}
}

// Commands returns the reserved tokens the dispatcher recognizes.
func (d *Dispatcher) Commands() *commands.Registry { return d.parser.Registry() }

// Classify parses a line without running it.
func (d *Dispatcher) Classify(text string) commands.ParseResult {
	return d.parser.Parse(text)
}

// Submit runs one line. pick is consulted only by the create-table flow; a
// nil pick behaves like a cancelled dialog.
func (d *Dispatcher) Submit(ctx context.Context, text string, pick PickFunc) Outcome {
	parsed := d.Classify(text)
	if parsed.Blank {
		return Outcome{Blank: true}
	}

	var out Outcome
	switch parsed.Action() {
	case commands.ActionCreateTable:
		path, err := "", error(picker.ErrCancelled)
		if pick != nil {
			path, err = pick(ctx)
		}
		out = d.CreateTable(ctx, path, err)
	case commands.ActionClear:
		out = d.Clear()
	default:
		out = d.Query(ctx, parsed.Text)
	}
	out.Text = parsed.Text
	return out
}

// Query sends text to the engine verbatim and converts the result.
func (d *Dispatcher) Query(ctx context.Context, text string) Outcome {
	start := time.Now()
	out := Outcome{Text: text, Action: commands.ActionQuery}

	res, err := d.eng.Execute(ctx, text)
	if err == nil {
		out.Table, err = toTable(ctx, res, d.workers)
		res.Release()
	}
	if err != nil {
		out.Err = err
		out.Table = session.Diagnostic(err.Error())
	}
	out.Elapsed = time.Since(start)
	d.logOutcome(out)
	return out
}

// CreateTable registers path as the next table. pickErr is the picker's
// error, if the pick failed.
func (d *Dispatcher) CreateTable(ctx context.Context, path string, pickErr error) Outcome {
	start := time.Now()
	out := Outcome{Action: commands.ActionCreateTable}

	switch {
	case errors.Is(pickErr, picker.ErrCancelled):
		out.Err = pickErr
		out.Table = session.Diagnostic("could not open file")
	case pickErr != nil:
		out.Err = pickErr
		out.Table = session.Diagnostic(fmt.Sprintf("could not open file: %v", pickErr))
	case path == "":
		out.Err = picker.ErrCancelled
		out.Table = session.Diagnostic("could not open file")
	default:
		out = d.register(ctx, path)
	}
	out.Elapsed = time.Since(start)
	d.logOutcome(out)
	return out
}

func (d *Dispatcher) register(ctx context.Context, path string) Outcome {
	out := Outcome{Action: commands.ActionCreateTable}
	format, err := ingest.FormatFromPath(path)
	if err != nil {
		out.Err = err
		out.Table = session.Diagnostic(fmt.Sprintf("could not create table: %v", err))
		return out
	}

	name := d.reg.NextName()
	if err := d.eng.Register(ctx, name, path, format); err != nil {
		out.Err = err
		out.Table = session.Diagnostic(fmt.Sprintf("could not create table: %v", err))
		return out
	}

	entry := d.reg.Add(name, path, format)
	if d.watcher != nil {
		if err := d.watcher.Add(entry.Path); err != nil {
			d.log.Warn().Err(err).Str("path", entry.Path).Msg("cannot watch source file")
		}
	}
	out.Created = name
	out.Table = session.Diagnostic("created table " + name)
	return out
}

// Clear empties the display. The registry is untouched.
func (d *Dispatcher) Clear() Outcome {
	out := Outcome{Action: commands.ActionClear}
	d.logOutcome(out)
	return out
}

func (d *Dispatcher) logOutcome(out Outcome) {
	ev := d.log.Info()
	if out.Err != nil {
		ev = d.log.Warn().Err(out.Err)
	}
	ev = ev.Str("txn", uuid.NewString()).
		Str("action", out.Action.String()).
		Dur("elapsed", out.Elapsed)
	if out.Created != "" {
		ev = ev.Str("table", out.Created)
	}
	if out.Action == commands.ActionQuery && out.Err == nil {
		ev = ev.Int("rows", len(out.Table.Rows))
	}
	if msg := out.Table.Message(); msg != "" && out.Err == nil {
		ev = ev.Str("message", msg)
	}
	ev.Msg("dispatch")
}
