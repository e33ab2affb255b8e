// tabq - an interactive terminal console for querying CSV and JSON files.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/jeranaias/tabq/internal/commands"
	"github.com/jeranaias/tabq/internal/config"
	"github.com/jeranaias/tabq/internal/dispatch"
	"github.com/jeranaias/tabq/internal/engine"
	"github.com/jeranaias/tabq/internal/logging"
	"github.com/jeranaias/tabq/internal/picker"
	"github.com/jeranaias/tabq/internal/session"
	"github.com/jeranaias/tabq/internal/tables"
	"github.com/jeranaias/tabq/internal/ui/app"
	"github.com/jeranaias/tabq/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// errNoTerminal is returned when stdin or stdout is not a terminal.
var errNoTerminal = errors.New("tabq needs an interactive terminal")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tabq: %v\n", err)
		os.Exit(1)
	}
}

// run wires the console together and blocks until the user quits.
func run() error {
	cfg, err := config.Load(os.Getenv("TABQ_CONFIG"))
	if err != nil {
		return err
	}

	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()
	log.Info().Str("version", Version).Str("commit", GitCommit).Msg("starting")
	log.Debug().Str("config", cfg.String()).Msg("configuration loaded")

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	eng, err := engine.Open(ctx, engine.Config{
		Driver:    cfg.Engine.Driver,
		DSN:       cfg.Engine.DSN,
		BatchSize: cfg.Engine.BatchSize,
		InferRows: cfg.Engine.InferRows,
	}, log)
	if err != nil {
		return err
	}
	defer eng.Close()

	reg := tables.NewRegistry()
	watcher, changes := startWatcher(log)
	if watcher != nil {
		defer watcher.Close()
	}

	dopts := dispatch.Options{Workers: cfg.Engine.Workers}
	if watcher != nil {
		dopts.Watcher = watcher
	}
	disp := dispatch.New(eng, reg, commands.NewParser(commands.NewRegistry()), log, dopts)

	startDir := cfg.Picker.StartDir
	if startDir == "" {
		startDir, _ = os.Getwd()
	}
	var pick picker.Picker
	if cfg.Picker.Command != "" {
		cmd, err := picker.NewCommand(cfg.Picker.Command, startDir)
		if err != nil {
			return err
		}
		pick = cmd
	}

	theme := styles.NewTheme()
	theme.Highlight = cfg.UI.Highlight

	m := app.New(app.Options{
		Dispatcher: disp,
		Registry:   reg,
		Theme:      theme,
		Session: session.Options{
			HistoryCapacity: cfg.History.Capacity,
			ScrollStep:      cfg.UI.ScrollStep,
			PageMultiplier:  cfg.UI.PageMultiplier,
			ClampScroll:     cfg.UI.ClampScroll,
		},
		ColumnWidth:  cfg.UI.ColumnWidth,
		Driver:       eng.Driver(),
		Picker:       pick,
		StartDir:     startDir,
		StartupFiles: cfg.Startup.Files,
		PickOnStart:  cfg.Startup.PickFile,
		Changes:      changes,
		Log:          log,
		Ctx:          ctx,
	})

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running console: %w", err)
	}
	log.Info().Msg("exiting")
	return nil
}

// startWatcher watches registered files for changes. A watcher that cannot
// start only costs the stale markers.
func startWatcher(log zerolog.Logger) (*tables.Watcher, <-chan []string) {
	w, err := tables.NewWatcher(tables.DefaultDebounce, log)
	if err != nil {
		log.Warn().Err(err).Msg("file watcher unavailable")
		return nil, nil
	}
	return w, w.Changes()
}
