// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package picker asks the user to choose a file.
//
// The in-terminal browser lives in the UI package. This package holds the
// interface both share and a picker that shells out to a desktop dialog
// such as zenity or kdialog.
package picker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrCancelled is returned when the user closes the dialog without
// choosing a file.
var ErrCancelled = errors.New("dialog cancelled")

// Picker chooses one file. exts lists the allowed extensions without dots.
type Picker interface {
	PickFile(ctx context.Context, title string, exts []string) (string, error)
}

// AllowedTypes turns extensions into the dotted form file browsers expect.
func AllowedTypes(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = "." + strings.TrimPrefix(e, ".")
	}
	return out
}

// =============================================================================
// EXTERNAL COMMAND PICKER
// =============================================================================

// Command runs an external program and reads the chosen path from its
// standard output. Exit status 1 means the user cancelled, which is what
// zenity and kdialog report.
type Command struct {
	// Name is the executable.
	Name string

	// Args are passed before any dialog-specific arguments.
	Args []string

	// StartDir is where the dialog opens.
	StartDir string
}

var _ Picker = (*Command)(nil)

// NewCommand parses a command line such as "zenity" or "my-picker --flag".
func NewCommand(line, startDir string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("empty picker command")
	}
	return &Command{Name: fields[0], Args: fields[1:], StartDir: startDir}, nil
}

// PickFile runs the dialog and blocks until it exits.
func (c *Command) PickFile(ctx context.Context, title string, exts []string) (string, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.args(title, exts)...)
	cmd.Env = append(os.Environ(),
		"TABQ_PICK_TITLE="+title,
		"TABQ_PICK_EXTS="+strings.Join(exts, ","),
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", c.Name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", c.Name, err)
	}

	path := strings.TrimSpace(firstLine(string(out)))
	if path == "" {
		return "", ErrCancelled
	}
	return path, nil
}

func (c *Command) args(title string, exts []string) []string {
	args := append([]string(nil), c.Args...)
	patterns := make([]string, len(exts))
	for i, e := range exts {
		patterns[i] = "*." + strings.TrimPrefix(e, ".")
	}
	start := c.StartDir
	if start == "" {
		start, _ = os.Getwd()
	}

	switch filepath.Base(c.Name) {
	case "zenity":
		args = append(args, "--file-selection", "--title="+title)
		if start != "" {
			args = append(args, "--filename="+start+string(filepath.Separator))
		}
		if len(patterns) > 0 {
			args = append(args, "--file-filter=Data files | "+strings.Join(patterns, " "))
		}
	case "kdialog":
		args = append(args, "--title", title, "--getopenfilename", start)
		if len(patterns) > 0 {
			args = append(args, strings.Join(patterns, " "))
		}
	}
	return args
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
