// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
)

func TestAllowedTypes(t *testing.T) {
	if got, want := AllowedTypes([]string{"csv", ".json"}), []string{".csv", ".json"}; !slices.Equal(got, want) {
		t.Errorf("AllowedTypes() = %q, want %q", got, want)
	}
	if got := AllowedTypes(nil); len(got) != 0 {
		t.Errorf("AllowedTypes(nil) = %q, want none", got)
	}
}

func TestNewCommand(t *testing.T) {
	c, err := NewCommand("  my-picker --one  two ", "/data")
	if err != nil {
		t.Fatalf("NewCommand() error = %v", err)
	}
	if c.Name != "my-picker" || !slices.Equal(c.Args, []string{"--one", "two"}) || c.StartDir != "/data" {
		t.Errorf("NewCommand() = %+v", c)
	}

	if _, err := NewCommand("   ", ""); err == nil {
		t.Error("NewCommand() with blank command succeeded")
	}
}

func TestCommandArgs(t *testing.T) {
	exts := []string{"csv", "json"}
	tests := []struct {
		name string
		cmd  Command
		want []string
	}{
		{
			name: "zenity",
			cmd:  Command{Name: "/usr/bin/zenity", StartDir: "/data"},
			want: []string{"--file-selection", "--title=Open", "--filename=/data/", "--file-filter=Data files | *.csv *.json"},
		},
		{
			name: "kdialog",
			cmd:  Command{Name: "kdialog", StartDir: "/data"},
			want: []string{"--title", "Open", "--getopenfilename", "/data", "*.csv *.json"},
		},
		{
			name: "custom keeps its own args",
			cmd:  Command{Name: "pick", Args: []string{"-x"}, StartDir: "/data"},
			want: []string{"-x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if runtime.GOOS == "windows" {
				t.Skip("path separators differ")
			}
			if got := tt.cmd.args("Open", exts); !slices.Equal(got, tt.want) {
				t.Errorf("args() = %q, want %q", got, tt.want)
			}
		})
	}
}

// script writes an executable shell script and returns its path.
func script(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "pick.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCommandPickFile(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      string
		cancelled bool
		wantErr   bool
	}{
		{name: "prints path", body: `echo "/tmp/data.csv"`, want: "/tmp/data.csv"},
		{name: "first line only", body: "printf '/a.json\\n/b.json\\n'", want: "/a.json"},
		{name: "sees extensions", body: `echo "/x/$TABQ_PICK_EXTS"`, want: "/x/csv,json"},
		{name: "exit 1 cancels", body: "exit 1", cancelled: true},
		{name: "no output cancels", body: "true", cancelled: true},
		{name: "other failure", body: "echo oops >&2; exit 3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Command{Name: script(t, tt.body)}
			got, err := c.PickFile(context.Background(), "Open", []string{"csv", "json"})
			switch {
			case tt.cancelled:
				if !errors.Is(err, ErrCancelled) {
					t.Errorf("PickFile() error = %v, want ErrCancelled", err)
				}
			case tt.wantErr:
				if err == nil || errors.Is(err, ErrCancelled) || !strings.Contains(err.Error(), "oops") {
					t.Errorf("PickFile() error = %v, want a failure carrying stderr", err)
				}
			default:
				if err != nil || got != tt.want {
					t.Errorf("PickFile() = %q, %v, want %q", got, err, tt.want)
				}
			}
		})
	}
}

func TestCommandMissingExecutable(t *testing.T) {
	c := &Command{Name: filepath.Join(t.TempDir(), "does-not-exist")}
	_, err := c.PickFile(context.Background(), "Open", nil)
	if err == nil || errors.Is(err, ErrCancelled) {
		t.Errorf("PickFile() error = %v, want a launch failure", err)
	}
}
