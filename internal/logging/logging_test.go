// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/jeranaias/tabq/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"", zerolog.InfoLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// decodeLine parses one JSON log line.
func decodeLine(t *testing.T, line []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("log line %q is not JSON: %v", line, err)
	}
	return entry
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tabq.log")
	log, closer, err := New(config.LogConfig{Path: path, Level: "info"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debug().Msg("hidden")
	log.Info().Str("table", "a").Msg("created")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1:\n%s", len(lines), data)
	}

	entry := decodeLine(t, lines[0])
	for field, want := range map[string]string{"message": "created", "table": "a", "level": "info"} {
		if entry[field] != want {
			t.Errorf("%s = %v, want %q", field, entry[field], want)
		}
	}
	if s, _ := entry["session"].(string); s == "" {
		t.Error("session id missing")
	}
}

func TestNewDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never.log")
	log, closer, err := New(config.LogConfig{Path: path, Level: "disabled"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Error().Msg("dropped")
	if err := closer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Stat(%s) error = %v, want not exist", path, err)
	}
}

func TestNewBadLevel(t *testing.T) {
	_, closer, err := New(config.LogConfig{Level: "chatty"})
	if err == nil {
		t.Error("New() with unknown level succeeded")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewWriterSessionIDsDiffer(t *testing.T) {
	var a, b bytes.Buffer
	la := NewWriter(&a, zerolog.InfoLevel)
	lb := NewWriter(&b, zerolog.InfoLevel)
	la.Info().Msg("x")
	lb.Info().Msg("x")

	ea, eb := decodeLine(t, a.Bytes()), decodeLine(t, b.Bytes())
	if ea["session"] == eb["session"] {
		t.Errorf("two loggers share session id %v", ea["session"])
	}
}

func TestNewWriterTimestampLeavesGlobals(t *testing.T) {
	format, unit := zerolog.TimeFieldFormat, zerolog.DurationFieldUnit

	var buf bytes.Buffer
	log := NewWriter(&buf, zerolog.InfoLevel)
	log.Info().Msg("x")

	if zerolog.TimeFieldFormat != format || zerolog.DurationFieldUnit != unit {
		t.Errorf("zerolog globals changed to (%q, %v)", zerolog.TimeFieldFormat, zerolog.DurationFieldUnit)
	}

	entry := decodeLine(t, buf.Bytes())
	stamp, _ := entry["time"].(string)
	if _, err := time.Parse(time.RFC3339Nano, stamp); err != nil {
		t.Errorf("time = %q, want RFC 3339: %v", stamp, err)
	}
}
