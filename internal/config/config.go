// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete tabq configuration.
type Config struct {
	Engine  EngineConfig  `toml:"engine" json:"engine"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	History HistoryConfig `toml:"history" json:"history"`
	Picker  PickerConfig  `toml:"picker" json:"picker"`
	Startup StartupConfig `toml:"startup" json:"startup"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// EngineConfig selects the query backend.
type EngineConfig struct {
	// Driver is "sqlite", "postgres" or "mysql"
	Driver string `toml:"driver" json:"driver"`
	// DSN is the data source; empty means the driver default
	DSN string `toml:"dsn" json:"dsn"`
	// BatchSize is the number of rows per record batch
	BatchSize int `toml:"batch_size" json:"batch_size"`
	// Workers bounds parallel result conversion; 0 means GOMAXPROCS
	Workers int `toml:"workers" json:"workers"`
	// InferRows is how many rows are sampled for column types
	InferRows int `toml:"infer_rows" json:"infer_rows"`
}

// UIConfig contains grid and scrolling settings.
type UIConfig struct {
	// ColumnWidth is the fixed cell budget per grid column
	ColumnWidth int `toml:"column_width" json:"column_width"`
	// ScrollStep is the unit row step
	ScrollStep int `toml:"scroll_step" json:"scroll_step"`
	// PageMultiplier scales ScrollStep for page up/down
	PageMultiplier int `toml:"page_multiplier" json:"page_multiplier"`
	// ClampScroll bounds offsets by the table size
	ClampScroll bool `toml:"clamp_scroll" json:"clamp_scroll"`
	// Highlight colours SQL in the command line
	Highlight bool `toml:"highlight" json:"highlight"`
	// AltScreen runs in the terminal's alternate screen
	AltScreen bool `toml:"alt_screen" json:"alt_screen"`
}

// HistoryConfig bounds the command history.
type HistoryConfig struct {
	// Capacity is the maximum number of entries; 0 means unbounded
	Capacity int `toml:"capacity" json:"capacity"`
}

// PickerConfig selects the file dialog.
type PickerConfig struct {
	// Command is an external dialog ("zenity", "kdialog", ...); empty uses
	// the in-terminal browser
	Command string `toml:"command" json:"command"`
	// StartDir is where the dialog opens; empty means the working directory
	StartDir string `toml:"start_dir" json:"start_dir"`
}

// StartupConfig controls what happens before the first prompt.
type StartupConfig struct {
	// PickFile runs the create-table flow once at startup
	PickFile bool `toml:"pick_file" json:"pick_file"`
	// Files are registered in order as a, b, ...
	Files []string `toml:"files" json:"files"`
}

// LogConfig controls the log file.
type LogConfig struct {
	// Path is the log file; empty means ~/.tabq/tabq.log
	Path string `toml:"path" json:"path"`
	// Level is debug, info, warn, error or disabled
	Level string `toml:"level" json:"level"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Driver:    "sqlite",
			BatchSize: 1024,
			InferRows: 1000,
		},
		UI: UIConfig{
			ColumnWidth:    24,
			ScrollStep:     2,
			PageMultiplier: 3,
			ClampScroll:    true,
			Highlight:      true,
			AltScreen:      true,
		},
		History: HistoryConfig{
			Capacity: 1000,
		},
		Startup: StartupConfig{
			PickFile: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the tabq configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".tabq"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogPath returns ~/.tabq/tabq.log.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tabq.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration. A non-empty path is read as-is; otherwise the
// TOML file is tried first, then JSON, and finally defaults. Environment
// overrides are applied last and the result is validated.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromPath(path)
	}

	cfg := Default()
	for _, candidate := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		p, err := candidate()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(p); statErr != nil {
			continue
		}
		return LoadFromPath(p)
	}

	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file. Files ending in
// .json are read as JSON, anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	return finish(cfg)
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills values a file may leave empty. Zero is meaningful for
// workers and history capacity, so those are left alone.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Engine.Driver == "" {
		cfg.Engine.Driver = defaults.Engine.Driver
	}
	if cfg.Engine.BatchSize == 0 {
		cfg.Engine.BatchSize = defaults.Engine.BatchSize
	}
	if cfg.Engine.InferRows == 0 {
		cfg.Engine.InferRows = defaults.Engine.InferRows
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidDrivers lists the accepted engine.driver values.
var ValidDrivers = []string{"sqlite", "postgres", "mysql"}

// ValidLogLevels lists the accepted log.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error", "disabled"}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if !contains(ValidDrivers, strings.ToLower(c.Engine.Driver)) {
		errs = append(errs, ValidationError{
			Field:   "engine.driver",
			Message: fmt.Sprintf("invalid driver '%s', must be one of: %s", c.Engine.Driver, strings.Join(ValidDrivers, ", ")),
		})
	}
	if c.Engine.Driver != "" && !strings.EqualFold(c.Engine.Driver, "sqlite") && c.Engine.DSN == "" {
		errs = append(errs, ValidationError{
			Field:   "engine.dsn",
			Message: fmt.Sprintf("driver '%s' needs a dsn", c.Engine.Driver),
		})
	}
	if c.Engine.BatchSize < 1 {
		errs = append(errs, ValidationError{Field: "engine.batch_size", Message: "must be at least 1"})
	}
	if c.Engine.Workers < 0 {
		errs = append(errs, ValidationError{Field: "engine.workers", Message: "must not be negative"})
	}
	if c.Engine.InferRows < 1 {
		errs = append(errs, ValidationError{Field: "engine.infer_rows", Message: "must be at least 1"})
	}

	if c.UI.ColumnWidth < 1 {
		errs = append(errs, ValidationError{Field: "ui.column_width", Message: "must be at least 1"})
	}
	if c.UI.ScrollStep < 1 {
		errs = append(errs, ValidationError{Field: "ui.scroll_step", Message: "must be at least 1"})
	}
	if c.UI.PageMultiplier < 1 {
		errs = append(errs, ValidationError{Field: "ui.page_multiplier", Message: "must be at least 1"})
	}

	if c.History.Capacity < 0 {
		errs = append(errs, ValidationError{Field: "history.capacity", Message: "must not be negative (0 means unbounded)"})
	}

	if c.Picker.StartDir != "" {
		if info, err := os.Stat(c.Picker.StartDir); err != nil || !info.IsDir() {
			errs = append(errs, ValidationError{
				Field:   "picker.start_dir",
				Message: fmt.Sprintf("'%s' is not a directory", c.Picker.StartDir),
			})
		}
	}

	if !contains(ValidLogLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: %s", c.Log.Level, strings.Join(ValidLogLevels, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TABQ_DRIVER: overrides engine.driver
//   - TABQ_DSN: overrides engine.dsn
//   - TABQ_WORKERS: overrides engine.workers
//   - TABQ_COLUMN_WIDTH: overrides ui.column_width
//   - TABQ_PICKER: overrides picker.command
//   - TABQ_NO_PICK: set to "1" or "true" to skip the startup picker
//   - TABQ_LOG_LEVEL: overrides log.level
//   - TABQ_LOG_PATH: overrides log.path
//
// Unparseable numbers are ignored.
func (c *Config) ApplyEnvOverrides() {
	if driver := os.Getenv("TABQ_DRIVER"); driver != "" {
		c.Engine.Driver = driver
	}
	if dsn := os.Getenv("TABQ_DSN"); dsn != "" {
		c.Engine.DSN = dsn
	}
	if workers := os.Getenv("TABQ_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil {
			c.Engine.Workers = n
		}
	}
	if width := os.Getenv("TABQ_COLUMN_WIDTH"); width != "" {
		if n, err := strconv.Atoi(width); err == nil {
			c.UI.ColumnWidth = n
		}
	}
	if picker := os.Getenv("TABQ_PICKER"); picker != "" {
		c.Picker.Command = picker
	}
	if noPick := os.Getenv("TABQ_NO_PICK"); noPick != "" {
		if noPick == "1" || strings.ToLower(noPick) == "true" {
			c.Startup.PickFile = false
		}
	}
	if level := os.Getenv("TABQ_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if path := os.Getenv("TABQ_LOG_PATH"); path != "" {
		c.Log.Path = path
	}
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return sb.String()
}
