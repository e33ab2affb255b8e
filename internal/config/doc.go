// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for tabq.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation. The loaded Config is the
// startup object handed to every other package; there is no global.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - EngineConfig: Query backend and batch sizing
//   - UIConfig: Grid geometry and scrolling
//   - StartupConfig: Files loaded before the first prompt
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TABQ_*)
//   - The file named by TABQ_CONFIG
//   - ~/.tabq/config.toml
//   - ~/.tabq/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load(os.Getenv("TABQ_CONFIG"))
//	if err != nil {
//	    return err
//	}
//	width := cfg.UI.ColumnWidth
package config
