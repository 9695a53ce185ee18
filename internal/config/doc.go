// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for ragchat.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - BackendConfig: base URL and endpoint paths of the chatbot backend
//   - UIConfig: theme, markdown rendering and layout knobs
//   - LoggingConfig: level and rotation of the log file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (applied by the cli package)
//   - Environment variables (RAGCHAT_*)
//   - ~/.ragchat/config.toml
//   - ~/.ragchat/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if cfg == nil {
//	    return err
//	}
//	client := backend.NewClient(&backend.ClientConfig{BaseURL: cfg.Backend.URL})
package config
