// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for ragchat.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.ragchat/config.toml
//   - ~/.ragchat/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/jeranaias/ragchat-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete ragchat configuration.
type Config struct {
	Backend BackendConfig `toml:"backend" json:"backend"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// BackendConfig locates the chatbot backend and its endpoints.
type BackendConfig struct {
	// URL is the base URL of the backend, e.g. http://127.0.0.1:5000
	URL string `toml:"url" json:"url"`

	LoadPath     string `toml:"load_path" json:"load_path"`
	SavePath     string `toml:"save_path" json:"save_path"`
	ChatPath     string `toml:"chat_path" json:"chat_path"`
	EvaluatePath string `toml:"evaluate_path" json:"evaluate_path"`
}

// UIConfig controls the terminal client presentation.
type UIConfig struct {
	// Theme is one of "auto", "dark" or "light".
	Theme string `toml:"theme" json:"theme"`

	// Markdown renders bot replies through glamour when true.
	Markdown bool `toml:"markdown" json:"markdown"`

	// FeedbackDismissSecs is how long the thank-you note stays visible.
	FeedbackDismissSecs int `toml:"feedback_dismiss_secs" json:"feedback_dismiss_secs"`

	// HistoryWidth is the width of the conversation sidebar in cells.
	HistoryWidth int `toml:"history_width" json:"history_width"`
}

// LoggingConfig controls the rotating log file.
type LoggingConfig struct {
	Level      string `toml:"level" json:"level"`
	File       string `toml:"file" json:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" json:"max_age_days"`
	Compress   bool   `toml:"compress" json:"compress"`
}

// Theme names.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a configuration with all defaults applied.
func Default() *Config {
	logFile := "ragchat.log"
	if dir, err := ConfigDir(); err == nil {
		logFile = filepath.Join(dir, "ragchat.log")
	}

	return &Config{
		Backend: BackendConfig{
			URL:          "http://127.0.0.1:5000",
			LoadPath:     "/api/loadConversations",
			SavePath:     "/api/saveConversations",
			ChatPath:     "/chat",
			EvaluatePath: "/api/evaluate",
		},
		UI: UIConfig{
			Theme:               ThemeAuto,
			Markdown:            true,
			FeedbackDismissSecs: 3,
			HistoryWidth:        28,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       logFile,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the ragchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ragchat"), nil
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

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
//
// A file that exists but cannot be parsed is not fatal: defaults are returned
// together with the parse error for informational purposes. An invalid
// configuration after overrides is fatal.
func Load() (*Config, error) {
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg, err := LoadFromPath(tomlPath)
			if err == nil {
				return cfg, nil
			}
			if isValidation(err) {
				return nil, err
			}
			loadErr = err
		}
	}

	if loadErr == nil {
		if jsonPath, err := ConfigPathJSON(); err == nil {
			if _, statErr := os.Stat(jsonPath); statErr == nil {
				cfg, err := LoadFromPath(jsonPath)
				if err == nil {
					return cfg, nil
				}
				if isValidation(err) {
					return nil, err
				}
				loadErr = err
			}
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Files ending in .json are decoded as JSON, anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// the values already in cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
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
	return nil
}

// fillDefaults fills in any blank values with defaults.
func (c *Config) fillDefaults() {
	defaults := Default()

	// Backend
	if c.Backend.URL == "" {
		c.Backend.URL = defaults.Backend.URL
	}
	if c.Backend.LoadPath == "" {
		c.Backend.LoadPath = defaults.Backend.LoadPath
	}
	if c.Backend.SavePath == "" {
		c.Backend.SavePath = defaults.Backend.SavePath
	}
	if c.Backend.ChatPath == "" {
		c.Backend.ChatPath = defaults.Backend.ChatPath
	}
	if c.Backend.EvaluatePath == "" {
		c.Backend.EvaluatePath = defaults.Backend.EvaluatePath
	}
	c.Backend.URL = strings.TrimRight(c.Backend.URL, "/")

	// UI
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	if c.UI.FeedbackDismissSecs == 0 {
		c.UI.FeedbackDismissSecs = defaults.UI.FeedbackDismissSecs
	}
	if c.UI.HistoryWidth == 0 {
		c.UI.HistoryWidth = defaults.UI.HistoryWidth
	}

	// Logging
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.File == "" {
		c.Logging.File = defaults.Logging.File
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = defaults.Logging.MaxSizeMB
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# ragchat configuration file\n")
	buf.WriteString("# Generated by ragchat - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
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
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Backend URL must be absolute http(s)
	u, err := url.Parse(c.Backend.URL)
	switch {
	case err != nil:
		errs = append(errs, ValidationError{Field: "backend.url", Message: fmt.Sprintf("invalid URL: %v", err)})
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, ValidationError{Field: "backend.url", Message: "scheme must be http or https"})
	case u.Host == "":
		errs = append(errs, ValidationError{Field: "backend.url", Message: "host is required"})
	}

	for _, p := range []struct{ field, path string }{
		{"backend.load_path", c.Backend.LoadPath},
		{"backend.save_path", c.Backend.SavePath},
		{"backend.chat_path", c.Backend.ChatPath},
		{"backend.evaluate_path", c.Backend.EvaluatePath},
	} {
		if !strings.HasPrefix(p.path, "/") {
			errs = append(errs, ValidationError{Field: p.field, Message: "must start with /"})
		}
	}

	switch c.UI.Theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		errs = append(errs, ValidationError{Field: "ui.theme", Message: "must be auto, dark or light"})
	}
	if c.UI.FeedbackDismissSecs < 0 || c.UI.FeedbackDismissSecs > 60 {
		errs = append(errs, ValidationError{Field: "ui.feedback_dismiss_secs", Message: "must be between 0 and 60"})
	}
	if c.UI.HistoryWidth < 12 || c.UI.HistoryWidth > 80 {
		errs = append(errs, ValidationError{Field: "ui.history_width", Message: "must be between 12 and 80"})
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, ValidationError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)})
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		errs = append(errs, ValidationError{Field: "logging", Message: "rotation limits cannot be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isValidation(err error) bool {
	var verrs ValidateErrors
	return errors.As(err, &verrs)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - RAGCHAT_BACKEND_URL: overrides backend.url
//   - RAGCHAT_THEME: overrides ui.theme
//   - RAGCHAT_MARKDOWN: "1"/"true" or "0"/"false"
//   - RAGCHAT_LOG_LEVEL: overrides logging.level
//   - RAGCHAT_LOG_FILE: overrides logging.file
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RAGCHAT_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("RAGCHAT_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("RAGCHAT_MARKDOWN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UI.Markdown = b
		}
	}
	if v := os.Getenv("RAGCHAT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("RAGCHAT_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Clone returns a copy of the config. All fields are values.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String renders the config as TOML for `ragchat config show`.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config encode error: %v>", err)
	}
	return buf.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if cfg == nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
