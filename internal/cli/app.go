// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Command tree and shared setup for the ragchat CLI.
//
// Usage:
//   ragchat [global flags] [command] [args]
//
// Commands:
//   tui       Full-screen chat client (default)
//   ask       Ask one question and print the answer
//   chat      Line-based chat with slash commands
//   history   List, print or export saved conversations
//   config    Show, locate or create the configuration file
//   version   Show version information
//
// Global Flags:
//   -c, --config FILE     Load configuration from FILE
//   -b, --backend URL     Backend base URL (overrides config)
//   --log-level LEVEL     Log level: debug, info, warn, error

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/jeranaias/ragchat-tui/internal/backend"
	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/logging"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const envKey = "ragchat.env"

// env is the per-invocation state built by the Before hook.
type env struct {
	cfg       *config.Config
	logger    zerolog.Logger
	logCloser io.Closer
}

// NewApp builds the ragchat command tree.
func NewApp() *cli.App {
	backend.Version = Version

	return &cli.App{
		Name:    "ragchat",
		Usage:   "Terminal client for a retrieval-augmented chatbot backend",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:    "backend",
				Aliases: []string{"b"},
				Usage:   "Backend base `URL` (overrides config)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log `LEVEL`: debug, info, warn, error",
			},
		},
		Metadata: map[string]interface{}{},
		Before:   setup,
		After:    teardown,
		Action:   runTUI,
		Commands: []*cli.Command{
			TUICommand(),
			AskCommand(),
			ChatCommand(),
			HistoryCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
	}
}

// setup loads the configuration, applies the global flag overrides and
// starts logging.
func setup(c *cli.Context) error {
	var (
		cfg *config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			// Not created yet, e.g. `ragchat -c FILE config init`.
			cfg = config.Default()
			cfg.ApplyEnvOverrides()
		} else if cfg, err = config.LoadFromPath(path); err != nil {
			return err
		}
	} else {
		cfg, err = config.Load()
		if cfg == nil {
			return err
		}
		if err != nil {
			fmt.Fprintf(c.App.ErrWriter, "%s %v (using defaults)\n", WarningStyle.Render("Warning:"), err)
		}
	}

	if url := c.String("backend"); url != "" {
		cfg.Backend.URL = url
	}
	if level := c.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	config.SetGlobal(cfg)

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	logger.Debug().Str("command", c.Args().First()).Str("backend", cfg.Backend.URL).Msg("ragchat starting")

	c.App.Metadata[envKey] = &env{cfg: cfg, logger: logger, logCloser: closer}
	return nil
}

func teardown(c *cli.Context) error {
	if e, ok := c.App.Metadata[envKey].(*env); ok && e.logCloser != nil {
		return e.logCloser.Close()
	}
	return nil
}

func envFrom(c *cli.Context) *env {
	if e, ok := c.App.Metadata[envKey].(*env); ok {
		return e
	}
	// Commands invoked without the Before hook (tests calling an Action
	// directly) fall back to defaults.
	return &env{cfg: config.Default(), logger: zerolog.Nop()}
}

// newClient builds a backend client from the backend section.
func (e *env) newClient() *backend.Client {
	b := e.cfg.Backend
	return backend.NewClient(&backend.ClientConfig{
		BaseURL:      b.URL,
		LoadPath:     b.LoadPath,
		SavePath:     b.SavePath,
		ChatPath:     b.ChatPath,
		EvaluatePath: b.EvaluatePath,
	})
}

// markdown returns a glamour renderer when markdown is enabled and stdout
// is a terminal, and nil otherwise.
func (e *env) markdown() components.MarkdownFunc {
	if !e.cfg.UI.Markdown || !IsStdoutTTY() {
		return nil
	}
	return components.NewGlamourMarkdown(styles.NewTheme(e.cfg.UI.Theme).GlamourStyle())
}

// =============================================================================
// VERSION
// =============================================================================

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			w := c.App.Writer
			fmt.Fprintf(w, "ragchat %s\n", Version)
			fmt.Fprintf(w, "  Commit:  %s\n", GitCommit)
			fmt.Fprintf(w, "  Built:   %s\n", BuildDate)
			fmt.Fprintf(w, "  Go:      %s\n", runtime.Version())
			fmt.Fprintf(w, "  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
