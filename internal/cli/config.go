// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for ragchat.
//
// Command: config [subcommand]
// Short:   View and create the configuration file
//
// Subcommands:
//   show (default)      Display the effective configuration
//   path                Show the configuration file path
//   init [--force]      Write a default config.toml
//
// Examples:
//   ragchat config                        Show current config (default)
//   ragchat config show --json            Config in JSON format
//   ragchat -b http://rag:5000 config     Show config with a flag override
//   ragchat config init                   Create ~/.ragchat/config.toml

package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jeranaias/ragchat-tui/internal/config"
)

// ConfigCommand returns the config command.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "View and create the configuration file",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Display the effective configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output in JSON format"},
				},
				Action: runConfigShow,
			},
			{
				Name:   "path",
				Usage:  "Show the configuration file path",
				Action: runConfigPath,
			},
			{
				Name:  "init",
				Usage: "Write a default configuration file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Overwrite an existing file",
					},
				},
				Action: runConfigInit,
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output in JSON format"},
		},
		Action: runConfigShow,
	}
}

func runConfigShow(c *cli.Context) error {
	cfg := envFrom(c).cfg
	if c.Bool("json") {
		return NewJSONResponse("config", cfg).Write(c.App.Writer)
	}
	fmt.Fprint(c.App.Writer, cfg.String())
	return nil
}

func runConfigPath(c *cli.Context) error {
	path, err := configPath(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, path)
	return nil
}

func runConfigInit(c *cli.Context) error {
	path, err := configPath(c)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.SaveTOML(config.Default(), path); err != nil {
		return NewCommandError("config", "init", err)
	}
	fmt.Fprintf(c.App.Writer, "Created configuration file at %s\n", path)
	return nil
}

// configPath is the --config file when given, else ~/.ragchat/config.toml.
func configPath(c *cli.Context) (string, error) {
	if p := c.String("config"); p != "" {
		return p, nil
	}
	return config.ConfigPathTOML()
}
