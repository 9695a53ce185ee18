// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the ragchat command-line interface.
//
// The command tree is built with urfave/cli. A Before hook loads the TOML
// configuration, applies the --backend and --log-level overrides and opens
// the rotating log file; every command reads that state through envFrom.
//
// # Usage
//
//	app := cli.NewApp()
//	if err := app.Run(os.Args); err != nil {
//	    fmt.Fprintf(os.Stderr, "Error: %s\n", err)
//	    os.Exit(1)
//	}
//
// # Commands Overview
//
//   - tui: Full-screen client (default)
//   - ask: Single question, optionally rated right away
//   - chat: Line REPL over the same session as the TUI
//   - history: Read-only listing and export of saved conversations
//   - config: Show, locate or create the configuration file
//   - version: Build information
//
// ask, history and config show support --json.
package cli
