// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ragchat is a terminal client for a retrieval-augmented chatbot backend.
//
// Run without arguments for the full-screen client, or see `ragchat --help`
// for the one-shot and line-based commands.
package main

import (
	"fmt"
	"os"

	"github.com/jeranaias/ragchat-tui/internal/cli"
)

func main() {
	app := cli.NewApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
