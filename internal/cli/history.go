// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - Read-only view of the saved conversations.
//
// Command: history [--show N [--export FORMAT [--output DIR]]] [--json]
// Short:   List saved conversations or print one of them
//
// Examples:
//   ragchat history                          List conversations
//   ragchat history --show 2                 Print conversation 2
//   ragchat history -s 2 --export md -o ~/   Write conversation 2 as Markdown

package cli

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/jeranaias/ragchat-tui/internal/export"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
)

// HistoryCommand returns the history command.
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List saved conversations or print one of them",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "show",
				Aliases: []string{"s"},
				Usage:   "Print conversation `N` from the list",
			},
			&cli.StringFlag{
				Name:    "export",
				Aliases: []string{"e"},
				Usage:   "Write the --show conversation to a file as `FORMAT` (md, json)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Export directory `DIR`",
				Value:   ".",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output in JSON format",
			},
		},
		Action: runHistory,
	}
}

func runHistory(c *cli.Context) error {
	e := envFrom(c)
	w := c.App.Writer

	if c.IsSet("export") && !c.IsSet("show") {
		return ErrMissingArgument("--show N", "ragchat history --show N --export md")
	}

	convs, err := e.newClient().LoadConversations(c.Context)
	if err != nil {
		return NewCommandError("history", "load", err)
	}

	if c.IsSet("show") {
		n := c.Int("show")
		if n < 1 || n > len(convs) {
			return NewValidationError("conversation number", strconv.Itoa(n),
				fmt.Sprintf("choose 1-%d", len(convs)))
		}
		conv := convs[n-1]
		conv.Normalize()

		if format := c.String("export"); format != "" {
			return exportConversation(c, &conv, format)
		}

		if c.Bool("json") {
			return NewJSONResponse("history", conv).Write(w)
		}
		fmt.Fprintln(w, TitleStyle.Render(conv.DisplayTitle()))
		fmt.Fprintln(w, RenderSeparator())
		if len(conv.Messages) == 0 {
			fmt.Fprintln(w, DimStyle.Render(components.EmptyTranscriptText))
		}
		md := e.markdown()
		for _, ex := range conv.Messages {
			printExchange(w, ex, md)
		}
		return nil
	}

	if c.Bool("json") {
		if convs == nil {
			convs = []model.Conversation{}
		}
		return NewJSONResponse("history", convs).Write(w)
	}

	if len(convs) == 0 {
		fmt.Fprintln(w, DimStyle.Render("No saved conversations."))
		return nil
	}
	for i, conv := range convs {
		fmt.Fprintf(w, "%3d. %s %s\n", i+1, conv.DisplayTitle(),
			DimStyle.Render(fmt.Sprintf("(%d)", len(conv.Messages))))
	}
	return nil
}

// exportConversation writes conv to --output in the given format.
func exportConversation(c *cli.Context, conv *model.Conversation, format string) error {
	path, err := writeExport(conv, format, c.String("output"))
	if err != nil {
		if IsValidationError(err) {
			return err
		}
		return NewCommandError("history", "export", err)
	}

	if c.Bool("json") {
		return NewJSONResponse("history", map[string]string{"path": path}).Write(c.App.Writer)
	}
	fmt.Fprintf(c.App.Writer, "%s %s\n", SuccessStyle.Render("[OK] Exported to"), path)
	return nil
}

// writeExport is shared by `history --export` and the REPL's /export.
func writeExport(conv *model.Conversation, format, dir string) (string, error) {
	opts := export.DefaultOptions()
	if dir != "" {
		opts.OutputDir = dir
	}
	exp, err := export.ForFormat(format, opts)
	if err != nil {
		return "", NewValidationError("format", format, "supported formats are md and json")
	}
	return export.ExportToFile(conv, exp, opts)
}
