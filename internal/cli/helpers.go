// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// formatDurationShort formats a short duration string.
func formatDurationShort(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}

// printAnswer writes a bot reply, through md when it is non-nil.
func printAnswer(w io.Writer, text string, md components.MarkdownFunc) {
	if md != nil {
		if rendered, err := md(text, renderWidth()); err == nil {
			fmt.Fprint(w, rendered)
			if !strings.HasSuffix(rendered, "\n") {
				fmt.Fprintln(w)
			}
			return
		}
	}
	fmt.Fprintln(w, text)
}

// printSources lists retrieved sources the way the TUI sources panel does.
func printSources(w io.Writer, sources []model.Source) {
	if len(sources) == 0 {
		return
	}
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("Sources (%d)", len(sources))))
	for i, s := range sources {
		fmt.Fprintf(w, "  Source %d: %s\n", i+1, util.SingleLine(s.Content))
		fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("    ID: %s | Source: %s", s.ID, s.Source)))
	}
}

// printExchange writes one saved question and answer.
func printExchange(w io.Writer, ex model.Exchange, md components.MarkdownFunc) {
	fmt.Fprintf(w, "%s %s\n", LabelStyle.Render("You:"), ex.User)
	fmt.Fprint(w, LabelStyle.Render("Bot:")+" ")
	if md == nil {
		fmt.Fprintln(w, ex.Bot)
		return
	}
	fmt.Fprintln(w)
	printAnswer(w, ex.Bot, md)
}
