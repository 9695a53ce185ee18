// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Full-screen client for ragchat.
//
// Command: tui (default when no command is given)
// Short:   Start the full-screen chat client

package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/jeranaias/ragchat-tui/internal/session"
	"github.com/jeranaias/ragchat-tui/internal/storage"
	"github.com/jeranaias/ragchat-tui/internal/ui/chat"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// shutdownTimeout bounds the wait for in-flight saves and feedback posts
// when the client exits.
const shutdownTimeout = 5 * time.Second

// TUICommand returns the tui command.
func TUICommand() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Start the full-screen chat client",
		Action: runTUI,
	}
}

func runTUI(c *cli.Context) error {
	if err := RequiresTTY("start the full-screen client"); err != nil {
		return err
	}

	e := envFrom(c)
	client := e.newClient()
	store := storage.NewConversationStore(client, e.logger)
	sess := session.New(store, client, e.logger)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	m := chat.New(ctx, sess, chat.Options{
		Theme:           styles.NewTheme(e.cfg.UI.Theme),
		Markdown:        e.cfg.UI.Markdown,
		FeedbackDismiss: time.Duration(e.cfg.UI.FeedbackDismissSecs) * time.Second,
		HistoryWidth:    e.cfg.UI.HistoryWidth,
		BackendLabel:    client.BaseURL(),
		Logger:          e.logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()

	shutdown(sess, store, e.logger)
	return err
}

// shutdown cancels any pending reply, then gives background saves and
// feedback posts a bounded time to finish.
func shutdown(sess *session.Session, store *storage.ConversationStore, logger zerolog.Logger) {
	sess.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := sess.Wait(ctx); err != nil {
		logger.Warn().Err(err).Msg("feedback posts still running at exit")
	}
	if err := store.Flush(ctx); err != nil {
		logger.Warn().Err(err).Msg("saves still running at exit")
	}
	sess.Close()
	store.Close()
}
