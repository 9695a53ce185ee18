// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command for ragchat.
//
// Command: ask [question...]
// Short:   Ask one question and print the answer with its sources
//
// Examples:
//   ragchat ask "What is RAG?"
//   ragchat ask --json "What is RAG?"
//   ragchat ask --rate 4 --comment "clear" "What is RAG?"
//
// Flags:
//   --json            Output in JSON format
//   --rate N          Rate the answer 1-5 right away
//   --comment TEXT    Comment sent with the rating
//
// Nothing is added to the saved conversations.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jeranaias/ragchat-tui/internal/backend"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/session"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// AskCommand returns the ask command.
func AskCommand() *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Ask one question and print the answer",
		ArgsUsage: "QUESTION",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output in JSON format",
			},
			&cli.IntFlag{
				Name:  "rate",
				Usage: "Rate the answer from 1 to 5",
			},
			&cli.StringFlag{
				Name:  "comment",
				Usage: "Comment sent with --rate",
			},
		},
		Action: runAsk,
	}
}

func runAsk(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return ErrMissingArgument("question", `ragchat ask "What is RAG?"`)
	}

	rating := c.Int("rate")
	rate := c.IsSet("rate")
	if rate && !model.ValidRating(rating) {
		return NewValidationError("rating", strconv.Itoa(rating), "must be between 1 and 5")
	}
	if c.IsSet("comment") && !rate {
		return NewValidationError("comment", c.String("comment"), "requires --rate")
	}

	e := envFrom(c)
	jsonMode := c.Bool("json")
	w := c.App.Writer

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	client := e.newClient()
	start := time.Now()
	resp, err := client.Chat(ctx, question)
	elapsed := time.Since(start)
	if err != nil {
		e.logger.Error().Err(err).Msg("ask failed")
		if backend.IsCancelled(err) {
			err = errors.New(session.InterruptedText)
		}
		if jsonMode {
			_ = NewJSONErrorResponse("ask", err).Write(w)
		}
		return NewCommandError("ask", "chat", err)
	}

	if rate {
		rec := model.FeedbackRecord{
			Question:  question,
			Answer:    resp.Response,
			Rating:    rating,
			Feedback:  strings.TrimSpace(c.String("comment")),
			SourceIDs: model.SourceIDs(resp.Sources),
		}
		if err := client.Evaluate(context.WithoutCancel(ctx), rec); err != nil {
			e.logger.Error().Err(err).Msg("ask feedback failed")
			return NewCommandError("ask", "rate", err)
		}
	}

	if jsonMode {
		sources := resp.Sources
		if sources == nil {
			sources = []model.Source{}
		}
		data := AskData{
			Question:  question,
			Response:  resp.Response,
			Sources:   sources,
			ElapsedMS: elapsed.Milliseconds(),
		}
		if rate {
			data.Rating = rating
		}
		return NewJSONResponse("ask", data).Write(w)
	}

	printAnswer(w, resp.Response, e.markdown())
	printSources(w, resp.Sources)
	if rate {
		fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render(styles.StatusIndicators.Success), components.FeedbackThanks)
	}
	fmt.Fprintln(w, DimStyle.Render(formatDurationShort(elapsed)))
	return nil
}
