// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive line-based chat for ragchat.
//
// Command: chat
// Short:   Start an interactive chat session
//
// Interactive Commands (during chat):
//   /new                Start a new conversation
//   /list               List saved conversations
//   /open N             Switch to conversation N
//   /delete N           Delete conversation N (asks first)
//   /rename TITLE       Rename the active conversation
//   /sources            Show the sources of the last answer
//   /rate N [comment]   Rate the last answer 1-5
//   /export [md|json]   Write the active conversation to a file
//   /help, /h           Show available commands
//   /quit, /q           Exit chat
//   Ctrl+C              Cancel the pending answer
//   Ctrl+D              Exit chat

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/session"
	"github.com/jeranaias/ragchat-tui/internal/storage"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// ChatCommand returns the chat command.
func ChatCommand() *cli.Command {
	return &cli.Command{
		Name:   "chat",
		Usage:  "Start an interactive line-based chat session",
		Action: runChat,
	}
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Confirm asks a y/N question on the terminal. Anything but y or yes,
// including Ctrl+C, declines.
func (c *ChatCLI) Confirm(prompt string) bool {
	answer, err := c.line.Prompt(prompt + " (y/N) ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// SaveHistory persists command history with 0600 permissions.
func (c *ChatCLI) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

type slashKind int

const (
	slashHelp slashKind = iota
	slashQuit
	slashNew
	slashList
	slashOpen
	slashDelete
	slashRename
	slashSources
	slashRate
	slashExport
)

// slashCommand is a parsed REPL command. Index is zero-based.
type slashCommand struct {
	Kind   slashKind
	Index  int
	Rating int
	Text   string
}

// parseSlashCommand parses a line starting with "/". Conversation numbers
// are one-based as shown by /list.
func parseSlashCommand(line string) (slashCommand, error) {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return slashCommand{Kind: slashHelp}, nil
	}
	name := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch name {
	case "/", "/help", "/h", "/?":
		return slashCommand{Kind: slashHelp}, nil

	case "/quit", "/q", "/exit":
		return slashCommand{Kind: slashQuit}, nil

	case "/new", "/n":
		return slashCommand{Kind: slashNew}, nil

	case "/list", "/ls", "/l":
		return slashCommand{Kind: slashList}, nil

	case "/open", "/o":
		n, err := parseConversationNumber(fields)
		if err != nil {
			return slashCommand{}, err
		}
		return slashCommand{Kind: slashOpen, Index: n - 1}, nil

	case "/delete", "/del", "/rm":
		n, err := parseConversationNumber(fields)
		if err != nil {
			return slashCommand{}, err
		}
		return slashCommand{Kind: slashDelete, Index: n - 1}, nil

	case "/rename":
		if rest == "" {
			return slashCommand{}, ErrMissingArgument("title", "/rename Project notes")
		}
		return slashCommand{Kind: slashRename, Text: rest}, nil

	case "/sources", "/src":
		return slashCommand{Kind: slashSources}, nil

	case "/rate":
		if len(fields) < 2 {
			return slashCommand{}, ErrMissingArgument("rating", "/rate 4 very helpful")
		}
		r, err := strconv.Atoi(fields[1])
		if err != nil || !model.ValidRating(r) {
			return slashCommand{}, NewValidationError("rating", fields[1], "must be between 1 and 5")
		}
		comment := strings.TrimSpace(strings.TrimPrefix(rest, fields[1]))
		return slashCommand{Kind: slashRate, Rating: r, Text: comment}, nil

	case "/export", "/save":
		format := "md"
		if len(fields) > 1 {
			format = fields[1]
		}
		return slashCommand{Kind: slashExport, Text: format}, nil
	}

	return slashCommand{}, fmt.Errorf("unknown command: %s (type /help for commands)", name)
}

func parseConversationNumber(fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, ErrMissingArgument("conversation number", fields[0]+" 2")
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 {
		return 0, NewValidationError("conversation number", fields[1], "must be a positive number from /list")
	}
	return n, nil
}

// =============================================================================
// REPL
// =============================================================================

// REPL drives a Session from text lines. It is separate from the terminal
// so it can run against any writer.
type REPL struct {
	sess    *session.Session
	store   *storage.ConversationStore
	out     io.Writer
	confirm session.Confirmer
	md      components.MarkdownFunc

	// sources of the last completed answer, for /sources
	sources []model.Source

	exportDir string
}

// NewREPL creates a REPL over sess writing to out. md may be nil for
// plain output.
func NewREPL(sess *session.Session, out io.Writer, confirm session.Confirmer, md components.MarkdownFunc) *REPL {
	return &REPL{
		sess:      sess,
		store:     sess.Store(),
		out:       out,
		confirm:   confirm,
		md:        md,
		exportDir: ".",
	}
}

// Handle processes one input line. It returns false when the user asked to
// quit.
func (r *REPL) Handle(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return true, nil
	}

	if strings.HasPrefix(line, "/") {
		cmd, err := parseSlashCommand(line)
		if err != nil {
			return true, err
		}
		return r.run(cmd)
	}

	if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
		return false, nil
	}

	return true, r.ask(ctx, line)
}

func (r *REPL) ask(ctx context.Context, text string) error {
	res, err := r.sess.Send(ctx, text)
	if err != nil {
		if errors.Is(err, session.ErrEmptyInput) {
			return nil
		}
		return err
	}

	if res.Outcome != session.OutcomeCompleted {
		fmt.Fprintln(r.out, WarningStyle.Render(res.Display()))
		return nil
	}

	r.sources = res.Sources
	printAnswer(r.out, res.Response, r.md)
	if n := len(res.Sources); n > 0 {
		fmt.Fprintln(r.out, DimStyle.Render(fmt.Sprintf("%d sources (/sources to list), /rate 1-5 to rate", n)))
	}
	return nil
}

func (r *REPL) run(cmd slashCommand) (bool, error) {
	switch cmd.Kind {
	case slashQuit:
		return false, nil

	case slashHelp:
		printHelp(r.out)

	case slashNew:
		if err := r.sess.NewConversation(); err != nil {
			return true, err
		}
		r.sources = nil
		r.ok("Started a new conversation")

	case slashList:
		r.list()

	case slashOpen:
		if err := r.sess.SelectConversation(cmd.Index); err != nil {
			return true, r.indexError(err, cmd.Index)
		}
		r.sources = nil
		r.printActive()

	case slashDelete:
		conv, ok := r.store.At(cmd.Index)
		if !ok {
			return true, r.indexError(storage.ErrIndexOutOfRange, cmd.Index)
		}
		fmt.Fprintf(r.out, "%s %q\n", TitleStyle.Render("Conversation:"), conv.DisplayTitle())
		deleted, err := r.sess.DeleteConversation(cmd.Index, r.confirm)
		if err != nil {
			return true, r.indexError(err, cmd.Index)
		}
		if !deleted {
			fmt.Fprintln(r.out, DimStyle.Render("Kept."))
			return true, nil
		}
		r.sources = nil
		r.ok("Deleted")

	case slashRename:
		if r.sess.RenameConversation(cmd.Text) {
			r.ok(fmt.Sprintf("Renamed to %q", strings.TrimSpace(cmd.Text)))
		}

	case slashSources:
		if len(r.sources) == 0 {
			fmt.Fprintln(r.out, DimStyle.Render("No sources for the last answer."))
			return true, nil
		}
		printSources(r.out, r.sources)

	case slashRate:
		if _, err := r.sess.SubmitFeedback(cmd.Rating, cmd.Text); err != nil {
			if errors.Is(err, session.ErrNoExchange) {
				return true, errors.New("nothing to rate yet: ask a question first")
			}
			return true, err
		}
		r.ok(components.FeedbackThanks)

	case slashExport:
		conv := r.store.Active()
		if conv.IsEmpty() {
			return true, errors.New("nothing to export yet: ask a question first")
		}
		path, err := writeExport(&conv, cmd.Text, r.exportDir)
		if err != nil {
			return true, err
		}
		r.ok("Exported to " + path)
	}
	return true, nil
}

// indexError turns a store range error into a message using /list numbers.
func (r *REPL) indexError(err error, index int) error {
	if errors.Is(err, storage.ErrIndexOutOfRange) {
		return NewValidationError("conversation number", strconv.Itoa(index+1),
			fmt.Sprintf("choose 1-%d from /list", r.store.Len()))
	}
	return err
}

func (r *REPL) ok(msg string) {
	fmt.Fprintf(r.out, "%s %s\n", SuccessStyle.Render(styles.StatusIndicators.Success), msg)
}

func (r *REPL) list() {
	current := r.store.Current()
	for i, conv := range r.store.Conversations() {
		marker := "  "
		if i == current {
			marker = "* "
		}
		fmt.Fprintf(r.out, "%s%2d. %s %s\n", marker, i+1, conv.DisplayTitle(),
			DimStyle.Render(fmt.Sprintf("(%d)", len(conv.Messages))))
	}
}

// printActive writes the active conversation's title and transcript.
func (r *REPL) printActive() {
	conv := r.store.Active()
	fmt.Fprintln(r.out, TitleStyle.Render(conv.DisplayTitle()))
	if len(conv.Messages) == 0 {
		fmt.Fprintln(r.out, DimStyle.Render(components.EmptyTranscriptText))
		return
	}
	for _, ex := range conv.Messages {
		printExchange(r.out, ex, r.md)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, TitleStyle.Render("Commands"))
	for _, line := range [][2]string{
		{"/new", "Start a new conversation"},
		{"/list", "List saved conversations"},
		{"/open N", "Switch to conversation N"},
		{"/delete N", "Delete conversation N"},
		{"/rename TITLE", "Rename the active conversation"},
		{"/sources", "Show the sources of the last answer"},
		{"/rate N [comment]", "Rate the last answer 1-5"},
		{"/export [md|json]", "Write the conversation to a file"},
		{"/quit", "Exit chat"},
	} {
		fmt.Fprintf(w, "  %-20s %s\n", line[0], DimStyle.Render(line[1]))
	}
	fmt.Fprintln(w, DimStyle.Render("  Ctrl+C cancels a pending answer, Ctrl+D exits."))
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

func runChat(c *cli.Context) error {
	if err := RequiresTTY("start the chat session"); err != nil {
		return err
	}

	e := envFrom(c)
	w := c.App.Writer
	client := e.newClient()
	store := storage.NewConversationStore(client, e.logger)
	sess := session.New(store, client, e.logger)
	defer shutdown(sess, store, e.logger)

	ctx := c.Context
	if err := store.Load(ctx); err != nil {
		fmt.Fprintln(w, WarningStyle.Render("Could not load saved conversations; starting a new one."))
	}

	input := NewChatCLI()
	defer input.Close()

	repl := NewREPL(sess, w, input, e.markdown())

	fmt.Fprintf(w, "%s %s\n", TitleStyle.Render("ragchat"), DimStyle.Render(client.BaseURL()))
	fmt.Fprintln(w, DimStyle.Render("Type /help for commands."))
	repl.printActive()

	// At the prompt liner reads Ctrl+C itself; while an answer is pending
	// the terminal is cooked and SIGINT cancels the request.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	stopInterrupts := forwardInterrupts(sigChan, sess.Cancel, os.Stderr)
	defer func() {
		signal.Stop(sigChan)
		stopInterrupts()
	}()

	for {
		line, err := input.ReadInput("ragchat> ")
		if err != nil {
			// Ctrl+C at the prompt, Ctrl+D, or a closed stdin.
			fmt.Fprintln(w)
			return nil
		}

		cont, err := repl.Handle(ctx, line)
		if err != nil {
			fmt.Fprintf(w, "%s %v\n", ErrorStyle.Render("[Error]"), err)
		}
		if !cont {
			return nil
		}
	}
}

// forwardInterrupts calls cancel for every signal received on sigs until
// the returned stop function is called. stop returns once the goroutine
// has exited.
func forwardInterrupts(sigs <-chan os.Signal, cancel func() bool, out io.Writer) (stop func()) {
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		for {
			select {
			case <-sigs:
				if cancel() {
					fmt.Fprintln(out)
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		close(done)
		<-exited
	}
}
