// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/ragchat-tui/internal/session"
	"github.com/jeranaias/ragchat-tui/internal/storage"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// DefaultFeedbackDismiss is how long the thank-you message stays visible.
const DefaultFeedbackDismiss = 3 * time.Second

// =============================================================================
// CHAT STATE
// =============================================================================

// Mode is what the bottom input line is currently used for.
type Mode int

const (
	ModeChat          Mode = iota // Typing a question
	ModeRename                    // Editing the active conversation title
	ModeConfirmDelete             // Waiting for y/n on a delete
)

// Focus is the area receiving keyboard input in ModeChat.
type Focus int

const (
	FocusInput Focus = iota
	FocusHistory
	FocusFeedback
)

// Options configures a Model.
type Options struct {
	Theme           *styles.Theme
	Markdown        bool
	FeedbackDismiss time.Duration
	HistoryWidth    int
	BackendLabel    string // shown in the header, usually the backend URL
	Logger          zerolog.Logger
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat client.
type Model struct {
	// Core state
	sess  *session.Session
	store *storage.ConversationStore
	ctx   context.Context

	// Styling
	theme    *styles.Theme
	markdown bool

	// Dimensions
	width        int
	height       int
	historyWidth int

	// UI Components
	header     *components.Header
	transcript *components.Transcript
	chatView   *components.ChatViewport
	sources    *components.SourcesPanel
	history    *components.HistoryList
	feedback   *components.FeedbackWidget // nil when not attached
	statusBar  *components.StatusBar
	spinner    *components.Spinner
	input      textinput.Model

	// Key bindings
	keyMap KeyMap

	// Interaction state
	mode          Mode
	focus         Focus
	prevFocus     Focus  // restored after rename or delete confirmation
	draft         string // question text parked during rename
	pendingDelete int
	loading       bool

	backendLabel string
	dismissAfter time.Duration
	logger       zerolog.Logger
}

// New creates the chat model. ctx bounds every chat request the model
// starts.
func New(ctx context.Context, sess *session.Session, opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	dismiss := opts.FeedbackDismiss
	if dismiss <= 0 {
		dismiss = DefaultFeedbackDismiss
	}
	historyWidth := opts.HistoryWidth
	if historyWidth <= 0 {
		historyWidth = 28
	}

	transcript := components.NewTranscript(theme)
	if opts.Markdown {
		transcript.SetMarkdown(components.NewGlamourMarkdown(theme.GlamourStyle()))
	}

	input := textinput.New()
	input.Placeholder = "Ask a question..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.CharLimit = 4000
	input.Focus()

	header := components.NewHeader(theme)
	header.Status = opts.BackendLabel

	m := Model{
		sess:          sess,
		store:         sess.Store(),
		ctx:           ctx,
		theme:         theme,
		markdown:      opts.Markdown,
		width:         80,
		height:        24,
		historyWidth:  historyWidth,
		header:        header,
		transcript:    transcript,
		chatView:      components.NewChatViewport(transcript, theme),
		sources:       components.NewSourcesPanel(theme),
		history:       components.NewHistoryList(theme),
		statusBar:     components.NewStatusBar(theme),
		spinner:       components.NewSpinner(theme),
		input:         input,
		keyMap:        DefaultKeyMap(),
		mode:          ModeChat,
		focus:         FocusInput,
		pendingDelete: -1,
		loading:       true,
		backendLabel:  opts.BackendLabel,
		dismissAfter:  dismiss,
		logger:        opts.Logger.With().Str("component", "tui").Logger(),
	}
	m.syncHistory()
	m.layout()
	return m
}

// Init loads the saved conversations and starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), textinput.Blink)
}

func (m Model) loadCmd() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		return ConversationsLoadedMsg{Err: store.Load(ctx)}
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Session returns the session driving the model.
func (m Model) Session() *session.Session { return m.sess }

// Transcript returns the transcript of the active conversation.
func (m Model) Transcript() *components.Transcript { return m.transcript }

// Sources returns the sources panel.
func (m Model) Sources() *components.SourcesPanel { return m.sources }

// History returns the conversation sidebar.
func (m Model) History() *components.HistoryList { return m.history }

// Feedback returns the attached feedback widget, or nil.
func (m Model) Feedback() *components.FeedbackWidget { return m.feedback }

// Mode returns the current input mode.
func (m Model) Mode() Mode { return m.mode }

// Focus returns the focused area.
func (m Model) Focus() Focus { return m.focus }

// Thinking reports whether the loading indicator is shown.
func (m Model) Thinking() bool { return m.spinner.IsActive() }

// PendingDelete returns the index awaiting delete confirmation, or -1.
func (m Model) PendingDelete() int { return m.pendingDelete }

// InputValue returns the text in the input line.
func (m Model) InputValue() string { return m.input.Value() }

// helpContext picks the key hints for the current state.
func (m Model) helpContext() HelpContext {
	switch {
	case m.mode == ModeConfirmDelete:
		return ContextConfirm
	case m.mode == ModeRename:
		return ContextRename
	case m.sess.Sending():
		return ContextSending
	case m.focus == FocusHistory:
		return ContextHistory
	case m.focus == FocusFeedback:
		return ContextFeedback
	default:
		return ContextInput
	}
}

// =============================================================================
// STATE SYNC
// =============================================================================

// syncHistory rebuilds the sidebar and header from the store.
func (m *Model) syncHistory() {
	m.history.SetItems(m.store.Titles(), m.store.Current())
	m.header.Title = m.store.Active().DisplayTitle()
}

// reloadTranscript re-renders the active conversation from the store and
// removes the per-reply panels.
func (m *Model) reloadTranscript() {
	m.transcript.LoadConversation(m.store.Active())
	m.sources.Hide()
	m.detachFeedback()
	m.chatView.ScrollToBottom()
	m.chatView.Refresh()
}

// attachFeedback replaces any current widget with a fresh one.
func (m *Model) attachFeedback() {
	m.feedback = components.NewFeedbackWidget(m.theme)
}

func (m *Model) detachFeedback() {
	m.feedback = nil
	if m.focus == FocusFeedback {
		m.setFocus(FocusInput)
	}
}

// setFocus moves keyboard focus. Only the input and the feedback comment
// field hold a text cursor.
func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	if m.feedback != nil && f != FocusFeedback {
		m.feedback.BlurComment()
	}
	if f == FocusInput {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// cycleFocus moves focus forward (or backward) through input, history and
// the feedback widget when attached.
func (m *Model) cycleFocus(forward bool) tea.Cmd {
	order := []Focus{FocusInput}
	if m.showHistory() {
		order = append(order, FocusHistory)
	}
	if m.feedback != nil && !m.feedback.Thanked() {
		order = append(order, FocusFeedback)
	}

	pos := 0
	for i, f := range order {
		if f == m.focus {
			pos = i
			break
		}
	}
	if forward {
		pos = (pos + 1) % len(order)
	} else {
		pos = (pos - 1 + len(order)) % len(order)
	}
	return m.setFocus(order[pos])
}
