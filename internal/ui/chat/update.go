// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/session"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles a message and re-lays out the screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.layout()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.chatView.Update(msg)

	case spinner.TickMsg:
		return m, m.spinner.Update(msg)

	case ConversationsLoadedMsg:
		return m.handleLoaded(msg)

	case ChatResultMsg:
		return m.handleChatResult(msg)

	case FeedbackDismissMsg:
		if m.feedback != nil && m.feedback.ID() == msg.WidgetID {
			m.detachFeedback()
		}
		return m, nil

	case SendIntent, CancelIntent, NewConversationIntent, SelectConversationIntent,
		RequestDeleteIntent, ConfirmDeleteIntent, RenameIntent, RateIntent,
		SubmitFeedbackIntent, ToggleSourcesIntent, ToggleThemeIntent:
		return m.dispatch(msg)
	}

	// Cursor blink and other input-level messages.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.feedback != nil {
		cmds = append(cmds, m.feedback.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// ASYNC RESULTS
// =============================================================================

func (m Model) handleLoaded(msg ConversationsLoadedMsg) (Model, tea.Cmd) {
	m.loading = false
	if msg.Err != nil {
		m.logger.Debug().Err(msg.Err).Msg("conversation load degraded to default")
	}
	m.syncHistory()
	m.history.SetCursor(m.store.Current())
	m.reloadTranscript()
	return m, nil
}

// handleChatResult is the terminal step of a send: the spinner and cancel
// hint go away for every outcome.
func (m Model) handleChatResult(msg ChatResultMsg) (Model, tea.Cmd) {
	res := m.sess.Finish(msg.Result)
	if res.Stale {
		return m, nil
	}
	m.spinner.Stop()

	if res.Outcome == session.OutcomeCompleted {
		m.transcript.Append(components.RoleBot, res.Display())
		m.sources.Show(res.Sources)
		m.attachFeedback()
		m.syncHistory()
	} else {
		m.transcript.AppendNotice(res.Display())
	}
	m.chatView.Refresh()
	return m, nil
}

// =============================================================================
// INTENT DISPATCH
// =============================================================================

// dispatch applies an intent to the session and the components.
// Conversation changes wait for the saved list to arrive.
func (m Model) dispatch(intent tea.Msg) (Model, tea.Cmd) {
	if m.loading {
		switch intent.(type) {
		case NewConversationIntent, SelectConversationIntent,
			RequestDeleteIntent, ConfirmDeleteIntent, RenameIntent:
			return m, nil
		}
	}

	switch in := intent.(type) {
	case SendIntent:
		return m.send(in.Text)

	case CancelIntent:
		m.sess.Cancel()
		return m, nil

	case NewConversationIntent:
		if err := m.sess.NewConversation(); err != nil {
			return m, nil
		}
		m.syncHistory()
		m.history.SetCursor(0)
		m.reloadTranscript()
		return m, nil

	case SelectConversationIntent:
		if err := m.sess.SelectConversation(in.Index); err != nil {
			return m, nil
		}
		m.syncHistory()
		m.reloadTranscript()
		return m, nil

	case RequestDeleteIntent:
		if m.sess.Sending() || in.Index < 0 || in.Index >= m.store.Len() {
			return m, nil
		}
		m.prevFocus = m.focus
		m.mode = ModeConfirmDelete
		m.pendingDelete = in.Index
		m.input.Blur()
		return m, nil

	case ConfirmDeleteIntent:
		if m.mode != ModeConfirmDelete {
			return m, nil
		}
		index := m.pendingDelete
		m.mode = ModeChat
		m.pendingDelete = -1
		if in.Confirmed {
			deleted, err := m.sess.DeleteConversation(index, session.AlwaysConfirm)
			if err == nil && deleted {
				m.syncHistory()
				m.reloadTranscript()
			}
		}
		cmd := m.setFocus(m.prevFocus)
		return m, cmd

	case RenameIntent:
		if m.sess.RenameConversation(in.Title) {
			m.syncHistory()
		}
		return m, nil

	case RateIntent:
		if m.feedback != nil {
			m.feedback.Select(in.Level)
		}
		return m, nil

	case SubmitFeedbackIntent:
		return m.submitFeedback(in.Comment)

	case ToggleSourcesIntent:
		m.sources.Toggle()
		return m, nil

	case ToggleThemeIntent:
		mode := m.theme.Toggle()
		if m.markdown {
			m.transcript.SetMarkdown(components.NewGlamourMarkdown(mode))
		}
		m.transcript.Invalidate()
		m.input.PromptStyle = m.theme.InputPrompt
		m.chatView.Refresh()
		m.logger.Debug().Str("theme", mode).Msg("theme toggled")
		return m, nil
	}
	return m, nil
}

// send starts a chat request. Blank input and a second send while one is
// outstanding are silently ignored, as is sending before the saved
// conversations arrive.
func (m Model) send(text string) (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	req, err := m.sess.Begin(m.ctx, text)
	if err != nil {
		return m, nil
	}

	m.input.Reset()
	m.transcript.Append(components.RoleUser, req.Text)
	m.sources.Hide()
	m.chatView.ScrollToBottom()
	m.chatView.Refresh()

	sess := m.sess
	return m, tea.Batch(
		m.spinner.Start(),
		func() tea.Msg { return ChatResultMsg{Result: sess.Execute(req)} },
	)
}

// submitFeedback posts the widget rating and schedules its removal.
func (m Model) submitFeedback(comment string) (Model, tea.Cmd) {
	if m.feedback == nil || m.feedback.Thanked() {
		return m, nil
	}
	if _, err := m.sess.SubmitFeedback(m.feedback.Rating(), comment); err != nil {
		return m, nil
	}

	m.feedback.Thank()
	var cmd tea.Cmd
	if m.focus == FocusFeedback {
		cmd = m.setFocus(FocusInput)
	}

	id := m.feedback.ID()
	dismiss := tea.Tick(m.dismissAfter, func(time.Time) tea.Msg {
		return FeedbackDismissMsg{WidgetID: id}
	})
	return m, tea.Batch(cmd, dismiss)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// handleKey translates key presses into intents.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeConfirmDelete:
		switch {
		case key.Matches(msg, m.keyMap.Yes):
			return m.dispatch(ConfirmDeleteIntent{Confirmed: true})
		case key.Matches(msg, m.keyMap.No):
			return m.dispatch(ConfirmDeleteIntent{Confirmed: false})
		}
		return m, nil

	case ModeRename:
		switch msg.Type {
		case tea.KeyEnter:
			title := m.input.Value()
			cmd := m.endRename()
			next, cmd2 := m.dispatch(RenameIntent{Title: title})
			return next, tea.Batch(cmd, cmd2)
		case tea.KeyEsc, tea.KeyCtrlC:
			cmd := m.endRename()
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		if m.sess.Sending() {
			return m.dispatch(CancelIntent{})
		}
		if msg.Type == tea.KeyEsc && m.focus != FocusInput {
			cmd := m.setFocus(FocusInput)
			return m, cmd
		}
		return m, nil
	case key.Matches(msg, m.keyMap.NewChat):
		return m.dispatch(NewConversationIntent{})
	case key.Matches(msg, m.keyMap.Rename):
		cmd := m.startRename()
		return m, cmd
	case key.Matches(msg, m.keyMap.ToggleSources):
		return m.dispatch(ToggleSourcesIntent{})
	case key.Matches(msg, m.keyMap.ToggleTheme):
		return m.dispatch(ToggleThemeIntent{})
	case key.Matches(msg, m.keyMap.PageUp):
		m.chatView.PageUp()
		return m, nil
	case key.Matches(msg, m.keyMap.PageDown):
		m.chatView.PageDown()
		return m, nil
	case key.Matches(msg, m.keyMap.FocusNext):
		cmd := m.cycleFocus(true)
		return m, cmd
	case key.Matches(msg, m.keyMap.FocusPrev):
		cmd := m.cycleFocus(false)
		return m, cmd
	}

	switch m.focus {
	case FocusHistory:
		return m.handleHistoryKey(msg)
	case FocusFeedback:
		return m.handleFeedbackKey(msg)
	}

	if key.Matches(msg, m.keyMap.Submit) {
		return m.dispatch(SendIntent{Text: m.input.Value()})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.history.Up()
	case key.Matches(msg, m.keyMap.Down):
		m.history.Down()
	case key.Matches(msg, m.keyMap.Submit):
		return m.dispatch(SelectConversationIntent{Index: m.history.Cursor()})
	case key.Matches(msg, m.keyMap.Delete):
		return m.dispatch(RequestDeleteIntent{Index: m.history.Cursor()})
	case key.Matches(msg, m.keyMap.HistoryNew):
		return m.dispatch(NewConversationIntent{})
	}
	return m, nil
}

func (m Model) handleFeedbackKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := m.feedback
	if f == nil {
		cmd := m.setFocus(FocusInput)
		return m, cmd
	}

	if f.CommentFocused() {
		switch msg.Type {
		case tea.KeyEnter:
			return m.dispatch(SubmitFeedbackIntent{Comment: f.Comment()})
		case tea.KeyUp:
			f.BlurComment()
			return m, nil
		}
		return m, f.Update(msg)
	}

	switch {
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 &&
		msg.Runes[0] >= '1' && msg.Runes[0] <= '0'+model.MaxRating:
		return m.dispatch(RateIntent{Level: int(msg.Runes[0] - '0')})
	case key.Matches(msg, m.keyMap.RateDown):
		if r := f.Rating(); r > model.MinRating {
			return m.dispatch(RateIntent{Level: r - 1})
		}
	case key.Matches(msg, m.keyMap.RateUp):
		if r := f.Rating(); r < model.MaxRating {
			return m.dispatch(RateIntent{Level: r + 1})
		}
	case key.Matches(msg, m.keyMap.Comment):
		return m, f.FocusComment()
	case key.Matches(msg, m.keyMap.Submit):
		return m.dispatch(SubmitFeedbackIntent{Comment: f.Comment()})
	}
	return m, nil
}

// =============================================================================
// RENAME MODE
// =============================================================================

// startRename swaps the input line for a title editor prefilled with the
// active title. The draft question is restored afterwards.
func (m *Model) startRename() tea.Cmd {
	if m.loading {
		return nil
	}
	m.prevFocus = m.focus
	m.draft = m.input.Value()
	m.mode = ModeRename
	m.input.SetValue(m.store.Active().Title)
	m.input.CursorEnd()
	return m.setFocus(FocusInput)
}

func (m *Model) endRename() tea.Cmd {
	m.mode = ModeChat
	m.input.SetValue(m.draft)
	m.draft = ""
	return m.setFocus(m.prevFocus)
}
