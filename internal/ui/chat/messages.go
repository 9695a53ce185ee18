// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat interface.
// Messages are organized into the following categories:
//   - Intents: user actions produced by key handling (or sent directly by tests)
//   - Async results: conversation load, chat replies and widget dismissal
package chat

import (
	"github.com/jeranaias/ragchat-tui/internal/session"
)

// =============================================================================
// INTENTS
// =============================================================================

// SendIntent asks a question in the active conversation.
type SendIntent struct {
	Text string
}

// CancelIntent aborts the outstanding chat request.
type CancelIntent struct{}

// NewConversationIntent starts a fresh conversation.
type NewConversationIntent struct{}

// SelectConversationIntent makes the conversation at Index active.
type SelectConversationIntent struct {
	Index int
}

// RequestDeleteIntent opens the delete confirmation for Index.
type RequestDeleteIntent struct {
	Index int
}

// ConfirmDeleteIntent answers the open delete confirmation.
type ConfirmDeleteIntent struct {
	Confirmed bool
}

// RenameIntent retitles the active conversation. A blank title is a no-op.
type RenameIntent struct {
	Title string
}

// RateIntent selects a star level on the feedback widget.
type RateIntent struct {
	Level int
}

// SubmitFeedbackIntent submits the feedback widget.
type SubmitFeedbackIntent struct {
	Comment string
}

// ToggleSourcesIntent expands or collapses the sources panel.
type ToggleSourcesIntent struct{}

// ToggleThemeIntent switches between the dark and light palettes.
type ToggleThemeIntent struct{}

// =============================================================================
// ASYNC RESULTS
// =============================================================================

// ConversationsLoadedMsg reports the initial load. Err is informational;
// the store already fell back to a default conversation.
type ConversationsLoadedMsg struct {
	Err error
}

// ChatResultMsg delivers the outcome of a chat request.
type ChatResultMsg struct {
	Result session.Result
}

// FeedbackDismissMsg removes the feedback widget with the given ID, if it is
// still the attached one.
type FeedbackDismissMsg struct {
	WidgetID string
}
