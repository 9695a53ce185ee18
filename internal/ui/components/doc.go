// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI components of the ragchat TUI.

Every component is a plain state holder with a View method that renders the
current state, so each can be tested without a running program.

# Display Components

Transcript (transcript.go) - Ordered user/bot messages of the active conversation.
MessageBubble (message.go) - Styled block for one transcript entry, optional markdown.
ChatViewport (viewport.go) - Scrollable viewport over a Transcript that follows new messages.
SourcesPanel (sources.go) - Collapsible citation list for the latest reply.
Header (header.go) - Title bar with the active conversation title.
StatusBar (statusbar.go) - Bottom line with status and key hints.
Spinner (spinner.go) - "Thinking..." indicator while a reply is pending.

# Interactive Components

HistoryList (history.go) - Conversation sidebar with a cursor.
FeedbackWidget (feedback.go) - Five-star rating, comment field and thank-you state.

# Usage

	theme := styles.NewTheme("auto")
	transcript := components.NewTranscript(theme)
	transcript.SetMarkdown(components.NewGlamourMarkdown(theme.GlamourStyle()))
	transcript.Append(components.RoleUser, "Hello")
	transcript.Append(components.RoleBot, "Hi")
	fmt.Println(transcript.View(80))
*/
package components
