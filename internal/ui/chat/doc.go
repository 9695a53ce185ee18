// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view for the ragchat TUI.

The chat package wires a session.Session to the Bubble Tea framework. Key
presses become intents, intents become session operations, and the
components are re-rendered from the resulting state.

# Key Components

## Model (model.go)

The Model struct holds the UI state around the session:
  - Transcript, viewport and conversation sidebar
  - Sources panel and the feedback widget for the latest answer
  - Input line, which doubles as the rename editor and delete prompt
  - Keyboard focus and the thinking spinner

## Update Loop (update.go)

Handles all Bubble Tea messages:
  - Keyboard input translated into intents
  - Chat results arriving from the background request
  - Saved conversations arriving after startup
  - Delayed removal of a thanked feedback widget

## View Rendering (view.go)

Lays out the header, transcript, per-answer panels, input line, sidebar
and status bar for the current terminal size. The sidebar is hidden on
narrow terminals.

# Usage

	store := storage.NewConversationStore(client, logger)
	sess := session.New(store, client, logger)
	m := chat.New(ctx, sess, chat.Options{Markdown: true})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}

# Keyboard Shortcuts

	Enter       Send the question
	Esc/Ctrl+C  Cancel the pending request
	Ctrl+N      Start a new conversation
	Ctrl+R      Rename the active conversation
	Ctrl+S      Show or hide the sources list
	Ctrl+T      Switch between dark and light
	Tab         Move focus between input, sidebar and feedback
	PgUp/PgDn   Scroll the transcript
	Ctrl+Q      Quit

Inside the feedback widget, 1-5 or left/right set the rating, down opens the
comment field and Enter submits.
*/
package chat
