// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines keyboard bindings for the chat interface and the
// context-aware key hints shown in the status bar.
package chat

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/ragchat-tui/internal/ui/components"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	// Global
	Submit        key.Binding
	Cancel        key.Binding
	NewChat       key.Binding
	Rename        key.Binding
	ToggleSources key.Binding
	ToggleTheme   key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	FocusNext     key.Binding
	FocusPrev     key.Binding
	Quit          key.Binding

	// History sidebar
	Up         key.Binding
	Down       key.Binding
	Delete     key.Binding
	HistoryNew key.Binding

	// Feedback widget
	RateDown key.Binding
	RateUp   key.Binding
	Comment  key.Binding

	// Delete confirmation
	Yes key.Binding
	No  key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new"),
		),
		Rename: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "rename"),
		),
		ToggleSources: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "sources"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "focus back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("C-q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		HistoryNew: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left", "fewer stars"),
		),
		RateUp: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right", "more stars"),
		),
		Comment: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "comment"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "delete"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "keep"),
		),
	}
}

// =============================================================================
// CONTEXT-AWARE HINTS
// =============================================================================

// HelpContext represents the UI context for filtering key hints.
type HelpContext string

const (
	ContextInput    HelpContext = "input"
	ContextSending  HelpContext = "sending"
	ContextHistory  HelpContext = "history"
	ContextFeedback HelpContext = "feedback"
	ContextRename   HelpContext = "rename"
	ContextConfirm  HelpContext = "confirm"
)

// Hints returns the key hints for ctx, most important first.
func (k KeyMap) Hints(ctx HelpContext) []components.KeyHint {
	switch ctx {
	case ContextSending:
		return hints(k.Cancel, k.PageUp, k.PageDown, k.Quit)
	case ContextHistory:
		return []components.KeyHint{
			{Key: "enter", Desc: "open"},
			hint(k.Delete), hint(k.HistoryNew), hint(k.FocusNext), hint(k.Quit),
		}
	case ContextFeedback:
		return []components.KeyHint{
			{Key: "1-5", Desc: "rate"},
			{Key: "enter", Desc: "submit"},
			hint(k.Comment), hint(k.FocusNext), hint(k.Quit),
		}
	case ContextRename:
		return []components.KeyHint{{Key: "enter", Desc: "save"}, {Key: "esc", Desc: "cancel"}}
	case ContextConfirm:
		return hints(k.Yes, k.No)
	default:
		return hints(k.Submit, k.NewChat, k.Rename, k.ToggleSources, k.ToggleTheme, k.FocusNext, k.Quit)
	}
}

func hint(b key.Binding) components.KeyHint {
	h := b.Help()
	return components.KeyHint{Key: h.Key, Desc: h.Desc}
}

func hints(bindings ...key.Binding) []components.KeyHint {
	out := make([]components.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, hint(b))
	}
	return out
}
