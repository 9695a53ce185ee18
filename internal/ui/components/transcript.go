// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// EmptyTranscriptText is shown when the active conversation has no messages.
const EmptyTranscriptText = "No messages yet. Ask a question to get started."

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the ordered list of rendered messages for the active
// conversation. Rendered blocks are cached per width, so appending a message
// never re-renders the ones before it.
type Transcript struct {
	entries  []Entry
	rendered []string
	width    int
	markdown MarkdownFunc
	theme    *styles.Theme
}

// NewTranscript creates an empty transcript.
func NewTranscript(theme *styles.Theme) *Transcript {
	return &Transcript{theme: theme}
}

// SetMarkdown installs the renderer used for bot replies. nil disables
// markdown. Cached blocks are dropped.
func (t *Transcript) SetMarkdown(fn MarkdownFunc) {
	t.markdown = fn
	t.rendered = nil
}

// Invalidate drops the cached blocks so the next View re-renders every
// message, e.g. after a theme change.
func (t *Transcript) Invalidate() {
	t.rendered = nil
}

// Append adds a message at the end.
func (t *Transcript) Append(role Role, text string) {
	t.entries = append(t.entries, Entry{Role: role, Text: text})
}

// AppendNotice adds a bot placeholder such as the interruption message.
func (t *Transcript) AppendNotice(text string) {
	t.entries = append(t.entries, Entry{Role: RoleBot, Text: text, Notice: true})
}

// Reset clears the transcript.
func (t *Transcript) Reset() {
	t.entries = nil
	t.rendered = nil
}

// LoadConversation clears the transcript and renders every stored exchange
// in order, user message first.
func (t *Transcript) LoadConversation(conv model.Conversation) {
	t.Reset()
	for _, ex := range conv.Messages {
		t.Append(RoleUser, ex.User)
		t.Append(RoleBot, ex.Bot)
	}
}

// Entries returns a copy of the transcript entries.
func (t *Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// View renders the transcript for width columns.
func (t *Transcript) View(width int) string {
	if len(t.entries) == 0 {
		return lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(width).
			Align(lipgloss.Center).
			Padding(1, 0).
			Render(EmptyTranscriptText)
	}

	if width != t.width {
		t.width = width
		t.rendered = nil
	}

	for i := len(t.rendered); i < len(t.entries); i++ {
		bubble := NewMessageBubble(t.entries[i], t.theme)
		bubble.Width = width
		bubble.Markdown = t.markdown
		t.rendered = append(t.rendered, bubble.View())
	}

	return strings.Join(t.rendered, "\n\n")
}

// =============================================================================
// MARKDOWN
// =============================================================================

// NewGlamourMarkdown returns a MarkdownFunc backed by glamour using one of
// its standard styles ("dark" or "light"). Renderers are built lazily and
// reused while the width stays the same.
func NewGlamourMarkdown(style string) MarkdownFunc {
	var (
		renderer *glamour.TermRenderer
		width    int
	)
	return func(text string, w int) (string, error) {
		if renderer == nil || w != width {
			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(style),
				glamour.WithWordWrap(w),
			)
			if err != nil {
				return "", err
			}
			renderer, width = r, w
		}
		return renderer.Render(text)
	}
}
