// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// Role identifies who wrote a transcript entry.
type Role int

const (
	RoleUser Role = iota
	RoleBot
)

// String returns the role label.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleBot:
		return "bot"
	default:
		return "unknown"
	}
}

// Entry is one rendered block of the transcript.
type Entry struct {
	Role Role
	Text string

	// Notice marks bot placeholders (interrupted or failed replies). They
	// are never passed through the markdown renderer.
	Notice bool
}

// MarkdownFunc renders markdown text for the given width.
type MarkdownFunc func(text string, width int) (string, error)

// MessageBubble renders a single transcript entry.
type MessageBubble struct {
	Entry    Entry
	Width    int
	Markdown MarkdownFunc
	theme    *styles.Theme
}

// NewMessageBubble creates a bubble for entry.
func NewMessageBubble(entry Entry, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Entry: entry,
		Width: 80,
		theme: theme,
	}
}

// View renders the bubble.
func (b *MessageBubble) View() string {
	if b.Entry.Role == RoleUser {
		return b.renderUserBubble()
	}
	return b.renderBotBubble()
}

// ==========================================================================
// USER BUBBLE - right-aligned
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Entry.Text
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)

	bubble := b.theme.UserBubble.Render(wrapped)
	label := b.theme.UserLabel.Render("You")

	block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
	return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, block)
}

// ==========================================================================
// BOT BUBBLE - left-aligned, optional markdown
// ==========================================================================

func (b *MessageBubble) renderBotBubble() string {
	label := b.theme.BotLabel.Render("Bot")

	if b.Entry.Notice {
		return lipgloss.JoinVertical(lipgloss.Left, label, b.theme.BotNotice.Render(b.Entry.Text))
	}

	maxContentWidth := b.Width - 6
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	content := ""
	if b.Markdown != nil {
		if rendered, err := b.Markdown(b.Entry.Text, maxContentWidth); err == nil {
			content = strings.Trim(rendered, "\n")
		}
	}
	if content == "" {
		content = wordWrap(b.Entry.Text, maxContentWidth)
	}
	if content == "" {
		content = "..."
	}

	return lipgloss.JoinVertical(lipgloss.Left, label, b.theme.BotBubble.Render(content))
}

// ==========================================================================
// UTILITY FUNCTIONS
// ==========================================================================

// wordWrap wraps text to width display cells. Existing newlines are kept,
// and words wider than width are split.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		current := ""
		currentWidth := 0
		for _, word := range words {
			for runewidth.StringWidth(word) > width {
				if current != "" {
					result.WriteString(current)
					result.WriteString("\n")
					current, currentWidth = "", 0
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					head = string([]rune(word)[:1])
				}
				result.WriteString(head)
				result.WriteString("\n")
				word = word[len(head):]
			}

			w := runewidth.StringWidth(word)
			switch {
			case current == "":
				current, currentWidth = word, w
			case currentWidth+1+w <= width:
				current += " " + word
				currentWidth += 1 + w
			default:
				result.WriteString(current)
				result.WriteString("\n")
				current, currentWidth = word, w
			}
		}
		result.WriteString(current)
	}

	return result.String()
}
