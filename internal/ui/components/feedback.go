// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// Feedback widget texts.
const (
	FeedbackQuestion = "Was this answer helpful?"
	FeedbackThanks   = "Thanks for your feedback!"
)

// =============================================================================
// FEEDBACK WIDGET COMPONENT
// =============================================================================

// FeedbackWidget rates the most recent answer. The comment field and the
// submit action stay hidden until a star is selected.
type FeedbackWidget struct {
	id       string
	stars    [model.MaxRating]bool
	revealed bool
	thanked  bool
	comment  textinput.Model
	theme    *styles.Theme
}

// NewFeedbackWidget creates a widget with a fresh identity.
func NewFeedbackWidget(theme *styles.Theme) *FeedbackWidget {
	ti := textinput.New()
	ti.Placeholder = "Optional comment"
	ti.CharLimit = 500
	ti.Prompt = "> "

	return &FeedbackWidget{
		id:      uuid.NewString(),
		comment: ti,
		theme:   theme,
	}
}

// ID identifies this widget instance.
func (f *FeedbackWidget) ID() string { return f.id }

// Select marks stars 1..level and clears the rest. Levels outside 1..5 and
// selections after Thank are ignored.
func (f *FeedbackWidget) Select(level int) {
	if f.thanked || !model.ValidRating(level) {
		return
	}
	for i := range f.stars {
		f.stars[i] = i < level
	}
	f.revealed = true
}

// Stars returns the selection state of each star.
func (f *FeedbackWidget) Stars() [model.MaxRating]bool { return f.stars }

// Rating counts the selected stars.
func (f *FeedbackWidget) Rating() int {
	n := 0
	for _, on := range f.stars {
		if on {
			n++
		}
	}
	return n
}

// Revealed reports whether the comment field and submit action are shown.
func (f *FeedbackWidget) Revealed() bool { return f.revealed }

// Thanked reports whether the widget was submitted.
func (f *FeedbackWidget) Thanked() bool { return f.thanked }

// Thank replaces the widget content with the thank-you message.
func (f *FeedbackWidget) Thank() {
	f.thanked = true
	f.comment.Blur()
}

// Comment returns the comment text.
func (f *FeedbackWidget) Comment() string {
	return strings.TrimSpace(f.comment.Value())
}

// SetComment replaces the comment text.
func (f *FeedbackWidget) SetComment(s string) {
	f.comment.SetValue(s)
}

// FocusComment moves keyboard input to the comment field once revealed.
func (f *FeedbackWidget) FocusComment() tea.Cmd {
	if !f.revealed || f.thanked {
		return nil
	}
	return f.comment.Focus()
}

// BlurComment takes keyboard input away from the comment field.
func (f *FeedbackWidget) BlurComment() {
	f.comment.Blur()
}

// CommentFocused reports whether the comment field has keyboard input.
func (f *FeedbackWidget) CommentFocused() bool {
	return f.comment.Focused()
}

// Update routes messages to the comment field while it has focus.
func (f *FeedbackWidget) Update(msg tea.Msg) tea.Cmd {
	if !f.comment.Focused() {
		return nil
	}
	var cmd tea.Cmd
	f.comment, cmd = f.comment.Update(msg)
	return cmd
}

// View renders the widget for width columns.
func (f *FeedbackWidget) View(width int, focused bool) string {
	box := f.theme.FeedbackBox
	if focused {
		box = f.theme.FeedbackBoxFocused
	}
	if width > 4 {
		box = box.Width(width - 2)
	}

	if f.thanked {
		return box.Render(f.theme.FeedbackThanks.Render(FeedbackThanks))
	}

	var stars strings.Builder
	for i, on := range f.stars {
		if i > 0 {
			stars.WriteString(" ")
		}
		if on {
			stars.WriteString(f.theme.StarOn.Render(styles.StarFilled))
		} else {
			stars.WriteString(f.theme.StarOff.Render(styles.StarEmpty))
		}
	}

	lines := []string{f.theme.FeedbackLabel.Render(FeedbackQuestion) + "  " + stars.String()}
	if f.revealed {
		f.comment.Width = width - 10
		lines = append(lines,
			f.comment.View(),
			f.theme.SubmitButton.Render("Submit")+f.theme.Muted.Render("  enter"),
		)
	}
	if focused {
		lines = append(lines, f.theme.StatusHint.Render("←/→ or 1-5 rate  ↓ comment  enter submit"))
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
