// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// =============================================================================
// HISTORY LIST COMPONENT - Conversation sidebar
// =============================================================================

// HistoryList is the sidebar of saved conversation titles. The cursor moves
// independently of the active conversation until a selection is made.
type HistoryList struct {
	titles []string
	active int
	cursor int
	offset int
	theme  *styles.Theme
}

// NewHistoryList creates an empty list.
func NewHistoryList(theme *styles.Theme) *HistoryList {
	return &HistoryList{cursor: -1, theme: theme}
}

// SetItems rebuilds the list and marks active. The cursor stays where it
// was when still in range, otherwise it moves to the active entry. The
// first call always puts it on the active entry.
func (h *HistoryList) SetItems(titles []string, active int) {
	h.titles = append([]string(nil), titles...)
	h.active = active
	if h.cursor < 0 || h.cursor >= len(h.titles) {
		h.cursor = active
	}
	h.clampCursor()
}

// Len returns the number of entries.
func (h *HistoryList) Len() int { return len(h.titles) }

// Active returns the index of the active conversation.
func (h *HistoryList) Active() int { return h.active }

// Cursor returns the highlighted index.
func (h *HistoryList) Cursor() int { return h.cursor }

// SetCursor moves the highlight to i, clamped into range.
func (h *HistoryList) SetCursor(i int) {
	h.cursor = i
	h.clampCursor()
}

// Up moves the cursor up one entry.
func (h *HistoryList) Up() { h.SetCursor(h.cursor - 1) }

// Down moves the cursor down one entry.
func (h *HistoryList) Down() { h.SetCursor(h.cursor + 1) }

func (h *HistoryList) clampCursor() {
	if h.cursor >= len(h.titles) {
		h.cursor = len(h.titles) - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
}

// View renders the sidebar into a box of width x height cells.
func (h *HistoryList) View(width, height int, focused bool) string {
	box := h.theme.HistoryBox
	if focused {
		box = h.theme.HistoryBoxFocused
	}

	// Border and padding take four columns, the header two rows plus the
	// border's two.
	inner := width - 4
	if inner < 4 {
		inner = 4
	}
	rows := height - 4
	if focused {
		rows -= 2
	}
	if rows < 1 {
		rows = 1
	}

	// Keep the cursor in the visible window.
	if h.cursor < h.offset {
		h.offset = h.cursor
	}
	if h.cursor >= h.offset+rows {
		h.offset = h.cursor - rows + 1
	}
	if h.offset < 0 {
		h.offset = 0
	}

	lines := []string{h.theme.HistoryHeader.Render("Conversations")}
	for i := h.offset; i < len(h.titles) && i < h.offset+rows; i++ {
		lines = append(lines, h.renderItem(i, inner, focused))
	}

	if focused {
		lines = append(lines, "", h.theme.StatusHint.Render(util.TruncateWidth("enter open  d delete  n new", inner)))
	}

	return box.Width(width - 2).Height(height - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (h *HistoryList) renderItem(i, width int, focused bool) string {
	marker := "  "
	style := h.theme.HistoryItem
	if i == h.active {
		marker = styles.ActiveMarker
		style = h.theme.HistoryActive
	}

	title := util.TruncateWidth(util.SingleLine(h.titles[i]), width-util.StringWidth(marker))
	line := util.PadWidth(marker+title, width)

	if focused && i == h.cursor {
		return h.theme.HistoryCursor.Inherit(style).Render(line)
	}
	return style.Render(line)
}
