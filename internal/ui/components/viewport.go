// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// =============================================================================
// CHAT VIEWPORT COMPONENT - Scrollable transcript area
// =============================================================================

// ChatViewport shows a Transcript inside a scrollable bubbles viewport.
type ChatViewport struct {
	viewport   viewport.Model
	transcript *Transcript
	width      int
	height     int
	autoScroll bool
	sized      bool
	theme      *styles.Theme
}

// NewChatViewport creates a viewport over transcript.
func NewChatViewport(transcript *Transcript, theme *styles.Theme) *ChatViewport {
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	return &ChatViewport{
		viewport:   vp,
		transcript: transcript,
		width:      80,
		height:     20,
		autoScroll: true,
		theme:      theme,
	}
}

// Transcript returns the transcript being displayed.
func (cv *ChatViewport) Transcript() *Transcript {
	return cv.transcript
}

// SetSize updates the viewport dimensions and re-renders when they changed.
func (cv *ChatViewport) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if cv.sized && width == cv.width && height == cv.height {
		return
	}
	cv.sized = true
	cv.width = width
	cv.height = height
	cv.viewport.Width = width
	cv.viewport.Height = height
	cv.Refresh()
}

// Refresh re-renders the transcript into the viewport. The view follows
// the newest message unless the user scrolled away from the bottom.
func (cv *ChatViewport) Refresh() {
	cv.viewport.SetContent(cv.transcript.View(cv.width - 1))
	if cv.autoScroll {
		cv.viewport.GotoBottom()
	}
}

// ScrollToBottom jumps to the newest message and re-enables following.
func (cv *ChatViewport) ScrollToBottom() {
	cv.viewport.GotoBottom()
	cv.autoScroll = true
}

// PageUp scrolls up one page.
func (cv *ChatViewport) PageUp() {
	cv.viewport.ViewUp()
	cv.autoScroll = cv.viewport.AtBottom()
}

// PageDown scrolls down one page.
func (cv *ChatViewport) PageDown() {
	cv.viewport.ViewDown()
	cv.autoScroll = cv.viewport.AtBottom()
}

// AtBottom reports whether the newest message is visible.
func (cv *ChatViewport) AtBottom() bool {
	return cv.viewport.AtBottom()
}

// Update forwards mouse wheel messages to the viewport.
func (cv *ChatViewport) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.MouseMsg); !ok {
		return nil
	}
	var cmd tea.Cmd
	cv.viewport, cmd = cv.viewport.Update(msg)
	cv.autoScroll = cv.viewport.AtBottom()
	return cmd
}

// View renders the visible part of the transcript.
func (cv *ChatViewport) View() string {
	return cv.viewport.View()
}

// ScrollPosition returns "[line/total]" when the transcript overflows the
// viewport, or "" when it fits.
func (cv *ChatViewport) ScrollPosition() string {
	total := cv.viewport.TotalLineCount()
	if total <= cv.viewport.Height {
		return ""
	}
	return fmt.Sprintf("[%d/%d]", cv.viewport.YOffset+1, total-cv.viewport.Height+1)
}
