// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/session"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// Fixed heights of the chrome around the transcript.
const (
	headerHeight    = 1
	inputHeight     = 3 // rounded border around one line
	statusBarHeight = 1
	minViewport     = 3
)

// =============================================================================
// LAYOUT
// =============================================================================

// showHistory reports whether the sidebar fits next to the transcript.
func (m Model) showHistory() bool {
	return m.width >= 60 && m.width-m.historyWidth >= 40
}

// mainWidth is the width of the transcript column.
func (m Model) mainWidth() int {
	if m.showHistory() {
		return m.width - m.historyWidth
	}
	return m.width
}

// layout sizes the viewport and input to what is left after the header,
// the per-reply panels and the bottom lines.
func (m *Model) layout() {
	width := m.mainWidth()

	m.header.SetWidth(width)
	m.statusBar.SetWidth(m.width)

	used := headerHeight + inputHeight + statusBarHeight
	if v := m.sources.View(width); v != "" {
		used += lipgloss.Height(v)
	}
	if m.feedback != nil {
		used += lipgloss.Height(m.feedback.View(width, m.focus == FocusFeedback))
	}

	vpHeight := m.height - used
	if vpHeight < minViewport {
		vpHeight = minViewport
	}
	m.chatView.SetSize(width, vpHeight)

	inputWidth := width - 6
	if m.mode == ModeRename {
		inputWidth -= len(renameLabel)
	}
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth
}

// =============================================================================
// VIEW
// =============================================================================

const renameLabel = "Rename: "

// View renders the whole screen.
func (m Model) View() string {
	width := m.mainWidth()

	m.header.Status = m.headerStatus()
	column := []string{m.header.View(), m.chatView.View()}
	if v := m.sources.View(width); v != "" {
		column = append(column, v)
	}
	if m.feedback != nil {
		column = append(column, m.feedback.View(width, m.focus == FocusFeedback))
	}
	column = append(column, m.renderInputLine(width))
	main := lipgloss.JoinVertical(lipgloss.Left, column...)

	body := main
	if m.showHistory() {
		sidebar := m.history.View(m.historyWidth, m.height-statusBarHeight, m.focus == FocusHistory)
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

// headerStatus shows the scroll position while the user reads back, and the
// backend otherwise.
func (m Model) headerStatus() string {
	if pos := m.chatView.ScrollPosition(); pos != "" && !m.chatView.AtBottom() {
		return pos
	}
	return m.backendLabel
}

func (m Model) renderInputLine(width int) string {
	box := m.theme.InputContainer.Width(width - 2)

	switch m.mode {
	case ModeConfirmDelete:
		title := styles.StatusIndicators.Warning
		if conv, ok := m.store.At(m.pendingDelete); ok {
			title = fmt.Sprintf("%q", conv.DisplayTitle())
		}
		prompt := util.TruncateWidth(session.DeletePrompt+" "+title+" (y/N)", width-6)
		return box.BorderForeground(styles.Rose).Render(m.theme.ConfirmPrompt.Render(prompt))

	case ModeRename:
		return box.Render(m.theme.InputPrompt.Render(renameLabel) + m.input.View())
	}

	if m.focus != FocusInput {
		box = box.BorderForeground(styles.OverlayDim)
	}
	return box.Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	bar := m.statusBar
	bar.Spinner = m.spinner.View()
	switch {
	case m.loading:
		bar.Status = components.StatusLoading
	case m.mode == ModeConfirmDelete:
		bar.Status = components.StatusConfirm
	case m.mode == ModeRename:
		bar.Status = components.StatusRenaming
	case m.sess.Sending():
		bar.Status = components.StatusThinking
	default:
		bar.Status = components.StatusReady
	}
	bar.Hints = m.keyMap.Hints(m.helpContext())
	return bar.View()
}
