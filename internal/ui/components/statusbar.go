// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusThinking
	StatusConfirm
	StatusRenaming
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusThinking:
		return ThinkingText
	case StatusConfirm:
		return "Confirm"
	case StatusRenaming:
		return "Rename"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
// ACCESSIBILITY: distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading, StatusThinking:
		return styles.StatusIndicators.Active
	case StatusConfirm, StatusRenaming:
		return styles.StatusIndicators.Warning
	default:
		return "?"
	}
}

// KeyHint is one "key action" pair shown in the status bar.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusBar is the bottom line with the status and key hints.
type StatusBar struct {
	Status  Status
	Spinner string // rendered spinner, replaces the status text while active
	Hints   []KeyHint
	Width   int
	theme   *styles.Theme
}

// NewStatusBar creates a StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		theme:  theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// View renders the status bar. Hints that do not fit are dropped from the
// end.
func (s *StatusBar) View() string {
	left := s.Spinner
	if left == "" {
		left = s.Status.Icon() + " " + s.Status.String()
	}

	budget := s.Width - lipgloss.Width(left) - 4
	var hints []string
	used := 0
	for _, h := range s.Hints {
		rendered := s.theme.StatusKey.Render(h.Key) + " " + s.theme.StatusHint.Render(h.Desc)
		w := lipgloss.Width(rendered)
		if used > 0 {
			w += 2
		}
		if used+w > budget {
			break
		}
		hints = append(hints, rendered)
		used += w
	}
	right := strings.Join(hints, "  ")

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return s.theme.StatusBar.Width(s.Width).MaxWidth(s.Width).
		Render(left + strings.Repeat(" ", gap) + right)
}
