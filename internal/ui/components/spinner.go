// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// ThinkingText is shown next to the spinner while a reply is pending.
const ThinkingText = "Thinking..."

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is the loading indicator shown while a chat request is outstanding.
type Spinner struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	isActive  bool
	showTimer bool
	theme     *styles.Theme
}

// NewSpinner creates an inactive "Thinking..." spinner.
func NewSpinner(theme *styles.Theme) *Spinner {
	s := spinner.New(
		spinner.WithSpinner(styles.LineSpinner.Bubbles()),
		spinner.WithStyle(theme.Spinner),
	)
	return &Spinner{
		spinner:   s,
		message:   ThinkingText,
		showTimer: true,
		theme:     theme,
	}
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// Start activates the spinner and returns the first tick.
func (s *Spinner) Start() tea.Cmd {
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner. Pending ticks are dropped by Update.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is currently running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// Update advances the animation on spinner ticks.
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	if !s.isActive {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// View renders the spinner, or "" when inactive.
func (s *Spinner) View() string {
	if !s.isActive {
		return ""
	}

	result := s.spinner.View() + " " + s.theme.HeaderStatus.Render(s.message)
	if s.showTimer && !s.startTime.IsZero() {
		result += s.theme.Muted.Render(" (" + formatElapsed(time.Since(s.startTime)) + ")")
	}
	return result
}

// formatElapsed formats d as "4s" or "1m05s".
func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
}
