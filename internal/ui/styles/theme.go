// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	HeaderBrand  lipgloss.Style
	HeaderStatus lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT STYLES
	// ==========================================================================

	UserLabel  lipgloss.Style
	BotLabel   lipgloss.Style
	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	BotNotice  lipgloss.Style

	// ==========================================================================
	// SOURCES PANEL STYLES
	// ==========================================================================

	SourcesBox    lipgloss.Style
	SourcesHeader lipgloss.Style
	SourceTitle   lipgloss.Style
	SourceMeta    lipgloss.Style
	ToggleButton  lipgloss.Style

	// ==========================================================================
	// HISTORY SIDEBAR STYLES
	// ==========================================================================

	HistoryBox        lipgloss.Style
	HistoryBoxFocused lipgloss.Style
	HistoryHeader     lipgloss.Style
	HistoryItem       lipgloss.Style
	HistoryActive     lipgloss.Style
	HistoryCursor     lipgloss.Style

	// ==========================================================================
	// FEEDBACK WIDGET STYLES
	// ==========================================================================

	FeedbackBox        lipgloss.Style
	FeedbackBoxFocused lipgloss.Style
	FeedbackLabel      lipgloss.Style
	StarOn             lipgloss.Style
	StarOff            lipgloss.Style
	FeedbackThanks     lipgloss.Style
	SubmitButton       lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	ConfirmPrompt  lipgloss.Style
	StatusBar      lipgloss.Style
	StatusKey      lipgloss.Style
	StatusHint     lipgloss.Style
	Spinner        lipgloss.Style
	Muted          lipgloss.Style
}

// NewTheme creates a theme for mode, one of "auto", "dark" or "light".
// "auto" asks the terminal for its background color.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderStatus = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Transcript
	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.BotLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1)

	t.BotNotice = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	// Sources
	t.SourcesBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SourcesHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.SourceTitle = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.SourceMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ToggleButton = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true)

	// History sidebar
	t.HistoryBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 1)

	t.HistoryBoxFocused = t.HistoryBox.
		BorderForeground(FocusRing)

	t.HistoryHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary).
		MarginBottom(1)

	t.HistoryItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.HistoryActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HistoryCursor = lipgloss.NewStyle().
		Background(SelectionBg)

	// Feedback
	t.FeedbackBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 1)

	t.FeedbackBoxFocused = t.FeedbackBox.
		BorderForeground(FocusRing)

	t.FeedbackLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StarOn = lipgloss.NewStyle().
		Bold(true).
		Foreground(Gold)

	t.StarOff = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FeedbackThanks = lipgloss.NewStyle().
		Bold(true).
		Foreground(Emerald)

	t.SubmitButton = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 1)

	// Input and status
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ConfirmPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.StatusHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetDark switches palettes in place. Components holding this theme pick
// up the change on their next render.
func (t *Theme) SetDark(dark bool) {
	t.IsDark = dark
	lipgloss.SetHasDarkBackground(dark)
	t.initStyles()
}

// Toggle flips between dark and light and returns the new mode name.
func (t *Theme) Toggle() string {
	t.SetDark(!t.IsDark)
	return t.GlamourStyle()
}

// GlamourStyle returns the glamour standard style matching the background.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns, history sidebar hidden
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
