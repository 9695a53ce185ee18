// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT - Title bar
// =============================================================================

// Header is the single-line title bar above the transcript.
type Header struct {
	Brand  string // Application name
	Title  string // Active conversation title
	Status string // Right-aligned status, e.g. the backend URL or scroll position
	Width  int
	theme  *styles.Theme
}

// NewHeader creates a Header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Brand: "ragchat",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header.
func (h *Header) View() string {
	width := h.Width
	if width < 20 {
		width = 20
	}
	inner := width - 2

	brand := h.theme.HeaderBrand.Render("< " + h.Brand + " >")
	status := ""
	if h.Status != "" {
		status = h.theme.HeaderStatus.Render(util.TruncateWidth(h.Status, inner/3))
	}

	titleWidth := inner - lipgloss.Width(brand) - lipgloss.Width(status) - 2
	title := ""
	if titleWidth > 3 {
		title = h.theme.HeaderTitle.Render(util.TruncateWidth(util.SingleLine(h.Title), titleWidth))
	}

	gap := inner - lipgloss.Width(brand) - lipgloss.Width(title) - lipgloss.Width(status) - 1
	if gap < 1 {
		gap = 1
	}

	line := brand + " " + title + strings.Repeat(" ", gap) + status
	return h.theme.Header.Width(width).MaxWidth(width).Render(line)
}
