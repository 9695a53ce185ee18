// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// Toggle labels for the sources panel.
const (
	SourcesHideLabel = "Hide"
	SourcesShowLabel = "Show"
)

// =============================================================================
// SOURCES PANEL COMPONENT
// =============================================================================

// SourcesPanel is the collapsible list of citations for the latest reply.
type SourcesPanel struct {
	sources  []model.Source
	visible  bool
	expanded bool
	theme    *styles.Theme
}

// NewSourcesPanel creates a hidden panel.
func NewSourcesPanel(theme *styles.Theme) *SourcesPanel {
	return &SourcesPanel{theme: theme}
}

// Show replaces any previous list with sources and expands the panel.
// An empty list hides it.
func (p *SourcesPanel) Show(sources []model.Source) {
	p.sources = append([]model.Source(nil), sources...)
	p.visible = len(p.sources) > 0
	p.expanded = p.visible
}

// Toggle switches between expanded and collapsed. The list is kept.
func (p *SourcesPanel) Toggle() {
	if !p.visible {
		return
	}
	p.expanded = !p.expanded
}

// Hide removes the panel and its list.
func (p *SourcesPanel) Hide() {
	p.sources = nil
	p.visible = false
	p.expanded = false
}

// Visible reports whether the panel is shown.
func (p *SourcesPanel) Visible() bool { return p.visible }

// Expanded reports whether the list is expanded.
func (p *SourcesPanel) Expanded() bool { return p.expanded }

// Sources returns a copy of the displayed list.
func (p *SourcesPanel) Sources() []model.Source {
	return append([]model.Source(nil), p.sources...)
}

// ToggleLabel names the action the toggle performs next.
func (p *SourcesPanel) ToggleLabel() string {
	if p.expanded {
		return SourcesHideLabel
	}
	return SourcesShowLabel
}

// View renders the panel for width columns, or "" when hidden.
func (p *SourcesPanel) View(width int) string {
	if !p.visible {
		return ""
	}

	header := p.theme.SourcesHeader.Render(fmt.Sprintf("Sources (%d)", len(p.sources))) +
		"  " + p.theme.ToggleButton.Render(p.ToggleLabel()) +
		p.theme.Muted.Render(" ctrl+s")

	lines := []string{header}
	if p.expanded {
		contentWidth := width - 4
		if contentWidth < 20 {
			contentWidth = 20
		}
		for i, src := range p.sources {
			title := fmt.Sprintf("Source %d: %s", i+1, strings.TrimSpace(src.Content))
			lines = append(lines,
				p.theme.SourceTitle.Render(wordWrap(title, contentWidth)),
				p.theme.SourceMeta.Render(fmt.Sprintf("ID: %s | Source: %s", src.ID, src.Source)),
			)
		}
	}

	return p.theme.SourcesBox.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
