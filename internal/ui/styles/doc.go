// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the ragchat TUI.

All colors are Lip Gloss AdaptiveColor values, so the same palette works on
dark and light terminals. NewTheme picks the background either from the
terminal (mode "auto") or from the configured theme.

# Color System (colors.go)

  - Purple - Bot label, focus accents and the submit button
  - Cyan - User label, key hints and the input prompt
  - Gold - Filled feedback stars
  - Emerald - Success and the feedback thank-you
  - Amber - Interrupted and failed responses
  - Rose - Errors and the delete confirmation

# Theme (theme.go)

Theme groups styles by screen region: header, transcript, sources panel,
history sidebar, feedback widget, and the input/status area.

	theme := styles.NewTheme("auto")
	theme.SetSize(width, height)
	if theme.GetLayoutMode() == styles.LayoutNarrow {
	    // hide the history sidebar
	}

# Animations (animations.go)

SpinnerConfig converts into a bubbles spinner. LineSpinner is shown while a
reply is pending.
*/
package styles
