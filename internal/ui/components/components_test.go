// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme("dark")
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscriptAppendOrder(t *testing.T) {
	tr := NewTranscript(testTheme())
	tr.Append(RoleUser, "Hello")
	tr.Append(RoleBot, "Hi")

	want := []Entry{
		{Role: RoleUser, Text: "Hello"},
		{Role: RoleBot, Text: "Hi"},
	}
	if diff := cmp.Diff(want, tr.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	view := tr.View(80)
	hello := strings.Index(view, "Hello")
	hi := strings.Index(view, "Hi")
	require.GreaterOrEqual(t, hello, 0)
	require.GreaterOrEqual(t, hi, 0)
	assert.Less(t, hello, hi, "user message should render before the reply")
}

func TestTranscriptEmptyView(t *testing.T) {
	tr := NewTranscript(testTheme())
	assert.Contains(t, tr.View(80), EmptyTranscriptText)
}

func TestTranscriptLineBreaks(t *testing.T) {
	tr := NewTranscript(testTheme())
	tr.Append(RoleBot, "line one\nline two")

	view := tr.View(80)
	assert.Contains(t, view, "line one")
	assert.Contains(t, view, "line two")
	for _, line := range strings.Split(view, "\n") {
		assert.False(t, strings.Contains(line, "line one") && strings.Contains(line, "line two"),
			"newline in text should become a visual line break")
	}
}

func TestTranscriptLoadConversation(t *testing.T) {
	tr := NewTranscript(testTheme())
	tr.Append(RoleUser, "stale")

	tr.LoadConversation(model.Conversation{
		Title: "Chat",
		Messages: []model.Exchange{
			{User: "q1", Bot: "a1"},
			{User: "q2", Bot: "a2"},
		},
	})

	want := []Entry{
		{Role: RoleUser, Text: "q1"},
		{Role: RoleBot, Text: "a1"},
		{Role: RoleUser, Text: "q2"},
		{Role: RoleBot, Text: "a2"},
	}
	if diff := cmp.Diff(want, tr.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
	assert.NotContains(t, tr.View(80), "stale")
}

func TestTranscriptMarkdownCache(t *testing.T) {
	calls := 0
	tr := NewTranscript(testTheme())
	tr.SetMarkdown(func(text string, width int) (string, error) {
		calls++
		return "MD:" + text, nil
	})

	tr.Append(RoleUser, "Hello")
	tr.Append(RoleBot, "Hi")
	view := tr.View(80)
	assert.Contains(t, view, "MD:Hi")
	assert.NotContains(t, view, "MD:Hello", "user messages are not markdown")
	assert.Equal(t, 1, calls)

	tr.View(80)
	assert.Equal(t, 1, calls, "unchanged transcript should not re-render")

	tr.Append(RoleBot, "More")
	tr.View(80)
	assert.Equal(t, 2, calls, "append should render only the new entry")

	tr.View(60)
	assert.Equal(t, 4, calls, "width change re-renders every reply")
}

func TestTranscriptNoticeSkipsMarkdown(t *testing.T) {
	calls := 0
	tr := NewTranscript(testTheme())
	tr.SetMarkdown(func(text string, width int) (string, error) {
		calls++
		return text, nil
	})

	tr.AppendNotice("[Response interrupted]")
	assert.Contains(t, tr.View(80), "[Response interrupted]")
	assert.Zero(t, calls)
	assert.True(t, tr.Entries()[0].Notice)
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "hello world", 20, "hello world"},
		{"wraps at space", "a b c", 3, "a b\nc"},
		{"splits long word", "abcdef", 4, "abcd\nef"},
		{"keeps blank lines", "x\n\ny", 10, "x\n\ny"},
		{"zero width", "a b", 0, "a b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, wordWrap(tc.text, tc.width))
		})
	}
}

// =============================================================================
// SOURCES PANEL TESTS
// =============================================================================

func TestSourcesPanelShowAndToggle(t *testing.T) {
	p := NewSourcesPanel(testTheme())
	assert.False(t, p.Visible())
	assert.Empty(t, p.View(80))

	p.Show([]model.Source{{ID: "s1", Content: "c", Source: "doc"}})
	require.True(t, p.Visible())
	assert.True(t, p.Expanded())
	assert.Equal(t, SourcesHideLabel, p.ToggleLabel())

	view := p.View(80)
	assert.Contains(t, view, "Sources")
	assert.Contains(t, view, "Source 1: c")
	assert.Contains(t, view, "ID: s1 | Source: doc")

	p.Toggle()
	assert.False(t, p.Expanded())
	assert.Equal(t, SourcesShowLabel, p.ToggleLabel())
	assert.Len(t, p.Sources(), 1, "collapsing keeps the data")
	assert.NotContains(t, p.View(80), "ID: s1")

	p.Toggle()
	assert.Contains(t, p.View(80), "ID: s1")
}

func TestSourcesPanelShowReplaces(t *testing.T) {
	p := NewSourcesPanel(testTheme())
	p.Show([]model.Source{{ID: "old1"}, {ID: "old2"}})
	p.Toggle()

	p.Show([]model.Source{{ID: "new", Content: "fresh", Source: "doc"}})
	assert.True(t, p.Expanded(), "new sources are shown expanded")
	assert.Equal(t, []model.Source{{ID: "new", Content: "fresh", Source: "doc"}}, p.Sources())
	assert.NotContains(t, p.View(80), "old1")
}

func TestSourcesPanelHide(t *testing.T) {
	p := NewSourcesPanel(testTheme())
	p.Show([]model.Source{{ID: "s1"}})
	p.Hide()

	assert.False(t, p.Visible())
	assert.Empty(t, p.Sources())
	assert.Empty(t, p.View(80))

	p.Toggle()
	assert.False(t, p.Expanded(), "toggle on a hidden panel is a no-op")

	p.Show(nil)
	assert.False(t, p.Visible(), "empty source list stays hidden")
}

// =============================================================================
// HISTORY LIST TESTS
// =============================================================================

func TestHistoryListCursor(t *testing.T) {
	h := NewHistoryList(testTheme())
	h.SetItems([]string{"A", "B", "C"}, 1)
	assert.Equal(t, 1, h.Cursor(), "first fill starts on the active entry")

	h.Up()
	h.Up()
	assert.Equal(t, 0, h.Cursor())

	h.Down()
	h.Down()
	h.Down()
	assert.Equal(t, 2, h.Cursor())

	h.SetItems([]string{"A"}, 0)
	assert.Equal(t, 0, h.Cursor(), "cursor past the end moves to the active entry")
	assert.Equal(t, 1, h.Len())
}

func TestHistoryListView(t *testing.T) {
	h := NewHistoryList(testTheme())
	h.SetItems([]string{"First", "Second"}, 1)

	view := h.View(28, 12, false)
	assert.Contains(t, view, "Conversations")
	assert.Contains(t, view, "First")
	assert.Contains(t, view, styles.ActiveMarker+"Second")
	assert.NotContains(t, view, "d delete")

	assert.Contains(t, h.View(40, 12, true), "d delete")
}

func TestHistoryListTruncatesTitles(t *testing.T) {
	h := NewHistoryList(testTheme())
	title := "A very long conversation title that keeps going"
	h.SetItems([]string{title}, 0)

	view := h.View(20, 8, false)
	assert.NotContains(t, view, title)
	assert.Contains(t, view, "...")
}

// =============================================================================
// FEEDBACK WIDGET TESTS
// =============================================================================

func TestFeedbackWidgetSelect(t *testing.T) {
	f := NewFeedbackWidget(testTheme())
	assert.False(t, f.Revealed())
	assert.Zero(t, f.Rating())

	f.Select(3)
	assert.Equal(t, [5]bool{true, true, true, false, false}, f.Stars())
	assert.Equal(t, 3, f.Rating())
	assert.True(t, f.Revealed())

	f.Select(3)
	assert.Equal(t, 3, f.Rating(), "re-selection is idempotent")

	f.Select(1)
	assert.Equal(t, [5]bool{true, false, false, false, false}, f.Stars())
	assert.Equal(t, 1, f.Rating())
}

func TestFeedbackWidgetIgnoresOutOfRange(t *testing.T) {
	f := NewFeedbackWidget(testTheme())
	f.Select(0)
	f.Select(6)
	f.Select(-1)
	assert.Zero(t, f.Rating())
	assert.False(t, f.Revealed())

	f.Select(5)
	f.Select(9)
	assert.Equal(t, 5, f.Rating())
}

func TestFeedbackWidgetRevealAndComment(t *testing.T) {
	f := NewFeedbackWidget(testTheme())
	assert.Nil(t, f.FocusComment(), "comment field hidden before rating")
	assert.False(t, f.CommentFocused())
	assert.NotContains(t, f.View(60, false), "Submit")

	f.Select(4)
	f.FocusComment()
	require.True(t, f.CommentFocused())
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("useful")})
	assert.Equal(t, "useful", f.Comment())

	view := f.View(60, true)
	assert.Contains(t, view, FeedbackQuestion)
	assert.Contains(t, view, "Submit")

	f.BlurComment()
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "useful", f.Comment(), "blurred field ignores keys")
}

func TestFeedbackWidgetThank(t *testing.T) {
	f := NewFeedbackWidget(testTheme())
	f.Select(4)
	f.Thank()

	assert.True(t, f.Thanked())
	view := f.View(60, false)
	assert.Contains(t, view, FeedbackThanks)
	assert.NotContains(t, view, FeedbackQuestion)

	f.Select(1)
	assert.Equal(t, 4, f.Rating(), "rating is frozen after submit")
}

func TestFeedbackWidgetIdentity(t *testing.T) {
	a := NewFeedbackWidget(testTheme())
	b := NewFeedbackWidget(testTheme())
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

// =============================================================================
// HEADER AND STATUS BAR TESTS
// =============================================================================

func TestHeaderView(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(80)
	h.Title = "Project notes"
	h.Status = "127.0.0.1:5000"

	view := h.View()
	assert.Contains(t, view, "ragchat")
	assert.Contains(t, view, "Project notes")
	assert.Contains(t, view, "127.0.0.1:5000")
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusReady, "Ready"},
		{StatusLoading, "Loading..."},
		{StatusThinking, ThinkingText},
		{StatusConfirm, "Confirm"},
		{StatusRenaming, "Rename"},
		{Status(99), "Unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.status.String())
	}
}

func TestStatusBarDropsHintsThatDoNotFit(t *testing.T) {
	s := NewStatusBar(testTheme())
	s.Hints = []KeyHint{{"enter", "send"}, {"ctrl+n", "new"}, {"ctrl+q", "quit"}}

	s.SetWidth(100)
	wide := s.View()
	assert.Contains(t, wide, "Ready")
	assert.Contains(t, wide, "quit")

	s.SetWidth(30)
	narrow := s.View()
	assert.Contains(t, narrow, "send")
	assert.NotContains(t, narrow, "quit")
}

func TestSpinnerLifecycle(t *testing.T) {
	sp := NewSpinner(testTheme())
	assert.False(t, sp.IsActive())
	assert.Empty(t, sp.View())

	cmd := sp.Start()
	assert.NotNil(t, cmd)
	assert.Contains(t, sp.View(), ThinkingText)

	sp.Stop()
	assert.Empty(t, sp.View())
	assert.Nil(t, sp.Update(nil))
}
