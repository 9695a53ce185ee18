// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ragchat-tui/internal/backend"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/session"
	"github.com/jeranaias/ragchat-tui/internal/storage"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// =============================================================================
// TEST BACKEND
// =============================================================================

// fakeServer is an httptest backend recording what the client sent.
type fakeServer struct {
	mu            sync.Mutex
	conversations string // JSON served by loadConversations
	loadStatus    int
	chatReply     string
	chatBlock     bool
	started       chan struct{}
	release       chan struct{}
	chats         []string
	evaluations   []model.FeedbackRecord
	saves         int
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		conversations: `[]`,
		loadStatus:    http.StatusOK,
		chatReply:     `{"response":"ok"}`,
		started:       make(chan struct{}, 4),
		release:       make(chan struct{}),
	}
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/loadConversations":
		if f.loadStatus != http.StatusOK {
			w.WriteHeader(f.loadStatus)
			return
		}
		io.WriteString(w, f.conversations)

	case "/api/saveConversations":
		io.Copy(io.Discard, r.Body)
		f.mu.Lock()
		f.saves++
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)

	case "/chat":
		var req backend.ChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.chats = append(f.chats, req.Message)
		block := f.chatBlock
		f.mu.Unlock()

		if block {
			f.started <- struct{}{}
			select {
			case <-r.Context().Done():
			case <-f.release:
			}
			return
		}
		io.WriteString(w, f.chatReply)

	case "/api/evaluate":
		var rec model.FeedbackRecord
		json.NewDecoder(r.Body).Decode(&rec)
		f.mu.Lock()
		f.evaluations = append(f.evaluations, rec)
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)

	default:
		http.NotFound(w, r)
	}
}

func (f *fakeServer) chatCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.chats)
}

func (f *fakeServer) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func (f *fakeServer) evaluated() []model.FeedbackRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.FeedbackRecord(nil), f.evaluations...)
}

// newTestModel wires a Model to srv through the real backend client and
// applies the initial load and a 100x40 window.
func newTestModel(t *testing.T, srv *fakeServer) Model {
	t.Helper()
	m := newUnloadedModel(t, srv)
	return drain(t, m, m.loadCmd())
}

// newUnloadedModel is newTestModel without the initial load.
func newUnloadedModel(t *testing.T, srv *fakeServer) Model {
	t.Helper()

	hs := httptest.NewServer(srv)
	t.Cleanup(hs.Close)
	t.Cleanup(func() { close(srv.release) })

	client := backend.NewClient(&backend.ClientConfig{BaseURL: hs.URL})
	store := storage.NewConversationStore(client, zerolog.Nop())
	sess := session.New(store, client, zerolog.Nop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = sess.Wait(ctx)
		_ = store.Flush(ctx)
		sess.Close()
		store.Close()
	})

	m := New(context.Background(), sess, Options{
		Theme:           styles.NewTheme("dark"),
		FeedbackDismiss: 10 * time.Millisecond,
		Logger:          zerolog.Nop(),
	})
	m.input.Cursor.SetMode(cursor.CursorStatic)

	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

// update applies msg and runs the resulting commands.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return drain(t, next.(Model), cmd)
}

// drain executes cmd, including batches, and feeds the model's own
// messages back into Update. Animation ticks are dropped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case ConversationsLoadedMsg, ChatResultMsg, FeedbackDismissMsg:
			next, nc := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nc)
		case spinner.TickMsg, nil:
		default:
		}
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

const twoConversations = `[
	{"title":"First","messages":[{"user":"q1","bot":"a1"}]},
	{"title":"Second","messages":[{"user":"q2","bot":"a2"}]}
]`

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoadRendersActiveConversation(t *testing.T) {
	srv := newFakeServer()
	srv.conversations = twoConversations
	m := newTestModel(t, srv)

	assert.False(t, m.loading)
	assert.Equal(t, 2, m.History().Len())
	want := []components.Entry{
		{Role: components.RoleUser, Text: "q1"},
		{Role: components.RoleBot, Text: "a1"},
	}
	if diff := cmp.Diff(want, m.Transcript().Entries()); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, m.View(), "First")
}

func TestConversationChangesWaitForLoad(t *testing.T) {
	srv := newFakeServer()
	srv.conversations = twoConversations
	m := newUnloadedModel(t, srv)
	require.True(t, m.loading)

	m = update(t, m, keyMsg("ctrl+n"))
	m = update(t, m, keyMsg("ctrl+r"))
	assert.Equal(t, ModeChat, m.Mode(), "rename does not open before the load")
	m, _ = m.dispatch(RenameIntent{Title: "Early"})
	m, _ = m.dispatch(RequestDeleteIntent{Index: 0})
	assert.Equal(t, ModeChat, m.Mode())
	m, _ = m.dispatch(SelectConversationIntent{Index: 0})

	store := m.Session().Store()
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, model.DefaultTitle, store.Active().Title)

	m = drain(t, m, m.loadCmd())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, store.Flush(ctx))
	assert.Zero(t, srv.saveCount(), "nothing may overwrite the saved list before it arrives")
	assert.Equal(t, []string{"First", "Second"}, store.Titles())

	m = update(t, m, keyMsg("ctrl+n"))
	require.NoError(t, store.Flush(ctx))
	assert.Equal(t, 1, srv.saveCount())
	assert.Equal(t, 3, store.Len())
}

func TestLoadFailureFallsBackToDefault(t *testing.T) {
	srv := newFakeServer()
	srv.loadStatus = http.StatusInternalServerError
	m := newTestModel(t, srv)

	store := m.Session().Store()
	require.Equal(t, 1, store.Len())
	assert.Equal(t, model.DefaultTitle, store.Active().Title)
	assert.Empty(t, store.Active().Messages)
	assert.Zero(t, m.Transcript().Len())
	assert.Contains(t, m.View(), components.EmptyTranscriptText)
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSendHelloScenario(t *testing.T) {
	srv := newFakeServer()
	srv.chatReply = `{"response":"Hi","sources":[{"id":"s1","content":"c","source":"doc"}]}`
	m := newTestModel(t, srv)

	m = update(t, m, SendIntent{Text: "Hello"})

	want := []components.Entry{
		{Role: components.RoleUser, Text: "Hello"},
		{Role: components.RoleBot, Text: "Hi"},
	}
	if diff := cmp.Diff(want, m.Transcript().Entries()); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}

	require.True(t, m.Sources().Visible())
	assert.Equal(t, []model.Source{{ID: "s1", Content: "c", Source: "doc"}}, m.Sources().Sources())
	require.NotNil(t, m.Feedback(), "feedback widget should be attached")
	assert.False(t, m.Thinking())
	assert.Equal(t, session.PhaseIdle, m.Session().Phase())
	assert.Equal(t, []model.Exchange{{User: "Hello", Bot: "Hi"}}, m.Session().Store().Active().Messages)

	view := m.View()
	assert.Contains(t, view, "Hello")
	assert.Contains(t, view, "Hi")
	assert.Contains(t, view, "ID: s1 | Source: doc")
	assert.Contains(t, view, components.FeedbackQuestion)
}

func TestSendViaEnterKey(t *testing.T) {
	srv := newFakeServer()
	m := newTestModel(t, srv)

	m = update(t, m, keyMsg("Hello"))
	assert.Equal(t, "Hello", m.InputValue())

	m = update(t, m, keyMsg("enter"))
	assert.Empty(t, m.InputValue(), "input is cleared on send")
	assert.Equal(t, 1, srv.chatCount())
	assert.Equal(t, 2, m.Transcript().Len())
}

func TestSendBlankIsIgnored(t *testing.T) {
	srv := newFakeServer()
	m := newTestModel(t, srv)

	for _, text := range []string{"", "   "} {
		next, cmd := m.Update(SendIntent{Text: text})
		m = next.(Model)
		assert.Nil(t, cmd)
	}
	assert.Zero(t, srv.chatCount())
	assert.Zero(t, m.Transcript().Len())
	assert.Empty(t, m.Session().Store().Active().Messages)
}

func TestSendFailureShowsGenericError(t *testing.T) {
	srv := newFakeServer()
	srv.chatReply = `not json`
	m := newTestModel(t, srv)

	m = update(t, m, SendIntent{Text: "Hello"})

	entries := m.Transcript().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, session.ErrorText, entries[1].Text)
	assert.True(t, entries[1].Notice)
	assert.Nil(t, m.Feedback())
	assert.False(t, m.Sources().Visible())
	assert.Empty(t, m.Session().Store().Active().Messages)
}

func TestCancelBeforeResolution(t *testing.T) {
	srv := newFakeServer()
	srv.chatBlock = true
	m := newTestModel(t, srv)

	next, cmd := m.Update(SendIntent{Text: "slow question"})
	m = next.(Model)
	require.True(t, m.Thinking())
	assert.Contains(t, m.View(), components.ThinkingText)

	results := make(chan tea.Msg, 1)
	go func() {
		queue := []tea.Cmd{cmd}
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			if c == nil {
				continue
			}
			switch msg := c().(type) {
			case tea.BatchMsg:
				queue = append(queue, msg...)
			case ChatResultMsg:
				results <- msg
			}
		}
	}()

	select {
	case <-srv.started:
	case <-time.After(2 * time.Second):
		t.Fatal("chat request never reached the server")
	}

	// A second send while one is outstanding is rejected.
	next, second := m.Update(SendIntent{Text: "another"})
	m = next.(Model)
	assert.Nil(t, second)

	m = update(t, m, keyMsg("esc"))

	var result tea.Msg
	select {
	case result = <-results:
	case <-time.After(2 * time.Second):
		t.Fatal("chat request did not finish after cancel")
	}
	m = update(t, m, result)

	interrupted := 0
	for _, e := range m.Transcript().Entries() {
		if e.Text == session.InterruptedText {
			interrupted++
		}
	}
	assert.Equal(t, 1, interrupted)
	assert.Equal(t, 1, srv.chatCount())
	assert.False(t, m.Thinking())
	assert.Nil(t, m.Feedback())
	assert.Empty(t, m.Session().Store().Active().Messages)
}

func TestCancelWithAnswerQueuedBehindEsc(t *testing.T) {
	srv := newFakeServer()
	srv.chatReply = `{"response":"Hi","sources":[{"id":"s1","content":"c","source":"doc"}]}`
	m := newTestModel(t, srv)

	next, cmd := m.Update(SendIntent{Text: "Hello"})
	m = next.(Model)

	// Run the request to completion but hold its result back.
	var results []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case ChatResultMsg:
			results = append(results, msg)
		}
	}
	require.Len(t, results, 1)
	require.Equal(t, session.OutcomeCompleted, results[0].(ChatResultMsg).Result.Outcome)

	m = update(t, m, keyMsg("esc"))
	m = update(t, m, results[0])

	entries := m.Transcript().Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, session.InterruptedText, entries[len(entries)-1].Text)
	for _, e := range entries {
		assert.NotEqual(t, "Hi", e.Text)
	}
	assert.Nil(t, m.Feedback())
	assert.False(t, m.Sources().Visible())
	assert.Empty(t, m.Session().Store().Active().Messages)
}

// =============================================================================
// FEEDBACK TESTS
// =============================================================================

func TestFeedbackRating4Scenario(t *testing.T) {
	srv := newFakeServer()
	srv.chatReply = `{"response":"Hi","sources":[{"id":"s1","content":"c","source":"doc"}]}`
	m := newTestModel(t, srv)
	m = update(t, m, SendIntent{Text: "Hello"})
	require.NotNil(t, m.Feedback())

	m = update(t, m, RateIntent{Level: 4})
	assert.Equal(t, 4, m.Feedback().Rating())

	next, dismiss := m.Update(SubmitFeedbackIntent{Comment: ""})
	m = next.(Model)
	require.NotNil(t, m.Feedback())
	assert.True(t, m.Feedback().Thanked())
	assert.Contains(t, m.View(), components.FeedbackThanks)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, m.Session().Wait(ctx))

	want := []model.FeedbackRecord{{
		Question:  "Hello",
		Answer:    "Hi",
		Rating:    4,
		Feedback:  "",
		SourceIDs: []string{"s1"},
	}}
	if diff := cmp.Diff(want, srv.evaluated()); diff != "" {
		t.Errorf("evaluate body mismatch (-want +got):\n%s", diff)
	}

	m = drain(t, m, dismiss)
	assert.Nil(t, m.Feedback(), "widget is removed after the delay")
}

func TestFeedbackWithoutRatingIsIgnored(t *testing.T) {
	srv := newFakeServer()
	m := newTestModel(t, srv)
	m = update(t, m, SendIntent{Text: "Hello"})

	m = update(t, m, SubmitFeedbackIntent{})
	require.NotNil(t, m.Feedback())
	assert.False(t, m.Feedback().Thanked())
	assert.Empty(t, srv.evaluated())
}

func TestFeedbackDismissIgnoresStaleWidget(t *testing.T) {
	srv := newFakeServer()
	m := newTestModel(t, srv)
	m = update(t, m, SendIntent{Text: "Hello"})
	require.NotNil(t, m.Feedback())

	m = update(t, m, FeedbackDismissMsg{WidgetID: "older-widget"})
	assert.NotNil(t, m.Feedback())
}

func TestFeedbackReplacedByNextAnswer(t *testing.T) {
	srv := newFakeServer()
	m := newTestModel(t, srv)
	m = update(t, m, SendIntent{Text: "one"})
	first := m.Feedback().ID()

	m = update(t, m, SendIntent{Text: "two"})
	require.NotNil(t, m.Feedback())
	assert.NotEqual(t, first, m.Feedback().ID())
}

func TestFeedbackKeys(t *testing.T) {
	srv := newFakeServer()
	m := newTestModel(t, srv)
	m = update(t, m, SendIntent{Text: "Hello"})

	m = update(t, m, keyMsg("tab"))
	m = update(t, m, keyMsg("tab"))
	require.Equal(t, FocusFeedback, m.Focus())

	m = update(t, m, keyMsg("3"))
	assert.Equal(t, 3, m.Feedback().Rating())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 4, m.Feedback().Rating())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 3, m.Feedback().Rating())

	m = update(t, m, keyMsg("down"))
	require.True(t, m.Feedback().CommentFocused())
	m = update(t, m, keyMsg("good"))

	next, _ := m.Update(keyMsg("enter"))
	m = next.(Model)
	assert.True(t, m.Feedback().Thanked())
	assert.Equal(t, FocusInput, m.Focus())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, m.Session().Wait(ctx))
	got := srv.evaluated()
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Rating)
	assert.Equal(t, "good", got[0].Feedback)
}

// =============================================================================
// SOURCES TESTS
// =============================================================================

func TestToggleSources(t *testing.T) {
	srv := newFakeServer()
	srv.chatReply = `{"response":"Hi","sources":[{"id":"s1","content":"c","source":"doc"}]}`
	m := newTestModel(t, srv)
	m = update(t, m, SendIntent{Text: "Hello"})

	m = update(t, m, keyMsg("ctrl+s"))
	assert.False(t, m.Sources().Expanded())
	assert.NotContains(t, m.View(), "ID: s1")

	m = update(t, m, ToggleSourcesIntent{})
	assert.True(t, m.Sources().Expanded())
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestSelectConversationFromHistory(t *testing.T) {
	srv := newFakeServer()
	srv.conversations = twoConversations
	m := newTestModel(t, srv)

	m = update(t, m, keyMsg("tab"))
	require.Equal(t, FocusHistory, m.Focus())
	m = update(t, m, keyMsg("down"))
	m = update(t, m, keyMsg("enter"))

	assert.Equal(t, 1, m.Session().Store().Current())
	want := []components.Entry{
		{Role: components.RoleUser, Text: "q2"},
		{Role: components.RoleBot, Text: "a2"},
	}
	if diff := cmp.Diff(want, m.Transcript().Entries()); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestSwitchingConversationRemovesPanels(t *testing.T) {
	srv := newFakeServer()
	srv.conversations = twoConversations
	srv.chatReply = `{"response":"Hi","sources":[{"id":"s1","content":"c","source":"doc"}]}`
	m := newTestModel(t, srv)
	m = update(t, m, SendIntent{Text: "Hello"})
	require.NotNil(t, m.Feedback())

	m = update(t, m, SelectConversationIntent{Index: 1})
	assert.Nil(t, m.Feedback())
	assert.False(t, m.Sources().Visible())

	_, err := m.Session().SubmitFeedback(4, "")
	assert.ErrorIs(t, err, session.ErrNoExchange, "rating cannot target the previous conversation")
}

func TestNewConversation(t *testing.T) {
	srv := newFakeServer()
	srv.conversations = twoConversations
	m := newTestModel(t, srv)

	m = update(t, m, keyMsg("ctrl+n"))

	store := m.Session().Store()
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, 0, store.Current())
	assert.Equal(t, model.DefaultTitle, store.Active().Title)
	assert.Zero(t, m.Transcript().Len())
	assert.Equal(t, 0, m.History().Cursor())
}

func TestDeleteConfirmation(t *testing.T) {
	srv := newFakeServer()
	srv.conversations = twoConversations
	m := newTestModel(t, srv)
	store := m.Session().Store()

	m = update(t, m, keyMsg("tab"))
	m = update(t, m, keyMsg("d"))
	require.Equal(t, ModeConfirmDelete, m.Mode())
	assert.Equal(t, 0, m.PendingDelete())
	assert.Contains(t, m.View(), "Are you sure")

	m = update(t, m, keyMsg("n"))
	assert.Equal(t, ModeChat, m.Mode())
	assert.Equal(t, 2, store.Len(), "declined delete keeps the conversation")
	assert.Equal(t, FocusHistory, m.Focus())

	m = update(t, m, keyMsg("d"))
	m = update(t, m, keyMsg("y"))
	assert.Equal(t, ModeChat, m.Mode())
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "Second", store.Active().Title)
	assert.Equal(t, "q2", m.Transcript().Entries()[0].Text)
}

func TestDeleteLastConversationLeavesDefault(t *testing.T) {
	srv := newFakeServer()
	m := newTestModel(t, srv)

	m = update(t, m, RequestDeleteIntent{Index: 0})
	m = update(t, m, ConfirmDeleteIntent{Confirmed: true})

	store := m.Session().Store()
	require.Equal(t, 1, store.Len())
	assert.Equal(t, model.DefaultTitle, store.Active().Title)
	assert.Empty(t, store.Active().Messages)
}

func TestRename(t *testing.T) {
	srv := newFakeServer()
	srv.conversations = twoConversations
	m := newTestModel(t, srv)

	m = update(t, m, keyMsg("draft"))
	m = update(t, m, keyMsg("ctrl+r"))
	require.Equal(t, ModeRename, m.Mode())
	assert.Equal(t, "First", m.InputValue())

	m = update(t, m, keyMsg("esc"))
	assert.Equal(t, ModeChat, m.Mode())
	assert.Equal(t, "draft", m.InputValue(), "draft is restored")
	assert.Equal(t, "First", m.Session().Store().Active().Title)

	m = update(t, m, keyMsg("ctrl+r"))
	m = update(t, m, keyMsg("!"))
	m = update(t, m, keyMsg("enter"))
	assert.Equal(t, "First!", m.Session().Store().Active().Title)
	assert.Equal(t, "draft", m.InputValue())
	assert.True(t, strings.Contains(m.View(), "First!"))

	m = update(t, m, RenameIntent{Title: "   "})
	assert.Equal(t, "First!", m.Session().Store().Active().Title, "blank rename is a no-op")
}

// =============================================================================
// LAYOUT TESTS
// =============================================================================

func TestNarrowLayoutHidesHistory(t *testing.T) {
	srv := newFakeServer()
	srv.conversations = twoConversations
	m := newTestModel(t, srv)

	m = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 30})
	assert.NotContains(t, m.View(), "Conversations")

	m = update(t, m, keyMsg("tab"))
	assert.Equal(t, FocusInput, m.Focus(), "history cannot take focus while hidden")
}

func TestToggleTheme(t *testing.T) {
	srv := newFakeServer()
	srv.conversations = twoConversations
	m := newTestModel(t, srv)
	require.True(t, m.theme.IsDark)

	m = update(t, m, keyMsg("ctrl+t"))
	assert.False(t, m.theme.IsDark)
	assert.Equal(t, "light", m.theme.GlamourStyle())
	assert.Contains(t, m.View(), "a1", "transcript re-renders after the switch")

	m = update(t, m, keyMsg("ctrl+t"))
	assert.True(t, m.theme.IsDark)
}

func TestHintsFollowContext(t *testing.T) {
	k := DefaultKeyMap()

	descs := func(ctx HelpContext) []string {
		var out []string
		for _, h := range k.Hints(ctx) {
			out = append(out, h.Desc)
		}
		return out
	}

	assert.Contains(t, descs(ContextInput), "send")
	assert.Contains(t, descs(ContextInput), "theme")
	assert.Contains(t, descs(ContextSending), "cancel")
	assert.NotContains(t, descs(ContextSending), "send")
	assert.Contains(t, descs(ContextHistory), "delete")
	assert.Contains(t, descs(ContextFeedback), "rate")
	assert.Equal(t, []string{"delete", "keep"}, descs(ContextConfirm))
}
