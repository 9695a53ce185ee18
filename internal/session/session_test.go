// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ragchat-tui/internal/backend"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/storage"
)

// =============================================================================
// FAKES
// =============================================================================

// fakeBackend answers chat calls with chatFn and records evaluations.
type fakeBackend struct {
	mu      sync.Mutex
	chatFn  func(ctx context.Context, message string) (*backend.ChatResponse, error)
	evalErr error
	chats   []string
	evals   []model.FeedbackRecord
	saves   int
}

func (f *fakeBackend) Chat(ctx context.Context, message string) (*backend.ChatResponse, error) {
	f.mu.Lock()
	f.chats = append(f.chats, message)
	fn := f.chatFn
	f.mu.Unlock()
	if fn == nil {
		return &backend.ChatResponse{Response: "ok"}, nil
	}
	return fn(ctx, message)
}

func (f *fakeBackend) Evaluate(ctx context.Context, rec model.FeedbackRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evals = append(f.evals, rec)
	return f.evalErr
}

func (f *fakeBackend) LoadConversations(ctx context.Context) ([]model.Conversation, error) {
	return []model.Conversation{
		{Title: "First", Messages: []model.Exchange{}},
		{Title: "Second", Messages: []model.Exchange{}},
	}, nil
}

func (f *fakeBackend) SaveConversations(ctx context.Context, convs []model.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	return nil
}

func (f *fakeBackend) chatCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.chats)
}

func (f *fakeBackend) evaluations() []model.FeedbackRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.FeedbackRecord(nil), f.evals...)
}

func newSession(t *testing.T, fb *fakeBackend) *Session {
	t.Helper()
	store := storage.NewConversationStore(fb, zerolog.Nop())
	require.NoError(t, store.Load(context.Background()))
	s := New(store, fb, zerolog.Nop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.Wait(ctx)
		_ = store.Flush(ctx)
		s.Close()
		store.Close()
	})
	return s
}

// blockingChat returns a chat function that waits for ctx cancellation and
// reports it the way the real client does.
func blockingChat(started chan<- struct{}) func(ctx context.Context, message string) (*backend.ChatResponse, error) {
	return func(ctx context.Context, message string) (*backend.ChatResponse, error) {
		close(started)
		<-ctx.Done()
		return nil, &backend.ClientError{Type: backend.ErrTypeCancelled, Message: "chat cancelled", Cause: ctx.Err()}
	}
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSend_EmptyOrWhitespaceIsNoop(t *testing.T) {
	fb := &fakeBackend{}
	s := newSession(t, fb)

	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := s.Send(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyInput, "text %q", text)
	}

	assert.Equal(t, 0, fb.chatCount(), "nothing may be sent")
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, s.Store().Active().Messages)
}

func TestSend_Completed(t *testing.T) {
	fb := &fakeBackend{
		chatFn: func(ctx context.Context, message string) (*backend.ChatResponse, error) {
			return &backend.ChatResponse{
				Response: "Hi",
				Sources:  []model.Source{{ID: "s1", Content: "doc", Source: "faq.pdf"}},
			}, nil
		},
	}
	s := newSession(t, fb)

	res, err := s.Send(context.Background(), "  Hello  ")
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.Equal(t, "Hi", res.Display())
	assert.Equal(t, "Hello", res.Question, "input is trimmed")
	assert.Len(t, res.Sources, 1)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.False(t, s.cancelMgr.active(), "token must be cleared")

	want := []model.Exchange{{User: "Hello", Bot: "Hi"}}
	if diff := cmp.Diff(want, s.Store().Active().Messages); diff != "" {
		t.Errorf("active messages mismatch (-want +got):\n%s", diff)
	}

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, LastExchange{Question: "Hello", Answer: "Hi", SourceIDs: []string{"s1"}}, last)
}

func TestSend_SourcesReplacedOnEveryExchange(t *testing.T) {
	calls := 0
	fb := &fakeBackend{
		chatFn: func(ctx context.Context, message string) (*backend.ChatResponse, error) {
			calls++
			if calls == 1 {
				return &backend.ChatResponse{Response: "a", Sources: []model.Source{{ID: "s1"}}}, nil
			}
			return &backend.ChatResponse{Response: "b"}, nil
		},
	}
	s := newSession(t, fb)

	_, err := s.Send(context.Background(), "first")
	require.NoError(t, err)
	_, err = s.Send(context.Background(), "second")
	require.NoError(t, err)

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, "second", last.Question)
	assert.Empty(t, last.SourceIDs, "ids from the first answer must not leak")
	assert.NotNil(t, last.SourceIDs)
}

func TestSend_Failed(t *testing.T) {
	fb := &fakeBackend{
		chatFn: func(ctx context.Context, message string) (*backend.ChatResponse, error) {
			return nil, &backend.ClientError{Type: backend.ErrTypeHTTP, StatusCode: 500, Message: "chat request failed"}
		},
	}
	s := newSession(t, fb)

	res, err := s.Send(context.Background(), "Hello")
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, ErrorText, res.Display())
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, s.Store().Active().Messages, "failed requests never become exchanges")

	_, ok := s.Last()
	assert.False(t, ok)
}

func TestSend_CancelBeforeResolution(t *testing.T) {
	started := make(chan struct{})
	fb := &fakeBackend{chatFn: blockingChat(started)}
	s := newSession(t, fb)

	req, err := s.Begin(context.Background(), "slow question")
	require.NoError(t, err)
	assert.True(t, s.Sending())

	done := make(chan Result, 1)
	go func() { done <- s.Execute(req) }()

	<-started
	assert.True(t, s.Cancel())

	var res Result
	select {
	case res = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Execute did not return after cancel")
	}
	res = s.Finish(res)

	assert.Equal(t, OutcomeCancelled, res.Outcome)
	assert.Equal(t, InterruptedText, res.Display())
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, s.Store().Active().Messages)
	assert.False(t, s.Cancel(), "cancel when idle is a no-op")
}

func TestCancel_AfterAnswerArrivedBeforeFinish(t *testing.T) {
	fb := &fakeBackend{chatFn: func(ctx context.Context, message string) (*backend.ChatResponse, error) {
		return &backend.ChatResponse{Response: "ok", Sources: []model.Source{{ID: "s1"}}}, nil
	}}
	s := newSession(t, fb)

	req, err := s.Begin(context.Background(), "Hello")
	require.NoError(t, err)
	res := s.Execute(req)
	require.Equal(t, OutcomeCompleted, res.Outcome)

	assert.True(t, s.Cancel())
	res = s.Finish(res)

	assert.Equal(t, OutcomeCancelled, res.Outcome)
	assert.Equal(t, InterruptedText, res.Display())
	assert.Empty(t, res.Sources)
	assert.Empty(t, s.Store().Active().Messages)
	_, ok := s.Last()
	assert.False(t, ok, "a cancelled answer is not rateable")

	// The flag does not leak into the next request.
	req, err = s.Begin(context.Background(), "Again")
	require.NoError(t, err)
	res = s.Finish(s.Execute(req))
	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.Len(t, s.Store().Active().Messages, 1)
}

func TestCancel_IdleIsNoop(t *testing.T) {
	s := newSession(t, &fakeBackend{})
	assert.False(t, s.Cancel())
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestBegin_BusyRejectsSecondSend(t *testing.T) {
	fb := &fakeBackend{}
	s := newSession(t, fb)

	req, err := s.Begin(context.Background(), "first")
	require.NoError(t, err)

	_, err = s.Begin(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)

	s.Finish(s.Execute(req))
	assert.Equal(t, 1, fb.chatCount())
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestFinish_IgnoresStaleResult(t *testing.T) {
	s := newSession(t, &fakeBackend{})

	stale := Result{RequestID: "not-pending", Question: "q", Outcome: OutcomeCompleted, Response: "a"}
	got := s.Finish(stale)

	assert.True(t, got.Stale)
	assert.Empty(t, s.Store().Active().Messages)
	_, ok := s.Last()
	assert.False(t, ok)
}

// =============================================================================
// FEEDBACK TESTS
// =============================================================================

func TestSubmitFeedback_Rating4(t *testing.T) {
	fb := &fakeBackend{
		chatFn: func(ctx context.Context, message string) (*backend.ChatResponse, error) {
			return &backend.ChatResponse{Response: "Hi", Sources: []model.Source{{ID: "s1"}}}, nil
		},
	}
	s := newSession(t, fb)

	_, err := s.Send(context.Background(), "Hello")
	require.NoError(t, err)

	rec, err := s.SubmitFeedback(4, "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))

	want := model.FeedbackRecord{Question: "Hello", Answer: "Hi", Rating: 4, Feedback: "", SourceIDs: []string{"s1"}}
	assert.Equal(t, want, rec)
	if diff := cmp.Diff([]model.FeedbackRecord{want}, fb.evaluations()); diff != "" {
		t.Errorf("evaluations mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitFeedback_InvalidRating(t *testing.T) {
	fb := &fakeBackend{}
	s := newSession(t, fb)
	_, err := s.Send(context.Background(), "Hello")
	require.NoError(t, err)

	for _, r := range []int{0, 6, -3} {
		_, err := s.SubmitFeedback(r, "")
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", r)
	}

	require.NoError(t, s.Wait(context.Background()))
	assert.Empty(t, fb.evaluations())
}

func TestSubmitFeedback_NoExchange(t *testing.T) {
	s := newSession(t, &fakeBackend{})
	_, err := s.SubmitFeedback(3, "fine")
	assert.ErrorIs(t, err, ErrNoExchange)
}

func TestSubmitFeedback_PostFailureIsNotReturned(t *testing.T) {
	fb := &fakeBackend{evalErr: errors.New("503")}
	s := newSession(t, fb)
	_, err := s.Send(context.Background(), "Hello")
	require.NoError(t, err)

	_, err = s.SubmitFeedback(5, "great")
	require.NoError(t, err)
	require.NoError(t, s.Wait(context.Background()))
	assert.Len(t, fb.evaluations(), 1)
}

// =============================================================================
// CONVERSATION OPERATION TESTS
// =============================================================================

func TestConversationOps_BusyWhileSending(t *testing.T) {
	started := make(chan struct{})
	fb := &fakeBackend{chatFn: blockingChat(started)}
	s := newSession(t, fb)

	req, err := s.Begin(context.Background(), "question")
	require.NoError(t, err)

	assert.ErrorIs(t, s.NewConversation(), ErrBusy)
	assert.ErrorIs(t, s.SelectConversation(1), ErrBusy)
	_, err = s.DeleteConversation(0, AlwaysConfirm)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 2, s.Store().Len())
	assert.Equal(t, 0, s.Store().Current())

	done := make(chan Result, 1)
	go func() { done <- s.Execute(req) }()
	<-started
	s.Cancel()
	s.Finish(<-done)

	require.NoError(t, s.SelectConversation(1))
	assert.Equal(t, 1, s.Store().Current())
}

func TestDeleteConversation_Declined(t *testing.T) {
	s := newSession(t, &fakeBackend{})

	var asked string
	deleted, err := s.DeleteConversation(1, ConfirmFunc(func(prompt string) bool {
		asked = prompt
		return false
	}))
	require.NoError(t, err)

	assert.False(t, deleted)
	assert.Equal(t, DeletePrompt, asked)
	assert.Equal(t, 2, s.Store().Len())
}

func TestDeleteConversation_Confirmed(t *testing.T) {
	s := newSession(t, &fakeBackend{})

	deleted, err := s.DeleteConversation(0, AlwaysConfirm)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"Second"}, s.Store().Titles())
}

func TestDeleteConversation_OutOfRangeNeverAsks(t *testing.T) {
	s := newSession(t, &fakeBackend{})

	asked := false
	_, err := s.DeleteConversation(5, ConfirmFunc(func(string) bool {
		asked = true
		return true
	}))
	assert.ErrorIs(t, err, storage.ErrIndexOutOfRange)
	assert.False(t, asked)
}

func TestConversationChange_ClearsLastExchange(t *testing.T) {
	s := newSession(t, &fakeBackend{})
	_, err := s.Send(context.Background(), "Hello")
	require.NoError(t, err)

	require.NoError(t, s.NewConversation())
	_, err = s.SubmitFeedback(5, "")
	assert.ErrorIs(t, err, ErrNoExchange)
	assert.Equal(t, 3, s.Store().Len())
}

func TestRenameConversation(t *testing.T) {
	s := newSession(t, &fakeBackend{})
	assert.False(t, s.RenameConversation("  "))
	assert.True(t, s.RenameConversation("Renamed"))
	assert.Equal(t, "Renamed", s.Store().Active().Title)
}
