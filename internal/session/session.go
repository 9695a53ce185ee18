// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeranaias/ragchat-tui/internal/backend"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/storage"
)

// Display texts for requests that did not complete.
const (
	InterruptedText = "[Response interrupted]"
	ErrorText       = "[Error] Unable to get a response from the server."
)

// Sentinel errors. Callers treat all of them as silent no-ops.
var (
	ErrEmptyInput    = errors.New("message is empty")
	ErrBusy          = errors.New("a request is already in progress")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrNoExchange    = errors.New("no completed exchange to rate")
)

// Backend is the subset of *backend.Client the session drives.
type Backend interface {
	Chat(ctx context.Context, message string) (*backend.ChatResponse, error)
	Evaluate(ctx context.Context, rec model.FeedbackRecord) error
}

// =============================================================================
// STATE
// =============================================================================

// Phase is the send state machine position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSending
)

func (p Phase) String() string {
	if p == PhaseSending {
		return "sending"
	}
	return "idle"
}

// Outcome is how a chat request ended.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

// Request is an accepted, not yet executed chat request.
type Request struct {
	ID   string
	Text string
	ctx  context.Context
}

// Result is the classified outcome of a Request.
type Result struct {
	RequestID string
	Question  string
	Outcome   Outcome
	Response  string
	Sources   []model.Source
	Err       error

	// Stale is set by Finish when the request was no longer pending and
	// the result was dropped.
	Stale bool
}

// Display returns the bot text to render for this result. Failure detail
// is never shown, only logged.
func (r Result) Display() string {
	switch r.Outcome {
	case OutcomeCompleted:
		return r.Response
	case OutcomeCancelled:
		return InterruptedText
	default:
		return ErrorText
	}
}

// LastExchange is the most recent completed exchange, kept for feedback.
type LastExchange struct {
	Question  string
	Answer    string
	SourceIDs []string
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the chat client's single owned state object. It runs one
// request at a time against the backend and routes conversation operations
// to the store so they can be refused while a reply is pending.
type Session struct {
	mu      sync.Mutex
	phase   Phase
	pending string // ID of the outstanding request
	// cancelRequested is set by Cancel for the pending request. Finish
	// honours it even when the backend answered first.
	cancelRequested bool
	last            *LastExchange

	store     *storage.ConversationStore
	backend   Backend
	cancelMgr *cancelManager
	logger    zerolog.Logger

	// feedback tracks background evaluate posts for Wait.
	feedback sync.WaitGroup
	bgCtx    context.Context
	bgCancel context.CancelFunc
}

// New creates a session over store and b.
func New(store *storage.ConversationStore, b Backend, logger zerolog.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		store:     store,
		backend:   b,
		cancelMgr: newCancelManager(),
		logger:    logger.With().Str("component", "session").Logger(),
		bgCtx:     ctx,
		bgCancel:  cancel,
	}
}

// Store returns the conversation store for rendering.
func (s *Session) Store() *storage.ConversationStore {
	return s.store
}

// Phase returns the current send phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Sending reports whether a request is outstanding.
func (s *Session) Sending() bool {
	return s.Phase() == PhaseSending
}

// Last returns the last completed exchange, if any.
func (s *Session) Last() (LastExchange, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return LastExchange{}, false
	}
	out := *s.last
	out.SourceIDs = append([]string(nil), s.last.SourceIDs...)
	if out.SourceIDs == nil {
		out.SourceIDs = make([]string, 0)
	}
	return out, true
}

// =============================================================================
// SEND STATE MACHINE
// =============================================================================

// Begin validates text and moves the session to Sending. Blank input
// returns ErrEmptyInput; an outstanding request returns ErrBusy. The
// returned request carries a fresh cancellation token derived from ctx.
func (s *Session) Begin(ctx context.Context, text string) (*Request, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseSending {
		return nil, ErrBusy
	}

	reqCtx, cancel := context.WithCancel(ctx)
	s.cancelMgr.replace(cancel)
	s.phase = PhaseSending
	s.cancelRequested = false

	req := &Request{ID: uuid.NewString(), Text: text, ctx: reqCtx}
	s.pending = req.ID

	s.logger.Debug().Str("request_id", req.ID).Int("length", len(text)).Msg("chat request started")
	return req, nil
}

// Execute performs the chat call for req and classifies the outcome. It
// blocks and is meant to run off the UI goroutine. It does not touch
// session state; pass the result to Finish.
func (s *Session) Execute(req *Request) Result {
	res := Result{RequestID: req.ID, Question: req.Text}

	resp, err := s.backend.Chat(req.ctx, req.Text)
	switch {
	case err == nil && resp != nil:
		res.Outcome = OutcomeCompleted
		res.Response = resp.Response
		res.Sources = resp.Sources
	case err != nil && (backend.IsCancelled(err) || errors.Is(req.ctx.Err(), context.Canceled)):
		res.Outcome = OutcomeCancelled
		res.Err = err
	default:
		if err == nil {
			err = errors.New("empty chat response")
		}
		res.Outcome = OutcomeFailed
		res.Err = err
		s.logger.Error().Err(err).Str("request_id", req.ID).Msg("chat request failed")
	}
	return res
}

// Finish is the terminal step for every outcome. It clears the
// cancellation token and returns to Idle. A completed result is appended to
// the active conversation, saved, and remembered for feedback. A result for
// a request that is no longer pending is ignored.
func (s *Session) Finish(res Result) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseSending || s.pending != res.RequestID {
		s.logger.Warn().Str("request_id", res.RequestID).Msg("ignoring result for stale request")
		res.Stale = true
		return res
	}

	s.cancelMgr.cancel()
	s.phase = PhaseIdle
	s.pending = ""

	if s.cancelRequested && res.Outcome == OutcomeCompleted {
		res.Outcome = OutcomeCancelled
		res.Response = ""
		res.Sources = nil
		res.Err = context.Canceled
	}
	s.cancelRequested = false

	s.logger.Info().
		Str("request_id", res.RequestID).
		Stringer("outcome", res.Outcome).
		Int("sources", len(res.Sources)).
		Msg("chat request finished")

	if res.Outcome != OutcomeCompleted {
		return res
	}

	s.store.AppendExchange(model.Exchange{User: res.Question, Bot: res.Response})
	s.last = &LastExchange{
		Question:  res.Question,
		Answer:    res.Response,
		SourceIDs: model.SourceIDs(res.Sources),
	}
	return res
}

// Send runs Begin, Execute and Finish in sequence. Used by the line REPL
// and one-shot commands.
func (s *Session) Send(ctx context.Context, text string) (Result, error) {
	req, err := s.Begin(ctx, text)
	if err != nil {
		return Result{}, err
	}
	return s.Finish(s.Execute(req)), nil
}

// Cancel aborts the outstanding request. It is a no-op returning false when
// idle. The request still ends through Finish with OutcomeCancelled, even if
// its answer had already arrived.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseSending {
		return false
	}
	s.cancelRequested = true
	if s.cancelMgr.cancel() {
		s.logger.Info().Str("request_id", s.pending).Msg("chat request cancelled by user")
	}
	return true
}

// Close cancels any outstanding request and background feedback posts.
func (s *Session) Close() {
	s.cancelMgr.cancel()
	s.bgCancel()
}
