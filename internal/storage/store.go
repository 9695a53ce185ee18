// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// ErrIndexOutOfRange is returned by Select and DeleteAt for a bad index.
var ErrIndexOutOfRange = errors.New("conversation index out of range")

// Persister is the remote side of the store. *backend.Client satisfies it.
type Persister interface {
	LoadConversations(ctx context.Context) ([]model.Conversation, error)
	SaveConversations(ctx context.Context, convs []model.Conversation) error
}

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// ConversationStore holds the ordered conversation list and the active
// index, and mirrors every change to the backend.
//
// The list is never empty and the active index always points at an element.
// All methods are safe for concurrent use.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations []model.Conversation
	current       int
	// loaded is set once Load has finished, successfully or not. Until then
	// the list is a placeholder and must not overwrite the backend copy.
	loaded bool

	persister Persister
	logger    zerolog.Logger

	// saves tracks in-flight background saves for Flush.
	saves sync.WaitGroup
	// saveCtx bounds background saves; cancelled by Close.
	saveCtx    context.Context
	saveCancel context.CancelFunc
}

// NewConversationStore creates a store holding one default conversation.
// Call Load to replace it with the backend's list.
func NewConversationStore(p Persister, logger zerolog.Logger) *ConversationStore {
	ctx, cancel := context.WithCancel(context.Background())
	return &ConversationStore{
		conversations: []model.Conversation{model.NewConversation()},
		persister:     p,
		logger:        logger.With().Str("component", "store").Logger(),
		saveCtx:       ctx,
		saveCancel:    cancel,
	}
}

// =============================================================================
// SYNCHRONIZATION
// =============================================================================

// Load fetches the conversation list from the backend and makes the first
// one active. An empty list becomes a single default conversation.
//
// Any failure installs one default conversation and is logged. The error is
// returned for information only; the store is usable either way.
func (s *ConversationStore) Load(ctx context.Context) error {
	convs, err := s.persister.LoadConversations(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true

	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load conversations, starting with a default conversation")
		s.conversations = []model.Conversation{model.NewConversation()}
		s.current = 0
		return fmt.Errorf("load conversations: %w", err)
	}

	if len(convs) == 0 {
		convs = []model.Conversation{model.NewConversation()}
	}
	s.conversations = model.CloneAll(convs)
	s.current = 0

	s.logger.Info().Int("count", len(s.conversations)).Msg("conversations loaded")
	return nil
}

// Save sends a snapshot of the full list to the backend in the background.
// It never blocks and never fails from the caller's point of view: errors
// are logged. Saves are neither queued nor deduplicated. Before Load has
// finished Save does nothing.
func (s *ConversationStore) Save() {
	s.mu.RLock()
	if !s.loaded {
		s.mu.RUnlock()
		s.logger.Debug().Msg("skipping save before conversations are loaded")
		return
	}
	snapshot := model.CloneAll(s.conversations)
	s.mu.RUnlock()

	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		if err := s.persister.SaveConversations(s.saveCtx, snapshot); err != nil {
			s.logger.Error().Err(err).Int("count", len(snapshot)).Msg("failed to save conversations")
			return
		}
		s.logger.Debug().Int("count", len(snapshot)).Msg("conversations saved")
	}()
}

// Flush waits for in-flight saves to finish or ctx to expire.
func (s *ConversationStore) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.saves.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close aborts any in-flight saves. The store must not be used afterwards.
func (s *ConversationStore) Close() {
	s.saveCancel()
}

// =============================================================================
// MUTATIONS
// =============================================================================

// StartNew inserts a default conversation at the front, makes it active
// and saves.
func (s *ConversationStore) StartNew() {
	s.mu.Lock()
	s.conversations = append([]model.Conversation{model.NewConversation()}, s.conversations...)
	s.current = 0
	s.mu.Unlock()

	s.Save()
}

// Select makes the conversation at index active. Nothing is persisted.
func (s *ConversationStore) Select(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.conversations) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.conversations))
	}
	s.current = index
	return nil
}

// DeleteAt removes the conversation at index and saves. Deleting the last
// conversation leaves a single default one. The active conversation stays
// active when an earlier entry is removed; otherwise the index is clamped.
func (s *ConversationStore) DeleteAt(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.conversations) {
		n := len(s.conversations)
		s.mu.Unlock()
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, n)
	}

	s.conversations = append(s.conversations[:index:index], s.conversations[index+1:]...)
	if len(s.conversations) == 0 {
		s.conversations = []model.Conversation{model.NewConversation()}
	}
	if index < s.current {
		s.current--
	}
	if s.current >= len(s.conversations) {
		s.current = len(s.conversations) - 1
	}
	s.mu.Unlock()

	s.Save()
	return nil
}

// RenameActive sets the active conversation's title. A blank title is a
// no-op and returns false.
func (s *ConversationStore) RenameActive(title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}

	s.mu.Lock()
	s.conversations[s.current].Title = title
	s.mu.Unlock()

	s.Save()
	return true
}

// AppendExchange adds a completed exchange to the active conversation and
// saves.
func (s *ConversationStore) AppendExchange(ex model.Exchange) {
	s.mu.Lock()
	c := &s.conversations[s.current]
	c.Messages = append(c.Messages, ex)
	s.mu.Unlock()

	s.Save()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Loaded reports whether Load has finished.
func (s *ConversationStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Len returns the number of conversations. Always at least one.
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

// Current returns the active index.
func (s *ConversationStore) Current() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Active returns a copy of the active conversation.
func (s *ConversationStore) Active() model.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conversations[s.current].Clone()
}

// At returns a copy of the conversation at index.
func (s *ConversationStore) At(index int) (model.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.conversations) {
		return model.Conversation{}, false
	}
	return s.conversations[index].Clone(), true
}

// Conversations returns a deep copy of the whole list.
func (s *ConversationStore) Conversations() []model.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneAll(s.conversations)
}

// Titles returns the display title of every conversation in order.
func (s *ConversationStore) Titles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	titles := make([]string, len(s.conversations))
	for i, c := range s.conversations {
		titles[i] = c.DisplayTitle()
	}
	return titles
}
