// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"

	"github.com/jeranaias/ragchat-tui/internal/storage"
)

// DeletePrompt is the question asked before a conversation is deleted.
const DeletePrompt = "Are you sure you want to delete this conversation?"

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm approves every prompt. The TUI asks its own modal question
// before dispatching a delete and then passes this.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

// =============================================================================
// CONVERSATION OPERATIONS
// =============================================================================

// NewConversation starts a fresh conversation at the top of the list.
func (s *Session) NewConversation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseSending {
		return ErrBusy
	}
	s.store.StartNew()
	s.last = nil
	return nil
}

// SelectConversation makes the conversation at index active.
func (s *Session) SelectConversation(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseSending {
		return ErrBusy
	}
	if err := s.store.Select(index); err != nil {
		return err
	}
	s.last = nil
	return nil
}

// DeleteConversation removes the conversation at index once c approves
// DeletePrompt. It reports whether anything was deleted.
func (s *Session) DeleteConversation(index int, c Confirmer) (bool, error) {
	if s.Sending() {
		return false, ErrBusy
	}
	if n := s.store.Len(); index < 0 || index >= n {
		return false, fmt.Errorf("%w: %d (have %d)", storage.ErrIndexOutOfRange, index, n)
	}

	// The confirmer may block on the terminal, so it runs unlocked.
	if c != nil && !c.Confirm(DeletePrompt) {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseSending {
		return false, ErrBusy
	}
	if err := s.store.DeleteAt(index); err != nil {
		return false, err
	}
	s.last = nil
	s.logger.Info().Int("index", index).Msg("conversation deleted")
	return true, nil
}

// RenameConversation retitles the active conversation. Blank titles are
// ignored and return false.
func (s *Session) RenameConversation(title string) bool {
	return s.store.RenameActive(title)
}
