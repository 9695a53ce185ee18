// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// DefaultTitle is the title given to a freshly created conversation.
const DefaultTitle = "New conversation"

// UntitledLabel is shown in lists when a conversation title is blank.
const UntitledLabel = "Untitled"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is a titled, ordered list of question/answer exchanges.
// The JSON shape matches what the backend persists, so a Conversation
// round-trips through load and save unchanged.
type Conversation struct {
	Title    string     `json:"title"`
	Messages []Exchange `json:"messages"`
}

// Exchange is one user question paired with the bot's final answer text.
// A failed or interrupted request never becomes an Exchange.
type Exchange struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

// NewConversation returns an empty conversation with the default title.
// Messages is non-nil so it serialises as [] rather than null.
func NewConversation() Conversation {
	return Conversation{
		Title:    DefaultTitle,
		Messages: make([]Exchange, 0),
	}
}

// Clone returns a deep copy so callers can read a snapshot without holding
// the store's lock.
func (c Conversation) Clone() Conversation {
	out := Conversation{Title: c.Title, Messages: make([]Exchange, len(c.Messages))}
	copy(out.Messages, c.Messages)
	return out
}

// DisplayTitle returns the title for list rendering, substituting a label
// when the title is blank.
func (c Conversation) DisplayTitle() string {
	if strings.TrimSpace(c.Title) == "" {
		return UntitledLabel
	}
	return c.Title
}

// IsEmpty reports whether the conversation holds no exchanges.
func (c Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// LastExchange returns the most recent exchange, if any.
func (c Conversation) LastExchange() (Exchange, bool) {
	if len(c.Messages) == 0 {
		return Exchange{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// Normalize fixes up a conversation decoded from the backend: a null
// messages array becomes empty.
func (c *Conversation) Normalize() {
	if c.Messages == nil {
		c.Messages = make([]Exchange, 0)
	}
}

// CloneAll deep-copies a slice of conversations.
func CloneAll(convs []Conversation) []Conversation {
	out := make([]Conversation, len(convs))
	for i, c := range convs {
		out[i] = c.Clone()
	}
	return out
}
