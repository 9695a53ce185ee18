// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the chat client.
//
// # Key Types
//
//   - Conversation: a titled list of exchanges, persisted by the backend
//   - Exchange: one user question and the bot's answer
//   - Source: a retrieved document snippet attached to an answer
//   - FeedbackRecord: the rating payload sent to the evaluation endpoint
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.Messages = append(conv.Messages, model.Exchange{User: "Hello", Bot: "Hi"})
//	fmt.Println(conv.DisplayTitle())
package model
