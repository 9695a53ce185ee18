// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the RAG chatbot backend.
//
// # Endpoints
//
//   - GET  /api/loadConversations: saved conversation list
//   - POST /api/saveConversations: replace the saved list
//   - POST /chat: {"message"} answered by {"response", "sources"}
//   - POST /api/evaluate: answer feedback
//
// Paths are configurable through ClientConfig.
//
// # Errors
//
// Every failure is a *ClientError whose Type tells network, HTTP status,
// cancellation and undecodable bodies apart. Use IsCancelled, IsHTTP and
// IsNetwork rather than comparing messages.
package backend
