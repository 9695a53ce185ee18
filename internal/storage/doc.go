// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage keeps the client's conversation list in memory and
// mirrors it to the backend.
//
// The backend is the source of truth at startup (Load). After that the
// in-memory list is authoritative and every mutation pushes a full snapshot
// back with a fire-and-forget Save. Concurrent saves may land out of order;
// the last one to arrive wins on the server.
//
// # Usage
//
//	store := storage.NewConversationStore(client, logger)
//	_ = store.Load(ctx) // failure already logged, store holds a default conversation
//	store.AppendExchange(model.Exchange{User: "Hello", Bot: "Hi"})
//	defer store.Flush(shutdownCtx)
package storage
