// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the chat client's transient state.
//
// A Session runs exactly one chat request at a time through the state
// machine Idle -> Sending -> (Completed | Cancelled | Failed) -> Idle.
// The split into Begin, Execute and Finish lets a bubbletea program run
// the blocking Execute in a tea.Cmd while Begin and Finish stay on the
// update loop. Line-oriented callers use Send.
//
// # Key Types
//
//   - Session: send state machine, last-exchange cache, feedback submission
//   - Request: an accepted request carrying its cancellation token
//   - Result: classified outcome with the text to display
//   - Confirmer: yes/no prompt used before deleting a conversation
//
// # Usage
//
//	sess := session.New(store, client, logger)
//	res, err := sess.Send(ctx, "What is retrieval augmented generation?")
//	if err == nil {
//	    fmt.Println(res.Display())
//	    _, _ = sess.SubmitFeedback(5, "")
//	}
package session
