// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the per-page request state of the client.
//
// A Session is owned by one UI surface (the analyze page, the chat page, a CLI
// command) and passed to whatever needs it; there is no package level state.
// It tracks:
//
//   - Status: Idle, Pending, Succeeded or Failed
//   - the chat transcript (chat sessions only)
//   - the latest answer and its latency
//
// Only one request may be outstanding per session. Starting another while one
// is pending returns ErrBusy and changes nothing. Every request runs on a
// context derived from the caller's; Abort cancels it and discards its result
// when it eventually arrives.
//
// Flows are split in Start/Finish halves so an event loop can run the network
// call off the UI goroutine:
//
//	p, err := sess.StartChat(ctx, text)     // on the UI goroutine
//	answer, err := p.Run(client)            // in a command
//	turn, ok := sess.FinishChat(p, answer, err)
//
// SendChat and RunAnalysis do all three steps synchronously.
package session
