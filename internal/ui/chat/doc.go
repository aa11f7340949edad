// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the copilot chat page of the TUI.
//
// The page shows the session transcript in a scrolling viewport with a
// multi-line input below it. Enter sends the message; alt+enter or ctrl+j
// inserts a newline. Blank messages are ignored, and while a reply is
// pending the send button reads "Thinking…" and further sends are no-ops.
// Each message is sent together with the contents of the earlier turns.
package chat
