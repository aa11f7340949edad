// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for streamintel.
//
// # Commands
//
//   - tui: interactive terminal UI (default), optionally opening a page
//   - analyze: one-shot title analysis
//   - ask: one chat message with an empty history
//   - chat: line-mode chat REPL
//   - status, admin rebuild-index: backend health and maintenance
//   - config: show, path, init, get and set configuration values
//   - mock-backend: local stand-in backend for development
//
// Non-interactive commands accept --json and then print a single envelope:
//
//	{"success": true, "command": "ask", "data": {...}, "error": null}
//
// Backend failures print the fallback message and exit with
// ExitBackendError; the failure details go to the log file only.
package cli
