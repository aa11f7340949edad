// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root Bubble Tea model of the streamintel TUI.
//
// It owns one session per page, routes keys and results to the home,
// analyze and chat pages, aborts a page's request when the user navigates
// away from it, and applies configuration reloads while running.
package app
