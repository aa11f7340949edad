// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the title analysis page of the TUI.
//
// The page is a three field form (title, description, target regions) and a
// submit button. Submitting starts an analysis on the page's session; the
// request runs as a tea.Cmd and its outcome arrives as a ResultMsg. While
// the session is pending the button reads "Analyzing…" and further submits
// are ignored. The answer is rendered as markdown in an "Executive Summary"
// card followed by a metrics grid.
package analyze
