// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable view pieces of the streamintel
// TUI: the brand header, the status bar, the busy spinner, the home page,
// answer cards and the analysis metrics grid.
//
// Components are plain structs with a View method. Only Spinner takes part
// in the Bubble Tea update loop.
package components
