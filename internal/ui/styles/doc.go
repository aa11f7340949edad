// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the streamintel TUI.
//
// All colors are lipgloss AdaptiveColors so the UI reads on light and dark
// terminals. The palette centers on the deep purple of the StreamIntel360
// brand bar, with cyan for user input and emerald/rose/amber for status.
//
// Theme bundles the lipgloss styles used by the components and pages:
//
//	theme := styles.NewTheme()
//	title := theme.HeaderTitle.Render("StreamIntel360")
package styles
