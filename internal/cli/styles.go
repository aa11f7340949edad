// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/styles"
)

// =============================================================================
// SHARED STYLES FOR CLI OUTPUT
// =============================================================================

var (
	// TitleStyle is used for command titles and answer headings
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Purple)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Width(10)

	// ValueStyle is used for regular values
	ValueStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	// UserStyle labels user turns in the chat REPL
	UserStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Cyan)

	// SuccessStyle is used for OK statuses
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Emerald)

	// ErrorStyle is used for errors and the fallback message
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Rose)

	// WarningStyle is used for warnings
	WarningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// MutedStyle is used for hints and secondary text
	MutedStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)
