// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/styles"
)

// AnswerCard frames a titled block of already rendered text.
type AnswerCard struct {
	Title string
	Body  string
	Width int
	theme *styles.Theme
}

// NewAnswerCard creates a card with the given heading.
func NewAnswerCard(theme *styles.Theme, title string) *AnswerCard {
	return &AnswerCard{Title: title, Width: 80, theme: theme}
}

// View renders the card. An empty body renders nothing.
func (c *AnswerCard) View() string {
	if c.Body == "" {
		return ""
	}
	width := c.Width - 2
	if width < 20 {
		width = 20
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		c.theme.CardTitle.Render(c.Title),
		"",
		c.Body,
	)
	return c.theme.Card.Width(width).Render(content)
}
