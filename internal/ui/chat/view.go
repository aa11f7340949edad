// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/model"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/render"
)

// Page text.
const (
	PageTitle   = "🎬 StreamIntel360 – Content Intelligence Copilot"
	Placeholder = "Start by describing a concept or question about a show or movie."
	NoAnswer    = model.NoAnswer
	inputLabel  = "Show / movie concept or question"
)

var intro = "Describe a show or movie concept, and the AI agents will analyze it " +
	"from multiple angles (similar content, audience fit, competitive landscape)."

// View renders the page.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.PageTitle.Render(PageTitle))
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Width(m.width - 2).Render(intro))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.theme.Label.Render(inputLabel))
	b.WriteString("\n")
	b.WriteString(m.theme.FieldFocused.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderButton())
	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}

func (m Model) renderButton() string {
	if m.sess.Busy() {
		return m.theme.ButtonBusy.Render(ButtonBusy) + "  " + m.spinner.View()
	}
	return m.theme.ButtonFocus.Render(ButtonIdle)
}

// refreshTranscript rebuilds the viewport and scrolls to the newest turn.
func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.transcriptContent())
	m.viewport.GotoBottom()
}

func (m *Model) transcriptContent() string {
	turns := m.sess.Transcript()
	if len(turns) == 0 {
		return m.theme.Placeholder.Render(Placeholder)
	}

	last := -1
	for i := len(turns) - 1; i >= 0; i-- {
		if !turns[i].IsUser() {
			last = i
			break
		}
	}

	parts := make([]string, 0, len(turns))
	for i, turn := range turns {
		if i == last && !turn.Failed && !turn.IsEmpty() {
			m.card.Body = m.renderer.Render(turn.Content)
			parts = append(parts, m.card.View())
			continue
		}
		parts = append(parts, m.renderTurn(turn))
	}
	return strings.Join(parts, "\n\n")
}

func (m *Model) renderTurn(turn model.Turn) string {
	if turn.IsUser() {
		return m.theme.UserLabel.Render(turn.Role.DisplayName()+":") + " " + m.theme.Paragraph.Render(render.Sanitize(turn.Content))
	}

	label := m.theme.AssistantLabel.Render(turn.Role.DisplayName() + ":")
	switch {
	case turn.IsEmpty():
		return label + " " + m.theme.Placeholder.Render(NoAnswer)
	case turn.Failed:
		return label + " " + m.theme.StatusFailed.Render(render.Sanitize(turn.Content))
	default:
		return label + "\n" + m.renderer.Render(turn.Content)
	}
}
