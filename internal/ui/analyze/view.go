// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analyze

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/api"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/model"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/render"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/session"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/components"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/util"
)

// PageTitle is the heading of the analyze page.
const PageTitle = "🎯 Analyze a Show or Movie Concept"

// NoAnswer is displayed when the backend returned an empty answer.
const NoAnswer = model.NoAnswer

// View renders the page.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.PageTitle.Render(PageTitle))
	b.WriteString("\n")
	b.WriteString(m.renderForm())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}

func (m Model) renderForm() string {
	field := func(label string, focused bool, body string) string {
		style := m.theme.Field
		if focused {
			style = m.theme.FieldFocused
		}
		return m.theme.Label.Render(label) + "\n" + style.Render(body)
	}

	title := field("Title Name", m.focus == focusTitle, m.title.View())
	regions := field("Target Regions (optional, comma-separated)", m.focus == focusRegions, m.regions.View())
	desc := field("Description (optional)", m.focus == focusDescription, m.description.View())

	return lipgloss.JoinVertical(lipgloss.Left, title, desc, regions, "", m.renderButton())
}

func (m Model) renderButton() string {
	if m.sess.Busy() {
		return m.theme.ButtonBusy.Render(ButtonBusy) + "  " + m.spinner.View()
	}
	if m.focus == focusButton {
		return m.theme.ButtonFocus.Render(ButtonIdle)
	}
	return m.theme.Button.Render(ButtonIdle)
}

// refreshResult rebuilds the viewport content from the session.
func (m *Model) refreshResult() {
	m.viewport.SetContent(m.resultContent())
}

func (m *Model) resultContent() string {
	status := m.sess.Status()
	if !status.Done() {
		return ""
	}

	answer := m.sess.Answer()
	var body string
	if answer == "" {
		body = m.theme.Placeholder.Render(NoAnswer)
	} else if status == session.StatusFailed {
		body = m.theme.StatusFailed.Render(render.Sanitize(answer))
	} else {
		m.card.Body = m.renderer.Render(answer)
		body = m.card.View()
	}

	m.metrics.Metrics = m.buildMetrics(answer)
	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.metrics.View())
}

func (m *Model) buildMetrics(answer string) []components.Metric {
	regions := api.ParseRegions(m.form.Regions)
	regionValue := "Global"
	if len(regions) > 0 {
		regionValue = fmt.Sprintf("%d", len(regions))
	}
	words := util.WordCount(answer)

	return []components.Metric{
		{Label: "Regions", Value: regionValue, Hint: util.Truncate(api.JoinRegions(regions), 24)},
		{Label: "Latency", Value: fmt.Sprintf("%.1fs", m.sess.Latency().Seconds())},
		{Label: "Answer", Value: fmt.Sprintf("%d %s", words, util.Pluralize(words, "word", "words"))},
		{Label: "Status", Value: m.sess.Status().String()},
	}
}
