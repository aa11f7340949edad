// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/styles"
)

// =============================================================================
// HOME PAGE
// =============================================================================

// Home page link labels.
const (
	LinkChat    = "Try AI Copilot"
	LinkAnalyze = "Analyze a Title"
)

var homeIntro = "StreamIntel360 helps streaming teams evaluate new show and movie concepts " +
	"using AI agents powered by Retrieval-Augmented Generation (RAG), LangGraph, " +
	"and large language models."

var homeBullets = []string{
	"Analyze a concept's audience fit and competitive landscape.",
	"Discover similar titles and patterns from the existing catalog.",
	"Generate executive-ready summaries for Go / No-Go decisions.",
}

// Welcome is the landing page.
type Welcome struct {
	Width int
	theme *styles.Theme
}

// NewWelcome creates the landing page.
func NewWelcome(theme *styles.Theme) *Welcome {
	return &Welcome{Width: 80, theme: theme}
}

// SetWidth updates the page width.
func (w *Welcome) SetWidth(width int) { w.Width = width }

// View renders the landing page.
func (w *Welcome) View() string {
	width := w.Width - 4
	if width < 30 {
		width = 30
	}
	para := w.theme.Paragraph.Width(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(styles.Purple).Render(Brand))
	b.WriteString("\n")
	b.WriteString(w.theme.Muted.Render(Tagline))
	b.WriteString("\n\n")
	b.WriteString(para.Render(homeIntro))
	b.WriteString("\n\n")
	for _, item := range homeBullets {
		b.WriteString(para.Render("  • " + item))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(w.theme.Paragraph.Render("Try one of the tools:"))
	b.WriteString("\n\n")
	b.WriteString(w.theme.KeyHint.UnsetBackground().Render("[1]") + " " + w.theme.Link.Render(LinkChat))
	b.WriteString("    ")
	b.WriteString(w.theme.KeyHint.UnsetBackground().Render("[2]") + " " + w.theme.Link.Render(LinkAnalyze))
	b.WriteString("\n")

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
