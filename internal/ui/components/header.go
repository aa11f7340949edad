// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/styles"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/util"
)

// =============================================================================
// HEADER COMPONENT - Brand bar with page title and backend
// =============================================================================

// Brand is the product name shown in the header and on the home page.
const Brand = "🎬 StreamIntel360"

// Tagline is shown under the brand on the home page.
const Tagline = "Multi-Agent Content Intelligence Platform for Streaming Strategy."

// Header is the top brand bar.
type Header struct {
	Title   string // Brand text
	Page    string // Current page name, empty on home
	Backend string // Backend base URL
	Width   int
	theme   *styles.Theme
}

// NewHeader creates a header with the brand title.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: Brand,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) { h.Width = width }

// SetPage sets the page name shown after the brand.
func (h *Header) SetPage(page string) { h.Page = page }

// SetBackend sets the backend URL shown on the right.
func (h *Header) SetBackend(url string) { h.Backend = url }

// View renders the header as a single full-width line.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}
	inner := width - 4

	left := h.theme.HeaderTitle.Render(h.Title)
	if h.Page != "" {
		left += h.theme.HeaderSubtitle.Render("  /  " + h.Page)
	}

	right := ""
	if h.Backend != "" {
		space := inner - lipgloss.Width(left) - 2
		if space >= 12 {
			right = h.theme.HeaderSubtitle.Render(util.Truncate(h.Backend, space))
		}
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	filler := lipgloss.NewStyle().Background(styles.PurpleDeep).Width(gap).Render("")

	return h.theme.Header.Width(width).Render(left + filler + right)
}
