// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styles shared by the TUI components.
type Theme struct {
	ColorProfile termenv.Profile

	Width  int
	Height int

	// Brand bar
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// Page content
	PageTitle lipgloss.Style
	Paragraph lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style
	Link      lipgloss.Style

	// Form controls
	Field        lipgloss.Style
	FieldFocused lipgloss.Style
	Button       lipgloss.Style
	ButtonFocus  lipgloss.Style
	ButtonBusy   lipgloss.Style

	// Transcript
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	Placeholder    lipgloss.Style

	// Answer card
	Card      lipgloss.Style
	CardTitle lipgloss.Style

	// Status
	StatusIdle      lipgloss.Style
	StatusPending   lipgloss.Style
	StatusSucceeded lipgloss.Style
	StatusFailed    lipgloss.Style

	StatusBar lipgloss.Style
	KeyHint   lipgloss.Style
}

// NewTheme creates the theme for the current terminal.
func NewTheme() *Theme {
	t := &Theme{ColorProfile: lipgloss.ColorProfile(), Width: 80, Height: 24}
	t.initStyles()
	return t
}

// ApplyColorProfile forces plain output when noColor is set or NO_COLOR is
// present in the environment.
func ApplyColorProfile(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Background(PurpleDeep).
		Foreground(TextInverse).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(PurpleDeep)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#DDD6FE", Dark: "#C4B5FD"}).
		Background(PurpleDeep)

	t.PageTitle = lipgloss.NewStyle().Bold(true).Foreground(Purple).MarginBottom(1)
	t.Paragraph = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Label = lipgloss.NewStyle().Bold(true).Foreground(TextSecondary)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
	t.Link = lipgloss.NewStyle().Foreground(Cyan).Underline(true)

	t.Field = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.FieldFocused = t.Field.BorderForeground(Purple)

	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2)
	t.ButtonFocus = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 2)
	t.ButtonBusy = lipgloss.NewStyle().
		Italic(true).
		Foreground(TextMuted).
		Background(SurfaceDim).
		Padding(0, 2)

	t.UserLabel = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.AssistantLabel = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.Placeholder = lipgloss.NewStyle().Italic(true).Foreground(TextMuted)

	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)
	t.CardTitle = lipgloss.NewStyle().Bold(true).Foreground(Purple)

	t.StatusIdle = lipgloss.NewStyle().Foreground(TextMuted)
	t.StatusPending = lipgloss.NewStyle().Foreground(Amber)
	t.StatusSucceeded = lipgloss.NewStyle().Foreground(Emerald)
	t.StatusFailed = lipgloss.NewStyle().Foreground(Rose)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)
	t.KeyHint = lipgloss.NewStyle().Foreground(Cyan).Background(SurfaceDim)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// ContentWidth is the usable width inside the page padding.
func (t *Theme) ContentWidth() int {
	w := t.Width - 4
	if w < 20 {
		return 20
	}
	return w
}
