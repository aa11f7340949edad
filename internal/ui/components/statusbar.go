// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/session"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar shows the session status on the left and key hints on the right.
type StatusBar struct {
	Status  session.Status
	Latency time.Duration
	Turns   int
	Width   int

	keys  help.KeyMap
	help  help.Model
	theme *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	h := help.New()
	h.Styles.ShortKey = theme.KeyHint
	h.Styles.ShortDesc = theme.StatusBar.Padding(0)
	h.Styles.ShortSeparator = theme.StatusBar.Padding(0)
	return &StatusBar{Width: 80, help: h, theme: theme}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) { s.Width = width }

// SetKeys sets the bindings shown as hints.
func (s *StatusBar) SetKeys(keys help.KeyMap) { s.keys = keys }

// Update copies the display fields from a session.
func (s *StatusBar) Update(sess *session.Session) {
	if sess == nil {
		s.Status = session.StatusIdle
		s.Latency = 0
		s.Turns = 0
		return
	}
	s.Status = sess.Status()
	s.Latency = sess.Latency()
	s.Turns = sess.TurnCount()
}

// StatusIndicator renders the marker and name of a status.
func StatusIndicator(theme *styles.Theme, st session.Status) string {
	switch st {
	case session.StatusPending:
		return theme.StatusPending.Render(styles.StatusIndicators.Pending + " " + st.String())
	case session.StatusSucceeded:
		return theme.StatusSucceeded.Render(styles.StatusIndicators.Succeeded + " " + st.String())
	case session.StatusFailed:
		return theme.StatusFailed.Render(styles.StatusIndicators.Failed + " " + st.String())
	default:
		return theme.StatusIdle.Render(styles.StatusIndicators.Idle + " " + st.String())
	}
}

// View renders the status bar.
func (s *StatusBar) View() string {
	parts := []string{StatusIndicator(s.theme, s.Status)}
	if s.Latency > 0 {
		parts = append(parts, fmt.Sprintf("%.1fs", s.Latency.Seconds()))
	}
	if s.Turns > 0 {
		parts = append(parts, fmt.Sprintf("%d turns", s.Turns))
	}
	left := strings.Join(parts, " | ")

	right := ""
	if s.keys != nil {
		s.help.Width = s.Width / 2
		right = s.help.ShortHelpView(s.keys.ShortHelp())
	}

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return s.theme.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}

var _ help.KeyMap = GlobalKeys{}

// GlobalKeys are the navigation bindings shared by every page.
type GlobalKeys struct {
	Home    key.Binding
	Analyze key.Binding
	Chat    key.Binding
	Quit    key.Binding
}

// ShortHelp implements help.KeyMap.
func (k GlobalKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Analyze, k.Chat, k.Home, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GlobalKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
