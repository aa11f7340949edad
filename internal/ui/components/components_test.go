// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/session"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/styles"
)

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestHeader_View(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetWidth(100)
	h.SetPage("Chat")
	h.SetBackend("http://127.0.0.1:8000")

	out := ansi.Strip(h.View())
	assert.Contains(t, out, "StreamIntel360")
	assert.Contains(t, out, "Chat")
	assert.Contains(t, out, "http://127.0.0.1:8000")
	assert.NotContains(t, out, "\n")
}

func TestHeader_NarrowDropsBackend(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetWidth(20)
	h.SetPage("Analyze")
	h.SetBackend("http://a-very-long-backend-host.example.com:8000")

	out := ansi.Strip(h.View())
	assert.Contains(t, out, "StreamIntel360")
	assert.NotContains(t, out, "example.com")
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusIndicator(t *testing.T) {
	theme := styles.NewTheme()
	tests := []struct {
		status session.Status
		want   string
	}{
		{session.StatusIdle, "[ ] Idle"},
		{session.StatusPending, "[~] Pending"},
		{session.StatusSucceeded, "[OK] Succeeded"},
		{session.StatusFailed, "[X] Failed"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, ansi.Strip(StatusIndicator(theme, tc.status)))
		})
	}
}

func TestStatusBar_FromSession(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(80)

	sess := session.New()
	bar.Update(sess)
	assert.Equal(t, session.StatusIdle, bar.Status)
	assert.Equal(t, 0, bar.Turns)

	bar.Update(nil)
	assert.Contains(t, ansi.Strip(bar.View()), "Idle")
}

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestSpinner_Lifecycle(t *testing.T) {
	s := NewSpinner("Thinking…")
	assert.False(t, s.IsActive())
	assert.Empty(t, s.View())
	assert.Zero(t, s.Elapsed())

	cmd := s.Start()
	require.NotNil(t, cmd)
	assert.True(t, s.IsActive())
	assert.Contains(t, ansi.Strip(s.View()), "Thinking…")

	s.SetShowTimer(false)
	assert.NotContains(t, ansi.Strip(s.View()), "s)")

	s.Stop()
	_, next := s.Update(cmd())
	assert.Nil(t, next, "stopped spinner must not keep ticking")
}

// =============================================================================
// HOME, CARD, METRICS TESTS
// =============================================================================

func TestWelcome_View(t *testing.T) {
	w := NewWelcome(styles.NewTheme())
	w.SetWidth(100)
	out := ansi.Strip(w.View())

	assert.Contains(t, out, Brand)
	assert.Contains(t, out, Tagline)
	assert.Contains(t, out, LinkChat)
	assert.Contains(t, out, LinkAnalyze)
}

func TestAnswerCard(t *testing.T) {
	card := NewAnswerCard(styles.NewTheme(), "Executive Summary")
	assert.Empty(t, card.View())

	card.Body = "Recommended: Pilot"
	out := ansi.Strip(card.View())
	assert.Contains(t, out, "Executive Summary")
	assert.Contains(t, out, "Recommended: Pilot")
}

func TestMetricsGrid(t *testing.T) {
	g := NewMetricsGrid(styles.NewTheme())
	assert.Empty(t, g.View())

	g.Metrics = []Metric{
		{Label: "Regions", Value: "3"},
		{Label: "Latency", Value: "1.2s"},
		{Label: "Words", Value: "120", Hint: "answer length"},
		{Label: "Status", Value: "Succeeded"},
	}

	g.Width = 120
	assert.Equal(t, 4, g.Columns())
	wide := ansi.Strip(g.View())
	assert.Contains(t, wide, "REGIONS")
	assert.Contains(t, wide, "answer length")

	g.Width = 60
	assert.Equal(t, 2, g.Columns())
	narrow := ansi.Strip(g.View())
	assert.Greater(t, strings.Count(narrow, "\n"), strings.Count(wide, "\n"))
}
