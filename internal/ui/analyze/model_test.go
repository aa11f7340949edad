// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analyze

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/api"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/render"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/session"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/styles"
)

type fakeAnalyzer struct {
	mu     sync.Mutex
	calls  []session.AnalysisForm
	answer string
	err    error
}

func (f *fakeAnalyzer) SubmitAnalysis(ctx context.Context, title, description, regions string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, session.AnalysisForm{Title: title, Description: description, Regions: regions})
	return f.answer, f.err
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestModel(t *testing.T, backend session.Analyzer) Model {
	t.Helper()
	m := New(context.Background(), styles.NewTheme(), session.New(), backend,
		render.New(render.StyleNoTTY, 80), Defaults{Title: "Time Loop Colony", Regions: "US"})
	m.SetSize(100, 40)
	return m
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func resultOf(t *testing.T, cmd tea.Cmd) ResultMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if res, ok := msg.(ResultMsg); ok {
			return res
		}
	}
	require.FailNow(t, "no ResultMsg produced")
	return ResultMsg{}
}

var ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}

func TestDefaults(t *testing.T) {
	m := newTestModel(t, &fakeAnalyzer{})
	form := m.Form()
	assert.Equal(t, "Time Loop Colony", form.Title)
	assert.Equal(t, "", form.Description)
	assert.Equal(t, "US", form.Regions)
	assert.Contains(t, ansi.Strip(m.View()), ButtonIdle)
}

func TestSubmit_Success(t *testing.T) {
	backend := &fakeAnalyzer{answer: "## Verdict\n\nRecommended: Pilot"}
	m := newTestModel(t, backend)
	m.SetFields(session.AnalysisForm{Title: "Night Shift", Description: "A nurse drama.", Regions: "US, UK"})

	m, cmd := m.Update(ctrlS)
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())
	assert.Contains(t, ansi.Strip(m.View()), ButtonBusy)

	m, _ = m.Update(resultOf(t, cmd))
	assert.False(t, m.Busy())
	assert.Equal(t, session.StatusSucceeded, m.Session().Status())

	require.Equal(t, 1, backend.callCount())
	assert.Equal(t, session.AnalysisForm{Title: "Night Shift", Description: "A nurse drama.", Regions: "US, UK"}, backend.calls[0])

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Executive Summary")
	assert.Contains(t, out, "Recommended: Pilot")
	assert.Contains(t, out, "REGIONS")
	assert.Contains(t, out, ButtonIdle)
}

func TestSubmit_BusyGuard(t *testing.T) {
	backend := &fakeAnalyzer{answer: "ok"}
	m := newTestModel(t, backend)

	m, first := m.Update(ctrlS)
	require.NotNil(t, first)

	m, second := m.Update(ctrlS)
	assert.Nil(t, second, "second submit while pending is a no-op")

	m, _ = m.Update(resultOf(t, first))
	assert.Equal(t, 1, backend.callCount())
	assert.Equal(t, session.StatusSucceeded, m.Session().Status())
}

func TestSubmit_Failure(t *testing.T) {
	backend := &fakeAnalyzer{
		answer: api.FallbackMessage,
		err:    &api.BackendError{Op: "analyze", StatusCode: 500, Err: errors.New("boom")},
	}
	m := newTestModel(t, backend)

	m, cmd := m.Update(ctrlS)
	m, _ = m.Update(resultOf(t, cmd))

	assert.Equal(t, session.StatusFailed, m.Session().Status())
	assert.True(t, api.IsBackendUnavailable(m.Session().Err()))
	out := ansi.Strip(m.View())
	assert.Contains(t, out, api.FallbackMessage)
	assert.NotContains(t, out, "boom")
}

func TestSubmit_EmptyAnswer(t *testing.T) {
	m := newTestModel(t, &fakeAnalyzer{answer: ""})

	m, cmd := m.Update(ctrlS)
	m, _ = m.Update(resultOf(t, cmd))

	assert.Equal(t, session.StatusSucceeded, m.Session().Status())
	assert.Equal(t, "", m.Session().Answer())
	assert.Contains(t, ansi.Strip(m.View()), NoAnswer)
}

func TestAbort_IgnoresLateResult(t *testing.T) {
	m := newTestModel(t, &fakeAnalyzer{answer: "late answer"})

	m, cmd := m.Update(ctrlS)
	require.True(t, m.Busy())

	assert.True(t, m.Abort())
	assert.False(t, m.Busy())
	assert.False(t, m.Abort(), "nothing left to abort")

	m, _ = m.Update(resultOf(t, cmd))
	assert.Equal(t, session.StatusIdle, m.Session().Status())
	assert.NotContains(t, ansi.Strip(m.View()), "late answer")
}

func TestCancelledParent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := New(ctx, styles.NewTheme(), session.New(), &fakeAnalyzer{err: context.Canceled},
		render.New(render.StyleNoTTY, 80), Defaults{Title: "T"})

	m, cmd := m.Update(ctrlS)
	cancel()
	m, _ = m.Update(resultOf(t, cmd))

	assert.Equal(t, session.StatusIdle, m.Session().Status())
	assert.False(t, m.Busy())
}

func TestFocus_EnterSubmitsExceptInDescription(t *testing.T) {
	backend := &fakeAnalyzer{answer: "ok"}
	m := newTestModel(t, backend)

	// title -> description
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Busy(), "enter in the description inserts a newline")
	_ = cmd

	// description -> regions -> button
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusButton, m.focus)

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())
	m, _ = m.Update(resultOf(t, cmd))
	assert.Equal(t, 1, backend.callCount())

	// Shift+Tab wraps backwards.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, focusRegions, m.focus)
}

func TestTypingEditsFocusedField(t *testing.T) {
	m := newTestModel(t, &fakeAnalyzer{})
	m.SetFields(session.AnalysisForm{})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Dune")})
	assert.Equal(t, "Dune", m.Form().Title)
	assert.Equal(t, "", m.Form().Regions)
}
