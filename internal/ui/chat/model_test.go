// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

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
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/model"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/render"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/session"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/styles"
)

type call struct {
	message string
	history []string
}

type fakeChatter struct {
	mu      sync.Mutex
	calls   []call
	answers []string
	err     error
}

func (f *fakeChatter) SubmitChatMessage(ctx context.Context, message string, history []string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hist := make([]string, len(history))
	copy(hist, history)
	f.calls = append(f.calls, call{message: message, history: hist})
	answer := ""
	if len(f.answers) > 0 {
		answer, f.answers = f.answers[0], f.answers[1:]
	}
	return answer, f.err
}

func newTestModel(t *testing.T, backend session.Chatter) Model {
	t.Helper()
	m := New(context.Background(), styles.NewTheme(), session.New(), backend, render.New(render.StyleNoTTY, 80))
	m.SetSize(100, 40)
	return m
}

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

func replyOf(t *testing.T, cmd tea.Cmd) ReplyMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if reply, ok := msg.(ReplyMsg); ok {
			return reply
		}
	}
	require.FailNow(t, "no ReplyMsg produced")
	return ReplyMsg{}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

// send types text into the input and presses enter.
func send(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.SetInput(text)
	return m.Update(enter)
}

func TestPlaceholderBeforeFirstTurn(t *testing.T) {
	m := newTestModel(t, &fakeChatter{})
	out := ansi.Strip(m.View())
	assert.Contains(t, out, Placeholder)
	assert.Contains(t, out, ButtonIdle)
}

func TestSend_ConversationHistory(t *testing.T) {
	backend := &fakeChatter{answers: []string{"Strong fit for teens.", "Pilot in the UK first."}}
	m := newTestModel(t, backend)

	m, cmd := send(t, m, "  Teen space drama  ")
	require.NotNil(t, cmd)
	assert.Empty(t, m.Input(), "input is cleared on send")
	assert.Contains(t, ansi.Strip(m.View()), ButtonBusy)
	m, _ = m.Update(replyOf(t, cmd))

	m, cmd = send(t, m, "Which regions?")
	m, _ = m.Update(replyOf(t, cmd))

	require.Len(t, backend.calls, 2)
	assert.Equal(t, "Teen space drama", backend.calls[0].message)
	assert.Equal(t, []string{}, backend.calls[0].history)
	assert.Equal(t, "Which regions?", backend.calls[1].message)
	assert.Equal(t, []string{"Teen space drama", "Strong fit for teens."}, backend.calls[1].history)

	turns := m.Session().Transcript()
	require.Len(t, turns, 4)
	assert.Equal(t, model.RoleAssistant, turns[3].Role)
	assert.Equal(t, "Pilot in the UK first.", turns[3].Content)

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "You:")
	assert.Contains(t, out, "AI:")
	assert.Contains(t, out, "AI Strategy View:")
	assert.Contains(t, out, "Pilot in the UK first.")
}

func TestSend_BlankIgnored(t *testing.T) {
	backend := &fakeChatter{}
	m := newTestModel(t, backend)

	for _, text := range []string{"", "   ", "\n\t"} {
		var cmd tea.Cmd
		m, cmd = send(t, m, text)
		assert.Nil(t, cmd)
	}
	assert.Empty(t, backend.calls)
	assert.Empty(t, m.Session().Transcript())
	assert.Equal(t, session.StatusIdle, m.Session().Status())
}

func TestSend_BusyGuard(t *testing.T) {
	backend := &fakeChatter{answers: []string{"first"}}
	m := newTestModel(t, backend)

	m, first := send(t, m, "one")
	m, second := send(t, m, "two")
	assert.Nil(t, second)
	assert.Equal(t, "two", m.Input(), "ignored send keeps the draft")

	m, _ = m.Update(replyOf(t, first))
	assert.Len(t, backend.calls, 1)
	assert.Len(t, m.Session().Transcript(), 2)
}

func TestSend_Failure(t *testing.T) {
	backend := &fakeChatter{
		answers: []string{api.FallbackMessage},
		err:     &api.BackendError{Op: "chat", Err: errors.New("connection refused")},
	}
	m := newTestModel(t, backend)

	m, cmd := send(t, m, "hello")
	m, _ = m.Update(replyOf(t, cmd))

	assert.Equal(t, session.StatusFailed, m.Session().Status())
	last, ok := lastTurn(m)
	require.True(t, ok)
	assert.True(t, last.Failed)
	assert.Equal(t, api.FallbackMessage, last.Content)

	out := ansi.Strip(m.View())
	assert.Contains(t, out, api.FallbackMessage)
	assert.NotContains(t, out, "connection refused")
}

func TestSend_EmptyAnswer(t *testing.T) {
	m := newTestModel(t, &fakeChatter{answers: []string{""}})

	m, cmd := send(t, m, "hello")
	m, _ = m.Update(replyOf(t, cmd))

	last, ok := lastTurn(m)
	require.True(t, ok)
	assert.Equal(t, NoAnswer, last.Content)
	assert.Equal(t, "", m.Session().Answer())
	assert.Contains(t, ansi.Strip(m.View()), NoAnswer)
}

func TestAbort_RemovesPendingTurn(t *testing.T) {
	backend := &fakeChatter{answers: []string{"too late"}}
	m := newTestModel(t, backend)

	m, cmd := send(t, m, "hello")
	require.Len(t, m.Session().Transcript(), 1)

	assert.True(t, m.Abort())
	assert.Empty(t, m.Session().Transcript())

	m, _ = m.Update(replyOf(t, cmd))
	assert.Empty(t, m.Session().Transcript())
	assert.NotContains(t, ansi.Strip(m.View()), "too late")
}

func TestClearConversation(t *testing.T) {
	m := newTestModel(t, &fakeChatter{answers: []string{"ok"}})
	m, cmd := send(t, m, "hello")
	m, _ = m.Update(replyOf(t, cmd))
	require.NotEmpty(t, m.Session().Transcript())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, m.Session().Transcript())
	assert.Contains(t, ansi.Strip(m.View()), Placeholder)
}

func TestNewlineKeyDoesNotSend(t *testing.T) {
	backend := &fakeChatter{}
	m := newTestModel(t, backend)
	m.SetInput("line one")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	assert.Empty(t, backend.calls)
	assert.Contains(t, m.Input(), "\n")
}

func lastTurn(m Model) (model.Turn, bool) {
	turns := m.Session().Transcript()
	if len(turns) == 0 {
		return model.Turn{}, false
	}
	return turns[len(turns)-1], true
}
