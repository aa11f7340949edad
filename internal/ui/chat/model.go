// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/api"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/render"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/session"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/components"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/styles"
)

// Button labels.
const (
	ButtonIdle = "Send"
	ButtonBusy = "Thinking…"
)

// Layout heights around the transcript viewport.
const (
	introHeight = 5
	inputHeight = 3
	inputChrome = 5 // label, borders, button line, spacing
)

// ReplyMsg carries the outcome of a chat request.
type ReplyMsg struct {
	Pending session.PendingChat
	Answer  string
	Err     error
}

// Model is the chat page.
type Model struct {
	ctx      context.Context
	theme    *styles.Theme
	sess     *session.Session
	backend  session.Chatter
	renderer *render.Renderer

	input    textarea.Model
	viewport viewport.Model
	spinner  components.Spinner
	card     *components.AnswerCard
	keys     KeyMap

	width  int
	height int
}

// New creates the chat page. Requests are derived from ctx.
func New(ctx context.Context, theme *styles.Theme, sess *session.Session, backend session.Chatter, renderer *render.Renderer) Model {
	keys := DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = "Describe your show/movie concept or ask a question..."
	ta.ShowLineNumbers = false
	ta.Prompt = "> "
	ta.CharLimit = 4096
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline.SetKeys(keys.Newline.Keys()...)
	ta.Focus()

	m := Model{
		ctx:      ctx,
		theme:    theme,
		sess:     sess,
		backend:  backend,
		renderer: renderer,
		input:    ta,
		viewport: viewport.New(80, 10),
		spinner:  components.NewSpinner(ButtonBusy),
		card:     components.NewAnswerCard(theme, "AI Strategy View:"),
		keys:     keys,
		width:    80,
		height:   24,
	}
	m.refreshTranscript()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Keys returns the page key map for the help line.
func (m Model) Keys() KeyMap { return m.keys }

// Session returns the page session.
func (m Model) Session() *session.Session { return m.sess }

// Busy reports whether a reply is pending.
func (m Model) Busy() bool { return m.sess.Busy() }

// Input returns the current input text.
func (m Model) Input() string { return m.input.Value() }

// SetInput replaces the input text.
func (m *Model) SetInput(s string) { m.input.SetValue(s) }

// SetSize sets the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	m.input.SetWidth(width - 4)

	vpHeight := height - introHeight - inputHeight - inputChrome
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.card.Width = width - 2
	m.refreshTranscript()
}

// SetRenderer swaps the markdown renderer and re-renders the transcript.
func (m *Model) SetRenderer(r *render.Renderer) {
	m.renderer = r
	m.refreshTranscript()
}

// Abort cancels the pending reply, if any. The unanswered message is
// removed from the transcript.
func (m *Model) Abort() bool {
	aborted := m.sess.Abort()
	if aborted {
		m.spinner.Stop()
		m.refreshTranscript()
	}
	return aborted
}

// Update implements the page update loop.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ReplyMsg:
		return m.handleReply(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Send):
		return m.send()

	case key.Matches(msg, m.keys.Clear):
		if !m.sess.Busy() {
			m.sess.Reset()
			m.refreshTranscript()
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send submits the input unless it is blank or a reply is pending. Both
// cases leave the input untouched.
func (m Model) send() (Model, tea.Cmd) {
	pending, err := m.sess.StartChat(m.ctx, m.input.Value())
	if err != nil {
		if !errors.Is(err, api.ErrEmptyMessage) && !errors.Is(err, session.ErrBusy) {
			log.Printf("CHAT_SEND_FAILED | error=%v", err)
		}
		return m, nil
	}

	m.input.Reset()
	m.refreshTranscript()

	backend := m.backend
	run := func() tea.Msg {
		answer, err := pending.Run(backend)
		return ReplyMsg{Pending: pending, Answer: answer, Err: err}
	}
	return m, tea.Batch(m.spinner.Start(), run)
}

func (m Model) handleReply(msg ReplyMsg) (Model, tea.Cmd) {
	if _, ok := m.sess.FinishChat(msg.Pending, msg.Answer, msg.Err); !ok {
		if !m.sess.Busy() {
			m.spinner.Stop()
			m.refreshTranscript()
		}
		return m, nil
	}
	m.spinner.Stop()
	m.refreshTranscript()
	return m, nil
}
