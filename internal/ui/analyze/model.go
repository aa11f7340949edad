// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analyze

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/render"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/session"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/components"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/styles"
)

// Button labels.
const (
	ButtonIdle = "Run Analysis"
	ButtonBusy = "Analyzing…"
)

// Focus targets in tab order.
const (
	focusTitle = iota
	focusDescription
	focusRegions
	focusButton
	focusCount
)

// formHeight is the fixed height of the form above the result viewport.
const formHeight = 15

// ResultMsg carries the outcome of an analysis request.
type ResultMsg struct {
	Pending session.PendingAnalysis
	Answer  string
	Err     error
}

// Defaults are the initial form values.
type Defaults struct {
	Title   string
	Regions string
}

// Model is the analyze page.
type Model struct {
	ctx      context.Context
	theme    *styles.Theme
	sess     *session.Session
	backend  session.Analyzer
	renderer *render.Renderer

	title       textinput.Model
	description textarea.Model
	regions     textinput.Model
	focus       int

	spinner  components.Spinner
	viewport viewport.Model
	card     *components.AnswerCard
	metrics  *components.MetricsGrid
	keys     KeyMap

	// form is the snapshot sent with the last request.
	form session.AnalysisForm

	width  int
	height int
}

// New creates the analyze page. Requests are derived from ctx.
func New(ctx context.Context, theme *styles.Theme, sess *session.Session, backend session.Analyzer, renderer *render.Renderer, defaults Defaults) Model {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Working title"
	title.CharLimit = 200
	title.SetValue(defaults.Title)
	title.Focus()

	desc := textarea.New()
	desc.Placeholder = "Short synopsis of the concept..."
	desc.ShowLineNumbers = false
	desc.Prompt = ""
	desc.CharLimit = 4000
	desc.SetHeight(4)
	desc.Blur()

	regions := textinput.New()
	regions.Prompt = ""
	regions.Placeholder = "US, UK, IN"
	regions.CharLimit = 200
	regions.SetValue(defaults.Regions)

	return Model{
		ctx:         ctx,
		theme:       theme,
		sess:        sess,
		backend:     backend,
		renderer:    renderer,
		title:       title,
		description: desc,
		regions:     regions,
		spinner:     components.NewSpinner(ButtonBusy),
		viewport:    viewport.New(80, 10),
		card:        components.NewAnswerCard(theme, "Executive Summary"),
		metrics:     components.NewMetricsGrid(theme),
		keys:        DefaultKeyMap(),
		width:       80,
		height:      24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Keys returns the page key map for the help line.
func (m Model) Keys() KeyMap { return m.keys }

// Session returns the page session.
func (m Model) Session() *session.Session { return m.sess }

// Busy reports whether an analysis is in flight.
func (m Model) Busy() bool { return m.sess.Busy() }

// Form returns the current field values.
func (m Model) Form() session.AnalysisForm {
	return session.AnalysisForm{
		Title:       m.title.Value(),
		Description: m.description.Value(),
		Regions:     m.regions.Value(),
	}
}

// SetFields replaces the field values.
func (m *Model) SetFields(form session.AnalysisForm) {
	m.title.SetValue(form.Title)
	m.description.SetValue(form.Description)
	m.regions.SetValue(form.Regions)
}

// SetSize sets the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	fieldWidth := width - 8
	if fieldWidth < 20 {
		fieldWidth = 20
	}
	m.title.Width = fieldWidth
	m.regions.Width = fieldWidth
	m.description.SetWidth(fieldWidth)

	vpHeight := height - formHeight
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.card.Width = width - 2
	m.metrics.Width = width - 2
	m.refreshResult()
}

// SetRenderer swaps the markdown renderer and re-renders the result.
func (m *Model) SetRenderer(r *render.Renderer) {
	m.renderer = r
	m.refreshResult()
}

// Abort cancels the in-flight analysis, if any.
func (m *Model) Abort() bool {
	aborted := m.sess.Abort()
	if aborted {
		m.spinner.Stop()
		m.refreshResult()
	}
	return aborted
}

// Update implements the page update loop.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ResultMsg:
		return m.handleResult(msg)

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

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	// Enter submits from the single line fields and the button, as in a
	// form. The description keeps enter for newlines.
	if msg.Type == tea.KeyEnter && m.focus != focusDescription {
		return m.submit()
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusDescription:
		m.description, cmd = m.description.Update(msg)
	case focusRegions:
		m.regions, cmd = m.regions.Update(msg)
	}
	return m, cmd
}

func (m Model) setFocus(target int) (Model, tea.Cmd) {
	m.focus = target
	m.title.Blur()
	m.description.Blur()
	m.regions.Blur()

	var cmd tea.Cmd
	switch target {
	case focusTitle:
		cmd = m.title.Focus()
	case focusDescription:
		cmd = m.description.Focus()
	case focusRegions:
		cmd = m.regions.Focus()
	}
	return m, cmd
}

// submit starts an analysis unless one is already pending.
func (m Model) submit() (Model, tea.Cmd) {
	if m.sess.Busy() {
		return m, nil
	}

	form := m.Form()
	pending, err := m.sess.StartAnalysis(m.ctx, form)
	if err != nil {
		log.Printf("ANALYZE_SUBMIT_IGNORED | error=%v", err)
		return m, nil
	}
	m.form = form
	m.refreshResult()

	backend := m.backend
	run := func() tea.Msg {
		answer, err := pending.Run(backend)
		return ResultMsg{Pending: pending, Answer: answer, Err: err}
	}
	return m, tea.Batch(m.spinner.Start(), run)
}

func (m Model) handleResult(msg ResultMsg) (Model, tea.Cmd) {
	if !m.sess.FinishAnalysis(msg.Pending, msg.Answer, msg.Err) {
		// Stale result. A cancelled parent context leaves the session idle.
		if !m.sess.Busy() {
			m.spinner.Stop()
			m.refreshResult()
		}
		return m, nil
	}
	m.spinner.Stop()
	m.refreshResult()
	m.viewport.GotoTop()
	return m, nil
}
