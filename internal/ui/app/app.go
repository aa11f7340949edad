// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SweetySeelam2/StreamIntel360-AI/internal/api"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/config"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/render"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/session"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/analyze"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/chat"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/components"
	"github.com/SweetySeelam2/StreamIntel360-AI/internal/ui/styles"
)

// =============================================================================
// PAGES
// =============================================================================

// Page identifies a screen of the TUI.
type Page int

const (
	PageHome Page = iota
	PageAnalyze
	PageChat
)

// String returns the page name shown in the header.
func (p Page) String() string {
	switch p {
	case PageAnalyze:
		return "Analyze"
	case PageChat:
		return "Copilot"
	default:
		return ""
	}
}

// ParsePage maps a command line page name to a Page.
func ParsePage(name string) (Page, bool) {
	switch name {
	case "", "home":
		return PageHome, true
	case "analyze":
		return PageAnalyze, true
	case "chat", "copilot":
		return PageChat, true
	}
	return PageHome, false
}

// ConfigReloadedMsg delivers a configuration that changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// Backend is what the pages need from the API client.
type Backend interface {
	session.Analyzer
	session.Chatter
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// Model is the root model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg      *config.Config
	client   *api.Client
	theme    *styles.Theme
	renderer *render.Renderer

	header    *components.Header
	statusBar *components.StatusBar
	welcome   *components.Welcome

	analyze analyze.Model
	chat    chat.Model
	page    Page

	keys    components.GlobalKeys
	reloads chan *config.Config

	width  int
	height int
}

// New creates the root model. The client is used for both pages and is
// reconfigured in place when the configuration reloads.
func New(ctx context.Context, client *api.Client, cfg *config.Config, start Page) *Model {
	return newModel(ctx, client, client, cfg, start)
}

func newModel(parent context.Context, client *api.Client, backend Backend, cfg *config.Config, start Page) *Model {
	if cfg == nil {
		cfg = config.Default()
	}
	ctx, cancel := context.WithCancel(parent)
	theme := styles.NewTheme()
	renderer := render.New(cfg.UI.Theme, cfg.UI.WordWrap)

	analyzeSession := session.New()
	chatSession := session.New()
	chatSession.SetMaxTurns(cfg.UI.MaxTurns)

	m := &Model{
		ctx:       ctx,
		cancel:    cancel,
		cfg:       cfg,
		client:    client,
		theme:     theme,
		renderer:  renderer,
		header:    components.NewHeader(theme),
		statusBar: components.NewStatusBar(theme),
		welcome:   components.NewWelcome(theme),
		analyze: analyze.New(ctx, theme, analyzeSession, backend, renderer, analyze.Defaults{
			Title:   cfg.UI.DefaultTitle,
			Regions: cfg.UI.DefaultRegions,
		}),
		chat:   chat.New(ctx, theme, chatSession, backend, renderer),
		keys:   defaultGlobalKeys(),
		width:  80,
		height: 24,
	}
	m.header.SetBackend(cfg.Backend.URL)
	m.setPage(start)
	return m
}

func defaultGlobalKeys() components.GlobalKeys {
	return components.GlobalKeys{
		Home: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "home"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("2", "a"),
			key.WithHelp("2/a", "analyze"),
		),
		Chat: key.NewBinding(
			key.WithKeys("1", "c"),
			key.WithHelp("1/c", "copilot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Page returns the active page.
func (m *Model) Page() Page { return m.page }

// Config returns the configuration in effect.
func (m *Model) Config() *config.Config { return m.cfg }

// AnalyzeSession returns the analyze page session.
func (m *Model) AnalyzeSession() *session.Session { return m.analyze.Session() }

// ChatSession returns the chat page session.
func (m *Model) ChatSession() *session.Session { return m.chat.Session() }

// WatchConfig reloads path on change and feeds the result into the update
// loop. It must be called before the program starts.
func (m *Model) WatchConfig(path string) error {
	m.reloads = make(chan *config.Config, 1)
	return config.Watch(m.ctx, path, func(cfg *config.Config) {
		select {
		case m.reloads <- cfg:
		default:
			// A reload is already queued; keep the newest.
			select {
			case <-m.reloads:
			default:
			}
			m.reloads <- cfg
		}
	})
}

func (m *Model) waitForReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	ch := m.reloads
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case cfg := <-ch:
			return ConfigReloadedMsg{Config: cfg}
		case <-ctx.Done():
			return nil
		}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.analyze.Init(), m.chat.Init(), m.waitForReload())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case ConfigReloadedMsg:
		if msg.Config != nil {
			m.ApplyConfig(msg.Config)
		}
		return m, m.waitForReload()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	// Results and spinner ticks go to their page even when it is hidden.
	case analyze.ResultMsg:
		var cmd tea.Cmd
		m.analyze, cmd = m.analyze.Update(msg)
		return m, cmd

	case chat.ReplyMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var c1, c2 tea.Cmd
		m.analyze, c1 = m.analyze.Update(msg)
		m.chat, c2 = m.chat.Update(msg)
		return m, tea.Batch(c1, c2)
	}

	return m.updatePage(msg)
}

func (m *Model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page {
	case PageAnalyze:
		m.analyze, cmd = m.analyze.Update(msg)
	case PageChat:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.analyze.Abort()
		m.chat.Abort()
		m.cancel()
		return m, tea.Quit
	}

	if m.page == PageHome {
		switch {
		case key.Matches(msg, m.keys.Chat):
			m.setPage(PageChat)
		case key.Matches(msg, m.keys.Analyze):
			m.setPage(PageAnalyze)
		case key.Matches(msg, m.keys.Quit):
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Home) {
		m.leavePage()
		m.setPage(PageHome)
		return m, nil
	}

	return m.updatePage(msg)
}

// leavePage aborts the request of the page being left.
func (m *Model) leavePage() {
	var aborted bool
	switch m.page {
	case PageAnalyze:
		aborted = m.analyze.Abort()
	case PageChat:
		aborted = m.chat.Abort()
	}
	if aborted {
		log.Printf("TUI_NAVIGATE_ABORT | page=%s", m.page)
	}
}

func (m *Model) setPage(p Page) {
	m.page = p
	m.header.SetPage(p.String())
	switch p {
	case PageAnalyze:
		m.statusBar.SetKeys(m.analyze.Keys())
	case PageChat:
		m.statusBar.SetKeys(m.chat.Keys())
	default:
		m.statusBar.SetKeys(m.keys)
	}
}

// ApplyConfig applies a reloaded configuration to the running UI.
func (m *Model) ApplyConfig(cfg *config.Config) {
	m.cfg = cfg
	if m.client != nil {
		m.client.SetBaseURL(cfg.Backend.URL)
		m.client.SetTimeout(cfg.Backend.Timeout())
	}
	m.header.SetBackend(cfg.Backend.URL)
	m.renderer.SetStyle(cfg.UI.Theme)
	m.renderer.SetWidth(m.wrapWidth())
	m.chat.Session().SetMaxTurns(cfg.UI.MaxTurns)

	// Re-render with the new renderer settings.
	m.analyze.SetRenderer(m.renderer)
	m.chat.SetRenderer(m.renderer)
	log.Printf("TUI_CONFIG_APPLIED | backend=%s theme=%s", cfg.Backend.URL, cfg.UI.Theme)
}

// wrapWidth is the configured word wrap, bounded by the terminal.
func (m *Model) wrapWidth() int {
	w := m.cfg.UI.WordWrap
	if limit := m.width - 8; limit > 0 && limit < w {
		w = limit
	}
	return w
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.welcome.SetWidth(width)
	m.renderer.SetWidth(m.wrapWidth())

	pageHeight := height - lipgloss.Height(m.header.View()) - 1
	if pageHeight < 5 {
		pageHeight = 5
	}
	m.analyze.SetSize(width-2, pageHeight)
	m.chat.SetSize(width-2, pageHeight)
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.page {
	case PageAnalyze:
		content = m.analyze.View()
		m.statusBar.Update(m.analyze.Session())
	case PageChat:
		content = m.chat.View()
		m.statusBar.Update(m.chat.Session())
	default:
		content = m.welcome.View()
		m.statusBar.Update(nil)
	}

	bodyHeight := m.height - lipgloss.Height(m.header.View()) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.statusBar.View())
}
