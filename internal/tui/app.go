package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/filetree"
	"github.com/joss/repochat/internal/logging"
	"github.com/joss/repochat/internal/orchestrator"
)

// pane is the part of the screen receiving keys.
type pane int

const (
	paneSidebar pane = iota
	paneMain
)

// Options configures NewModel.
type Options struct {
	Context       context.Context
	Backend       Backend
	AgentsEnabled bool
	DownloadDir   string
	// Session is a cached session to show on startup.
	Session *domain.RepositorySession
	// InitialURL is analyzed as soon as the program starts.
	InitialURL string
	Logger     *logging.Logger
}

// Model is the app shell: the intake form when no repository is loaded,
// otherwise the explorer sidebar next to the tabbed main panel.
type Model struct {
	orch  *orchestrator.Orchestrator
	cmds  commands
	state orchestrator.State
	log   *logging.Logger

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	slash   map[string]SlashCommand

	intake   intakeModel
	explorer explorerModel
	viewer   viewerModel
	chat     chatModel
	agents   agentsModel

	focus      pane
	notice     string
	initialURL string

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel creates the app model.
func NewModel(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logging.New("tui")
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	h := help.New()
	h.ShortSeparator = " │ "

	m := Model{
		orch: orchestrator.New(orchestrator.Options{
			AgentsEnabled: opts.AgentsEnabled,
			Logger:        log,
		}),
		cmds:       newCommands(opts.Context, opts.Backend),
		log:        log,
		keys:       defaultKeys(),
		help:       h,
		spinner:    s,
		slash:      builtinCommands(),
		intake:     newIntake(),
		explorer:   newExplorer(),
		viewer:     newViewer(opts.DownloadDir),
		chat:       newChat(),
		agents:     newAgents(),
		focus:      paneMain,
		initialURL: strings.TrimSpace(opts.InitialURL),
	}
	if m.orch.Restore(opts.Session) {
		log.Info("session_restored", map[string]interface{}{"repo": opts.Session.FullName()})
	}
	m.sync()
	return m
}

// State returns the current view state.
func (m Model) State() orchestrator.State {
	return m.state
}

// Init starts the spinner and, when set, the initial analysis.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, textinput.Blink}
	if m.initialURL != "" {
		url := m.initialURL
		cmds = append(cmds, func() tea.Msg { return submitURLMsg{url: url} })
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case submitURLMsg:
		req, ok := m.orch.SubmitURL(msg.url)
		m.sync()
		if !ok {
			return m, nil
		}
		m.log.Info("analyze_started", map[string]interface{}{"url": req.URL})
		return m, m.cmds.analyze(req)

	case analyzeDoneMsg:
		if !m.orch.CompleteAnalysis(msg.token, msg.sess, msg.err) {
			return m, nil
		}
		m.notice = ""
		m.sync()
		if msg.err != nil {
			m.log.Warn("analyze_failed", nil, msg.err)
			return m, nil
		}
		m.intake.input.Reset()
		m.focus = paneMain
		return m, nil

	case FileSelectedMsg:
		req, ok := m.orch.SelectFile(msg.Node)
		m.sync()
		if !ok {
			return m, nil
		}
		return m, m.cmds.fetchFile(req)

	case openPathMsg:
		if m.state.Session == nil {
			return m, nil
		}
		node, ok := filetree.Find(m.state.Session.FileTree, strings.Trim(msg.path, "/"))
		if !ok || node.IsDir() {
			m.notice = fmt.Sprintf("No file %q in this repository", msg.path)
			return m, nil
		}
		m.explorer.reveal(node.Path)
		return m.Update(FileSelectedMsg{Node: node})

	case fileDoneMsg:
		if msg.err != nil {
			m.log.Warn("file_fetch_failed", map[string]interface{}{"path": msg.path}, msg.err)
		}
		if m.orch.CompleteFile(msg.token, msg.content, msg.err) {
			m.sync()
		}
		return m, nil

	case sendMessageMsg:
		if isSlashCommand(msg.text) {
			cmd := executeSlashCommand(&m, msg.text)
			return m, cmd
		}
		req, ok := m.orch.SendMessage(msg.text)
		m.sync()
		if !ok {
			return m, nil
		}
		return m, m.cmds.ask(req)

	case chatDoneMsg:
		if msg.err != nil {
			m.log.Warn("chat_failed", nil, msg.err)
		}
		if m.orch.CompleteChat(msg.token, msg.answer, msg.err) {
			m.sync()
		}
		return m, nil

	case runAgentMsg:
		if !m.state.AgentsEnabled {
			m.notice = "Agents are disabled (set REPOCHAT_AGENTS=1)"
			return m, nil
		}
		m.orch.SetActiveAgent(msg.kind)
		req, ok := m.orch.RunAgent(msg.kind)
		if ok {
			m.orch.SetActiveTab(orchestrator.TabAgents)
		}
		m.sync()
		if !ok {
			return m, nil
		}
		return m, m.cmds.runAgent(req)

	case agentDoneMsg:
		if msg.err != nil {
			m.log.Warn("agent_failed", nil, msg.err)
		}
		if m.orch.CompleteAgent(msg.token, msg.result, msg.err) {
			m.sync()
		}
		return m, nil

	case copyDoneMsg, downloadDoneMsg:
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.state.HasSession() {
		var cmd tea.Cmd
		m.intake, cmd = m.intake.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.NewAnalysis):
		m.orch.NewAnalysis()
		m.notice = ""
		m.sync()
		cmd := m.intake.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Focus):
		if m.focus == paneSidebar {
			m.focus = paneMain
		} else {
			m.focus = paneSidebar
		}
		cmd := m.applyFocus()
		return m, cmd

	case key.Matches(msg, m.keys.NextTab):
		tabs := m.orch.Tabs()
		next := tabs[0]
		for i, t := range tabs {
			if t == m.state.ActiveTab {
				next = tabs[(i+1)%len(tabs)]
				break
			}
		}
		m.orch.SetActiveTab(next)
		m.sync()
		cmd := m.applyFocus()
		return m, cmd

	case key.Matches(msg, m.keys.Dismiss):
		if m.focus == paneSidebar && m.explorer.Filtering() {
			break
		}
		m.orch.DismissNotice()
		m.notice = ""
		m.sync()
		return m, nil
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the pane that owns the keyboard.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if !m.state.HasSession() {
		m.intake, cmd = m.intake.Update(msg)
		return m, cmd
	}
	if m.focus == paneSidebar {
		m.explorer, cmd = m.explorer.Update(msg)
		return m, cmd
	}
	switch m.state.ActiveTab {
	case orchestrator.TabFile:
		m.viewer, cmd = m.viewer.Update(msg)
	case orchestrator.TabAgents:
		m.agents, cmd = m.agents.Update(msg)
	default:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

func (m *Model) applyFocus() tea.Cmd {
	if m.focus == paneMain && m.state.ActiveTab == orchestrator.TabChat {
		return m.chat.Focus()
	}
	m.chat.Blur()
	return nil
}

// sync pushes the orchestrator state into the panes.
func (m *Model) sync() {
	s := m.orch.Snapshot()
	m.state = s

	m.intake.loading = s.RepoLoading
	m.intake.err = s.LastError

	m.explorer.SetSession(s.Session)
	m.explorer.SetSelected(s.SelectedPath())

	m.viewer.SetFile(s.SelectedPath(), s.FileContent, s.FileLoading)

	summary := ""
	if s.Session != nil {
		summary = s.Session.Summary
	}
	m.chat.SetState(summary, s.Messages, s.ChatLoading, s.ChatNotice)

	var result *domain.AgentResult
	if r, ok := s.LatestAgentResult(); ok {
		result = &r
	}
	_, cached := m.orch.CachedContent(s.SelectedPath())
	m.agents.SetState(s.SelectedPath(), cached, s.FileLoading, s.ActiveAgent, s.AgentLoading, s.AgentNotice, result)
}

// layout sizes the panes for the current window.
func (m *Model) layout() {
	m.intake.SetSize(m.width)

	side := m.sidebarWidth()
	// borders and padding of both boxes
	mainW := m.width - side - 8
	if mainW < 20 {
		mainW = 20
	}
	// status bar, box borders, tab row
	h := m.height - 1 - 2
	if h < 4 {
		h = 4
	}
	m.explorer.SetSize(side, h)
	m.viewer.SetSize(mainW, h-2)
	m.chat.SetSize(mainW, h-2)
	m.agents.SetSize(mainW, h-2)
}

func (m Model) sidebarWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	if w > 40 {
		w = 40
	}
	return w
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if !m.ready {
		return fmt.Sprintf("\n  %s Loading...", m.spinner.View())
	}
	if !m.state.HasSession() {
		return m.viewWelcome()
	}
	return m.viewMain()
}

func (m Model) viewWelcome() string {
	body := m.intake.View(m.spinner.View())
	page := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	return page + "\n" + m.statusBar([]key.Binding{m.keys.Submit, m.keys.Quit})
}

func (m Model) viewMain() string {
	spin := m.spinner.View()
	h := m.height - 1 - 2

	sideStyle, mainStyle := boxStyle, boxStyle
	if m.focus == paneSidebar {
		sideStyle = focusedBoxStyle
	} else {
		mainStyle = focusedBoxStyle
	}

	sidebar := sideStyle.
		Width(m.sidebarWidth()).
		Height(h).
		Render(m.explorer.View(m.focus == paneSidebar))

	var body string
	switch m.state.ActiveTab {
	case orchestrator.TabFile:
		body = m.viewer.View(spin)
	case orchestrator.TabAgents:
		body = m.agents.View(spin)
	default:
		body = m.chat.View(spin)
	}
	main := mainStyle.
		Width(m.width - m.sidebarWidth() - 8).
		Height(h).
		Render(m.tabBar() + "\n\n" + body)

	screen := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	return screen + "\n" + m.statusBar(m.bindings())
}

func (m Model) tabBar() string {
	tabs := m.orch.Tabs()
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t == m.state.ActiveTab {
			parts = append(parts, activeTabStyle.Render(t.Label()))
		} else {
			parts = append(parts, tabStyle.Render(t.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// bindings returns the help shown for the focused pane.
func (m Model) bindings() []key.Binding {
	b := []key.Binding{m.keys.Focus, m.keys.NextTab}
	if m.focus == paneSidebar {
		b = append(b, m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.Filter)
	} else {
		switch m.state.ActiveTab {
		case orchestrator.TabFile:
			b = append(b, m.keys.Copy, m.keys.Download)
		case orchestrator.TabAgents:
			b = append(b, m.keys.BugFinder, m.keys.Reviewer, m.keys.Docgen)
		default:
			b = append(b, m.keys.Submit)
		}
	}
	return append(b, m.keys.NewAnalysis, m.keys.Quit)
}

func (m Model) statusBar(bindings []key.Binding) string {
	text := m.help.ShortHelpView(bindings)
	if m.notice != "" {
		text = errorStyle.Render(m.notice) + " │ " + text
	}
	if m.width > 0 {
		return statusBarStyle.Width(m.width).Render(text)
	}
	return statusBarStyle.Render(text)
}
