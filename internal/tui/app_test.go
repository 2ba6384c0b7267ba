package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/logging"
	"github.com/joss/repochat/internal/orchestrator"
)

func TestMain(m *testing.M) {
	logging.SetOutput(nil)
	os.Exit(m.Run())
}

// fakeBackend records calls and answers from canned data.
type fakeBackend struct {
	mu sync.Mutex

	session    *domain.RepositorySession
	analyzeErr error
	files      map[string]string
	fileErr    error
	answer     string
	chatErr    error
	agentErr   error

	analyzed []string
	fetched  []string
	asked    []string
	agents   []domain.AgentKind
}

func (f *fakeBackend) AnalyzeRepository(_ context.Context, repoURL string) (*domain.RepositorySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyzed = append(f.analyzed, repoURL)
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return f.session, nil
}

func (f *fakeBackend) FetchFileContent(_ context.Context, filePath string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, filePath)
	if f.fileErr != nil {
		return "", f.fileErr
	}
	return f.files[filePath], nil
}

func (f *fakeBackend) AskQuestion(_ context.Context, question string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, question)
	return f.answer, f.chatErr
}

func (f *fakeBackend) RunAgent(_ context.Context, kind domain.AgentKind, filePath, _ string) (*domain.AgentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.agents = append(f.agents, kind)
	if f.agentErr != nil {
		return nil, f.agentErr
	}
	return &domain.AgentResult{
		Kind:       kind,
		Title:      kind.Title(),
		Content:    "**Issues**\n* unchecked error",
		Status:     domain.StatusSuccess,
		ProducedAt: time.Now(),
		FilePath:   filePath,
	}, nil
}

func widgets() *domain.RepositorySession {
	return &domain.RepositorySession{
		SourceURL: "https://github.com/acme/widgets",
		Name:      "widgets",
		Owner:     "acme",
		Summary:   "A widget factory.",
		FileTree: []domain.FileNode{
			{Name: "README.md", Path: "README.md", Kind: domain.KindFile},
			{Name: "src", Path: "src", Kind: domain.KindDirectory, Children: []domain.FileNode{
				{Name: "main.go", Path: "src/main.go", Kind: domain.KindFile},
				{Name: "util.go", Path: "src/util.go", Kind: domain.KindFile},
			}},
		},
		PrimaryLanguage: "Go",
		StarCount:       12,
	}
}

func newBackend() *fakeBackend {
	return &fakeBackend{
		session: widgets(),
		files: map[string]string{
			"README.md":   "# widgets",
			"src/main.go": "package main\n\nfunc main() {}\n",
			"src/util.go": "package main\n",
		},
		answer: "It makes widgets.",
	}
}

func newTestModel(t *testing.T, b *fakeBackend, agents bool) Model {
	t.Helper()
	m := NewModel(Options{
		Context:       context.Background(),
		Backend:       b,
		AgentsEnabled: agents,
		DownloadDir:   t.TempDir(),
	})
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

// send feeds msg to Update and returns the new model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// drive feeds msg to Update and keeps feeding the messages produced by
// the returned commands until none are left.
func drive(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	for i := 0; msg != nil; i++ {
		require.Less(t, i, 10, "command chain did not settle")
		next, cmd := m.Update(msg)
		m = next.(Model)
		msg = nil
		if cmd != nil {
			msg = cmd()
		}
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return send(t, m, keyRunes(s))
}

var (
	enterKey    = tea.KeyMsg{Type: tea.KeyEnter}
	tabKey      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTabKey = tea.KeyMsg{Type: tea.KeyShiftTab}
	escKey      = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlNKey    = tea.KeyMsg{Type: tea.KeyCtrlN}
	downKey     = tea.KeyMsg{Type: tea.KeyDown}
)

// analyzed returns a model showing the widgets repository.
func analyzed(t *testing.T, b *fakeBackend, agents bool) Model {
	t.Helper()
	m := newTestModel(t, b, agents)
	m = typeText(t, m, "https://github.com/acme/widgets")
	m = drive(t, m, enterKey)
	require.True(t, m.State().HasSession())
	return m
}

// focusSidebar moves keyboard focus to the explorer.
func focusSidebar(t *testing.T, m Model) Model {
	t.Helper()
	m = send(t, m, tabKey)
	require.Equal(t, paneSidebar, m.focus)
	return m
}

func TestWelcomeScreen(t *testing.T) {
	m := newTestModel(t, newBackend(), false)

	view := m.View()
	assert.Contains(t, view, "Welcome to AI GitHub Assistant")
	assert.Contains(t, view, "Analyze Repository")
	assert.Contains(t, view, "Intelligent Chat")
	assert.Contains(t, view, "Code Exploration")
	assert.Contains(t, view, "Smart Analysis")
}

func TestSubmitURL(t *testing.T) {
	b := newBackend()
	m := analyzed(t, b, false)

	assert.Equal(t, []string{"https://github.com/acme/widgets"}, b.analyzed)
	assert.Equal(t, "widgets", m.State().Session.Name)
	assert.Equal(t, orchestrator.TabChat, m.State().ActiveTab)
	assert.Empty(t, m.intake.input.Value())

	view := m.View()
	assert.Contains(t, view, "widgets")
	assert.Contains(t, view, "src/")
	assert.Contains(t, view, "README.md")
}

func TestSubmitURLTrimsAndIgnoresBlank(t *testing.T) {
	b := newBackend()
	m := newTestModel(t, b, false)

	_, cmd := m.Update(enterKey)
	assert.Nil(t, cmd)

	m = typeText(t, m, "   ")
	_, cmd = m.Update(enterKey)
	assert.Nil(t, cmd)

	m = typeText(t, m, "https://github.com/acme/widgets  ")
	m = drive(t, m, enterKey)
	assert.Equal(t, []string{"https://github.com/acme/widgets"}, b.analyzed)
}

func TestSubmitURLWhileLoading(t *testing.T) {
	b := newBackend()
	m := newTestModel(t, b, false)
	m = typeText(t, m, "https://github.com/acme/widgets")

	_, cmd := m.Update(enterKey)
	require.NotNil(t, cmd)
	next, analyze := m.Update(cmd())
	m = next.(Model)
	require.NotNil(t, analyze)
	assert.True(t, m.State().RepoLoading)
	assert.Contains(t, m.View(), "Analyzing...")

	_, again := m.Update(enterKey)
	assert.Nil(t, again)
}

func TestAnalysisErrorShownInline(t *testing.T) {
	b := newBackend()
	b.analyzeErr = &domain.AnalysisError{URL: "https://github.com/acme/nope", Status: 404, Message: "repository not found"}
	m := newTestModel(t, b, false)

	m = typeText(t, m, "https://github.com/acme/nope")
	m = drive(t, m, enterKey)

	assert.False(t, m.State().HasSession())
	assert.False(t, m.State().RepoLoading)
	assert.NotEmpty(t, m.State().LastError)
	assert.Contains(t, m.View(), "repository not found")
}

func TestRestoredSessionDroppedWhenInitialURLFails(t *testing.T) {
	b := newBackend()
	b.analyzeErr = errors.New("repo not found")
	m := NewModel(Options{Backend: b, Session: widgets(), InitialURL: "https://github.com/acme/gone"})
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	require.True(t, m.State().HasSession())

	m = drive(t, m, submitURLMsg{url: m.initialURL})

	st := m.State()
	assert.False(t, st.HasSession())
	assert.Equal(t, "repo not found", st.LastError)
	view := m.View()
	assert.Contains(t, view, "Welcome to AI GitHub Assistant")
	assert.Contains(t, view, "repo not found")
}

func TestExplorerToggleDirectoryDoesNotFetch(t *testing.T) {
	b := newBackend()
	m := focusSidebar(t, analyzed(t, b, false))

	require.Equal(t, "src", m.explorer.rows[0].node.Path)
	m = drive(t, m, enterKey)

	assert.Empty(t, b.fetched)
	assert.True(t, m.explorer.expanded["src"])
	require.Len(t, m.explorer.rows, 4)
	assert.Equal(t, "src/main.go", m.explorer.rows[1].node.Path)
	assert.Nil(t, m.State().SelectedFile)

	m = drive(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.explorer.expanded["src"])
	assert.Len(t, m.explorer.rows, 2)
}

func TestExplorerSelectFileFetches(t *testing.T) {
	b := newBackend()
	m := focusSidebar(t, analyzed(t, b, false))

	m = drive(t, m, enterKey)
	m = send(t, m, downKey)
	m = drive(t, m, enterKey)

	assert.Equal(t, []string{"src/main.go"}, b.fetched)
	st := m.State()
	assert.Equal(t, "src/main.go", st.SelectedPath())
	assert.Equal(t, "package main\n\nfunc main() {}\n", st.FileContent)
	assert.Equal(t, orchestrator.TabFile, st.ActiveTab)
	assert.False(t, st.FileLoading)
	assert.Equal(t, "src/main.go", m.explorer.selected)

	// re-selecting the same file fetches again
	m = drive(t, m, enterKey)
	assert.Equal(t, []string{"src/main.go", "src/main.go"}, b.fetched)
}

func TestFailedFetchShowsPlaceholder(t *testing.T) {
	b := newBackend()
	b.fileErr = &domain.FetchError{Path: "README.md", Status: 500, Message: "boom"}
	m := analyzed(t, b, false)

	m = drive(t, m, FileSelectedMsg{Node: domain.FileNode{Name: "README.md", Path: "README.md", Kind: domain.KindFile}})

	assert.Equal(t, orchestrator.FileErrorPlaceholder, m.State().FileContent)
	assert.Contains(t, m.viewer.viewport.View(), orchestrator.FileErrorPlaceholder)
}

func TestRapidSelectionLastIssuedWins(t *testing.T) {
	b := newBackend()
	m := analyzed(t, b, false)

	next, first := m.Update(FileSelectedMsg{Node: domain.FileNode{Name: "main.go", Path: "src/main.go", Kind: domain.KindFile}})
	m = next.(Model)
	next, second := m.Update(FileSelectedMsg{Node: domain.FileNode{Name: "util.go", Path: "src/util.go", Kind: domain.KindFile}})
	m = next.(Model)

	secondMsg := second()
	firstMsg := first()
	m = send(t, m, secondMsg)
	m = send(t, m, firstMsg)

	st := m.State()
	assert.Equal(t, "src/util.go", st.SelectedPath())
	assert.Equal(t, "package main\n", st.FileContent)
}

func TestChatRoundTrip(t *testing.T) {
	b := newBackend()
	m := analyzed(t, b, false)

	m = typeText(t, m, "What does it do?")
	next, cmd := m.Update(enterKey)
	m = next.(Model)
	require.NotNil(t, cmd)

	next, ask := m.Update(cmd())
	m = next.(Model)
	require.NotNil(t, ask)
	assert.True(t, m.State().ChatLoading)
	assert.Contains(t, m.View(), "Thinking...")
	assert.Empty(t, m.chat.input.Value())

	m = send(t, m, ask())
	st := m.State()
	require.Len(t, st.Messages, 2)
	assert.Equal(t, domain.SenderUser, st.Messages[0].Sender)
	assert.Equal(t, "What does it do?", st.Messages[0].Text)
	assert.Equal(t, domain.SenderAssistant, st.Messages[1].Sender)
	assert.Equal(t, "It makes widgets.", st.Messages[1].Text)
	assert.False(t, st.ChatLoading)
	assert.Equal(t, []string{"What does it do?"}, b.asked)
}

// longAnswer overflows the chat viewport of a 120x40 window.
func longAnswer() string {
	return strings.TrimSpace(strings.Repeat("- widget part\n", 60))
}

func TestChatFollowsNewMessages(t *testing.T) {
	b := newBackend()
	b.answer = longAnswer()
	m := analyzed(t, b, false)

	m = typeText(t, m, "List the parts")
	m = drive(t, m, enterKey)
	require.Len(t, m.State().Messages, 2)
	require.Greater(t, m.chat.viewport.TotalLineCount(), m.chat.viewport.Height)
	assert.True(t, m.chat.viewport.AtBottom())

	m.chat.viewport.GotoTop()
	require.False(t, m.chat.viewport.AtBottom())

	m = typeText(t, m, "And the rest?")
	m = drive(t, m, enterKey)
	require.Len(t, m.State().Messages, 4)
	assert.True(t, m.chat.viewport.AtBottom())
}

func TestChatKeepsScrollOnUnrelatedUpdates(t *testing.T) {
	b := newBackend()
	b.answer = longAnswer()
	m := analyzed(t, b, false)

	m = typeText(t, m, "List the parts")
	m = drive(t, m, enterKey)
	require.Greater(t, m.chat.viewport.TotalLineCount(), m.chat.viewport.Height)

	m.chat.viewport.GotoTop()
	m = drive(t, m, FileSelectedMsg{Node: domain.FileNode{Name: "README.md", Path: "README.md", Kind: domain.KindFile}})
	require.Equal(t, "# widgets", m.State().FileContent)

	assert.True(t, m.chat.viewport.AtTop())
	assert.False(t, m.chat.viewport.AtBottom())
}

func TestChatWhitespaceIsNoop(t *testing.T) {
	b := newBackend()
	m := analyzed(t, b, false)

	m = typeText(t, m, "   ")
	_, cmd := m.Update(enterKey)
	assert.Nil(t, cmd)
	assert.Empty(t, m.State().Messages)
	assert.Empty(t, b.asked)
}

func TestChatFailureSetsNotice(t *testing.T) {
	b := newBackend()
	b.chatErr = &domain.ChatError{Status: 502, Message: "backend down"}
	m := analyzed(t, b, false)

	m = typeText(t, m, "hello")
	m = drive(t, m, enterKey)

	st := m.State()
	require.Len(t, st.Messages, 1)
	assert.Contains(t, st.ChatNotice, "backend down")
	assert.Contains(t, m.View(), "backend down")

	m = send(t, m, escKey)
	assert.Empty(t, m.State().ChatNotice)
}

func TestNewAnalysisClearsState(t *testing.T) {
	b := newBackend()
	m := analyzed(t, b, false)
	m = drive(t, m, FileSelectedMsg{Node: domain.FileNode{Name: "README.md", Path: "README.md", Kind: domain.KindFile}})
	m = send(t, m, shiftTabKey)
	require.Equal(t, orchestrator.TabChat, m.State().ActiveTab)
	m = typeText(t, m, "hi")
	m = drive(t, m, enterKey)
	require.NotEmpty(t, m.State().Messages)

	m = send(t, m, ctrlNKey)
	st := m.State()
	assert.False(t, st.HasSession())
	assert.Nil(t, st.SelectedFile)
	assert.Empty(t, st.FileContent)
	assert.Empty(t, st.Messages)
	assert.Contains(t, m.View(), "Welcome to AI GitHub Assistant")
}

func TestNextTabCycles(t *testing.T) {
	m := analyzed(t, newBackend(), false)
	require.Equal(t, orchestrator.TabChat, m.State().ActiveTab)

	m = send(t, m, shiftTabKey)
	assert.Equal(t, orchestrator.TabFile, m.State().ActiveTab)
	assert.Contains(t, m.View(), "Select a file from the explorer")

	m = send(t, m, shiftTabKey)
	assert.Equal(t, orchestrator.TabChat, m.State().ActiveTab)
}

func TestExplorerFuzzyFilter(t *testing.T) {
	b := newBackend()
	m := focusSidebar(t, analyzed(t, b, false))

	m = send(t, m, keyRunes("/"))
	require.True(t, m.explorer.Filtering())
	m = send(t, m, keyRunes("util"))
	require.NotEmpty(t, m.explorer.rows)
	assert.Equal(t, "src/util.go", m.explorer.rows[0].node.Path)

	m = drive(t, m, enterKey)
	assert.False(t, m.explorer.Filtering())
	assert.Equal(t, []string{"src/util.go"}, b.fetched)
	assert.True(t, m.explorer.expanded["src"])
}

func TestExplorerFilterEscape(t *testing.T) {
	m := focusSidebar(t, analyzed(t, newBackend(), false))

	m = send(t, m, keyRunes("/"))
	m = send(t, m, keyRunes("zzz"))
	assert.Empty(t, m.explorer.rows)

	m = send(t, m, escKey)
	assert.False(t, m.explorer.Filtering())
	assert.Len(t, m.explorer.rows, 2)
}

func TestExpansionResetOnNewSession(t *testing.T) {
	b := newBackend()
	m := focusSidebar(t, analyzed(t, b, false))
	m = drive(t, m, enterKey)
	require.True(t, m.explorer.expanded["src"])

	m = send(t, m, ctrlNKey)
	m = typeText(t, m, "https://github.com/acme/widgets")
	b.session = widgets()
	m = drive(t, m, enterKey)

	assert.Empty(t, m.explorer.expanded)
}

func TestSlashCommands(t *testing.T) {
	b := newBackend()
	m := analyzed(t, b, false)

	m = typeText(t, m, "/help")
	m = drive(t, m, enterKey)
	assert.Contains(t, m.notice, "/open")
	assert.Empty(t, b.asked)

	m = typeText(t, m, "/bogus")
	m = drive(t, m, enterKey)
	assert.Contains(t, m.notice, "Unknown command")

	m = typeText(t, m, "/open src/main.go")
	m = drive(t, m, enterKey)
	assert.Equal(t, []string{"src/main.go"}, b.fetched)
	assert.Equal(t, "src/main.go", m.State().SelectedPath())
	assert.True(t, m.explorer.expanded["src"])
}

func TestSlashOpenUnknownPath(t *testing.T) {
	m := analyzed(t, newBackend(), false)
	m = typeText(t, m, "/open nope.go")
	m = drive(t, m, enterKey)
	assert.Contains(t, m.notice, "nope.go")
	assert.Nil(t, m.State().SelectedFile)
}

func TestAgentsDisabled(t *testing.T) {
	b := newBackend()
	m := analyzed(t, b, false)

	assert.NotContains(t, m.tabBar(), "Agents")
	m = drive(t, m, runAgentMsg{kind: domain.AgentReviewer})
	assert.Empty(t, b.agents)
	assert.Contains(t, m.notice, "disabled")
}

func TestAgentRun(t *testing.T) {
	b := newBackend()
	m := analyzed(t, b, true)
	assert.Contains(t, m.tabBar(), "Agents")

	// nothing selected yet
	m = drive(t, m, runAgentMsg{kind: domain.AgentBugFinder})
	assert.Empty(t, b.agents)

	m = drive(t, m, FileSelectedMsg{Node: domain.FileNode{Name: "main.go", Path: "src/main.go", Kind: domain.KindFile}})
	m = send(t, m, shiftTabKey)
	require.Equal(t, orchestrator.TabAgents, m.State().ActiveTab)

	m = drive(t, m, keyRunes("2"))
	assert.Equal(t, []domain.AgentKind{domain.AgentReviewer}, b.agents)

	st := m.State()
	assert.Equal(t, domain.AgentReviewer, st.ActiveAgent)
	res, ok := st.LatestAgentResult()
	require.True(t, ok)
	assert.Equal(t, "src/main.go", res.FilePath)
	assert.Contains(t, m.View(), "Code Review Results")
}

func TestAgentFailureNotice(t *testing.T) {
	b := newBackend()
	b.agentErr = &domain.AgentError{Kind: domain.AgentDocgen, Status: 500, Message: "agent crashed"}
	m := analyzed(t, b, true)
	m = drive(t, m, FileSelectedMsg{Node: domain.FileNode{Name: "main.go", Path: "src/main.go", Kind: domain.KindFile}})

	m = drive(t, m, runAgentMsg{kind: domain.AgentDocgen})
	assert.Contains(t, m.State().AgentNotice, "agent crashed")
	assert.False(t, m.State().AgentLoading)
}

func TestAgentPanelNamesFailedFetch(t *testing.T) {
	b := newBackend()
	b.fileErr = &domain.FetchError{Path: "README.md", Status: 500, Message: "boom"}
	m := analyzed(t, b, true)

	m = drive(t, m, FileSelectedMsg{Node: domain.FileNode{Name: "README.md", Path: "README.md", Kind: domain.KindFile}})
	require.False(t, m.State().FileLoading)

	view := m.agents.View("")
	assert.Contains(t, view, "Could not load README.md")
	assert.NotContains(t, view, "Waiting for the file to load")
}

func TestViewerDownload(t *testing.T) {
	b := newBackend()
	m := analyzed(t, b, false)
	m = drive(t, m, FileSelectedMsg{Node: domain.FileNode{Name: "main.go", Path: "src/main.go", Kind: domain.KindFile}})
	require.Equal(t, orchestrator.TabFile, m.State().ActiveTab)

	m = drive(t, m, keyRunes("d"))

	dest := filepath.Join(m.viewer.downloadDir, "main.go")
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "package main\n\nfunc main() {}\n", string(data))
	assert.Contains(t, m.viewer.status, "saved")
}

func TestViewerCopy(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { clipboardWrite = orig })

	m := analyzed(t, newBackend(), false)
	m = drive(t, m, FileSelectedMsg{Node: domain.FileNode{Name: "README.md", Path: "README.md", Kind: domain.KindFile}})
	m = drive(t, m, keyRunes("c"))

	assert.Equal(t, "# widgets", copied)
	assert.Contains(t, m.viewer.status, "copied")
}

func TestViewerCopyFailure(t *testing.T) {
	orig := clipboardWrite
	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { clipboardWrite = orig })

	m := analyzed(t, newBackend(), false)
	m = drive(t, m, FileSelectedMsg{Node: domain.FileNode{Name: "README.md", Path: "README.md", Kind: domain.KindFile}})
	m = drive(t, m, keyRunes("c"))

	assert.Contains(t, m.viewer.status, "no clipboard")
}

func TestRestoredSession(t *testing.T) {
	m := NewModel(Options{Backend: newBackend(), Session: widgets()})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.True(t, m.State().HasSession())
	assert.Contains(t, m.View(), "README.md")
}

func TestInitialURL(t *testing.T) {
	b := newBackend()
	m := NewModel(Options{Backend: b, InitialURL: " https://github.com/acme/widgets "})
	assert.Equal(t, "https://github.com/acme/widgets", m.initialURL)
	assert.NotNil(t, m.Init())

	m = drive(t, m, submitURLMsg{url: m.initialURL})
	assert.True(t, m.State().HasSession())
}

func TestBackendPanicBecomesError(t *testing.T) {
	m := analyzed(t, &fakeBackend{session: widgets()}, false)
	m.cmds.backend = panicBackend{&fakeBackend{}}

	m = drive(t, m, FileSelectedMsg{Node: domain.FileNode{Name: "README.md", Path: "README.md", Kind: domain.KindFile}})
	assert.Equal(t, orchestrator.FileErrorPlaceholder, m.State().FileContent)
}

type panicBackend struct{ *fakeBackend }

func (panicBackend) FetchFileContent(context.Context, string) (string, error) {
	panic("boom")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, newBackend(), false)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, strings.HasPrefix(next.View(), "Goodbye"))
}
