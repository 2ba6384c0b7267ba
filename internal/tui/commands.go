// Package tui provides the Bubble Tea interface of repochat.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/logging"
	"github.com/joss/repochat/internal/orchestrator"
)

// Backend is the subset of the gateway the TUI drives.
type Backend interface {
	AnalyzeRepository(ctx context.Context, repoURL string) (*domain.RepositorySession, error)
	FetchFileContent(ctx context.Context, filePath string) (string, error)
	AskQuestion(ctx context.Context, question string) (string, error)
	RunAgent(ctx context.Context, kind domain.AgentKind, filePath, content string) (*domain.AgentResult, error)
}

// Messages reporting request outcomes back to Update.
type (
	analyzeDoneMsg struct {
		token orchestrator.Token
		sess  *domain.RepositorySession
		err   error
	}
	fileDoneMsg struct {
		token   orchestrator.Token
		path    string
		content string
		err     error
	}
	chatDoneMsg struct {
		token  orchestrator.Token
		answer string
		err    error
	}
	agentDoneMsg struct {
		token  orchestrator.Token
		result *domain.AgentResult
		err    error
	}
	copyDoneMsg struct {
		path string
		err  error
	}
	downloadDoneMsg struct {
		dest string
		err  error
	}
)

// Messages emitted by the panes for the app shell.
type (
	submitURLMsg    struct{ url string }
	sendMessageMsg  struct{ text string }
	runAgentMsg     struct{ kind domain.AgentKind }
	openPathMsg     struct{ path string }
	FileSelectedMsg struct{ Node domain.FileNode }
)

// commands runs gateway calls as tea.Cmds. Every call is wrapped so a
// panic inside the gateway turns into an error message instead of
// tearing down the terminal.
type commands struct {
	ctx      context.Context
	backend  Backend
	recovery *logging.RecoveryHandler
}

func newCommands(ctx context.Context, backend Backend) commands {
	if ctx == nil {
		ctx = context.Background()
	}
	return commands{ctx: ctx, backend: backend, recovery: logging.NewRecoveryHandler("tui")}
}

func (c commands) analyze(req orchestrator.AnalyzeRequest) tea.Cmd {
	return func() tea.Msg {
		msg := analyzeDoneMsg{token: req.Token}
		msg.err = c.recovery.WrapError(func() error {
			sess, err := c.backend.AnalyzeRepository(c.ctx, req.URL)
			msg.sess = sess
			return err
		})
		return msg
	}
}

func (c commands) fetchFile(req orchestrator.FileRequest) tea.Cmd {
	return func() tea.Msg {
		msg := fileDoneMsg{token: req.Token, path: req.Path}
		msg.err = c.recovery.WrapError(func() error {
			content, err := c.backend.FetchFileContent(c.ctx, req.Path)
			msg.content = content
			return err
		})
		return msg
	}
}

func (c commands) ask(req orchestrator.ChatRequest) tea.Cmd {
	return func() tea.Msg {
		msg := chatDoneMsg{token: req.Token}
		msg.err = c.recovery.WrapError(func() error {
			answer, err := c.backend.AskQuestion(c.ctx, req.Question)
			msg.answer = answer
			return err
		})
		return msg
	}
}

func (c commands) runAgent(req orchestrator.AgentRequest) tea.Cmd {
	return func() tea.Msg {
		msg := agentDoneMsg{token: req.Token}
		msg.err = c.recovery.WrapError(func() error {
			res, err := c.backend.RunAgent(c.ctx, req.Kind, req.Path, req.Content)
			msg.result = res
			return err
		})
		return msg
	}
}

// clipboardWrite is swapped out by tests.
var clipboardWrite = clipboard.WriteAll

func copyContent(path, content string) tea.Cmd {
	return func() tea.Msg {
		return copyDoneMsg{path: path, err: clipboardWrite(content)}
	}
}

// downloadContent writes content to dir/<base name of path>.
func downloadContent(dir, path, content string) tea.Cmd {
	return func() tea.Msg {
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return downloadDoneMsg{err: fmt.Errorf("create download dir: %w", err)}
		}
		dest := filepath.Join(dir, filepath.Base(filepath.FromSlash(path)))
		if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
			return downloadDoneMsg{dest: dest, err: fmt.Errorf("write %s: %w", dest, err)}
		}
		return downloadDoneMsg{dest: dest}
	}
}

// SlashCommand is a chat-input command handled locally instead of being
// sent to the assistant.
type SlashCommand struct {
	Name        string
	Description string
	Handler     func(m *Model, args string) tea.Cmd
}

func builtinCommands() map[string]SlashCommand {
	return map[string]SlashCommand{
		"help": {
			Name:        "help",
			Description: "Show available commands",
			Handler:     cmdHelp,
		},
		"new": {
			Name:        "new",
			Description: "Analyze another repository",
			Handler:     cmdNew,
		},
		"open": {
			Name:        "open",
			Description: "Open a file by path",
			Handler:     cmdOpen,
		},
		"agent": {
			Name:        "agent",
			Description: "Run an agent on the selected file (bugFinder, reviewer, docgen)",
			Handler:     cmdAgent,
		},
	}
}

func isSlashCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// executeSlashCommand runs input as a slash command. Unknown commands
// produce a notice.
func executeSlashCommand(m *Model, input string) tea.Cmd {
	input = strings.TrimPrefix(strings.TrimSpace(input), "/")
	name, args, _ := strings.Cut(input, " ")
	cmd, ok := m.slash[strings.ToLower(name)]
	if !ok {
		m.notice = fmt.Sprintf("Unknown command: /%s (try /help)", name)
		return nil
	}
	return cmd.Handler(m, strings.TrimSpace(args))
}

func cmdHelp(m *Model, _ string) tea.Cmd {
	names := make([]string, 0, len(m.slash))
	for name := range m.slash {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteString("  ")
		}
		fmt.Fprintf(&sb, "/%s %s", name, m.slash[name].Description)
	}
	m.notice = sb.String()
	return nil
}

func cmdNew(m *Model, _ string) tea.Cmd {
	m.orch.NewAnalysis()
	m.notice = ""
	m.sync()
	return m.intake.input.Focus()
}

func cmdOpen(m *Model, args string) tea.Cmd {
	if args == "" {
		m.notice = "Usage: /open <path>"
		return nil
	}
	return func() tea.Msg { return openPathMsg{path: args} }
}

func cmdAgent(m *Model, args string) tea.Cmd {
	kind := domain.AgentKind(args)
	if !kind.Valid() {
		m.notice = fmt.Sprintf("Unknown agent %q", args)
		return nil
	}
	return func() tea.Msg { return runAgentMsg{kind: kind} }
}
