// Package orchestrator keeps the view state of a repochat session
// consistent: current repository, selected file and its content, chat
// history, agent results and the loading flags that gate each request.
//
// It does no I/O. Each Submit/Select/Send/Run call hands back a request
// carrying a token; the caller performs the request and reports the result
// with the matching Complete call. Only the most recently issued token of
// each kind is applied, so a slow response can never overwrite a newer one.
package orchestrator

import (
	"strings"
	"sync"
	"time"

	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/logging"
)

// Tab is one of the main panel views.
type Tab string

const (
	TabChat   Tab = "chat"
	TabFile   Tab = "file"
	TabAgents Tab = "agents"
)

// FileErrorPlaceholder replaces the content of a file that failed to load.
const FileErrorPlaceholder = "Error loading file content"

// Token identifies one issued request. Zero is never issued, and a token
// is spent once its result has been applied.
type Token uint64

// AnalyzeRequest asks the caller to analyze URL.
type AnalyzeRequest struct {
	Token Token
	URL   string
}

// FileRequest asks the caller to fetch the content of Path.
type FileRequest struct {
	Token Token
	Path  string
}

// ChatRequest asks the caller to send Question to the assistant.
type ChatRequest struct {
	Token    Token
	Question string
}

// AgentRequest asks the caller to run Kind over a file.
type AgentRequest struct {
	Token   Token
	Kind    domain.AgentKind
	Path    string
	Content string
}

// Options configures New.
type Options struct {
	AgentsEnabled bool
	Logger        *logging.Logger
}

// State is a point-in-time copy of the view state.
type State struct {
	Session      *domain.RepositorySession
	SelectedFile *domain.FileNode
	FileContent  string
	ActiveTab    Tab
	ActiveAgent  domain.AgentKind

	RepoLoading  bool
	FileLoading  bool
	ChatLoading  bool
	AgentLoading bool

	Messages     []domain.ChatMessage
	AgentResults domain.AgentResults

	// LastError is the most recent analysis failure, shown by the intake form.
	LastError string
	// ChatNotice is a transient chat-panel notice. It is not part of the transcript.
	ChatNotice string
	// AgentNotice is the agent-panel counterpart of ChatNotice.
	AgentNotice string

	AgentsEnabled bool
}

// HasSession reports whether a repository is loaded.
func (s State) HasSession() bool {
	return s.Session != nil
}

// SelectedPath returns the selected file path or "".
func (s State) SelectedPath() string {
	if s.SelectedFile == nil {
		return ""
	}
	return s.SelectedFile.Path
}

// LatestAgentResult returns the newest result for the selected file and
// active agent.
func (s State) LatestAgentResult() (domain.AgentResult, bool) {
	if s.SelectedFile == nil {
		return domain.AgentResult{}, false
	}
	return s.AgentResults.Latest(s.SelectedFile.Path, s.ActiveAgent)
}

// Orchestrator owns the view state. It is safe for concurrent use, though
// the TUI drives it from a single goroutine.
type Orchestrator struct {
	mu    sync.Mutex
	state State

	// content is the client-side cache of fetched file text, keyed by path.
	content map[string]string

	last       Token
	repoToken  Token
	fileToken  Token
	chatToken  Token
	agentToken Token

	log *logging.Logger
}

// New creates an orchestrator with no session.
func New(opts Options) *Orchestrator {
	log := opts.Logger
	if log == nil {
		log = logging.New("orchestrator")
	}
	return &Orchestrator{
		state: State{
			ActiveTab:     TabChat,
			ActiveAgent:   domain.AgentBugFinder,
			AgentsEnabled: opts.AgentsEnabled,
		},
		content: map[string]string{},
		log:     log,
	}
}

func (o *Orchestrator) issue() Token {
	o.last++
	return o.last
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := o.state
	s.Messages = append([]domain.ChatMessage(nil), o.state.Messages...)
	s.AgentResults = append(domain.AgentResults(nil), o.state.AgentResults...)
	if o.state.SelectedFile != nil {
		f := *o.state.SelectedFile
		s.SelectedFile = &f
	}
	return s
}

// CachedContent returns previously fetched content for path.
func (o *Orchestrator) CachedContent(path string) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	c, ok := o.content[path]
	return c, ok
}

// SubmitURL starts an analysis of url. It returns false when url is blank
// or an analysis is already running.
func (o *Orchestrator) SubmitURL(url string) (AnalyzeRequest, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	url = strings.TrimSpace(url)
	if url == "" || o.state.RepoLoading {
		return AnalyzeRequest{}, false
	}

	o.state.RepoLoading = true
	o.state.LastError = ""
	o.repoToken = o.issue()
	o.log.Debug("analyze_requested", map[string]interface{}{"url": url, "token": o.repoToken})
	return AnalyzeRequest{Token: o.repoToken, URL: url}, true
}

// CompleteAnalysis applies the outcome of an AnalyzeRequest. Either way the
// previous session and everything that depended on it is discarded: success
// installs the new session, failure leaves none and records LastError for
// the intake form. It reports whether the result was applied.
func (o *Orchestrator) CompleteAnalysis(tok Token, sess *domain.RepositorySession, err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if tok == 0 || tok != o.repoToken {
		o.log.Debug("stale_analysis_dropped", map[string]interface{}{"token": tok})
		return false
	}
	o.state.RepoLoading = false
	o.repoToken = 0

	o.reset()
	if err != nil || sess == nil {
		o.state.Session = nil
		if err != nil {
			o.state.LastError = err.Error()
		} else {
			o.state.LastError = "failed to analyze repository"
		}
		return true
	}

	o.state.Session = sess
	o.state.ActiveTab = TabChat
	return true
}

// reset clears everything tied to the current session. Outstanding file,
// chat and agent tokens are invalidated so their late results are dropped.
func (o *Orchestrator) reset() {
	o.state.SelectedFile = nil
	o.state.FileContent = ""
	o.state.Messages = nil
	o.state.AgentResults = nil
	o.state.ChatNotice = ""
	o.state.AgentNotice = ""
	o.state.LastError = ""
	o.state.FileLoading = false
	o.state.ChatLoading = false
	o.state.AgentLoading = false
	o.content = map[string]string{}
	o.fileToken, o.chatToken, o.agentToken = 0, 0, 0
}

// Restore installs a cached session without touching any other state.
// Used when a session is read back from the tab cache on startup.
func (o *Orchestrator) Restore(sess *domain.RepositorySession) bool {
	if sess == nil {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.Session = sess
	return true
}

// NewAnalysis drops the current session so the intake form is shown again.
func (o *Orchestrator) NewAnalysis() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.RepoLoading {
		return
	}
	o.reset()
	o.state.Session = nil
	o.state.ActiveTab = TabChat
}

// SelectFile selects node. Directories are ignored (false). Every file
// selection issues a fetch, even for a path whose content is cached.
func (o *Orchestrator) SelectFile(node domain.FileNode) (FileRequest, bool) {
	if node.IsDir() || node.Path == "" {
		return FileRequest{}, false
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	n := node
	n.Children = nil
	o.state.SelectedFile = &n
	o.state.ActiveTab = TabFile
	o.state.FileLoading = true
	o.state.FileContent = ""
	o.fileToken = o.issue()
	return FileRequest{Token: o.fileToken, Path: node.Path}, true
}

// CompleteFile applies the outcome of a FileRequest. Only the most recent
// request is applied; a failure shows FileErrorPlaceholder.
func (o *Orchestrator) CompleteFile(tok Token, content string, err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if tok == 0 || tok != o.fileToken {
		o.log.Debug("stale_file_dropped", map[string]interface{}{"token": tok})
		return false
	}
	o.state.FileLoading = false
	o.fileToken = 0

	if err != nil {
		o.state.FileContent = FileErrorPlaceholder
		return true
	}
	o.state.FileContent = content
	if o.state.SelectedFile != nil {
		o.content[o.state.SelectedFile.Path] = content
	}
	return true
}

// SendMessage appends a user message and asks for an answer. Blank text
// and sends while an answer is pending are ignored.
func (o *Orchestrator) SendMessage(text string) (ChatRequest, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" || o.state.ChatLoading {
		return ChatRequest{}, false
	}

	o.state.Messages = append(o.state.Messages, domain.NewChatMessage(domain.SenderUser, text))
	o.state.ChatLoading = true
	o.state.ChatNotice = ""
	o.chatToken = o.issue()
	return ChatRequest{Token: o.chatToken, Question: text}, true
}

// CompleteChat applies the outcome of a ChatRequest. Failures add no
// message; they set ChatNotice instead.
func (o *Orchestrator) CompleteChat(tok Token, answer string, err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if tok == 0 || tok != o.chatToken {
		o.log.Debug("stale_chat_dropped", map[string]interface{}{"token": tok})
		return false
	}
	o.state.ChatLoading = false
	o.chatToken = 0

	if err != nil {
		o.state.ChatNotice = err.Error()
		return true
	}
	o.state.Messages = append(o.state.Messages, domain.NewChatMessage(domain.SenderAssistant, answer))
	return true
}

// DismissNotice clears the chat and agent notices.
func (o *Orchestrator) DismissNotice() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.ChatNotice = ""
	o.state.AgentNotice = ""
}

// SetActiveAgent chooses which agent's results are shown.
func (o *Orchestrator) SetActiveAgent(kind domain.AgentKind) bool {
	if !kind.Valid() {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.ActiveAgent = kind
	return true
}

// RunAgent runs kind over the selected file. It needs the agent panel
// enabled, a selected file whose content has loaded, and no agent running.
func (o *Orchestrator) RunAgent(kind domain.AgentKind) (AgentRequest, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.state.AgentsEnabled || !kind.Valid() || o.state.AgentLoading {
		return AgentRequest{}, false
	}
	if o.state.SelectedFile == nil || o.state.FileLoading {
		return AgentRequest{}, false
	}
	content, ok := o.content[o.state.SelectedFile.Path]
	if !ok {
		return AgentRequest{}, false
	}

	o.state.ActiveAgent = kind
	o.state.AgentLoading = true
	o.state.AgentNotice = ""
	o.agentToken = o.issue()
	return AgentRequest{
		Token:   o.agentToken,
		Kind:    kind,
		Path:    o.state.SelectedFile.Path,
		Content: content,
	}, true
}

// CompleteAgent applies the outcome of an AgentRequest.
func (o *Orchestrator) CompleteAgent(tok Token, res *domain.AgentResult, err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if tok == 0 || tok != o.agentToken {
		o.log.Debug("stale_agent_dropped", map[string]interface{}{"token": tok})
		return false
	}
	o.state.AgentLoading = false
	o.agentToken = 0

	if err != nil || res == nil {
		if err != nil {
			o.state.AgentNotice = err.Error()
		}
		return true
	}
	if res.ProducedAt.IsZero() {
		res.ProducedAt = time.Now()
	}
	o.state.AgentResults = append(o.state.AgentResults, *res)
	return true
}

// SetActiveTab switches the main panel. The agents tab is only available
// when agents are enabled.
func (o *Orchestrator) SetActiveTab(tab Tab) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch tab {
	case TabChat, TabFile:
	case TabAgents:
		if !o.state.AgentsEnabled {
			return false
		}
	default:
		return false
	}
	o.state.ActiveTab = tab
	return true
}

// Tabs lists the available tabs in display order.
func (o *Orchestrator) Tabs() []Tab {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.AgentsEnabled {
		return []Tab{TabChat, TabFile, TabAgents}
	}
	return []Tab{TabChat, TabFile}
}

// Label returns the tab's title.
func (t Tab) Label() string {
	switch t {
	case TabChat:
		return "Chat"
	case TabFile:
		return "File Viewer"
	case TabAgents:
		return "Agents"
	}
	return string(t)
}
