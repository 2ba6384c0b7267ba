package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/render"
	rcstrings "github.com/joss/repochat/internal/strings"
)

// chatModel is the transcript plus its input line.
type chatModel struct {
	viewport viewport.Model
	input    textinput.Model

	summary  string
	messages []domain.ChatMessage
	loading  bool
	notice   string

	// markdown caches rendered assistant messages by id and width.
	markdown map[string]string
	width    int
	height   int
}

func newChat() chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask something about the code..."
	ti.Prompt = "› "
	ti.CharLimit = 2000
	ti.Width = 60
	ti.Focus()

	return chatModel{
		viewport: viewport.New(80, 20),
		input:    ti,
		markdown: map[string]string{},
	}
}

func (m *chatModel) SetSize(width, height int) {
	m.width, m.height = width, height
	m.input.Width = width - 4
	// input line, thinking/notice line
	h := height - 3
	if h < 1 {
		h = 1
	}
	m.viewport.Width = width
	m.viewport.Height = h
	m.refresh(m.viewport.AtBottom())
}

// SetState replaces what the panel shows. The transcript jumps to the
// newest message only when the conversation itself changed.
func (m *chatModel) SetState(summary string, messages []domain.ChatMessage, loading bool, notice string) {
	follow := summary != m.summary || len(messages) != len(m.messages) || loading != m.loading
	if summary != m.summary {
		m.markdown = map[string]string{}
	}
	m.summary = summary
	m.messages = messages
	m.loading = loading
	m.notice = notice
	m.refresh(follow)
}

// Focus gives the input the cursor.
func (m *chatModel) Focus() tea.Cmd {
	return m.input.Focus()
}

func (m *chatModel) Blur() {
	m.input.Blur()
}

func (m *chatModel) refresh(follow bool) {
	var sb strings.Builder
	if m.summary != "" {
		sb.WriteString(activeStyle.Render("Repository summary"))
		sb.WriteString("\n")
		sb.WriteString(m.renderMarkdown("summary", m.summary))
		sb.WriteString("\n")
	}

	for _, msg := range m.messages {
		switch msg.Sender {
		case domain.SenderUser:
			sb.WriteString(userStyle.Render("You"))
			sb.WriteString(infoStyle.Render("  " + msg.SentAt.Format("15:04")))
			sb.WriteString("\n")
			sb.WriteString(rcstrings.WordWrap(msg.Text, m.wrapWidth()))
		default:
			sb.WriteString(assistantStyle.Render("Assistant"))
			sb.WriteString(infoStyle.Render("  " + msg.SentAt.Format("15:04")))
			sb.WriteString("\n")
			sb.WriteString(m.renderMarkdown(msg.ID, msg.Text))
		}
		sb.WriteString("\n\n")
	}

	m.viewport.SetContent(strings.TrimRight(sb.String(), "\n"))
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m chatModel) wrapWidth() int {
	if m.width <= 4 {
		return 76
	}
	return m.width - 2
}

func (m *chatModel) renderMarkdown(id, text string) string {
	key := fmt.Sprintf("%s/%d", id, m.wrapWidth())
	if out, ok := m.markdown[key]; ok {
		return out
	}
	out, err := render.Markdown(text, render.MarkdownOptions{Width: m.wrapWidth()})
	if err != nil {
		out = rcstrings.WordWrap(text, m.wrapWidth())
	}
	out = strings.Trim(out, "\n")
	m.markdown[key] = out
	return out
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.loading {
				return m, nil
			}
			m.input.Reset()
			return m, func() tea.Msg { return sendMessageMsg{text: text} }
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) View(spin string) string {
	var sb strings.Builder
	if len(m.messages) == 0 && m.summary == "" {
		sb.WriteString(infoStyle.Render("Ask a question about the repository to get started."))
	} else {
		sb.WriteString(m.viewport.View())
	}
	sb.WriteString("\n")

	switch {
	case m.loading:
		sb.WriteString(thinkingStyle.Render(spin + " Thinking..."))
	case m.notice != "":
		sb.WriteString(errorStyle.Render("✗ " + m.notice))
	}
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	return sb.String()
}
