package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const exampleURL = "https://github.com/username/repository"

// features are the blurbs shown under the intake form.
var features = []struct{ title, body string }{
	{"Intelligent Chat", "Ask questions about the codebase and get answers grounded in its files"},
	{"Code Exploration", "Browse the repository tree and read highlighted source"},
	{"Smart Analysis", "Summaries, language and activity at a glance"},
}

// intakeModel is the repository URL form.
type intakeModel struct {
	input   textinput.Model
	loading bool
	err     string
	width   int
}

func newIntake() intakeModel {
	ti := textinput.New()
	ti.Placeholder = "Paste GitHub repository URL"
	ti.Prompt = "› "
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()
	return intakeModel{input: ti}
}

func (m intakeModel) Update(msg tea.Msg) (intakeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEnter {
		url := strings.TrimSpace(m.input.Value())
		if url == "" || m.loading {
			return m, nil
		}
		return m, func() tea.Msg { return submitURLMsg{url: url} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *intakeModel) SetSize(width int) {
	m.width = width
	w := width - 8
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	m.input.Width = w
}

func (m intakeModel) View(spin string) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Welcome to AI GitHub Assistant"))
	sb.WriteString("\n")
	sb.WriteString(infoStyle.Render("Analyze any public repository, explore its files and chat about the code."))
	sb.WriteString("\n\n")

	sb.WriteString(boxStyle.Render(m.input.View()))
	sb.WriteString("\n")
	sb.WriteString(infoStyle.Render("Example: " + exampleURL))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(busyButtonStyle.Render(spin + " Analyzing..."))
	} else {
		sb.WriteString(buttonStyle.Render("Analyze Repository"))
	}
	sb.WriteString("\n")

	if m.err != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render("✗ " + m.err))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	blurbs := make([]string, 0, len(features))
	for _, f := range features {
		blurbs = append(blurbs, lipgloss.JoinVertical(lipgloss.Left,
			activeStyle.Render(f.title),
			infoStyle.Render(f.body),
		))
	}
	sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, blurbs...))
	return sb.String()
}
