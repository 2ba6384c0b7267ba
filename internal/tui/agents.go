package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/render"
)

// agentsModel lists the per-file agents and shows the latest result of
// the active one.
type agentsModel struct {
	viewport viewport.Model

	path        string
	ready       bool
	fileLoading bool
	active      domain.AgentKind
	loading     bool
	notice      string
	result      *domain.AgentResult

	width  int
	height int
}

func newAgents() agentsModel {
	return agentsModel{
		viewport: viewport.New(80, 20),
		active:   domain.AgentBugFinder,
	}
}

func (m *agentsModel) SetSize(width, height int) {
	m.width, m.height = width, height
	m.viewport.Width = width
	h := height - len(domain.AgentKinds()) - 4
	if h < 1 {
		h = 1
	}
	m.viewport.Height = h
	m.refresh()
}

// SetState updates the panel. ready reports whether the selected file's
// content has loaded; fileLoading whether its fetch is still running.
func (m *agentsModel) SetState(path string, ready, fileLoading bool, active domain.AgentKind, loading bool, notice string, result *domain.AgentResult) {
	changed := path != m.path || active != m.active || !sameResult(result, m.result)
	m.path, m.ready, m.fileLoading, m.active, m.loading, m.notice = path, ready, fileLoading, active, loading, notice
	m.result = result
	if changed {
		m.refresh()
		m.viewport.GotoTop()
	}
}

func sameResult(a, b *domain.AgentResult) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ProducedAt.Equal(b.ProducedAt) && a.Kind == b.Kind && a.FilePath == b.FilePath
}

func (m *agentsModel) refresh() {
	if m.result == nil {
		m.viewport.SetContent("")
		return
	}
	text := render.FormatAgentResult(m.result.Content)
	out, err := render.Markdown(text, render.MarkdownOptions{Width: m.width - 2})
	if err != nil {
		out = text
	}
	m.viewport.SetContent(strings.Trim(out, "\n"))
}

func (m agentsModel) Update(msg tea.Msg) (agentsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		kinds := domain.AgentKinds()
		switch keyMsg.String() {
		case "1", "2", "3":
			i := int(keyMsg.String()[0] - '1')
			if i >= len(kinds) {
				return m, nil
			}
			kind := kinds[i]
			return m, func() tea.Msg { return runAgentMsg{kind: kind} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m agentsModel) View(spin string) string {
	var sb strings.Builder
	for i, kind := range domain.AgentKinds() {
		label := fmt.Sprintf("%d %s", i+1, kind.Label())
		if kind == m.active {
			sb.WriteString(activeStyle.Render("● " + label))
		} else {
			sb.WriteString(infoStyle.Render("○ " + label))
		}
		sb.WriteString(infoStyle.Render("  " + kind.Description()))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	switch {
	case m.path == "":
		sb.WriteString(infoStyle.Render("Select a file to run an agent on it."))
		return sb.String()
	case m.loading:
		sb.WriteString(thinkingStyle.Render(fmt.Sprintf("%s Running %s on %s...", spin, m.active.Label(), m.path)))
		return sb.String()
	case m.notice != "":
		sb.WriteString(errorStyle.Render("✗ " + m.notice))
		sb.WriteString("\n")
	}

	if m.result == nil {
		switch {
		case m.ready:
			sb.WriteString(infoStyle.Render(fmt.Sprintf("Press 1-3 to analyze %s.", m.path)))
		case m.fileLoading:
			sb.WriteString(infoStyle.Render("Waiting for the file to load."))
		default:
			sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ Could not load %s. Select it again to retry.", m.path)))
		}
		return sb.String()
	}

	sb.WriteString(titleStyle.Render(m.result.Title))
	sb.WriteString(infoStyle.Render("  " + m.result.ProducedAt.Format("15:04:05")))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	return sb.String()
}
