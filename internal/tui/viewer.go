package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joss/repochat/internal/orchestrator"
	"github.com/joss/repochat/internal/render"
)

// viewerModel shows the selected file with syntax highlighting.
type viewerModel struct {
	viewport    viewport.Model
	downloadDir string

	path    string
	content string
	loading bool

	// rendered tracks what the viewport currently holds.
	rendered renderKey
	status   string
	width    int
	height   int
}

type renderKey struct {
	path    string
	content string
	width   int
}

func newViewer(downloadDir string) viewerModel {
	return viewerModel{
		viewport:    viewport.New(80, 20),
		downloadDir: downloadDir,
	}
}

func (m *viewerModel) SetSize(width, height int) {
	m.width, m.height = width, height
	m.viewport.Width = width
	h := height - 2
	if h < 1 {
		h = 1
	}
	m.viewport.Height = h
	m.rerender()
}

// SetFile updates the shown file. A new path resets the scroll position
// and any copy/download status.
func (m *viewerModel) SetFile(path, content string, loading bool) {
	if path != m.path {
		m.status = ""
		m.viewport.GotoTop()
	}
	m.path, m.content, m.loading = path, content, loading
	m.rerender()
}

func (m *viewerModel) rerender() {
	if m.path == "" || m.loading {
		return
	}
	key := renderKey{path: m.path, content: m.content, width: m.width}
	if key == m.rendered {
		return
	}
	m.rendered = key

	if m.content == orchestrator.FileErrorPlaceholder {
		m.viewport.SetContent(errorStyle.Render(m.content))
		return
	}
	out, err := render.Highlight(m.content, m.path, render.CodeOptions{LineNumbers: true})
	if err != nil {
		out = m.content
	}
	m.viewport.SetContent(out)
}

// ready reports whether there is loaded content to act on.
func (m viewerModel) ready() bool {
	return m.path != "" && !m.loading && m.content != orchestrator.FileErrorPlaceholder
}

func (m viewerModel) Update(msg tea.Msg) (viewerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case copyDoneMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("✗ copy failed: " + msg.err.Error())
		} else {
			m.status = activeStyle.Render("✓ copied " + msg.path)
		}
		return m, nil

	case downloadDoneMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("✗ " + msg.err.Error())
		} else {
			m.status = activeStyle.Render("✓ saved " + msg.dest)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			if !m.ready() {
				return m, nil
			}
			return m, copyContent(m.path, m.content)
		case "d":
			if !m.ready() {
				return m, nil
			}
			return m, downloadContent(m.downloadDir, m.path, m.content)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewerModel) View(spin string) string {
	if m.path == "" {
		return infoStyle.Render("Select a file from the explorer to view its contents.")
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.path))
	sb.WriteString(infoStyle.Render("  " + render.DetectLanguage(m.path)))
	sb.WriteString("\n")

	if m.loading {
		sb.WriteString(spin + " Loading file...")
		return sb.String()
	}

	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString(m.status)
	} else {
		sb.WriteString(infoStyle.Render(fmt.Sprintf("%3.f%%  c copy │ d download", m.viewport.ScrollPercent()*100)))
	}
	return sb.String()
}
