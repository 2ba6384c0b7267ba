package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/filetree"
	rcstrings "github.com/joss/repochat/internal/strings"
)

// row is one visible line of the explorer.
type row struct {
	node  domain.FileNode
	depth int
	label string
}

// fileItems is a slice of file nodes that implements fuzzy.Source
type fileItems []domain.FileNode

func (f fileItems) String(i int) string { return f[i].Path }
func (f fileItems) Len() int            { return len(f) }

// explorerModel renders the repository tree.
type explorerModel struct {
	session  *domain.RepositorySession
	tree     []domain.FileNode
	files    fileItems
	expanded map[string]bool

	rows     []row
	cursor   int
	offset   int
	selected string

	filtering bool
	filter    textinput.Model

	width  int
	height int
}

func newExplorer() explorerModel {
	ti := textinput.New()
	ti.Placeholder = "filter files"
	ti.Prompt = "/"
	return explorerModel{
		expanded: map[string]bool{},
		filter:   ti,
	}
}

// SetSession installs the tree of sess. Expansion state survives only
// while the same session is shown.
func (m *explorerModel) SetSession(sess *domain.RepositorySession) {
	if sess == m.session {
		return
	}
	m.session = sess
	m.expanded = map[string]bool{}
	m.cursor, m.offset = 0, 0
	m.filtering = false
	m.filter.Reset()
	m.filter.Blur()
	m.tree, m.files = nil, nil
	if sess != nil {
		m.tree = filetree.Sorted(sess.FileTree)
		m.files = fileItems(filetree.Files(m.tree))
	}
	m.refresh()
}

// SetSelected marks path as the selected file.
func (m *explorerModel) SetSelected(path string) {
	m.selected = path
}

func (m *explorerModel) SetSize(width, height int) {
	m.width, m.height = width, height
	m.clampOffset()
}

// Filtering reports whether the filter input owns the keyboard.
func (m explorerModel) Filtering() bool {
	return m.filtering
}

// refresh rebuilds the visible rows.
func (m *explorerModel) refresh() {
	m.rows = nil
	if m.filtering && m.filter.Value() != "" {
		for _, match := range fuzzy.FindFrom(m.filter.Value(), m.files) {
			n := m.files[match.Index]
			m.rows = append(m.rows, row{node: n, label: n.Path})
		}
	} else if m.filtering {
		for _, n := range m.files {
			m.rows = append(m.rows, row{node: n, label: n.Path})
		}
	} else {
		m.appendRows(m.tree, 0)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampOffset()
}

func (m *explorerModel) appendRows(nodes []domain.FileNode, depth int) {
	for _, n := range nodes {
		m.rows = append(m.rows, row{node: n, depth: depth, label: n.Name})
		if n.IsDir() && m.expanded[n.Path] {
			m.appendRows(n.Children, depth+1)
		}
	}
}

// listHeight is the number of rows that fit below the header.
func (m explorerModel) listHeight() int {
	h := m.height - m.headerLines() - 1
	if m.filtering {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *explorerModel) clampOffset() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m explorerModel) Update(msg tea.Msg) (explorerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filtering {
		switch keyMsg.String() {
		case "esc":
			m.filtering = false
			m.filter.Reset()
			m.filter.Blur()
			m.cursor = 0
			m.refresh()
			return m, nil
		case "enter":
			cmd := m.activate()
			return m, cmd
		case "up", "down":
			m.move(keyMsg.String())
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.cursor = 0
		m.refresh()
		return m, cmd
	}

	switch keyMsg.String() {
	case "up", "k", "down", "j", "home", "g", "end", "G":
		m.move(keyMsg.String())
	case "enter", " ":
		cmd := m.activate()
		return m, cmd
	case "/":
		m.filtering = true
		m.filter.Reset()
		m.cursor = 0
		m.refresh()
		cmd := m.filter.Focus()
		return m, cmd
	}
	return m, nil
}

func (m *explorerModel) move(key string) {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampOffset()
}

// activate toggles the directory under the cursor or selects the file.
func (m *explorerModel) activate() tea.Cmd {
	if m.cursor >= len(m.rows) {
		return nil
	}
	n := m.rows[m.cursor].node
	if n.IsDir() {
		m.expanded[n.Path] = !m.expanded[n.Path]
		m.refresh()
		return nil
	}
	if m.filtering {
		m.filtering = false
		m.filter.Blur()
		m.reveal(n.Path)
	}
	return func() tea.Msg { return FileSelectedMsg{Node: n} }
}

// reveal expands every ancestor of path and puts the cursor on it.
func (m *explorerModel) reveal(path string) {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		m.expanded[strings.Join(parts[:i], "/")] = true
	}
	m.refresh()
	for i, r := range m.rows {
		if r.node.Path == path {
			m.cursor = i
			break
		}
	}
	m.clampOffset()
}

func (m explorerModel) headerLines() int {
	if m.session == nil {
		return 0
	}
	return 4
}

func (m explorerModel) header() string {
	s := m.session
	if s == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(s.Name))
	sb.WriteString("\n")
	owner := s.Owner
	if owner == "" {
		owner = "unknown"
	}
	sb.WriteString(infoStyle.Render(fmt.Sprintf("by %s · %s", owner, s.LanguageOrUnknown())))
	sb.WriteString("\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("★ %d  ⑂ %d  ! %d  chunks %d",
		s.StarCount, s.ForkCount, s.OpenIssuesCount, s.ChunksProcessed)))
	sb.WriteString("\n")
	return sb.String()
}

func (m explorerModel) View(focused bool) string {
	var sb strings.Builder
	sb.WriteString(m.header())
	sb.WriteString(activeStyle.Render("Files"))
	sb.WriteString("\n")
	if m.filtering {
		sb.WriteString(m.filter.View())
		sb.WriteString("\n")
	}

	if len(m.rows) == 0 {
		if m.filtering {
			sb.WriteString(infoStyle.Render("no matches"))
		} else {
			sb.WriteString(infoStyle.Render("no files"))
		}
		return sb.String()
	}

	end := m.offset + m.listHeight()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i, focused))
	}
	sb.WriteString(strings.Join(lines, "\n"))
	return sb.String()
}

func (m explorerModel) renderRow(i int, focused bool) string {
	r := m.rows[i]
	indent := strings.Repeat("  ", r.depth)

	var line string
	if r.node.IsDir() {
		marker := "▸ "
		if m.expanded[r.node.Path] {
			marker = "▾ "
		}
		line = indent + dirStyle.Render(marker+r.label+"/")
	} else {
		line = indent + "  " + r.label
	}

	switch {
	case r.node.Path == m.selected:
		return selectedRowStyle.Render(fitWidth(indent+"  "+r.label, m.width))
	case focused && i == m.cursor:
		return cursorRowStyle.Render("› ") + line
	}
	return line
}

func fitWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	return rcstrings.TruncateRunes(s, width)
}
