package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the app-level bindings.
type keyMap struct {
	Quit        key.Binding
	NewAnalysis key.Binding
	Focus       key.Binding
	NextTab     key.Binding
	Dismiss     key.Binding

	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Filter key.Binding

	Copy     key.Binding
	Download key.Binding

	BugFinder key.Binding
	Reviewer  key.Binding
	Docgen    key.Binding

	Submit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NewAnalysis: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new repo")),
		Focus:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		NextTab:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "next tab")),
		Dismiss:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),

		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Download: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),

		BugFinder: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "bug finder")),
		Reviewer:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "reviewer")),
		Docgen:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "doc generator")),

		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	}
}
