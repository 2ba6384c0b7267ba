package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Run when stdout is not a terminal.
var ErrNotTerminal = errors.New("stdout is not a terminal; use the analyze, tree, view and ask subcommands instead")

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts the TUI and blocks until it exits or opts.Context is done.
func Run(opts Options) error {
	if !IsTerminal() {
		return ErrNotTerminal
	}
	if opts.Backend == nil {
		return fmt.Errorf("tui: no backend")
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithContext(opts.Context),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context.Err() != nil {
		return nil
	}
	return err
}
