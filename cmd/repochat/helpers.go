package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/render"
	"github.com/joss/repochat/internal/store"
	"github.com/joss/repochat/internal/tui"
)

// exitOnError prints err with a hint when one applies, then exits.
func exitOnError(err error) {
	render.Stderr().Failure("%s", describeError(err))
	os.Exit(1)
}

// describeError turns the common failures into actionable messages.
func describeError(err error) string {
	switch {
	case store.IsNotFound(err):
		return "no repository analyzed in this tab; run 'repochat analyze <url>' first"
	case errors.Is(err, tui.ErrNotTerminal),
		errors.Is(err, domain.ErrAnalysis),
		errors.Is(err, domain.ErrFetch),
		errors.Is(err, domain.ErrChat),
		errors.Is(err, domain.ErrAgent):
		return err.Error()
	}
	return fmt.Sprintf("Error: %v", err)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
