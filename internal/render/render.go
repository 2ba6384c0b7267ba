// Package render formats repochat output: highlighted code, markdown
// answers and the plain CLI views of a repository session.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Writer wraps an io.Writer with formatting utilities.
type Writer struct {
	out io.Writer
}

// NewWriter creates a Writer that writes to the given io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

// Stdout returns a Writer that writes to os.Stdout.
func Stdout() *Writer {
	return NewWriter(os.Stdout)
}

// Stderr returns a Writer that writes to os.Stderr.
func Stderr() *Writer {
	return NewWriter(os.Stderr)
}

// Print writes formatted text.
func (w *Writer) Print(format string, args ...any) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes formatted text with newline.
func (w *Writer) Println(format string, args ...any) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Raw writes s unchanged followed by a newline.
func (w *Writer) Raw(s string) {
	fmt.Fprintln(w.out, s)
}

// Line writes a blank line.
func (w *Writer) Line() {
	fmt.Fprintln(w.out)
}

// Header writes a bold header line.
func (w *Writer) Header(title string, args ...any) {
	if len(args) > 0 {
		title = fmt.Sprintf(title, args...)
	}
	fmt.Fprintln(w.out, color.New(color.Bold).Sprint(title))
	fmt.Fprintln(w.out, strings.Repeat("─", len([]rune(title))))
}

// Section writes a section header.
func (w *Writer) Section(title string) {
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, color.CyanString(strings.ToUpper(title)+":"))
}

// Field writes an aligned "label: value" line. Empty values are skipped.
func (w *Writer) Field(label string, value any) {
	s := fmt.Sprint(value)
	if s == "" {
		return
	}
	fmt.Fprintf(w.out, "  %-12s %s\n", label+":", s)
}

// Item writes an indented item line.
func (w *Writer) Item(format string, args ...any) {
	fmt.Fprintf(w.out, "  "+format+"\n", args...)
}

// Success writes a green check line.
func (w *Writer) Success(format string, args ...any) {
	fmt.Fprintf(w.out, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// Failure writes a red cross line.
func (w *Writer) Failure(format string, args ...any) {
	fmt.Fprintf(w.out, "%s %s\n", color.RedString("✗"), fmt.Sprintf(format, args...))
}

// Empty writes an empty state message.
func (w *Writer) Empty(msg string) {
	fmt.Fprintln(w.out, color.HiBlackString(msg))
}
