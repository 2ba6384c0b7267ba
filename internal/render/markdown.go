package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownOptions configures Markdown.
type MarkdownOptions struct {
	// Width wraps text; zero disables wrapping.
	Width int
	// Style is a glamour standard style ("dark", "light", "notty", ...).
	// Defaults to "dark".
	Style string
}

// Markdown renders text for the terminal.
func Markdown(text string, opts MarkdownOptions) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(orDefault(opts.Style, "dark")),
		glamour.WithWordWrap(opts.Width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(text)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

var (
	headingLine = regexp.MustCompile(`^\*{2}(.*?)\*{2}$`)
	bulletLine  = regexp.MustCompile(`^\*\s+(.*)`)
	boldLabel   = regexp.MustCompile(`\*\*(.*?):\*\*`)
)

// FormatAgentResult normalizes raw agent output into markdown. Lines made
// entirely of bold text become headings, "* item" lines become a numbered
// list that restarts after each heading, fenced code is kept verbatim and
// bold labels such as "**Note:**" lose their emphasis. Blank lines are
// dropped.
func FormatAgentResult(raw string) string {
	var (
		blocks  []string
		list    []string
		counter = 1
	)
	flush := func() {
		if len(list) > 0 {
			blocks = append(blocks, strings.Join(list, "\n"))
			list = nil
		}
	}

	lines := nonBlank(strings.Split(raw, "\n"))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case headingLine.MatchString(line):
			flush()
			title := strings.ReplaceAll(headingLine.FindStringSubmatch(line)[1], "**", "")
			blocks = append(blocks, "## "+strings.TrimSpace(title))
			counter = 1

		case bulletLine.MatchString(line):
			list = append(list, fmt.Sprintf("%d. %s", counter, bulletLine.FindStringSubmatch(line)[1]))
			counter++

		case strings.HasPrefix(line, "```"):
			flush()
			code := []string{line}
			for i++; i < len(lines) && !strings.HasPrefix(lines[i], "```"); i++ {
				code = append(code, lines[i])
			}
			blocks = append(blocks, strings.Join(code, "\n")+"\n```")

		default:
			flush()
			blocks = append(blocks, boldLabel.ReplaceAllString(line, "$1:"))
		}
	}
	flush()

	return strings.Join(blocks, "\n\n")
}

func nonBlank(lines []string) []string {
	out := lines[:0:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, strings.TrimRight(l, "\r"))
		}
	}
	return out
}
