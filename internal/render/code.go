package render

import (
	"fmt"
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// LanguageText is returned for files with no known language.
const LanguageText = "text"

// languageByExt maps file extensions to viewer language names.
var languageByExt = map[string]string{
	"js":   "javascript",
	"jsx":  "javascript",
	"ts":   "typescript",
	"tsx":  "typescript",
	"py":   "python",
	"java": "java",
	"html": "html",
	"css":  "css",
	"json": "json",
	"md":   "markdown",
	"cpp":  "cpp",
}

// DetectLanguage picks the viewer language from a file name's extension.
func DetectLanguage(fileName string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(fileName)), ".")
	if lang, ok := languageByExt[ext]; ok {
		return lang
	}
	return LanguageText
}

// CodeOptions configures Highlight.
type CodeOptions struct {
	// Style is a chroma style name. Defaults to "monokai".
	Style string
	// Formatter is a chroma formatter name. Defaults to "terminal256".
	Formatter string
	// LineNumbers prefixes every line with a gutter.
	LineNumbers bool
}

// Highlight renders content with syntax colors for the language of
// fileName. Files with no known language are shown as plain text.
func Highlight(content, fileName string, opts CodeOptions) (string, error) {
	lexer := lexers.Get(DetectLanguage(fileName))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(orDefault(opts.Style, "monokai"))
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get(orDefault(opts.Formatter, "terminal256"))
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := lexer.Tokenise(nil, content)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", fileName, err)
	}

	lines := chroma.SplitTokensIntoLines(it.Tokens())

	width := len(fmt.Sprint(len(lines)))
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if opts.LineNumbers {
			fmt.Fprintf(&sb, "%*d │ ", width, i+1)
		}
		trimmed := make([]chroma.Token, 0, len(line))
		for _, tok := range line {
			tok.Value = strings.TrimSuffix(tok.Value, "\n")
			if tok.Value != "" {
				trimmed = append(trimmed, tok)
			}
		}
		if err := formatter.Format(&sb, style, chroma.Literator(trimmed...)); err != nil {
			return "", fmt.Errorf("format %s: %w", fileName, err)
		}
	}
	return sb.String(), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
