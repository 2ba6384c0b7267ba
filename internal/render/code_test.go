package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"app.js", "javascript"},
		{"App.jsx", "javascript"},
		{"index.ts", "typescript"},
		{"view.tsx", "typescript"},
		{"main.py", "python"},
		{"Main.java", "java"},
		{"index.html", "html"},
		{"site.css", "css"},
		{"package.json", "json"},
		{"README.md", "markdown"},
		{"engine.cpp", "cpp"},
		{"SHOUT.PY", "python"},
		{"main.go", "text"},
		{"Makefile", "text"},
		{"archive.tar.gz", "text"},
		{"", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.file))
		})
	}
}

func TestHighlightPlainWithLineNumbers(t *testing.T) {
	out, err := Highlight("first\nsecond\n", "notes.txt", CodeOptions{Formatter: "noop", LineNumbers: true})
	require.NoError(t, err)
	assert.Equal(t, "1 │ first\n2 │ second", out)
}

func TestHighlightGutterWidth(t *testing.T) {
	var lines []string
	for i := 0; i < 12; i++ {
		lines = append(lines, "x")
	}
	out, err := Highlight(strings.Join(lines, "\n")+"\n", "a.txt", CodeOptions{Formatter: "noop", LineNumbers: true})
	require.NoError(t, err)

	got := strings.Split(out, "\n")
	require.Len(t, got, 12)
	assert.Equal(t, " 1 │ x", got[0])
	assert.Equal(t, "12 │ x", got[11])
}

func TestHighlightWithoutLineNumbers(t *testing.T) {
	src := "const a = 1;\n/* multi\nline */\nconsole.log(a);\n"
	out, err := Highlight(src, "app.js", CodeOptions{Formatter: "noop"})
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(src, "\n"), out)
}

func TestHighlightColors(t *testing.T) {
	out, err := Highlight("def f():\n    return 1\n", "f.py", CodeOptions{LineNumbers: true})
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
	assert.Len(t, strings.Split(out, "\n"), 2)
}

func TestHighlightUnknownStyle(t *testing.T) {
	_, err := Highlight("x", "a.txt", CodeOptions{Style: "no-such-style", Formatter: "no-such-formatter"})
	assert.NoError(t, err)
}
