package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/joss/repochat/internal/domain"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func sampleTree() []domain.FileNode {
	return []domain.FileNode{
		{Name: "README.md", Path: "README.md", Kind: domain.KindFile},
		{Name: "src", Path: "src", Kind: domain.KindDirectory, Children: []domain.FileNode{
			{Name: "util.js", Path: "src/util.js", Kind: domain.KindFile},
			{Name: "lib", Path: "src/lib", Kind: domain.KindDirectory, Children: []domain.FileNode{
				{Name: "a.go", Path: "src/lib/a.go", Kind: domain.KindFile},
			}},
			{Name: "main.js", Path: "src/main.js", Kind: domain.KindFile},
		}},
	}
}

func TestWriterTree(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	n := NewWriter(&buf).Tree(sampleTree(), nil)

	want := strings.Join([]string{
		"├── src/",
		"│   ├── lib/",
		"│   │   └── a.go",
		"│   ├── main.js",
		"│   └── util.js",
		"└── README.md",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 4, n)
}

func TestWriterTreeFiltered(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	n := NewWriter(&buf).Tree(sampleTree(), func(f domain.FileNode) bool {
		return strings.HasSuffix(f.Name, ".js")
	})

	want := strings.Join([]string{
		"└── src/",
		"    ├── main.js",
		"    └── util.js",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 2, n)
}

func TestWriterSession(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	NewWriter(&buf).Session(&domain.RepositorySession{
		SourceURL:       "https://github.com/acme/widgets",
		Name:            "widgets",
		Owner:           "acme",
		Summary:         "A widget library.",
		Description:     "Widgets for everyone",
		PrimaryLanguage: "Go",
		StarCount:       12,
		ChunksProcessed: 5,
		LastUpdatedAt:   time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC),
		FileTree:        sampleTree(),
	})

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "acme/widgets\n────────────\n"))
	assert.Contains(t, out, "Widgets for everyone")
	assert.Contains(t, out, "Language:    Go")
	assert.Contains(t, out, "Stars:       12")
	assert.Contains(t, out, "Chunks:      5")
	assert.Contains(t, out, "Tree:        4 files, 2 directories")
	assert.Contains(t, out, "SUMMARY:\nA widget library.")
}

func TestWriterHelpers(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.Field("Empty", "")
	w.Success("saved %s", "x")
	w.Failure("lost %d", 2)
	w.Empty("nothing here")
	w.Item("- %s", "item")

	assert.Equal(t, "✓ saved x\n✗ lost 2\nnothing here\n  - item\n", buf.String())
}
