package render

import (
	"fmt"

	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/filetree"
)

// Session writes the repository info block shown after an analysis.
func (w *Writer) Session(sess *domain.RepositorySession) {
	w.Header(sess.FullName())
	if sess.Description != "" {
		w.Raw(sess.Description)
	}
	w.Line()
	w.Field("URL", sess.SourceURL)
	w.Field("Language", sess.LanguageOrUnknown())
	w.Field("Stars", sess.StarCount)
	w.Field("Forks", sess.ForkCount)
	w.Field("Issues", sess.OpenIssuesCount)
	if sess.ChunksProcessed > 0 {
		w.Field("Chunks", sess.ChunksProcessed)
	}
	if !sess.LastUpdatedAt.IsZero() {
		w.Field("Updated", sess.LastUpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	files, dirs := filetree.Count(sess.FileTree)
	w.Field("Tree", fmt.Sprintf("%d files, %d directories", files, dirs))

	if sess.Summary != "" {
		w.Section("Summary")
		w.Raw(sess.Summary)
	}
}

// Tree writes nodes as an indented tree, directories first. keep, when
// non-nil, filters files; directories are shown only if they contain a
// kept file.
func (w *Writer) Tree(nodes []domain.FileNode, keep func(domain.FileNode) bool) int {
	return w.tree(filetree.Sorted(nodes), "", keep)
}

func (w *Writer) tree(nodes []domain.FileNode, prefix string, keep func(domain.FileNode) bool) int {
	visible := make([]domain.FileNode, 0, len(nodes))
	for _, n := range nodes {
		if keep == nil || (n.IsDir() && hasKept(n.Children, keep)) || (!n.IsDir() && keep(n)) {
			visible = append(visible, n)
		}
	}

	shown := 0
	for i, n := range visible {
		branch, next := "├── ", "│   "
		if i == len(visible)-1 {
			branch, next = "└── ", "    "
		}
		if n.IsDir() {
			w.Print("%s%s%s/\n", prefix, branch, n.Name)
			shown += w.tree(n.Children, prefix+next, keep)
			continue
		}
		w.Print("%s%s%s\n", prefix, branch, n.Name)
		shown++
	}
	return shown
}

func hasKept(nodes []domain.FileNode, keep func(domain.FileNode) bool) bool {
	for _, n := range filetree.Files(nodes) {
		if keep(n) {
			return true
		}
	}
	return false
}
