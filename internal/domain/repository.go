// Package domain defines the core types shared by the repochat client:
// the canonical file tree, the analyzed repository session, chat messages
// and agent results.
package domain

import (
	"strings"
	"time"
)

// NodeKind distinguishes files from directories in the canonical tree.
type NodeKind string

const (
	KindFile      NodeKind = "file"
	KindDirectory NodeKind = "directory"
)

// FileNode is one entry of the canonical file tree.
// Path is the slash-joined, ancestor-inclusive identifier of the node and is
// unique within a tree. Children is only set for directories; Content is only
// set when the backend shipped the text along with the tree.
type FileNode struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Kind     NodeKind   `json:"type"`
	Children []FileNode `json:"children,omitempty"`
	Content  string     `json:"content,omitempty"`
}

// IsDir reports whether the node is a directory.
func (n FileNode) IsDir() bool {
	return n.Kind == KindDirectory
}

// Ext returns the lower-cased extension of the node name without the dot,
// or "" when the name has none.
func (n FileNode) Ext() string {
	i := strings.LastIndex(n.Name, ".")
	if i < 0 || i == len(n.Name)-1 {
		return ""
	}
	return strings.ToLower(n.Name[i+1:])
}

// RepositorySession is everything the client knows about the repository
// currently under analysis. At most one session is current at a time.
type RepositorySession struct {
	SourceURL string     `json:"url"`
	Name      string     `json:"name"`
	Owner     string     `json:"owner"`
	Summary   string     `json:"summary"`
	FileTree  []FileNode `json:"fileTree"`

	Description     string    `json:"description,omitempty"`
	PrimaryLanguage string    `json:"primaryLanguage,omitempty"`
	StarCount       int       `json:"starCount,omitempty"`
	ForkCount       int       `json:"forkCount,omitempty"`
	OpenIssuesCount int       `json:"openIssues,omitempty"`
	LastUpdatedAt   time.Time `json:"lastUpdated,omitempty"`
	ChunksProcessed int       `json:"chunksProcessed,omitempty"`
}

// FullName returns "owner/name", or just the name when the owner is unknown.
func (s *RepositorySession) FullName() string {
	if s.Owner == "" {
		return s.Name
	}
	return s.Owner + "/" + s.Name
}

// LanguageOrUnknown returns the primary language for display.
func (s *RepositorySession) LanguageOrUnknown() string {
	if s.PrimaryLanguage == "" {
		return "Unknown"
	}
	return s.PrimaryLanguage
}
