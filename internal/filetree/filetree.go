// Package filetree turns the backend's loosely shaped directory listing into
// the canonical domain.FileNode tree and offers read-only lookups over it.
package filetree

import (
	"sort"

	"github.com/joss/repochat/internal/domain"
)

// backendFolder is the kind value the analysis backend uses for directories.
// Any other value is treated as a file.
const backendFolder = "folder"

// Transform converts a decoded JSON tree into the canonical node sequence.
// The input is the root object; its "children" array becomes the returned
// slice. Missing or malformed input yields an empty slice, never an error.
func Transform(raw any) []domain.FileNode {
	return transform(raw, "")
}

func transform(raw any, prefix string) []domain.FileNode {
	obj, ok := raw.(map[string]any)
	if !ok {
		return []domain.FileNode{}
	}
	children, ok := obj["children"].([]any)
	if !ok {
		return []domain.FileNode{}
	}

	nodes := make([]domain.FileNode, 0, len(children))
	for _, c := range children {
		child, ok := c.(map[string]any)
		if !ok {
			continue
		}
		name, ok := child["name"].(string)
		if !ok || name == "" {
			continue
		}

		node := domain.FileNode{
			Name: name,
			Path: prefix + name,
			Kind: domain.KindFile,
		}
		if kind, _ := child["type"].(string); kind == backendFolder {
			node.Kind = domain.KindDirectory
			node.Children = transform(child, node.Path+"/")
		}
		if content, ok := child["content"].(string); ok {
			node.Content = content
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// WalkFunc is called for every node in depth-first order. Returning false
// skips the node's children.
type WalkFunc func(node domain.FileNode, depth int) bool

// Walk visits nodes depth-first, parents before children.
func Walk(nodes []domain.FileNode, fn WalkFunc) {
	walk(nodes, 0, fn)
}

func walk(nodes []domain.FileNode, depth int, fn WalkFunc) {
	for _, n := range nodes {
		if fn(n, depth) && n.IsDir() {
			walk(n.Children, depth+1, fn)
		}
	}
}

// Find returns the node with the given path.
func Find(nodes []domain.FileNode, path string) (domain.FileNode, bool) {
	var found domain.FileNode
	var ok bool
	Walk(nodes, func(n domain.FileNode, _ int) bool {
		if ok {
			return false
		}
		if n.Path == path {
			found, ok = n, true
			return false
		}
		return true
	})
	return found, ok
}

// Files returns every file node in the tree, in walk order.
func Files(nodes []domain.FileNode) []domain.FileNode {
	var files []domain.FileNode
	Walk(nodes, func(n domain.FileNode, _ int) bool {
		if !n.IsDir() {
			files = append(files, n)
		}
		return true
	})
	return files
}

// Count returns the number of files and directories in the tree.
func Count(nodes []domain.FileNode) (files, dirs int) {
	Walk(nodes, func(n domain.FileNode, _ int) bool {
		if n.IsDir() {
			dirs++
		} else {
			files++
		}
		return true
	})
	return files, dirs
}

// Sorted returns a copy of the tree with directories first and names in
// ascending order at every level. The input is left untouched.
func Sorted(nodes []domain.FileNode) []domain.FileNode {
	out := make([]domain.FileNode, len(nodes))
	copy(out, nodes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDir() != out[j].IsDir() {
			return out[i].IsDir()
		}
		return out[i].Name < out[j].Name
	})
	for i := range out {
		if out[i].IsDir() {
			out[i].Children = Sorted(out[i].Children)
		}
	}
	return out
}
