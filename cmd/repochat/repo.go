package main

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/filetree"
	"github.com/joss/repochat/internal/render"
)

func analyzeCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze a GitHub repository",
		Long:  "Submit a repository to the analysis backend and cache the result for this tab.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.client.AnalyzeRepository(app.shutdown.Context(), args[0])
			if err != nil {
				return err
			}
			if app.json {
				return printJSON(cmd.OutOrStdout(), sess)
			}
			out := render.NewWriter(cmd.OutOrStdout())
			out.Session(sess)
			out.Line()
			out.Success("Cached for tab %s", app.env.TabID)
			return nil
		},
	}
}

func treeCmd(app *cli) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the file tree of the cached repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keep, err := globFilter(pattern)
			if err != nil {
				return err
			}
			sess, err := app.client.CurrentSession(app.shutdown.Context())
			if err != nil {
				return err
			}

			if app.json {
				var files []string
				for _, f := range filetree.Files(sess.FileTree) {
					if keep == nil || keep(f) {
						files = append(files, f.Path)
					}
				}
				return printJSON(cmd.OutOrStdout(), files)
			}

			out := render.NewWriter(cmd.OutOrStdout())
			out.Header(sess.FullName())
			if n := out.Tree(sess.FileTree, keep); n == 0 {
				out.Empty("no matching files")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&pattern, "glob", "g", "", "Only show files matching a doublestar pattern (e.g. 'src/**/*.go')")
	return cmd
}

// globFilter returns a file filter for pattern, or nil for no filter.
func globFilter(pattern string) (func(domain.FileNode) bool, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return func(n domain.FileNode) bool {
		ok, _ := doublestar.Match(pattern, n.Path)
		return ok
	}, nil
}

func viewCmd(app *cli) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "view <path>",
		Short: "Print a file of the cached repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.Trim(args[0], "/")
			content, err := app.client.FetchFileContent(app.shutdown.Context(), path)
			if err != nil {
				return err
			}

			if app.json {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"path":     path,
					"language": render.DetectLanguage(path),
					"content":  content,
				})
			}

			out := render.NewWriter(cmd.OutOrStdout())
			if plain {
				out.Raw(content)
				return nil
			}
			highlighted, err := render.Highlight(content, path, render.CodeOptions{LineNumbers: true})
			if err != nil {
				highlighted = content
			}
			out.Header(path)
			out.Raw(highlighted)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print raw content without highlighting")
	return cmd
}
