package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/render"
)

func askCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the assistant about the cached repository",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return fmt.Errorf("question is empty")
			}
			answer, err := app.client.AskQuestion(app.shutdown.Context(), question)
			if err != nil {
				return err
			}

			if app.json {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"question": question,
					"answer":   answer,
				})
			}
			return printMarkdown(cmd, answer)
		},
	}
}

func agentCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "agent <bugFinder|reviewer|docgen> <path>",
		Short:     "Run an analysis agent on one file",
		Long:      "Fetch a file of the cached repository and run the bug finder, code reviewer or doc generator on it.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: agentNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseAgentKind(args[0])
			if err != nil {
				return err
			}
			path := strings.Trim(args[1], "/")

			ctx := app.shutdown.Context()
			content, err := app.client.FetchFileContent(ctx, path)
			if err != nil {
				return err
			}
			res, err := app.client.RunAgent(ctx, kind, path, content)
			if err != nil {
				return err
			}

			if app.json {
				return printJSON(cmd.OutOrStdout(), res)
			}
			out := render.NewWriter(cmd.OutOrStdout())
			out.Header("%s: %s", res.Title, path)
			return printMarkdown(cmd, render.FormatAgentResult(res.Content))
		},
	}
}

func agentNames() []string {
	kinds := domain.AgentKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

// parseAgentKind accepts the agent id in any case, plus a few aliases.
func parseAgentKind(s string) (domain.AgentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bugfinder", "bugs", "debug":
		return domain.AgentBugFinder, nil
	case "reviewer", "review":
		return domain.AgentReviewer, nil
	case "docgen", "docs":
		return domain.AgentDocgen, nil
	}
	return "", fmt.Errorf("unknown agent %q (want one of %s)", s, strings.Join(agentNames(), ", "))
}

// printMarkdown renders text through glamour when stdout is a terminal
// and prints it unchanged otherwise.
func printMarkdown(cmd *cobra.Command, text string) error {
	out := render.NewWriter(cmd.OutOrStdout())
	if !stdoutIsTerminal() {
		out.Raw(text)
		return nil
	}
	width := 80
	if w, _, err := term.GetSize(1); err == nil && w > 0 {
		width = w
	}
	rendered, err := render.Markdown(text, render.MarkdownOptions{Width: width})
	if err != nil {
		out.Raw(text)
		return nil
	}
	out.Raw(strings.TrimRight(rendered, "\n"))
	return nil
}

var stdoutIsTerminal = func() bool {
	return term.IsTerminal(1)
}
