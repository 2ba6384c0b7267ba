package main

import (
	"github.com/spf13/cobra"

	"github.com/joss/repochat/internal/render"
	"github.com/joss/repochat/internal/store"
)

func sessionCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect the session cache of this tab",
	}

	// repochat session show
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the cached repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.sessions.Load(app.shutdown.Context())
			if store.IsNotFound(err) {
				if app.json {
					return printJSON(cmd.OutOrStdout(), nil)
				}
				render.NewWriter(cmd.OutOrStdout()).Empty("No repository cached for tab " + app.sessions.Tab())
				return nil
			}
			if err != nil {
				return err
			}
			if app.json {
				return printJSON(cmd.OutOrStdout(), sess)
			}
			out := render.NewWriter(cmd.OutOrStdout())
			out.Session(sess)
			out.Line()
			out.Field("Tab", app.sessions.Tab())
			return nil
		},
	}

	// repochat session clear
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop the cached repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.sessions.Clear(app.shutdown.Context()); err != nil {
				return err
			}
			if app.json {
				return printJSON(cmd.OutOrStdout(), map[string]string{"tab": app.sessions.Tab(), "status": "cleared"})
			}
			render.NewWriter(cmd.OutOrStdout()).Success("Cleared session cache for tab %s", app.sessions.Tab())
			return nil
		},
	}

	cmd.AddCommand(showCmd, clearCmd)
	return cmd
}
