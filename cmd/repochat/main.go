// Package main provides the repochat CLI entrypoint.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joss/repochat/internal/config"
	"github.com/joss/repochat/internal/gateway"
	"github.com/joss/repochat/internal/logging"
	"github.com/joss/repochat/internal/render"
	"github.com/joss/repochat/internal/runtime"
	"github.com/joss/repochat/internal/store"
	"github.com/joss/repochat/internal/tui"
)

var version = "0.1.0"

func main() {
	root, app := newRootCmd()
	err := root.Execute()
	app.close()
	if err != nil {
		exitOnError(err)
	}
}

// cli holds what every command needs. setup fills it before a command
// runs and close releases it once Execute returns.
type cli struct {
	env      *config.RepochatEnv
	paths    *config.Paths
	sessions store.SessionStore
	client   *gateway.Client
	shutdown *runtime.ShutdownManager
	stopSig  func()
	log      *logging.Logger

	backend string
	tab     string
	json    bool
}

func newRootCmd() (*cobra.Command, *cli) {
	app := &cli{}

	root := &cobra.Command{
		Use:   "repochat [url]",
		Short: "Chat with a GitHub repository from the terminal",
		Long: `repochat: analyze a GitHub repository, browse its files and ask questions about the code.

Usage modes:
  repochat              Start the interactive UI
  repochat <url>        Start the interactive UI and analyze url
  repochat <command>    Run a single command (see below)`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			url := ""
			if len(args) > 0 {
				url = args[0]
			}
			return app.runTUI(url)
		},
	}

	root.PersistentFlags().StringVar(&app.backend, "backend", "", "Analysis backend URL (overrides REPOCHAT_BACKEND_URL)")
	root.PersistentFlags().StringVar(&app.tab, "tab", "", "Session cache tab id (overrides REPOCHAT_TAB_ID)")
	root.PersistentFlags().BoolVar(&app.json, "json", false, "Output as JSON")

	root.AddGroup(
		&cobra.Group{ID: "repo", Title: "Repository:"},
		&cobra.Group{ID: "assistant", Title: "Assistant:"},
		&cobra.Group{ID: "local", Title: "Local state:"},
	)

	for _, c := range []*cobra.Command{analyzeCmd(app), treeCmd(app), viewCmd(app)} {
		c.GroupID = "repo"
		root.AddCommand(c)
	}
	for _, c := range []*cobra.Command{askCmd(app), agentCmd(app)} {
		c.GroupID = "assistant"
		root.AddCommand(c)
	}
	for _, c := range []*cobra.Command{sessionCmd(app), configCmd(app)} {
		c.GroupID = "local"
		root.AddCommand(c)
	}
	root.AddCommand(versionCmd())

	return root, app
}

// needsBackend reports whether cmd talks to the session cache or the
// backend. Local-only commands skip the setup.
func needsBackend(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "help", "config":
			return false
		}
	}
	return true
}

func (c *cli) setup(cmd *cobra.Command) error {
	c.paths = config.GetPaths()
	env := *config.Env()
	c.env = &env
	if err := config.LoadError(); err != nil {
		render.Stderr().Failure("%v", err)
	}
	if v := strings.TrimSpace(c.backend); v != "" {
		c.env.BackendURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(c.tab); v != "" {
		c.env.TabID = v
	}

	if !needsBackend(cmd) {
		return nil
	}

	c.shutdown = runtime.NewShutdownManager(runtime.DefaultShutdownTimeout)
	c.stopSig = c.shutdown.ListenForSignals()

	if err := c.setupLogging(cmd.Parent() == nil); err != nil {
		return err
	}
	c.log = logging.New("cli").WithTab(c.env.TabID)

	if err := config.EnsureDir(c.paths.Data); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	sessions, err := store.Open(c.shutdown.Context(), store.Options{
		Kind: store.Kind(c.env.Store),
		Path: c.paths.SessionDB,
		Tab:  c.env.TabID,
		TTL:  c.env.SessionTTL,
	})
	if err != nil {
		return fmt.Errorf("open session cache: %w", err)
	}
	c.sessions = sessions
	c.shutdown.RegisterCloser("session-store", sessions)

	c.client = gateway.New(
		gateway.ConfigFromEnv(c.env),
		gateway.NewHTTPClient(c.env.HTTPTimeout),
		sessions,
		logging.New("gateway").WithTab(c.env.TabID),
	)
	return nil
}

// setupLogging sends events to the log file. The TUI owns the screen, so
// it never logs to stderr; other commands mirror to stderr in debug mode.
func (c *cli) setupLogging(interactive bool) error {
	if c.env.Debug {
		logging.SetLevel(logging.LevelDebug)
	}
	if c.env.Debug && !interactive {
		logging.SetOutput(os.Stderr)
		return nil
	}
	f, err := logging.OpenFile(c.paths.LogFile)
	if err != nil {
		// logging is best effort
		logging.SetOutput(nil)
		return nil
	}
	c.shutdown.RegisterCloser("log-file", f)
	return nil
}

func (c *cli) close() {
	if c.stopSig != nil {
		c.stopSig()
		c.stopSig = nil
	}
	if c.shutdown == nil {
		return
	}
	if err := c.shutdown.Shutdown(); err != nil {
		render.Stderr().Failure("shutdown: %v", err)
	}
	c.shutdown = nil
}

func (c *cli) runTUI(url string) error {
	if !tui.IsTerminal() {
		return tui.ErrNotTerminal
	}

	ctx := c.shutdown.Context()
	sess, err := c.sessions.Load(ctx)
	if err != nil && !store.IsNotFound(err) {
		c.log.Warn("session_restore_failed", nil, err)
	}

	return tui.Run(tui.Options{
		Context:       ctx,
		Backend:       c.client,
		AgentsEnabled: c.env.AgentsEnabled,
		DownloadDir:   c.env.DownloadDir,
		Session:       sess,
		InitialURL:    url,
		Logger:        logging.New("tui").WithTab(c.env.TabID),
	})
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "repochat %s\n", version)
		},
	}
}
