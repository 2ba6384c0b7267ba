package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joss/repochat/internal/config"
	"github.com/joss/repochat/internal/render"
)

func configCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	// repochat config show
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.env
			if app.json {
				return printJSON(cmd.OutOrStdout(), effectiveConfig(env, app.paths))
			}
			out := render.NewWriter(cmd.OutOrStdout())
			out.Header("repochat configuration")
			for _, kv := range configFields(env, app.paths) {
				out.Field(kv[0], kv[1])
			}
			return nil
		},
	}

	// repochat config init
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.paths.ConfigFile
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteFile(path, fileConfigFrom(app.env)); err != nil {
				return err
			}
			render.NewWriter(cmd.OutOrStdout()).Success("Wrote %s", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	cmd.AddCommand(showCmd, initCmd)
	return cmd
}

func configFields(env *config.RepochatEnv, p *config.Paths) [][2]string {
	token := "(unset)"
	if env.GitHubToken != "" {
		token = "(set)"
	}
	return [][2]string{
		{"Backend", env.BackendURL},
		{"GitHub API", env.GitHubAPIURL},
		{"GitHub token", token},
		{"Tab", env.TabID},
		{"Timeout", env.HTTPTimeout.String()},
		{"Session TTL", env.SessionTTL.String()},
		{"Agents", fmt.Sprint(env.AgentsEnabled)},
		{"Store", env.Store},
		{"Downloads", env.DownloadDir},
		{"Config file", p.ConfigFile},
		{"Log file", p.LogFile},
	}
}

func effectiveConfig(env *config.RepochatEnv, p *config.Paths) map[string]string {
	out := make(map[string]string)
	for _, kv := range configFields(env, p) {
		out[kv[0]] = kv[1]
	}
	return out
}

// fileConfigFrom captures the persistable part of env. The token and the
// debug flag stay out of the file.
func fileConfigFrom(env *config.RepochatEnv) *config.FileConfig {
	agents := env.AgentsEnabled
	fc := &config.FileConfig{
		BackendURL:    env.BackendURL,
		GitHubAPIURL:  env.GitHubAPIURL,
		SessionTTL:    env.SessionTTL.String(),
		AgentsEnabled: &agents,
		Store:         env.Store,
		DownloadDir:   env.DownloadDir,
	}
	if env.HTTPTimeout > 0 {
		fc.HTTPTimeout = env.HTTPTimeout.String()
	}
	return fc
}
