// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements the riwayati command-line front end.

Every command drives a [workspace.Workspace] over the REST API, so the CLI
follows the same rules as any other client: the server owns the data and the
provider key, deletions ask for confirmation, and generated drafts are only
saved when asked to.

Commands:

	riwayati novels                         list the library
	riwayati novel show|create|delete       manage novels
	riwayati chapter show|add|edit|delete   manage chapters
	riwayati chapter draft <id>             expand a draft with the AI writer
	riwayati export <novel-id>              write a .doc, .html or .epub book
	riwayati config show|init               inspect or create the profile
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/riwayati/internal/client"
	"github.com/taibuivan/riwayati/internal/platform/constants"
	"github.com/taibuivan/riwayati/internal/workspace"
)

// Options customise a command tree. The zero value uses the real process environment.
type Options struct {
	// Environment replaces os.Environ for RIWAYATI_* overrides when non-nil.
	Environment map[string]string
}

// app is the state shared by every command of one invocation.
type app struct {
	options Options

	// Flags
	profilePath string
	server      string
	timeout     string
	yes         bool
	debug       bool

	profile *Profile
	logger  *slog.Logger
	client  *client.Client
	ws      *workspace.Workspace
}

// NewRootCommand builds the riwayati command tree.
func NewRootCommand(options Options) *cobra.Command {
	a := &app{options: options}

	root := &cobra.Command{
		Use:           "riwayati",
		Short:         "Write Arabic novels chapter by chapter",
		Long:          "riwayati manages novels and chapters on a Riwayati server, drafts chapters with AI and exports finished books.",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.profilePath, "config", DefaultProfilePath(), "Path to the TOML profile")
	flags.StringVar(&a.server, "server", "", "API base URL (overrides the profile)")
	flags.StringVar(&a.timeout, "timeout", "", "Request timeout, e.g. 30s (overrides the profile)")
	flags.BoolVarP(&a.yes, "yes", "y", false, "Do not ask for confirmation before deleting")
	flags.BoolVar(&a.debug, "debug", false, "Log requests and failures to stderr")

	root.AddCommand(
		newNovelsCommand(a),
		newNovelCommand(a),
		newChapterCommand(a),
		newExportCommand(a),
		newConfigCommand(a),
	)

	return root
}

// Execute runs the CLI against the process arguments and environment.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(Options{})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// setup loads the profile and connects the workspace. Commands call it
// from RunE so that `config` commands work without a reachable server.
func (a *app) setup(cmd *cobra.Command) error {
	profile, err := LoadProfile(a.profilePath, a.options.Environment)
	if err != nil {
		return err
	}

	// Flags win over file and environment.
	if cmd.Flags().Changed("server") {
		profile.Server = a.server
	}
	if cmd.Flags().Changed("timeout") {
		profile.Timeout = a.timeout
	}

	timeout, err := profile.RequestTimeout()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if a.debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "riwayati-cli"))

	a.profile = profile
	a.client = client.New(profile.Server, client.Options{
		Timeout:   timeout,
		UserAgent: "riwayati-cli/" + constants.AppVersion,
	})
	a.ws = workspace.New(a.client, a.confirmer(cmd), a.logger)

	a.logger.Debug("cli_configured",
		slog.String("server", profile.Server),
		slog.Duration("timeout", timeout),
	)
	return nil
}

// withSetup wraps a RunE so the workspace is ready when it runs.
func (a *app) withSetup(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(cmd); err != nil {
			return err
		}
		return run(cmd, args)
	}
}

func parseID(value, what string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, value)
	}
	return id, nil
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
