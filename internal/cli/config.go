// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newConfigCommand(a *app) *cobra.Command {
	command := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the CLI profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective profile (file, environment and flags merged)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}

			data, err := toml.Marshal(a.profile)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "# %s\n%s", a.profilePath, data)
			return nil
		},
	}

	var force bool
	initialize := &cobra.Command{
		Use:   "init",
		Short: "Write a profile with the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.profilePath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.profilePath)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := a.setup(cmd); err != nil {
				return err
			}
			if err := a.profile.Save(a.profilePath); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Wrote %s\n", a.profilePath)
			return nil
		},
	}
	initialize.Flags().BoolVar(&force, "force", false, "Overwrite an existing profile")

	command.AddCommand(show, initialize)
	return command
}
