// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taibuivan/riwayati/internal/export"
)

func newExportCommand(a *app) *cobra.Command {
	var format, outputDir string

	command := &cobra.Command{
		Use:   "export <novel-id>",
		Short: "Export a novel as a .doc, .html or .epub book",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSetup(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "novel")
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("format") {
				format = a.profile.Format
			}
			if !cmd.Flags().Changed("output-dir") {
				outputDir = a.profile.OutputDir
			}

			parsed, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			if err := a.ws.SelectNovel(cmd.Context(), id); err != nil {
				return err
			}
			file, err := a.ws.Export(parsed)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			path := filepath.Join(outputDir, file.Name)
			if err := os.WriteFile(path, file.Data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			fmt.Fprintf(out(cmd), "Wrote %s (%d chapters)\n", path, len(a.ws.Novel().Chapters))
			return nil
		}),
	}

	command.Flags().StringVar(&format, "format", "doc", "Output format: doc, html or epub")
	command.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory to write the book to")
	return command
}
