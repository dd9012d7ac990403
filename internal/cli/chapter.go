// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/riwayati/internal/client"
	"github.com/taibuivan/riwayati/internal/workspace"
)

func newChapterCommand(a *app) *cobra.Command {
	command := &cobra.Command{
		Use:   "chapter",
		Short: "Show, add, edit, delete or draft chapters",
	}
	command.AddCommand(
		newChapterShowCommand(a),
		newChapterAddCommand(a),
		newChapterEditCommand(a),
		newChapterDeleteCommand(a),
		newChapterDraftCommand(a),
	)
	return command
}

// openChapter selects the chapter's novel and then the chapter itself.
func (a *app) openChapter(ctx context.Context, id int64) error {
	chapter, err := a.client.GetChapter(ctx, id)
	if err != nil {
		return err
	}
	if err := a.ws.SelectNovel(ctx, chapter.NovelID); err != nil {
		return err
	}
	return a.ws.SelectChapter(id)
}

// readContent loads chapter text from a file, or stdin when path is "-".
func readContent(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	return string(data), nil
}

// bufferFlags are the optional --title and --file edits shared by several commands.
type bufferFlags struct {
	title string
	file  string
}

func (f *bufferFlags) register(command *cobra.Command, fileUsage string) {
	command.Flags().StringVarP(&f.title, "title", "t", "", "Chapter title")
	command.Flags().StringVarP(&f.file, "file", "f", "", fileUsage)
}

// apply copies the given flags into the workspace buffers and reports whether any was set.
func (f *bufferFlags) apply(cmd *cobra.Command, ws *workspace.Workspace) (bool, error) {
	changed := false
	if cmd.Flags().Changed("title") {
		ws.SetTitle(f.title)
		changed = true
	}
	if cmd.Flags().Changed("file") {
		content, err := readContent(cmd, f.file)
		if err != nil {
			return false, err
		}
		ws.SetContent(content)
		changed = true
	}
	return changed, nil
}

func newChapterShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <chapter-id>",
		Short: "Print a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSetup(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "chapter")
			if err != nil {
				return err
			}

			chapter, err := a.client.GetChapter(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "%s\n\n%s\n", chapter.Title, chapter.Content)
			return nil
		}),
	}
}

func newChapterAddCommand(a *app) *cobra.Command {
	var flags bufferFlags

	command := &cobra.Command{
		Use:   "add <novel-id>",
		Short: "Append a chapter to a novel",
		Long:  "Append a chapter named after its position. --title and --file set its title and text right away.",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSetup(func(cmd *cobra.Command, args []string) error {
			novelID, err := parseID(args[0], "novel")
			if err != nil {
				return err
			}
			if err := a.ws.SelectNovel(cmd.Context(), novelID); err != nil {
				return err
			}

			chapter, err := a.ws.CreateChapter(cmd.Context())
			if err != nil {
				return err
			}

			changed, err := flags.apply(cmd, a.ws)
			if err != nil {
				return err
			}
			if changed {
				if err := a.ws.SaveChapter(cmd.Context()); err != nil {
					return err
				}
			}

			fmt.Fprintf(out(cmd), "Created chapter %d (%s)\n", chapter.ID, a.ws.Title())
			return nil
		}),
	}

	flags.register(command, "Read the chapter text from a file ('-' for stdin)")
	return command
}

func newChapterEditCommand(a *app) *cobra.Command {
	var flags bufferFlags

	command := &cobra.Command{
		Use:   "edit <chapter-id>",
		Short: "Overwrite a chapter's title and/or text",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSetup(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "chapter")
			if err != nil {
				return err
			}
			if err := a.openChapter(cmd.Context(), id); err != nil {
				return err
			}

			changed, err := flags.apply(cmd, a.ws)
			if err != nil {
				return err
			}
			if !changed {
				return errors.New("nothing to change: pass --title and/or --file")
			}

			if err := a.ws.SaveChapter(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Saved chapter %d\n", id)
			return nil
		}),
	}

	flags.register(command, "Read the new chapter text from a file ('-' for stdin)")
	return command
}

func newChapterDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <chapter-id>",
		Short: "Delete a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSetup(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "chapter")
			if err != nil {
				return err
			}

			// A chapter that is already gone is not an error: deletes are idempotent.
			if err := a.openChapter(cmd.Context(), id); err != nil && !client.IsNotFound(err) {
				return err
			}

			deleted, err := a.ws.DeleteChapter(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(out(cmd), "Cancelled.")
				return nil
			}
			fmt.Fprintf(out(cmd), "Deleted chapter %d\n", id)
			return nil
		}),
	}
}

func newChapterDraftCommand(a *app) *cobra.Command {
	var (
		flags  bufferFlags
		save   bool
		output string
	)

	command := &cobra.Command{
		Use:   "draft <chapter-id>",
		Short: "Expand a short draft into a full chapter with AI",
		Long: "Send the chapter's draft (its stored text, or --file) to the server's AI writer.\n" +
			"The result is printed, written to --output, or saved with --save.",
		Args: cobra.ExactArgs(1),
		RunE: a.withSetup(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "chapter")
			if err != nil {
				return err
			}
			if err := a.openChapter(cmd.Context(), id); err != nil {
				return err
			}
			if _, err := flags.apply(cmd, a.ws); err != nil {
				return err
			}

			if err := a.ws.Generate(cmd.Context()); err != nil {
				if errors.Is(err, workspace.ErrDraftTooShort) {
					return errors.New(draftTooShortHint)
				}
				return err
			}

			if save {
				if err := a.ws.SaveChapter(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved chapter %d\n", id)
			}

			if output != "" {
				return os.WriteFile(output, []byte(a.ws.Content()), 0o644)
			}
			if !save {
				fmt.Fprintln(out(cmd), a.ws.Content())
			}
			return nil
		}),
	}

	flags.register(command, "Read the draft from a file ('-' for stdin) instead of the stored text")
	command.Flags().BoolVar(&save, "save", false, "Save the generated text to the chapter")
	command.Flags().StringVarP(&output, "output", "o", "", "Write the generated text to a file")
	return command
}

const draftTooShortHint = "draft too short: write at least 3 words so the AI can follow your idea"
