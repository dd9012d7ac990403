// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/taibuivan/riwayati/internal/core/novel"
	"github.com/taibuivan/riwayati/pkg/pointer"
)

func newNovelsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "novels",
		Short: "List all novels, newest first",
		Args:  cobra.NoArgs,
		RunE: a.withSetup(func(cmd *cobra.Command, _ []string) error {
			if err := a.ws.Refresh(cmd.Context()); err != nil {
				return err
			}

			novels := a.ws.Novels()
			if len(novels) == 0 {
				fmt.Fprintln(out(cmd), "No novels yet. Create one with 'riwayati novel create --title ...'.")
				return nil
			}

			table := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
			fmt.Fprintln(table, "ID\tTITLE\tAUTHOR\tCREATED")
			for _, n := range novels {
				fmt.Fprintf(table, "%d\t%s\t%s\t%s\n",
					n.ID, truncate(n.Title, 40), pointer.Val(n.Author), n.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return table.Flush()
		}),
	}
}

func newNovelCommand(a *app) *cobra.Command {
	command := &cobra.Command{
		Use:   "novel",
		Short: "Show, create or delete a novel",
	}
	command.AddCommand(newNovelShowCommand(a), newNovelCreateCommand(a), newNovelDeleteCommand(a))
	return command
}

func newNovelShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <novel-id>",
		Short: "Show a novel and its chapters",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSetup(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "novel")
			if err != nil {
				return err
			}
			if err := a.ws.SelectNovel(cmd.Context(), id); err != nil {
				return err
			}

			detail := a.ws.Novel()
			fmt.Fprintf(out(cmd), "%s\n", detail.Title)
			if author := pointer.Val(detail.Author); author != "" {
				fmt.Fprintf(out(cmd), "by %s\n", author)
			}
			if description := pointer.Val(detail.Description); description != "" {
				fmt.Fprintf(out(cmd), "\n%s\n", description)
			}

			fmt.Fprintf(out(cmd), "\n%d chapter(s)\n", len(detail.Chapters))
			table := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
			for _, chapter := range detail.Chapters {
				fmt.Fprintf(table, "  %d\t#%d\t%s\t%d chars\n",
					chapter.ID, chapter.OrderIndex, chapter.Title, utf8.RuneCountInString(chapter.Content))
			}
			return table.Flush()
		}),
	}
}

func newNovelCreateCommand(a *app) *cobra.Command {
	var title, author, description string

	command := &cobra.Command{
		Use:   "create",
		Short: "Create a novel",
		Args:  cobra.NoArgs,
		RunE: a.withSetup(func(cmd *cobra.Command, _ []string) error {
			input := novel.CreateNovelInput{Title: title}
			if cmd.Flags().Changed("author") {
				input.Author = &author
			}
			if cmd.Flags().Changed("description") {
				input.Description = &description
			}

			id, err := a.ws.CreateNovel(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Created novel %d\n", id)
			return nil
		}),
	}

	command.Flags().StringVarP(&title, "title", "t", "", "Novel title (required)")
	command.Flags().StringVarP(&author, "author", "a", "", "Author name")
	command.Flags().StringVarP(&description, "description", "d", "", "Short description")
	_ = command.MarkFlagRequired("title")
	return command
}

func newNovelDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <novel-id>",
		Short: "Delete a novel and all of its chapters",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSetup(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "novel")
			if err != nil {
				return err
			}

			deleted, err := a.ws.DeleteNovel(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(out(cmd), "Cancelled.")
				return nil
			}
			fmt.Fprintf(out(cmd), "Deleted novel %d\n", id)
			return nil
		}),
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
