package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kittclouds/gonote/internal/notes"
	"github.com/kittclouds/gonote/internal/store"
)

var (
	listJSON   bool
	listFilter string
	listQuery  string

	editTitle    string
	editContent  string
	editTags     string
	editCategory string
	editNoCat    bool
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in the current view",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		if cmd.Flags().Changed("filter") {
			s.SetFilter(notes.Filter(listFilter))
		}
		if cmd.Flags().Changed("query") {
			s.SetSearchQuery(listQuery)
		}

		visible := s.VisibleNotes()
		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(visible); err != nil {
				fatal("failed to encode notes", err)
			}
			return
		}

		for _, n := range visible {
			marker := " "
			if n.Favorite {
				marker = "*"
			}
			fmt.Printf("%s %s  %s\n", marker, n.ID, n.Title)
		}
	},
}

var noteCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an empty note",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		n := s.CreateNote(ctx)
		if n == nil {
			fatal("failed to create note", s.LastErr())
		}
		fmt.Println(n.ID)
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		n := s.Note(args[0])
		if n == nil {
			fatal("note not found", fmt.Errorf("no note with id %s", args[0]))
		}

		fmt.Printf("Title:   %s\n", n.Title)
		if len(n.Tags) > 0 {
			fmt.Printf("Tags:    %s\n", strings.Join(n.Tags, ", "))
		}
		if n.CategoryID != nil {
			fmt.Printf("Category: %s\n", *n.CategoryID)
		}
		fmt.Printf("Updated: %s\n", time.UnixMilli(n.UpdatedAt).Format(time.RFC3339))
		if n.Trashed() {
			fmt.Println("Status:  in trash")
		}
		fmt.Printf("\n%s\n", n.Content)
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a note's fields",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		if s.Note(args[0]) == nil {
			fatal("note not found", fmt.Errorf("no note with id %s", args[0]))
		}

		var patch store.NotePatch
		if cmd.Flags().Changed("title") {
			patch.Title = &editTitle
		}
		if cmd.Flags().Changed("content") {
			patch.Content = &editContent
		}
		if cmd.Flags().Changed("tags") {
			patch.Tags = splitTags(editTags)
		}
		if editNoCat {
			patch.ClearCategory = true
		} else if cmd.Flags().Changed("category") {
			patch.CategoryID = &editCategory
		}

		s.UpdateNote(ctx, args[0], patch)
		if err := s.LastErr(); err != nil {
			fatal("failed to save note", err)
		}
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Move a note to the trash",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		s.DeleteNote(ctx, args[0])
		if err := s.LastErr(); err != nil {
			fatal("failed to delete note", err)
		}
	},
}

var noteRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a note from the trash",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		s.RestoreNote(ctx, args[0])
		if err := s.LastErr(); err != nil {
			fatal("failed to restore note", err)
		}
	},
}

var noteDuplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Copy a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		n := s.DuplicateNote(ctx, args[0])
		if n == nil {
			fatal("failed to duplicate note", s.LastErr())
		}
		fmt.Println(n.ID)
	},
}

var noteFavoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle a note's favorite flag",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		s.ToggleFavorite(ctx, args[0])
		if err := s.LastErr(); err != nil {
			fatal("failed to toggle favorite", err)
		}
	},
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteListCmd, noteCreateCmd, noteShowCmd, noteEditCmd,
		noteDeleteCmd, noteRestoreCmd, noteDuplicateCmd, noteFavoriteCmd)

	noteListCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	noteListCmd.Flags().StringVar(&listFilter, "filter", "", "View filter: all, favorites, trash or category:<id>")
	noteListCmd.Flags().StringVar(&listQuery, "query", "", "Search query")

	noteEditCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	noteEditCmd.Flags().StringVar(&editContent, "content", "", "New content")
	noteEditCmd.Flags().StringVar(&editTags, "tags", "", "Comma-separated tags")
	noteEditCmd.Flags().StringVar(&editCategory, "category", "", "Category id")
	noteEditCmd.Flags().BoolVar(&editNoCat, "no-category", false, "Detach the note from its category")
}
