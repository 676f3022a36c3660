package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		for _, c := range s.Categories() {
			fmt.Printf("%s  %s\n", c.ID, c.Name)
		}
	},
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		s.CreateCategory(ctx, args[0])
		if err := s.LastErr(); err != nil {
			fatal("failed to create category", err)
		}
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		s.UpdateCategory(ctx, args[0], args[1])
		if err := s.LastErr(); err != nil {
			fatal("failed to rename category", err)
		}
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category, detaching its notes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		s.DeleteCategory(ctx, args[0])
		if err := s.LastErr(); err != nil {
			fatal("failed to delete category", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryListCmd, categoryCreateCmd, categoryRenameCmd, categoryDeleteCmd)
}
