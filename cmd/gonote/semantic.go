package main

import (
	"context"
	"fmt"
	"path/filepath"

	hpos "github.com/hack-pad/hackpadfs/os"
	"github.com/spf13/cobra"

	"github.com/kittclouds/gonote/pkg/semantic"
)

var semanticK int

var semanticCmd = &cobra.Command{
	Use:   "semantic",
	Short: "Embedding-based search over notes",
}

// openIndex opens the on-disk vector index next to the database.
func openIndex() *semantic.Index {
	indexPath := filepath.Join(filepath.Dir(cfg.Database.Path), "vectors.idx")
	fsys := hpos.NewFS()
	p, err := fsys.FromOSPath(indexPath)
	if err != nil {
		fatal("failed to resolve index path", err)
	}
	idx, err := semantic.NewIndex(fsys, p)
	if err != nil {
		fatal("failed to open vector index", err)
	}
	return idx
}

var semanticIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed every note into the vector index",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()
		gen := newGemini(ctx)
		idx := openIndex()

		count := 0
		for _, n := range s.AllNotes() {
			if n.Trashed() {
				continue
			}
			text := n.Title + "\n" + n.Content
			vec, err := gen.Embed(ctx, text)
			if err != nil {
				fatal("failed to embed note "+n.ID, err)
			}
			if err := idx.Add(n.ID, vec); err != nil {
				fatal("failed to index note "+n.ID, err)
			}
			count++
		}

		if err := idx.Save(); err != nil {
			fatal("failed to save vector index", err)
		}
		fmt.Printf("indexed %d notes\n", count)
	},
}

var semanticSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find notes nearest to the query",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		gen := newGemini(ctx)
		idx := openIndex()

		if idx.Size() == 0 {
			fatal("vector index is empty", fmt.Errorf("run 'gonote semantic index' first"))
		}

		vec, err := gen.Embed(ctx, args[0])
		if err != nil {
			fatal("failed to embed query", err)
		}

		ids, err := idx.Search(vec, semanticK)
		if err != nil {
			fatal("search failed", err)
		}

		s, cleanup := openStore(ctx)
		defer cleanup()
		for _, id := range ids {
			if n := s.Note(id); n != nil {
				fmt.Printf("%s  %s\n", n.ID, n.Title)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(semanticCmd)
	semanticCmd.AddCommand(semanticIndexCmd, semanticSearchCmd)

	semanticSearchCmd.Flags().IntVarP(&semanticK, "top", "k", 5, "Number of results")
}
