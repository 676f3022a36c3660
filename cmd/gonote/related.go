package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kittclouds/gonote/internal/ai"
	"github.com/kittclouds/gonote/internal/notes"
	"github.com/kittclouds/gonote/internal/store"
	"github.com/kittclouds/gonote/pkg/relevance"
)

var (
	relatedDialog bool
	relatedAI     bool
)

var relatedCmd = &cobra.Command{
	Use:   "related <id>",
	Short: "Suggest notes related to the given note",
	Long: `Scores every other note against the target by shared tags, content
overlap and category, and prints the best matches. With --ai the
ranking is delegated to the language model instead.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		target := s.Note(args[0])
		if target == nil {
			fatal("note not found", fmt.Errorf("no note with id %s", args[0]))
		}

		var ids []string
		if relatedAI {
			ids = aiRelated(ctx, s, target)
		} else {
			ids = heuristicRelated(s, target)
		}

		for _, id := range ids {
			if n := s.Note(id); n != nil {
				fmt.Printf("%s  %s\n", n.ID, n.Title)
			}
		}
	},
}

func heuristicRelated(s *notes.Store, target *store.Note) []string {
	var pool []relevance.Doc
	for _, n := range s.AllNotes() {
		doc := relevance.Doc{
			ID:      n.ID,
			Title:   n.Title,
			Content: n.Content,
			Tags:    n.Tags,
			Deleted: n.Trashed(),
		}
		if n.CategoryID != nil {
			doc.CategoryID = *n.CategoryID
		}
		pool = append(pool, doc)
	}

	limit := relevance.PanelLimit
	if relatedDialog {
		limit = relevance.DialogLimit
	}

	ranked := relevance.Rank(target.ID, target.Content, pool, limit)
	ids := make([]string, len(ranked))
	for i, d := range ranked {
		ids[i] = d.ID
	}
	return ids
}

func aiRelated(ctx context.Context, s *notes.Store, target *store.Note) []string {
	gen := newGemini(ctx)

	var pool []ai.RelatedDoc
	for _, n := range s.AllNotes() {
		if n.ID == target.ID || n.Trashed() {
			continue
		}
		pool = append(pool, ai.RelatedDoc{
			ID:      n.ID,
			Title:   n.Title,
			Content: n.Content,
			Tags:    n.Tags,
		})
	}

	ids, err := ai.FindRelated(ctx, gen, target.Content, pool)
	if err != nil {
		fatal("failed to find related notes", err)
	}
	return ids
}

func init() {
	rootCmd.AddCommand(relatedCmd)
	relatedCmd.Flags().BoolVar(&relatedDialog, "dialog", false, "Return the larger dialog-sized result set")
	relatedCmd.Flags().BoolVar(&relatedAI, "ai", false, "Rank with the language model")
}
