package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kittclouds/gonote/internal/ai"
	"github.com/kittclouds/gonote/internal/store"
)

var (
	rephraseStyle string
	tagsApply     bool
	templateType  string
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "AI assistance for notes",
}

// newGemini builds the Gemini client from config or exits.
func newGemini(ctx context.Context) *ai.Gemini {
	gen, err := ai.NewGemini(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.EmbedModel)
	if err != nil {
		fatal("failed to initialize AI client", err)
	}
	return gen
}

// noteContent loads the note's content or exits.
func noteContent(ctx context.Context, id string) (string, func()) {
	s, cleanup := openStore(ctx)
	n := s.Note(id)
	if n == nil {
		cleanup()
		fatal("note not found", fmt.Errorf("no note with id %s", id))
	}
	return n.Content, cleanup
}

var aiSummarizeCmd = &cobra.Command{
	Use:   "summarize <id>",
	Short: "Summarize a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		content, cleanup := noteContent(ctx, args[0])
		defer cleanup()

		out, err := newGemini(ctx).Generate(ctx, ai.SummarizePrompt(content))
		if err != nil {
			fatal("failed to summarize", err)
		}
		fmt.Println(out)
	},
}

var aiRephraseCmd = &cobra.Command{
	Use:   "rephrase <id>",
	Short: "Rewrite a note in a different style",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		content, cleanup := noteContent(ctx, args[0])
		defer cleanup()

		out, err := newGemini(ctx).Generate(ctx, ai.RephrasePrompt(content, rephraseStyle))
		if err != nil {
			fatal("failed to rephrase", err)
		}
		fmt.Println(out)
	},
}

var aiTranslateCmd = &cobra.Command{
	Use:   "translate <id> <language>",
	Short: "Translate a note",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		content, cleanup := noteContent(ctx, args[0])
		defer cleanup()

		out, err := newGemini(ctx).Generate(ctx, ai.TranslatePrompt(content, args[1]))
		if err != nil {
			fatal("failed to translate", err)
		}
		fmt.Println(out)
	},
}

var aiTagsCmd = &cobra.Command{
	Use:   "tags <id>",
	Short: "Suggest tags for a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, cleanup := openStore(ctx)
		defer cleanup()

		n := s.Note(args[0])
		if n == nil {
			fatal("note not found", fmt.Errorf("no note with id %s", args[0]))
		}

		resp, err := newGemini(ctx).Generate(ctx, ai.TagsPrompt(n.Content))
		if err != nil {
			fatal("failed to generate tags", err)
		}
		suggested := ai.ParseTags(resp)
		fmt.Println(strings.Join(suggested, ", "))

		if tagsApply {
			merged := ai.MergeTags(n.Tags, suggested)
			s.UpdateNote(ctx, n.ID, store.NotePatch{Tags: merged})
			if err := s.LastErr(); err != nil {
				fatal("failed to save tags", err)
			}
		}
	},
}

var aiTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Create a note from a generated template",
	Long:  `Generates a structured note template (meeting, project, daily or research) and stores it as a new note.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		body, err := newGemini(ctx).Generate(ctx, ai.TemplatePrompt(templateType))
		if err != nil {
			fatal("failed to generate template", err)
		}

		s, cleanup := openStore(ctx)
		defer cleanup()

		n := s.CreateNote(ctx)
		if n == nil {
			fatal("failed to create note", s.LastErr())
		}
		title := titleCase(templateType) + " Notes"
		s.UpdateNote(ctx, n.ID, store.NotePatch{Title: &title, Content: &body})
		if err := s.LastErr(); err != nil {
			fatal("failed to save note", err)
		}
		fmt.Println(n.ID)
	},
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func init() {
	rootCmd.AddCommand(aiCmd)
	aiCmd.AddCommand(aiSummarizeCmd, aiRephraseCmd, aiTranslateCmd, aiTagsCmd, aiTemplateCmd)

	aiRephraseCmd.Flags().StringVar(&rephraseStyle, "style", ai.StyleFormal, "Style: formal, informal, concise or extended")
	aiTagsCmd.Flags().BoolVar(&tagsApply, "apply", false, "Merge the suggested tags into the note")
	aiTemplateCmd.Flags().StringVar(&templateType, "type", ai.TemplateMeeting, "Template type: meeting, project, daily or research")
}
