package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Default model names.
const (
	DefaultModel      = "gemini-2.5-flash"
	DefaultEmbedModel = "gemini-embedding-001"
)

// Gemini implements TextGenerator and Embedder over the Gemini API.
type Gemini struct {
	client     *genai.Client
	model      string
	embedModel string
}

// NewGemini creates a Gemini client. Empty model names fall back to
// the defaults.
func NewGemini(ctx context.Context, apiKey, model, embedModel string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is not set")
	}
	if model == "" {
		model = DefaultModel
	}
	if embedModel == "" {
		embedModel = DefaultEmbedModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}

	return &Gemini{client: client, model: model, embedModel: embedModel}, nil
}

// Generate sends the prompt and returns the response text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}
	return resp.Text(), nil
}

// Embed returns the embedding vector for the text.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: embed: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("gemini: embed: empty response")
	}
	return resp.Embeddings[0].Values, nil
}

// Compile-time interface checks
var (
	_ TextGenerator = (*Gemini)(nil)
	_ Embedder      = (*Gemini)(nil)
)
