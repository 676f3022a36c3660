// Package ai wraps the external text-generation collaborator: prompt
// construction for the note assist operations, response parsing, and
// a Gemini-backed client.
package ai

import "context"

// TextGenerator is the interface for blocking text generation calls.
// A single prompt in, the generated text out; no streaming.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder produces an embedding vector for a text, for the semantic
// note index.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
