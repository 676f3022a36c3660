package ai

import (
	"context"
	"fmt"
	"strings"
)

// maxRelated caps how many related note ids are returned.
const maxRelated = 5

// RelatedDoc is one candidate note offered to the model.
type RelatedDoc struct {
	ID      string
	Title   string
	Content string
	Tags    []string
}

// FindRelated asks the generator which notes in the pool are most
// similar to the given content and returns their ids, filtered to ids
// actually present in the pool.
func FindRelated(ctx context.Context, gen TextGenerator, content string, pool []RelatedDoc) ([]string, error) {
	if len(pool) == 0 {
		return nil, nil
	}

	resp, err := gen.Generate(ctx, RelatedPrompt(content, pool))
	if err != nil {
		return nil, fmt.Errorf("find related notes: %w", err)
	}

	known := make(map[string]bool, len(pool))
	for _, d := range pool {
		known[d.ID] = true
	}

	ids := make([]string, 0, maxRelated)
	for _, part := range strings.Split(resp, ",") {
		id := cleanID(part)
		if id == "" || !known[id] {
			continue
		}
		ids = append(ids, id)
		if len(ids) == maxRelated {
			break
		}
	}
	return ids, nil
}

// cleanID strips everything except letters, digits and hyphens.
func cleanID(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
