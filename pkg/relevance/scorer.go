// Package relevance ranks candidate notes against a target note using
// a simple additive heuristic over shared tags, content token overlap
// and category membership. Pure and reentrant; no I/O, no shared state.
package relevance

import (
	"sort"
	"strings"
)

// Result set limits per surface.
const (
	PanelLimit  = 5 // inline related-notes panel
	DialogLimit = 8 // related-notes dialog
)

// Scoring weights.
const (
	tagWeight      = 3.0
	tokenWeight    = 0.5
	categoryWeight = 2.0

	// Tokens this short are dropped during tokenization. Filters
	// short/stop-ish words without needing a stopword list.
	minTokenLen = 4
)

// Doc is a scoring candidate. CategoryID is "" when the note has no
// category. Deleted docs never appear in results.
type Doc struct {
	ID         string
	Title      string
	Content    string
	Tags       []string
	CategoryID string
	Deleted    bool
}

// Tokenize lowercases content and splits it on whitespace, keeping
// only tokens of at least minTokenLen characters. The token list is NOT
// deduplicated: a word appearing twice contributes twice downstream.
func Tokenize(content string) []string {
	fields := strings.Fields(strings.ToLower(content))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Rank scores every candidate in pool against the target note and
// returns the top candidates, most relevant first, at most limit.
//
// The target's tag set and category come from its entry in the pool;
// content is passed separately because the caller may hold unsaved
// edits newer than the pooled copy. If the target is not in the pool
// the result is empty; that is not an error.
func Rank(targetID, content string, pool []Doc, limit int) []Doc {
	var target *Doc
	for i := range pool {
		if pool[i].ID == targetID {
			target = &pool[i]
			break
		}
	}
	if target == nil {
		return nil
	}

	tokens := Tokenize(content)
	targetTags := make(map[string]bool, len(target.Tags))
	for _, tag := range target.Tags {
		targetTags[strings.ToLower(tag)] = true
	}

	type scored struct {
		doc   Doc
		score float64
	}

	var results []scored
	for i := range pool {
		c := pool[i]
		if c.ID == targetID || c.Deleted {
			continue
		}

		score := 0.0

		// Shared tags, case-insensitive exact match.
		for _, tag := range c.Tags {
			if targetTags[strings.ToLower(tag)] {
				score += tagWeight
			}
		}

		// Target tokens occurring anywhere in the candidate content.
		// Bag semantics: repeated target tokens count repeatedly.
		candidate := strings.ToLower(c.Content)
		for _, tok := range tokens {
			if strings.Contains(candidate, tok) {
				score += tokenWeight
			}
		}

		// Same non-empty category.
		if c.CategoryID != "" && c.CategoryID == target.CategoryID {
			score += categoryWeight
		}

		if score > 0 {
			results = append(results, scored{doc: c, score: score})
		}
	}

	// Stable: ties keep pool iteration order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	docs := make([]Doc, len(results))
	for i, r := range results {
		docs[i] = r.doc
	}
	return docs
}
