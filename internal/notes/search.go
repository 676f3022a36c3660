package notes

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/kittclouds/gonote/internal/store"
)

// matcher holds a compiled multi-pattern automaton for one search
// query. A note matches when every query token occurs somewhere in its
// title, content or tags.
type matcher struct {
	ac       ahocorasick.AhoCorasick
	patterns int
}

// newMatcher compiles the query into a matcher. Empty queries return
// nil, meaning "match everything". Duplicate tokens collapse into one
// pattern so a repeated word imposes the same requirement once.
func newMatcher(query string) *matcher {
	var tokens []string
	dedup := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		if dedup[tok] {
			continue
		}
		dedup[tok] = true
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 {
		return nil
	}

	// StandardMatch so overlapping occurrences are all reported: with a
	// leftmost kind, "meeting" would suppress "meet" at the same site
	// and the shorter token would wrongly count as absent.
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchKind:            ahocorasick.StandardMatch,
	})
	ac := builder.Build(tokens)

	return &matcher{ac: ac, patterns: len(tokens)}
}

// matches runs the automaton over the note's searchable text and checks
// that every pattern was hit at least once.
func (m *matcher) matches(n *store.Note) bool {
	if m == nil {
		return true
	}

	haystack := n.Title + "\n" + n.Content + "\n" + strings.Join(n.Tags, "\n")

	seen := make([]bool, m.patterns)
	found := 0
	iter := m.ac.IterOverlapping(haystack)
	for match := iter.Next(); match != nil; match = iter.Next() {
		if !seen[match.Pattern()] {
			seen[match.Pattern()] = true
			found++
			if found == m.patterns {
				return true
			}
		}
	}
	return false
}
