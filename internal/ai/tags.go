package ai

import "strings"

const (
	maxTagLen = 30
	maxTags   = 5
)

// ParseTags splits a comma-separated model response into clean tags.
// Quotes are stripped, empty and oversized entries are dropped, and at
// most maxTags are returned.
func ParseTags(response string) []string {
	parts := strings.Split(response, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(p)
		tag = strings.Trim(tag, `"'`)
		if tag == "" || len(tag) >= maxTagLen {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}

// MergeTags appends the new tags to the existing ones, dropping
// case-insensitive duplicates and preserving order.
func MergeTags(existing, added []string) []string {
	seen := make(map[string]bool, len(existing)+len(added))
	merged := make([]string, 0, len(existing)+len(added))
	for _, t := range existing {
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, t)
	}
	for _, t := range added {
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, t)
	}
	return merged
}
