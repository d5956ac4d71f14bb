// Package suggest proposes close matches for mistyped package names.
package suggest

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// DefaultLimit is the number of suggestions attached to an error.
const DefaultLimit = 3

// Names returns up to limit candidates that fuzzily match pattern, best first.
// An exact match yields no suggestions.
func Names(pattern string, candidates []string, limit int) []string {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" || limit <= 0 {
		return nil
	}

	matches := fuzzy.Find(pattern, candidates)
	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches {
		if m.Str == pattern {
			return nil
		}
		if len(out) < limit {
			out = append(out, m.Str)
		}
	}
	return out
}

// Join renders suggestions for error metadata.
func Join(names []string) string {
	return strings.Join(names, ", ")
}
