// internal/rules/rank.go
package rules

import (
	"sort"

	"github.com/solatis/playcall/internal/types"
)

// Rank orders matched rules by ascending priority and truncates to topK.
// Stable sort: equal-priority rules keep their relative catalog order, so a
// pass over identical inputs always presents the same suggestions.
// Returns a non-nil slice; fewer than topK matches are returned as-is.
func Rank(matched []types.Rule, topK int) []types.Suggestion {
	if topK <= 0 {
		topK = types.DefaultTopK
	}

	ordered := make([]types.Rule, len(matched))
	copy(ordered, matched)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	if len(ordered) > topK {
		ordered = ordered[:topK]
	}

	out := make([]types.Suggestion, 0, len(ordered))
	for _, r := range ordered {
		out = append(out, r.Suggestion())
	}
	return out
}
