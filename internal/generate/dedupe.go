package generate

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/carousel/internal/llm"
)

// duplicateThreshold is the title similarity at which a later scene is
// considered a repeat of an earlier one.
const duplicateThreshold = 0.85

// dedupeScenes keeps the first of any run of near-identical scene titles.
// Untitled scenes are always kept.
func dedupeScenes(scenes []llm.Scene) []llm.Scene {
	out := make([]llm.Scene, 0, len(scenes))
	for _, s := range scenes {
		dup := false
		for _, kept := range out {
			if titleSimilarity(s.Title, kept.Title) >= duplicateThreshold {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	return out
}

// titleSimilarity is 1 - normalised edit distance, case-insensitive.
func titleSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
