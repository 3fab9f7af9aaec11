// Package suggest produces "did you mean" hints for parse errors by fuzzy
// matching an offending identifier against a caller-supplied candidate set
// (the parser passes the full keyword list).
package suggest

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Closest returns the best fuzzy match for target among candidates, or ""
// if candidates is empty or nothing ranks as close enough to be useful.
func Closest(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	best, bestDist := "", -1
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(strings.ToLower(target), strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	// A distance as large as the target itself means the match shares
	// nothing with it; don't suggest noise.
	if bestDist >= len(target) {
		return ""
	}
	return best
}
