package filter

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the candidate closest to value, or "" when nothing is
// close enough to be a plausible typo.
func Suggest(value string, candidates []string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}

	best, bestDist := "", -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(value, strings.ToLower(cand))
		if dist > distanceLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func distanceLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
