package recommend

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// closeMatchCutoff is the minimum similarity for a fuzzy condition match.
const closeMatchCutoff = 0.8

// ClosestMatch returns the candidate most similar to word, if any reaches
// cutoff. Ties go to the lexically greater candidate.
func ClosestMatch(word string, candidates []string, cutoff float64) (string, bool) {
	if word == "" {
		return "", false
	}

	best, bestScore := "", -1.0
	m := difflib.NewMatcher(nil, chars(word))
	for _, cand := range candidates {
		m.SetSeq1(chars(cand))
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		score := m.Ratio()
		if score < cutoff {
			continue
		}
		if score > bestScore || (score == bestScore && cand > best) {
			best, bestScore = cand, score
		}
	}
	return best, bestScore >= 0
}

func chars(s string) []string {
	return strings.Split(s, "")
}
