package mapper

import (
	"regexp"
	"strings"
)

var separatorRe = regexp.MustCompile(`[_\-\s]+`)

// Similarity scores how alike two column names are, in [0, 1]. Separators
// are stripped before comparison so "variant_price" and "variant price"
// match, and a containment boost lifts pairs where one name embeds the
// other (e.g. "price" inside "unit price nett").
func Similarity(a, b string) float64 {
	aClean := separatorRe.ReplaceAllString(a, "")
	bClean := separatorRe.ReplaceAllString(b, "")

	score := matchRatio(aClean, bClean)

	if aClean != "" && bClean != "" &&
		(strings.Contains(aClean, bClean) || strings.Contains(bClean, aClean)) {
		if score < 0.8 {
			score = 0.8
		}
	}

	return score
}

// matchRatio is 2*M / (len(a)+len(b)) where M is the length of the longest
// common subsequence of the two strings. Equal strings score 1.0, disjoint
// strings 0.0.
func matchRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return 2.0 * float64(prev[len(b)]) / float64(len(a)+len(b))
}
