package match

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity returns the sequence-matcher ratio of a and b in [0,1]:
// twice the number of characters in matching blocks over the combined length.
// No normalization is applied; pass keys produced by Normalize.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	// The matcher's block search is not symmetric in its arguments; fix the
	// order so Similarity(a, b) == Similarity(b, a).
	if b < a {
		a, b = b, a
	}

	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// Similar reports whether a and b reach threshold
func Similar(a, b string, threshold float64) bool {
	return Similarity(a, b) >= threshold
}
