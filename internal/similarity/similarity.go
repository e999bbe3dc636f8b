// Package similarity scores how alike two free-text messages are.
package similarity

import (
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"
)

// DefaultThreshold is the ratio a candidate must strictly exceed to match.
const DefaultThreshold = 0.80

var folder = cases.Fold()

// Fold returns the caseless form of s used for comparison.
func Fold(s string) string {
	return folder.String(s)
}

// Ratio returns 2*M/T in [0,1], where M is the number of runes in the
// matching blocks found by the longest-matching-block algorithm and T the
// total rune count of both strings. Two empty strings score 1.
func Ratio(a, b string) float64 {
	ra, rb := runes(a), runes(b)
	if len(ra)+len(rb) == 0 {
		return 1
	}
	return difflib.NewMatcher(ra, rb).Ratio()
}

// Matches reports whether a and b are similar enough after case folding.
func Matches(a, b string, threshold float64) bool {
	return Ratio(Fold(a), Fold(b)) > threshold
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
