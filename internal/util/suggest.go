package util

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Closest returns the option with the smallest edit distance to s,
// compared case-insensitively. ok is false when nothing is close enough
// to be a plausible typo (distance above half the input length, min 2).
func Closest(s string, options []string) (string, bool) {
	if s == "" || len(options) == 0 {
		return "", false
	}
	want := strings.ToLower(s)
	limit := max(2, len(want)/2)

	best, bestDist := "", -1
	for _, opt := range options {
		d := levenshtein.ComputeDistance(want, strings.ToLower(opt))
		if bestDist < 0 || d < bestDist {
			best, bestDist = opt, d
		}
	}
	if bestDist > limit {
		return "", false
	}
	return best, true
}
