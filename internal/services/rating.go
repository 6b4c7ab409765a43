package services

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultRating is stored when a review has no usable rating.
const DefaultRating = 5

// ParseRating reads the leading integer of raw: optional whitespace, an
// optional sign, then digits. Anything after the digits is ignored, so "4.7"
// is 4 and "12abc" is 12. Empty or non-numeric input, zero, or a value that
// does not fit an int yields DefaultRating. No range is enforced.
func ParseRating(raw string) int {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return DefaultRating
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return DefaultRating
	}
	return n
}
