package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKey folds an ingredient name into its stock identity. NFKC
// collapses full-width/half-width variants, then case and all whitespace
// are dropped, so 「トマト缶」, "ＴＯＭＡＴＯ" spacing/width/case variants
// of one name collide to a single key.
func NormalizeKey(input string) string {
	s := norm.NFKC.String(input)
	s = strings.ToLower(s)
	out := strings.Builder{}
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// NormalizeUnit trims surrounding whitespace only; units are otherwise
// compared verbatim (kg vs KG are distinct on purpose).
func NormalizeUnit(input string) string {
	return strings.TrimSpace(input)
}

func IsDigits(input string) bool {
	if input == "" {
		return false
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
