package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	reDateLike  = regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}(?: \d{1,2}:\d{2})?$`)
	numStripper = strings.NewReplacer("¥", "", "￥", "", "$", "", ",", "", "，", "", " ", "")
)

// ParseNumber strips currency symbols, grouping commas and whitespace from
// the token and returns nil unless the remainder is a finite number.
func ParseNumber(token string) *float64 {
	s := norm.NFKC.String(token)
	s = numStripper.Replace(s)
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return FloatPtr(v)
}

// ParseDateLike accepts "YYYY/MM/DD" optionally followed by " HH:mm".
// No partial-date coercion: anything else returns nil.
func ParseDateLike(token string) *string {
	s := strings.TrimSpace(norm.NFKC.String(token))
	if !reDateLike.MatchString(s) {
		return nil
	}
	return StringPtr(s)
}
