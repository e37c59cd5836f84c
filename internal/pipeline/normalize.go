package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^-+$`),
	regexp.MustCompile(`^改ページ$`),
	regexp.MustCompile(`^[-－]\s*\d+\s*[-－]$`),
	regexp.MustCompile(`^\d+\s*/\s*\d+\s*(?:ページ|頁)$`),
	regexp.MustCompile(`(?i)^page\s*\d+`),
	regexp.MustCompile(`^抽出条件`),
}

// NormalizeLines cleans the raw fragment stream: control characters become
// spaces, runs of whitespace collapse, and pure page/footer boilerplate is
// dropped. Unrecognized lines pass through unchanged.
func NormalizeLines(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.Map(controlToSpace, line)
		line = strings.Join(strings.Fields(line), " ")
		if line == "" || isBoilerplate(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func controlToSpace(r rune) rune {
	if r == '\x00' || unicode.IsControl(r) {
		return ' '
	}
	return r
}

func isBoilerplate(line string) bool {
	for _, re := range boilerplatePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
