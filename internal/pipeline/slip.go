package pipeline

import (
	"regexp"
	"strings"

	"kondate/internal"
	"kondate/internal/util"
)

// Markers of the targeted delivery-schedule format. The stream
// keeps reading order but carries no labels beyond these, so everything
// downstream hangs off them.
var (
	reSlipMarker   = regexp.MustCompile(`^(?:伝票No|伝票NO|伝票番号|SlipNo|Slip No)[.．]?[:：]?\s*([0-9]*)$`)
	reVendorLabel  = regexp.MustCompile(`^(?:取引先|仕入先|発注先)(?:名)?[:：]?\s*(.*)$`)
	reSlipDate     = regexp.MustCompile(`^伝票日付[:：]?\s*(.*)$`)
	reDeliveryDate = regexp.MustCompile(`^(?:納品日付|納品日|配達日)[:：]?\s*(.*)$`)
	reTotalLabel   = regexp.MustCompile(`^合計(?:金額)?[:：]?$`)
	reCommentLabel = regexp.MustCompile(`^備考[:：]?\s*(.*)$`)
	reCheckHeader  = regexp.MustCompile(`^(?:チェック欄?|[Cc]heck)$`)
	reOutputLabel  = regexp.MustCompile(`^出力日(?:時)?[:：]?\s*(.*)$`)
	reDateRange    = regexp.MustCompile(`(\d{4}/\d{1,2}/\d{1,2})\s*[〜～~]\s*(\d{4}/\d{1,2}/\d{1,2})`)
	reCheckGlyphs  = regexp.MustCompile(`^[☑✔✓□■レ]+$`)
)

const documentTitle = "納品予定表"

var vendorExcludes = []string{"コード", "住所", "電話", "TEL", "FAX"}

var columnHeaders = map[string]struct{}{
	"No":    {},
	"商品コード":  {},
	"商品名":   {},
	"品名":    {},
	"規格":    {},
	"単価":    {},
	"数量":    {},
	"納品数":   {},
	"納品単位":  {},
	"単位":    {},
	"金額":    {},
	"発注数":   {},
	"発注単位":  {},
}

// parseSlips walks the cleaned lines with two states: no active slip, and
// inside a slip. A slip-number marker opens a slip or resumes the existing
// one with the same number (vendor headers repeat across page breaks).
// There is no closing marker; slips are identified by number alone.
func parseSlips(lines []string) []internal.Slip {
	slips := []internal.Slip{}
	index := map[string]int{}
	cur := -1

	i := 0
	for i < len(lines) {
		if no, consumed := matchSlipBoundary(lines, i); consumed > 0 {
			at, ok := index[no]
			if !ok {
				slips = append(slips, internal.Slip{SlipNo: no, Items: []internal.SlipItem{}})
				at = len(slips) - 1
				index[no] = at
			}
			cur = at
			i += consumed
			continue
		}
		if cur < 0 {
			i++
			continue
		}

		slip := &slips[cur]
		line := lines[i]

		if isVendorLabel(line) {
			value, consumed := vendorValue(lines, i)
			if slip.Vendor == nil && value != "" {
				slip.Vendor = util.StringPtr(value)
			}
			i += consumed
			continue
		}
		if m := reSlipDate.FindStringSubmatch(line); m != nil {
			value, consumed := dateValue(lines, i, m[1])
			if value != nil {
				slip.SlipDate = value
			}
			i += consumed
			continue
		}
		if m := reDeliveryDate.FindStringSubmatch(line); m != nil {
			value, consumed := dateValue(lines, i, m[1])
			if value != nil {
				slip.DeliveryDate = value
			}
			i += consumed
			continue
		}
		if reTotalLabel.MatchString(line) {
			if i+1 < len(lines) {
				if v := util.ParseNumber(lines[i+1]); v != nil {
					slip.Total = v
					i += 2
					continue
				}
			}
			i++
			continue
		}
		if m := reCommentLabel.FindStringSubmatch(line); m != nil {
			value, consumed := commentValue(lines, i, m[1])
			if value != "" && value != "No" {
				slip.Comment = util.StringPtr(value)
			}
			i += consumed
			continue
		}
		if reCheckHeader.MatchString(line) {
			items, next := scanItemTable(lines, i+1)
			slip.Items = append(slip.Items, items...)
			i = next
			continue
		}

		// malformed or decorative fragments must not abort the parse
		i++
	}

	return slips
}

// matchSlipBoundary recognizes the slip-number marker either inline
// ("伝票No.450") or as a bare label followed by a digit-only line, in which
// case the digit line is consumed as part of the marker.
func matchSlipBoundary(lines []string, i int) (string, int) {
	m := reSlipMarker.FindStringSubmatch(lines[i])
	if m == nil {
		return "", 0
	}
	if m[1] != "" {
		return m[1], 1
	}
	if i+1 < len(lines) && util.IsDigits(lines[i+1]) {
		return lines[i+1], 2
	}
	return "", 0
}

func isVendorLabel(line string) bool {
	if !reVendorLabel.MatchString(line) {
		return false
	}
	for _, probe := range vendorExcludes {
		if strings.Contains(line, probe) {
			return false
		}
	}
	return true
}

func vendorValue(lines []string, i int) (string, int) {
	m := reVendorLabel.FindStringSubmatch(lines[i])
	inline := dropLeadingCode(strings.TrimSpace(m[1]))
	if inline != "" {
		return inline, 1
	}
	if i+1 < len(lines) {
		if _, consumed := matchSlipBoundary(lines, i+1); consumed == 0 {
			return strings.TrimSpace(lines[i+1]), 2
		}
	}
	return "", 1
}

// dropLeadingCode strips a numeric vendor-code token preceding the name.
func dropLeadingCode(value string) string {
	fields := strings.Fields(value)
	if len(fields) > 1 && util.IsDigits(fields[0]) {
		return strings.Join(fields[1:], " ")
	}
	return value
}

func dateValue(lines []string, i int, inline string) (*string, int) {
	if v := util.ParseDateLike(inline); v != nil {
		return v, 1
	}
	if i+1 < len(lines) {
		if v := util.ParseDateLike(lines[i+1]); v != nil {
			return v, 2
		}
	}
	return nil, 1
}

// commentValue takes the inline remainder when present; a bare 備考 label
// collects all following lines up to the next structural marker instead.
func commentValue(lines []string, i int, inline string) (string, int) {
	inline = strings.TrimSpace(inline)
	if inline != "" {
		return inline, 1
	}
	parts := []string{}
	j := i + 1
	for j < len(lines) {
		if isCommentStop(lines, j) {
			break
		}
		parts = append(parts, lines[j])
		j++
	}
	return strings.Join(parts, " "), j - i
}

func isCommentStop(lines []string, i int) bool {
	if _, consumed := matchSlipBoundary(lines, i); consumed > 0 {
		return true
	}
	line := lines[i]
	if reCheckHeader.MatchString(line) {
		return true
	}
	if reOutputLabel.MatchString(line) || strings.Contains(line, documentTitle) {
		return true
	}
	return isColumnHeader(line)
}

func isColumnHeader(line string) bool {
	_, ok := columnHeaders[strings.TrimSpace(line)]
	return ok
}
