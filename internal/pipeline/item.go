package pipeline

import (
	"strconv"
	"strings"

	"kondate/internal"
	"kondate/internal/util"
)

// scanItemTable consumes lines after the check-column header until a
// structural marker stops it. A failed candidate run is abandoned and the
// scan retries one line later at the name position; one malformed run must
// never cost the well-formed items after it.
func scanItemTable(lines []string, start int) ([]internal.SlipItem, int) {
	items := []internal.SlipItem{}
	i := start
	for i < len(lines) {
		if isItemScanStop(lines, i) {
			break
		}
		item, next, ok := parseItemRun(lines, i)
		if !ok {
			i++
			continue
		}
		items = append(items, item)
		i = next
	}
	return items, i
}

// isItemScanStop reports "no further items here": slip boundaries, the
// document title, slip-level labels (total, comment, vendor, dates) and
// column headers all end the table scan rather than being skipped over.
func isItemScanStop(lines []string, i int) bool {
	line := lines[i]
	if strings.TrimSpace(line) == "" {
		return true
	}
	if _, consumed := matchSlipBoundary(lines, i); consumed > 0 {
		return true
	}
	if strings.Contains(line, documentTitle) {
		return true
	}
	if reOutputLabel.MatchString(line) {
		return true
	}
	if reTotalLabel.MatchString(line) || reCommentLabel.MatchString(line) {
		return true
	}
	if isVendorLabel(line) || reSlipDate.MatchString(line) || reDeliveryDate.MatchString(line) {
		return true
	}
	return isColumnHeader(line)
}

// parseItemRun reads one item from a variable-length token run starting at
// a candidate name. Strict order: name, unit price, delivery quantity,
// delivery unit; then the lookahead branch: a numeric next token means the
// spec column is absent and the token is the order quantity, otherwise the
// token is the spec string and order quantity/unit must follow. Trailing
// checkmark glyphs are skipped and a digit-only tail becomes the line
// number. Any required field failing rejects the whole run.
func parseItemRun(lines []string, start int) (internal.SlipItem, int, bool) {
	zero := internal.SlipItem{}
	if start+3 >= len(lines) {
		return zero, 0, false
	}

	name := strings.TrimSpace(lines[start])
	price := util.ParseNumber(lines[start+1])
	if price == nil {
		return zero, 0, false
	}
	qty := util.ParseNumber(lines[start+2])
	if qty == nil {
		return zero, 0, false
	}
	unit := strings.TrimSpace(lines[start+3])
	if unit == "" || util.ParseNumber(unit) != nil {
		return zero, 0, false
	}

	item := internal.SlipItem{
		Name:         name,
		UnitPrice:    *price,
		DeliveryQty:  *qty,
		DeliveryUnit: unit,
	}

	i := start + 4
	if i >= len(lines) {
		return zero, 0, false
	}
	if n := util.ParseNumber(lines[i]); n != nil {
		// spec absent: the number is the order quantity
		item.OrderQty = n
		ou, ok := orderUnitAt(lines, i+1)
		if !ok {
			return zero, 0, false
		}
		item.OrderUnit = util.StringPtr(ou)
		i += 2
	} else {
		if isItemScanStop(lines, i) {
			return zero, 0, false
		}
		item.Spec = util.StringPtr(strings.TrimSpace(lines[i]))
		if i+1 >= len(lines) {
			return zero, 0, false
		}
		oq := util.ParseNumber(lines[i+1])
		if oq == nil {
			return zero, 0, false
		}
		item.OrderQty = oq
		ou, ok := orderUnitAt(lines, i+2)
		if !ok {
			return zero, 0, false
		}
		item.OrderUnit = util.StringPtr(ou)
		i += 3
	}

	for i < len(lines) && reCheckGlyphs.MatchString(lines[i]) {
		i++
	}
	if i < len(lines) && util.IsDigits(lines[i]) {
		if v, err := strconv.Atoi(lines[i]); err == nil {
			item.No = util.IntPtr(v)
		}
		i++
	}

	return item, i, true
}

func orderUnitAt(lines []string, i int) (string, bool) {
	if i >= len(lines) {
		return "", false
	}
	unit := strings.TrimSpace(lines[i])
	if unit == "" || util.ParseNumber(unit) != nil {
		return "", false
	}
	return unit, true
}
