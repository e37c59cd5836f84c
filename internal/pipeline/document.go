package pipeline

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"kondate/internal"
	"kondate/internal/util"
)

// ParseDeliveryDocument turns the raw fragment stream into one assembled
// document: report metadata from a full-array scan, slips from the state
// machine, slips sorted by slip number for stable display.
func ParseDeliveryDocument(rawLines []string) internal.DeliveryDocument {
	lines := NormalizeLines(rawLines)
	doc := internal.DeliveryDocument{
		Report: scanReportMeta(lines),
		Slips:  parseSlips(lines),
	}

	c := collate.New(language.Japanese, collate.Numeric)
	sort.SliceStable(doc.Slips, func(i, j int) bool {
		return c.CompareString(doc.Slips[i].SlipNo, doc.Slips[j].SlipNo) < 0
	})
	return doc
}

// scanReportMeta runs independent of slip state; first match wins per field
// and absent fields stay nil.
func scanReportMeta(lines []string) internal.ReportMeta {
	meta := internal.ReportMeta{}
	for i, line := range lines {
		if meta.Title == nil && strings.Contains(line, documentTitle) {
			meta.Title = util.StringPtr(line)
		}
		if meta.OutputAt == nil {
			if m := reOutputLabel.FindStringSubmatch(line); m != nil {
				if v := util.ParseDateLike(m[1]); v != nil {
					meta.OutputAt = v
				} else if i+1 < len(lines) {
					if v := util.ParseDateLike(lines[i+1]); v != nil {
						meta.OutputAt = v
					}
				}
			}
		}
		if meta.RangeFrom == nil {
			if m := reDateRange.FindStringSubmatch(line); m != nil {
				meta.RangeFrom = util.StringPtr(m[1])
				meta.RangeTo = util.StringPtr(m[2])
			}
		}
	}
	return meta
}
