package stock

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"kondate/internal"
	"kondate/internal/util"
)

// Merge folds deltas into the current items, clamping quantities at zero.
// Pure: callers keep ownership of the inputs. The output sort by
// (vendor, name, unit) is a display convenience, not a correctness
// requirement.
func Merge(current []internal.StockItem, deltas []internal.DeltaRecord, now string) []internal.StockItem {
	out := make([]internal.StockItem, len(current))
	copy(out, current)

	index := map[itemKey]int{}
	for i, item := range out {
		index[keyOf(item.Vendor, item.Name, item.Unit)] = i
	}

	for _, d := range deltas {
		k := keyOf(d.Vendor, d.Name, d.Unit)
		if at, ok := index[k]; ok {
			out[at].Quantity = clampZero(out[at].Quantity + d.Quantity)
			out[at].UpdatedAt = util.StringPtr(now)
			continue
		}
		out = append(out, internal.StockItem{
			Name:      d.Name,
			Unit:      d.Unit,
			Vendor:    d.Vendor,
			Quantity:  clampZero(d.Quantity),
			UpdatedAt: util.StringPtr(now),
		})
		index[k] = len(out) - 1
	}

	c := collate.New(language.Japanese)
	sort.SliceStable(out, func(i, j int) bool {
		if r := c.CompareString(out[i].Vendor, out[j].Vendor); r != 0 {
			return r < 0
		}
		if r := c.CompareString(out[i].Name, out[j].Name); r != 0 {
			return r < 0
		}
		return c.CompareString(out[i].Unit, out[j].Unit) < 0
	})
	return out
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
