package stock

import (
	"math"
	"strings"

	"kondate/internal"
	"kondate/internal/util"
)

type itemKey struct {
	vendor string
	name   string
	unit   string
}

func keyOf(vendor, name, unit string) itemKey {
	return itemKey{
		vendor: strings.TrimSpace(vendor),
		name:   util.NormalizeKey(name),
		unit:   util.NormalizeUnit(unit),
	}
}

// Aggregate reduces all items across all slips of one document into per-key
// quantity deltas. Output order follows first appearance but carries no
// contract; consumers sort at presentation time.
func Aggregate(doc internal.DeliveryDocument) []internal.DeltaRecord {
	order := []itemKey{}
	byKey := map[itemKey]*internal.DeltaRecord{}

	for _, slip := range doc.Slips {
		vendor := ""
		if slip.Vendor != nil {
			vendor = strings.TrimSpace(*slip.Vendor)
		}
		for _, item := range slip.Items {
			if strings.TrimSpace(item.Name) == "" {
				continue
			}
			qty := item.DeliveryQty
			if math.IsNaN(qty) || math.IsInf(qty, 0) {
				continue
			}
			k := keyOf(vendor, item.Name, item.DeliveryUnit)
			if d, ok := byKey[k]; ok {
				d.Quantity += qty
				continue
			}
			byKey[k] = &internal.DeltaRecord{
				Vendor:   vendor,
				Name:     strings.TrimSpace(item.Name),
				Unit:     util.NormalizeUnit(item.DeliveryUnit),
				Quantity: qty,
			}
			order = append(order, k)
		}
	}

	out := make([]internal.DeltaRecord, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}
	return out
}
