package stock

import (
	"testing"

	"kondate/internal"
	"kondate/internal/util"
)

func docWith(slips ...internal.Slip) internal.DeliveryDocument {
	return internal.DeliveryDocument{Slips: slips}
}

func slipFor(vendor string, items ...internal.SlipItem) internal.Slip {
	return internal.Slip{SlipNo: "1", Vendor: util.StringPtr(vendor), Items: items}
}

func item(name string, qty float64, unit string) internal.SlipItem {
	return internal.SlipItem{Name: name, DeliveryQty: qty, DeliveryUnit: unit}
}

func TestAggregateSumsNormalizedKeys(t *testing.T) {
	doc := docWith(slipFor("VendorA",
		item("Item1", 5, "kg"),
		item("ITEM1", 5, "kg"),
		item("Item1 ", 2, " kg"),
	))
	deltas := Aggregate(doc)
	if len(deltas) != 1 {
		t.Fatalf("len=%d deltas=%+v", len(deltas), deltas)
	}
	if deltas[0].Quantity != 12 {
		t.Fatalf("quantity=%f", deltas[0].Quantity)
	}
	if deltas[0].Name != "Item1" {
		t.Fatalf("name=%q", deltas[0].Name)
	}
	if deltas[0].Unit != "kg" {
		t.Fatalf("unit=%q", deltas[0].Unit)
	}
}

func TestAggregateFullwidthNameCollapses(t *testing.T) {
	doc := docWith(slipFor("VendorA",
		item("Ｉｔｅｍ１", 1, "kg"),
		item("item1", 1, "kg"),
	))
	deltas := Aggregate(doc)
	if len(deltas) != 1 || deltas[0].Quantity != 2 {
		t.Fatalf("deltas=%+v", deltas)
	}
}

func TestAggregatePartitionsByVendorAndUnit(t *testing.T) {
	doc := docWith(
		slipFor("VendorA", item("Item1", 5, "kg"), item("Item1", 3, "box")),
		slipFor("VendorB", item("Item1", 100, "kg")),
	)
	deltas := Aggregate(doc)
	if len(deltas) != 3 {
		t.Fatalf("len=%d", len(deltas))
	}
}

func TestAggregateOrderIndependentTotals(t *testing.T) {
	forward := docWith(slipFor("VendorA",
		item("Item1", 5, "kg"), item("Item2", 3, "pcs"), item("Item1", 2, "kg"),
	))
	reversed := docWith(slipFor("VendorA",
		item("Item1", 2, "kg"), item("Item2", 3, "pcs"), item("Item1", 5, "kg"),
	))

	totals := func(deltas []internal.DeltaRecord) map[string]float64 {
		m := map[string]float64{}
		for _, d := range deltas {
			m[d.Name+"/"+d.Unit] = d.Quantity
		}
		return m
	}
	a, b := totals(Aggregate(forward)), totals(Aggregate(reversed))
	if len(a) != len(b) {
		t.Fatalf("a=%v b=%v", a, b)
	}
	for k, v := range a {
		if b[k] != v {
			t.Fatalf("key=%s a=%f b=%f", k, v, b[k])
		}
	}
}

func TestAggregateSkipsBlankNames(t *testing.T) {
	doc := docWith(slipFor("VendorA",
		item("  ", 5, "kg"),
		item("Item1", 1, "kg"),
	))
	deltas := Aggregate(doc)
	if len(deltas) != 1 || deltas[0].Name != "Item1" {
		t.Fatalf("deltas=%+v", deltas)
	}
}

func TestAggregateMissingVendorIsEmptyKey(t *testing.T) {
	doc := docWith(internal.Slip{SlipNo: "1", Items: []internal.SlipItem{item("Item1", 5, "kg")}})
	deltas := Aggregate(doc)
	if len(deltas) != 1 || deltas[0].Vendor != "" {
		t.Fatalf("deltas=%+v", deltas)
	}
}
