package stock

import (
	"testing"

	"kondate/internal"
)

const mergeNow = "2025-04-02T00:00:00Z"

func TestMergeScenario(t *testing.T) {
	current := []internal.StockItem{
		{Vendor: "VendorA", Name: "Item1", Unit: "kg", Quantity: 10},
		{Vendor: "VendorA", Name: "Item2", Unit: "pcs", Quantity: 5},
	}
	doc := docWith(
		slipFor("VendorA",
			item("Item1", 5, "kg"),
			item("ITEM1", 5, "kg"),
			item("Item3", 20, "box"),
			item("Item2 ", 2, "pcs"),
		),
		slipFor("VendorB", item("Item1", 100, "kg")),
	)

	out := Merge(current, Aggregate(doc), mergeNow)
	if len(out) != 4 {
		t.Fatalf("len=%d out=%+v", len(out), out)
	}

	want := map[string]float64{
		"VendorA/Item1/kg":  20,
		"VendorA/Item2/pcs": 7,
		"VendorA/Item3/box": 20,
		"VendorB/Item1/kg":  100,
	}
	for _, it := range out {
		k := it.Vendor + "/" + it.Name + "/" + it.Unit
		wq, ok := want[k]
		if !ok {
			t.Fatalf("unexpected key %s", k)
		}
		if it.Quantity != wq {
			t.Fatalf("key=%s quantity=%f want=%f", k, it.Quantity, wq)
		}
	}
}

func TestMergeClampsAtZero(t *testing.T) {
	current := []internal.StockItem{
		{Vendor: "VendorA", Name: "Item1", Unit: "kg", Quantity: 3},
	}
	deltas := []internal.DeltaRecord{
		{Vendor: "VendorA", Name: "Item1", Unit: "kg", Quantity: -10},
		{Vendor: "VendorA", Name: "Item2", Unit: "kg", Quantity: -5},
	}
	out := Merge(current, deltas, mergeNow)
	for _, it := range out {
		if it.Quantity != 0 {
			t.Fatalf("item=%+v", it)
		}
	}
}

func TestMergeTouchesUpdatedAtOnlyForChangedKeys(t *testing.T) {
	current := []internal.StockItem{
		{Vendor: "VendorA", Name: "Item1", Unit: "kg", Quantity: 10},
		{Vendor: "VendorA", Name: "Item2", Unit: "pcs", Quantity: 5},
	}
	deltas := []internal.DeltaRecord{
		{Vendor: "VendorA", Name: "Item1", Unit: "kg", Quantity: 1},
	}
	out := Merge(current, deltas, mergeNow)
	for _, it := range out {
		switch it.Name {
		case "Item1":
			if it.UpdatedAt == nil || *it.UpdatedAt != mergeNow {
				t.Fatalf("item1=%+v", it)
			}
		case "Item2":
			if it.UpdatedAt != nil {
				t.Fatalf("item2=%+v", it)
			}
		}
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	current := []internal.StockItem{
		{Vendor: "VendorA", Name: "Item1", Unit: "kg", Quantity: 10},
	}
	_ = Merge(current, []internal.DeltaRecord{{Vendor: "VendorA", Name: "Item1", Unit: "kg", Quantity: 5}}, mergeNow)
	if current[0].Quantity != 10 || current[0].UpdatedAt != nil {
		t.Fatalf("input mutated: %+v", current[0])
	}
}

func TestMergeSortsByVendorNameUnit(t *testing.T) {
	out := Merge(nil, []internal.DeltaRecord{
		{Vendor: "VendorB", Name: "Item1", Unit: "kg", Quantity: 1},
		{Vendor: "VendorA", Name: "Item2", Unit: "kg", Quantity: 1},
		{Vendor: "VendorA", Name: "Item1", Unit: "kg", Quantity: 1},
	}, mergeNow)
	got := []string{}
	for _, it := range out {
		got = append(got, it.Vendor+"/"+it.Name)
	}
	want := []string{"VendorA/Item1", "VendorA/Item2", "VendorB/Item1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order=%v", got)
		}
	}
}
