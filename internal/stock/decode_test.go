package stock

import "testing"

func TestDecodeDocumentQuantityAliases(t *testing.T) {
	data := []byte(`{"report":{},"slips":[{"slipNo":"450","items":[
		{"name":"A","deliveryQty":3,"deliveryUnit":"kg"},
		{"name":"B","quantity":5,"deliveryUnit":"kg"},
		{"name":"C","qty":7,"deliveryUnit":"kg"},
		{"name":"D","qty":9,"quantity":5,"deliveryQty":3,"deliveryUnit":"kg"}
	]}]}`)
	doc, err := DecodeDocument(data)
	if err != nil {
		t.Fatal(err)
	}
	items := doc.Slips[0].Items
	if len(items) != 4 {
		t.Fatalf("len=%d", len(items))
	}
	want := []float64{3, 5, 7, 3}
	for i, w := range want {
		if items[i].DeliveryQty != w {
			t.Fatalf("item %s qty=%f want=%f", items[i].Name, items[i].DeliveryQty, w)
		}
	}
}

func TestDecodeDocumentDropsQuantityless(t *testing.T) {
	data := []byte(`{"report":{},"slips":[{"slipNo":"450","items":[
		{"name":"A","deliveryUnit":"kg"},
		{"name":"B","deliveryQty":2,"deliveryUnit":"kg"}
	]}]}`)
	doc, err := DecodeDocument(data)
	if err != nil {
		t.Fatal(err)
	}
	items := doc.Slips[0].Items
	if len(items) != 1 || items[0].Name != "B" {
		t.Fatalf("items=%+v", items)
	}
}

func TestDecodeDocumentBadJSON(t *testing.T) {
	if _, err := DecodeDocument([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
}
