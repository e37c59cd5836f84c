package pipeline

import "testing"

func TestScanReportMeta(t *testing.T) {
	meta := scanReportMeta([]string{
		"納品予定表",
		"2025/04/01 〜 2025/04/07",
		"出力日: 2025/04/01 10:30",
	})
	if meta.Title == nil || *meta.Title != "納品予定表" {
		t.Fatalf("title=%v", meta.Title)
	}
	if meta.OutputAt == nil || *meta.OutputAt != "2025/04/01 10:30" {
		t.Fatalf("outputAt=%v", meta.OutputAt)
	}
	if meta.RangeFrom == nil || *meta.RangeFrom != "2025/04/01" {
		t.Fatalf("rangeFrom=%v", meta.RangeFrom)
	}
	if meta.RangeTo == nil || *meta.RangeTo != "2025/04/07" {
		t.Fatalf("rangeTo=%v", meta.RangeTo)
	}
}

func TestScanReportMetaOutputDateOnFollowingLine(t *testing.T) {
	meta := scanReportMeta([]string{
		"出力日時",
		"2025/04/01 10:30",
	})
	if meta.OutputAt == nil || *meta.OutputAt != "2025/04/01 10:30" {
		t.Fatalf("outputAt=%v", meta.OutputAt)
	}
}

func TestScanReportMetaAbsentFieldsStayNil(t *testing.T) {
	meta := scanReportMeta([]string{"伝票No.450"})
	if meta.Title != nil || meta.OutputAt != nil || meta.RangeFrom != nil || meta.RangeTo != nil {
		t.Fatalf("meta=%+v", meta)
	}
}

func TestParseDeliveryDocumentSortsSlipsNumerically(t *testing.T) {
	doc := ParseDeliveryDocument([]string{
		"納品予定表",
		"伝票No.1200",
		"伝票No.450",
		"伝票No.88",
	})
	if len(doc.Slips) != 3 {
		t.Fatalf("len=%d", len(doc.Slips))
	}
	got := []string{doc.Slips[0].SlipNo, doc.Slips[1].SlipNo, doc.Slips[2].SlipNo}
	want := []string{"88", "450", "1200"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order=%v", got)
		}
	}
}

func TestParseDeliveryDocumentEndToEnd(t *testing.T) {
	doc := ParseDeliveryDocument([]string{
		"納品予定表",
		"2025/04/01 〜 2025/04/07",
		"出力日: 2025/04/01 10:30",
		"改ページ",
		"伝票No.450",
		"取引先: 1001 いろは食品",
		"納品日: 2025/04/02",
		"チェック",
		"トマト", "120", "3", "kg", "3", "箱", "☑", "1",
		"きゅうり", "80", "5", "kg", "A規格", "5", "袋", "2",
		"合計",
		"¥760",
		"備考",
		"午前着",
		"伝票No",
		"451",
		"仕入先: ほへと水産",
		"チェック",
		"さば", "300", "2", "枚", "2", "枚", "1",
	})
	if len(doc.Slips) != 2 {
		t.Fatalf("slips=%d", len(doc.Slips))
	}
	s := doc.Slips[0]
	if s.SlipNo != "450" || len(s.Items) != 2 {
		t.Fatalf("slip450=%+v", s)
	}
	if s.Total == nil || *s.Total != 760 {
		t.Fatalf("total=%v", s.Total)
	}
	if s.Comment == nil || *s.Comment != "午前着" {
		t.Fatalf("comment=%v", s.Comment)
	}
	if s.Items[1].Spec == nil || *s.Items[1].Spec != "A規格" {
		t.Fatalf("spec=%v", s.Items[1].Spec)
	}
	if doc.Slips[1].SlipNo != "451" || len(doc.Slips[1].Items) != 1 {
		t.Fatalf("slip451=%+v", doc.Slips[1])
	}
}
