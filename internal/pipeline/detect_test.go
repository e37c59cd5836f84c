package pipeline

import "testing"

func TestDetectDeliverySchedulePositive(t *testing.T) {
	res := DetectDeliverySchedule([]string{
		"納品予定表",
		"2025/04/01 〜 2025/04/07",
		"出力日: 2025/04/01 10:30",
		"伝票No.450",
		"伝票No.451",
	})
	if !res.IsDeliverySchedule {
		t.Fatalf("score=%f", res.Score)
	}
	if res.Score != 1 {
		t.Fatalf("score=%f", res.Score)
	}
	if res.Reason != "rules_positive" {
		t.Fatalf("reason=%s", res.Reason)
	}
}

func TestDetectDeliveryScheduleTitleAloneIsEnough(t *testing.T) {
	res := DetectDeliverySchedule([]string{"納品予定表"})
	if !res.IsDeliverySchedule {
		t.Fatalf("score=%f", res.Score)
	}
}

func TestDetectDeliveryScheduleNegative(t *testing.T) {
	res := DetectDeliverySchedule([]string{
		"請求書",
		"株式会社なんとか",
		"お支払期限: 2025/04/30",
	})
	if res.IsDeliverySchedule {
		t.Fatalf("score=%f", res.Score)
	}
	if res.Reason != "rules_negative" {
		t.Fatalf("reason=%s", res.Reason)
	}
}

func TestDetectDeliveryScheduleMarkersWithoutTitleFallShort(t *testing.T) {
	res := DetectDeliverySchedule([]string{"伝票No.450"})
	if res.IsDeliverySchedule {
		t.Fatalf("score=%f", res.Score)
	}
}
