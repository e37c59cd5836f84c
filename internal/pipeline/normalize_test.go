package pipeline

import "testing"

func TestNormalizeLinesCollapsesWhitespace(t *testing.T) {
	out := NormalizeLines([]string{"  トマト \t 3 \x00 kg  "})
	if len(out) != 1 {
		t.Fatalf("len=%d", len(out))
	}
	if out[0] != "トマト 3 kg" {
		t.Fatalf("line=%q", out[0])
	}
}

func TestNormalizeLinesDropsBoilerplate(t *testing.T) {
	out := NormalizeLines([]string{
		"-----",
		"改ページ",
		"- 3 -",
		"2/5 ページ",
		"Page 2",
		"抽出条件: 2025/04/01",
		"",
		"   ",
		"伝票No.450",
	})
	if len(out) != 1 {
		t.Fatalf("len=%d out=%v", len(out), out)
	}
	if out[0] != "伝票No.450" {
		t.Fatalf("line=%q", out[0])
	}
}

func TestNormalizeLinesKeepsUnrecognized(t *testing.T) {
	out := NormalizeLines([]string{"何かのメモ 123"})
	if len(out) != 1 || out[0] != "何かのメモ 123" {
		t.Fatalf("out=%v", out)
	}
}
