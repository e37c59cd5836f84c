package util

import "testing"

func TestNormalizeKeyCollapsesVariants(t *testing.T) {
	variants := []string{"Item1", "ITEM1", "Item1 ", " item 1", "Ｉｔｅｍ１"}
	want := NormalizeKey("item1")
	for _, v := range variants {
		if got := NormalizeKey(v); got != want {
			t.Fatalf("NormalizeKey(%q) = %q want %q", v, got, want)
		}
	}
}

func TestNormalizeKeyDistinctNamesStayDistinct(t *testing.T) {
	if NormalizeKey("トマト缶") == NormalizeKey("トマト") {
		t.Fatal("distinct names collapsed")
	}
}

func TestNormalizeUnit(t *testing.T) {
	if got := NormalizeUnit(" kg "); got != "kg" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeUnit("kg"); got != "kg" {
		t.Fatalf("got %q", got)
	}
	// interior content untouched, case preserved
	if got := NormalizeUnit("KG"); got != "KG" {
		t.Fatalf("got %q", got)
	}
}

func TestIsDigits(t *testing.T) {
	if !IsDigits("450") {
		t.Fatal("450 should be digits")
	}
	for _, bad := range []string{"", "45a", "4.5", "-4", "４５"} {
		if IsDigits(bad) {
			t.Fatalf("IsDigits(%q) = true", bad)
		}
	}
}
