package util

import "testing"

func TestParseNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "plain integer", input: "120", want: 120},
		{name: "decimal", input: "1.5", want: 1.5},
		{name: "yen symbol", input: "¥1,280", want: 1280},
		{name: "fullwidth yen", input: "￥300", want: 300},
		{name: "grouping comma", input: "12,500", want: 12500},
		{name: "surrounding space", input: " 42 ", want: 42},
		{name: "fullwidth digits", input: "１２０", want: 120},
		{name: "negative", input: "-3", want: -3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseNumber(tc.input)
			if got == nil {
				t.Fatalf("got nil")
			}
			if *got != tc.want {
				t.Fatalf("got %v want %v", *got, tc.want)
			}
		})
	}

	for _, bad := range []string{"", "kg", "1個", "12-3", "Inf", "NaN", "2026/01/05"} {
		if got := ParseNumber(bad); got != nil {
			t.Fatalf("ParseNumber(%q) = %v, want nil", bad, *got)
		}
	}
}

func TestParseDateLike(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "2026/01/05", want: "2026/01/05"},
		{input: "2026/1/5", want: "2026/1/5"},
		{input: "2026/01/05 09:30", want: "2026/01/05 09:30"},
		{input: "  2026/01/05  ", want: "2026/01/05"},
	}
	for _, tc := range cases {
		got := ParseDateLike(tc.input)
		if got == nil {
			t.Fatalf("ParseDateLike(%q) = nil", tc.input)
		}
		if *got != tc.want {
			t.Fatalf("ParseDateLike(%q) = %q want %q", tc.input, *got, tc.want)
		}
	}

	for _, bad := range []string{"", "2026-01-05", "01/05", "2026/01", "2026/01/05 9", "納品日"} {
		if got := ParseDateLike(bad); got != nil {
			t.Fatalf("ParseDateLike(%q) = %q, want nil", bad, *got)
		}
	}
}
