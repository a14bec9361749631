package editdist

import "testing"

func TestLevenshteinKnownDistances(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"こんにちは", "こんにちは", 0},
		{"こんにちは", "こんばんは", 2},
		{"こんにちは", "", 5},
		{"軌道", "軌道変更", 2},
	}
	for _, tc := range cases {
		if got := Levenshtein(tc.a, tc.b); got != tc.want {
			t.Fatalf("Levenshtein(%q, %q): expected %d, got %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLevenshteinSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"こんにちは", "こんばんは"},
		{"", "abc"},
		{"短い", "ずっとずっと長い文字列"},
	}
	for _, p := range pairs {
		ab := Levenshtein(p[0], p[1])
		ba := Levenshtein(p[1], p[0])
		if ab != ba {
			t.Fatalf("Levenshtein(%q, %q)=%d but reversed=%d", p[0], p[1], ab, ba)
		}
	}
}

func TestLevenshteinCountsRunesNotBytes(t *testing.T) {
	// Each hiragana character is 3 bytes; substituting one must cost 1.
	if got := Levenshtein("は", "ば"); got != 1 {
		t.Fatalf("expected single-rune substitution cost 1, got %d", got)
	}
}

func TestNormalizedDistanceBounds(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"", "こんにちは"},
		{"abc", "xyz"},
		{"こんにちは", "こんにちはお元気"},
	}
	for _, p := range pairs {
		d := NormalizedDistance(p[0], p[1])
		if d < 0 || d > 1 {
			t.Fatalf("NormalizedDistance(%q, %q)=%f out of [0,1]", p[0], p[1], d)
		}
	}
	if d := NormalizedDistance("", ""); d != 0 {
		t.Fatalf("expected 0 for two empty strings, got %f", d)
	}
	if d := NormalizedDistance("abc", "abc"); d != 0 {
		t.Fatalf("expected 0 for equal strings, got %f", d)
	}
	if d := NormalizedDistance("", "abcd"); d != 1 {
		t.Fatalf("expected 1 against empty string, got %f", d)
	}
}
