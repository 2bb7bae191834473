package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Laptops", "laptops"},
		{"spaces become dashes", "Gaming Laptops", "gaming-laptops"},
		{"turkish letters", "Oyun Laptopları", "oyun-laptoplari"},
		{"turkish mixed", "Çanta ve Şemsiye", "canta-ve-semsiye"},
		{"punctuation collapses", "TVs & Home -- Theater!!", "tvs-home-theater"},
		{"digits kept", "PlayStation 5", "playstation-5"},
		{"leading and trailing noise", "  --Phones--  ", "phones"},
		{"only punctuation", "!!! ---", ""},
		{"empty", "", ""},
		{"already a slug", "gaming-laptops", "gaming-laptops"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.input); got != tc.expected {
			t.Errorf("%s: Slugify(%q) = %q, want %q", tc.name, tc.input, got, tc.expected)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Gaming Laptops", "Oyun Laptopları", "TVs & Audio", "PlayStation 5"}
	for _, input := range inputs {
		once := Slugify(input)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
