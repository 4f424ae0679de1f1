package slug

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{name: "simple heading", text: "Getting Started", max: 64, want: "getting-started"},
		{name: "apostrophe deleted not hyphenated", text: "Don't Stop", max: 64, want: "dont-stop"},
		{name: "entities decoded first", text: "Fish&nbsp;&amp;&nbsp;Chips", max: 64, want: "fish-chips"},
		{name: "punctuation collapses to single hyphen", text: "configuration: files, flags & env", max: 64, want: "configuration-files-flags-env"},
		{name: "surrounding whitespace trimmed", text: "  padded out  ", max: 64, want: "padded-out"},
		{name: "tabs and newlines hyphenated", text: "line\none\tand two", max: 64, want: "line-one-and-two"},
		{name: "brackets slashes and dots", text: "pkg/slug [v1.2] (beta)", max: 64, want: "pkg-slug-v1-2-beta"},
		{name: "accented letters survive", text: "Café Menü", max: 64, want: "café-menü"},
		{name: "emoji survives", text: "Ship it 🚀", max: 64, want: "ship-it-🚀"},
		{name: "non-breaking space hyphenated", text: "a b", max: 64, want: "a-b"},
		{name: "empty input", text: "", max: 64, want: ""},
		{name: "only unsafe runes", text: "?!*&", max: 64, want: ""},
		{name: "zero max falls back to default", text: strings.Repeat("a", 80), max: 0, want: strings.Repeat("a", 64)},
		{name: "negative max falls back to default", text: strings.Repeat("b", 70), max: -3, want: strings.Repeat("b", 64)},
		{name: "explicit truncation", text: "abcdefghij", max: 4, want: "abcd"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Generate(tc.text, tc.max); got != tc.want {
				t.Fatalf("Generate(%q, %d) = %q, want %q", tc.text, tc.max, got, tc.want)
			}
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	inputs := []string{"Getting Started", "Don't Stop", "Fish&nbsp;&amp;Chips", "", "  x  "}
	for _, in := range inputs {
		first := Generate(in, 64)
		second := Generate(in, 64)
		if first != second {
			t.Fatalf("Generate(%q) not deterministic: %q vs %q", in, first, second)
		}
	}
}

func TestGenerateTruncationNeverLeavesTrailingHyphen(t *testing.T) {
	// "abcd-efgh" truncated at 5 runes lands exactly on the hyphen; the
	// dangling separator must be stripped after the cut.
	if got := Generate("abcd efgh", 5); got != "abcd" {
		t.Fatalf("Generate truncation = %q, want %q", got, "abcd")
	}

	// A run of separators straddling the cut point must not leak through
	// either.
	if got := Generate("abc   defgh", 4); got != "abc" {
		t.Fatalf("Generate truncation over separator run = %q, want %q", got, "abc")
	}

	if got := Generate(" leading and trailing ", 64); strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
		t.Fatalf("Generate left dangling hyphen: %q", got)
	}
}

func TestGenerateTruncatesByRunes(t *testing.T) {
	got := Generate("ééééé", 3)
	if got != "ééé" {
		t.Fatalf("Generate rune truncation = %q, want %q", got, "ééé")
	}
}
