package sapf_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	sapf "github.com/vasilymilovidov/sapf-lsp"
)

var scanKeywords = map[string]string{
	"add":    "Adds two numbers",
	"sinosc": "Sine wave oscillator at the given frequency",
}

func TestScanLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		expected []sapf.Token
	}{
		{
			name: "empty line",
			line: "",
		},
		{
			name: "operators",
			line: "+ - * / =",
			expected: []sapf.Token{
				{Start: 0, Length: 1, Kind: sapf.TokenOperator},
				{Start: 2, Length: 1, Kind: sapf.TokenOperator},
				{Start: 4, Length: 1, Kind: sapf.TokenOperator},
				{Start: 6, Length: 1, Kind: sapf.TokenOperator},
				{Start: 8, Length: 1, Kind: sapf.TokenOperator},
			},
		},
		{
			name: "integer",
			line: "42",
			expected: []sapf.Token{
				{Start: 0, Length: 2, Kind: sapf.TokenNumber},
			},
		},
		{
			name: "number run keeps every dot",
			line: "1.2.3",
			expected: []sapf.Token{
				{Start: 0, Length: 5, Kind: sapf.TokenNumber},
			},
		},
		{
			name: "known word",
			line: "add",
			expected: []sapf.Token{
				{Start: 0, Length: 3, Kind: sapf.TokenFunction},
			},
		},
		{
			name: "unknown word consumed silently",
			line: "foo",
		},
		{
			name: "word with trailing digits is one word",
			line: "add2",
		},
		{
			name: "keyword with argument",
			line: "sinosc 440",
			expected: []sapf.Token{
				{Start: 0, Length: 6, Kind: sapf.TokenFunction},
				{Start: 7, Length: 3, Kind: sapf.TokenNumber},
			},
		},
		{
			name: "dotted expression",
			line: "math.add 1 2",
			expected: []sapf.Token{
				{Start: 5, Length: 3, Kind: sapf.TokenFunction},
				{Start: 9, Length: 1, Kind: sapf.TokenNumber},
				{Start: 11, Length: 1, Kind: sapf.TokenNumber},
			},
		},
		{
			name: "columns are rune offsets",
			line: "π= 1",
			expected: []sapf.Token{
				{Start: 1, Length: 1, Kind: sapf.TokenOperator},
				{Start: 3, Length: 1, Kind: sapf.TokenNumber},
			},
		},
		{
			name: "leading whitespace",
			line: "  add",
			expected: []sapf.Token{
				{Start: 2, Length: 3, Kind: sapf.TokenFunction},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sapf.ScanLine(tt.line, scanKeywords)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("ScanLine() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanLine_SpanInvariants(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		line := rapid.String().Draw(rt, "line")

		first := sapf.ScanLine(line, scanKeywords)
		second := sapf.ScanLine(line, scanKeywords)

		if diff := cmp.Diff(first, second); diff != "" {
			rt.Fatalf("not deterministic (-first +second):\n%s", diff)
		}

		lineLen := uint32(len([]rune(line)))

		var end uint32

		for i, tok := range first {
			if tok.Length == 0 {
				rt.Fatalf("token %d has zero length", i)
			}

			if i > 0 && tok.Start < end {
				rt.Fatalf("token %d overlaps previous (start %d < end %d)", i, tok.Start, end)
			}

			if tok.Start+tok.Length > lineLen {
				rt.Fatalf("token %d extends past line end", i)
			}

			end = tok.Start + tok.Length
		}
	})
}

func TestWordAt(t *testing.T) {
	t.Parallel()

	const text = "add 1 2\nsecond line\n\nmath.add 1 2"

	tests := []struct {
		name     string
		line     int
		column   int
		expected string
		found    bool
	}{
		{"inside first word", 0, 1, "add", true},
		{"word start", 0, 0, "add", true},
		{"inclusive word end", 0, 3, "add", true},
		{"next word after boundary", 0, 4, "1", true},
		{"last word", 0, 6, "2", true},
		{"past last word", 0, 20, "", false},
		{"second line", 1, 8, "line", true},
		{"empty line", 2, 0, "", false},
		{"dots do not split words", 3, 2, "math.add", true},
		{"line out of range", 10, 0, "", false},
		{"negative line", -1, 0, "", false},
		{"negative column", 0, -1, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			word, found := sapf.WordAt(text, tt.line, tt.column)
			if found != tt.found {
				t.Fatalf("WordAt() found = %v, want %v", found, tt.found)
			}

			if word != tt.expected {
				t.Errorf("WordAt() = %q, want %q", word, tt.expected)
			}
		})
	}
}

func TestWordSpanAt(t *testing.T) {
	t.Parallel()

	word, start, ok := sapf.WordSpanAt("add 1 2", 0, 4)
	if !ok {
		t.Fatal("WordSpanAt() not found")
	}

	if word != "1" || start != 4 {
		t.Errorf("WordSpanAt() = (%q, %d), want (%q, %d)", word, start, "1", 4)
	}
}
