package domain

import "testing"

func TestHighlightMatches(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		query    string
		expected []HighlightSpan
	}{
		{
			name:  "single match in the middle",
			text:  "the liability cap applies",
			query: "liability",
			expected: []HighlightSpan{
				{Text: "the ", Matched: false},
				{Text: "liability", Matched: true},
				{Text: " cap applies", Matched: false},
			},
		},
		{
			name:  "case insensitive",
			text:  "Termination and TERMINATION",
			query: "termination",
			expected: []HighlightSpan{
				{Text: "Termination", Matched: true},
				{Text: " and ", Matched: false},
				{Text: "TERMINATION", Matched: true},
			},
		},
		{
			name:  "match at start and end",
			text:  "acme supplies acme",
			query: "acme",
			expected: []HighlightSpan{
				{Text: "acme", Matched: true},
				{Text: " supplies ", Matched: false},
				{Text: "acme", Matched: true},
			},
		},
		{
			name:  "no match",
			text:  "indemnification clause",
			query: "warranty",
			expected: []HighlightSpan{
				{Text: "indemnification clause", Matched: false},
			},
		},
		{
			name:  "regex metacharacters treated literally",
			text:  "cost is $1.5M (approx)",
			query: "$1.5M (approx)",
			expected: []HighlightSpan{
				{Text: "cost is ", Matched: false},
				{Text: "$1.5M (approx)", Matched: true},
			},
		},
		{
			name:  "empty query",
			text:  "some text",
			query: "",
			expected: []HighlightSpan{
				{Text: "some text", Matched: false},
			},
		},
		{
			name:  "empty text",
			text:  "",
			query: "clause",
			expected: []HighlightSpan{
				{Text: "", Matched: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HighlightMatches(tt.text, tt.query)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d spans, got %d: %v", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("span %d: expected %+v, got %+v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestHighlightMatches_Reassembles(t *testing.T) {
	text := "The Supplier shall indemnify the Customer against all losses"
	spans := HighlightMatches(text, "the")

	var rebuilt string
	for _, s := range spans {
		rebuilt += s.Text
	}
	if rebuilt != text {
		t.Errorf("spans do not reassemble original text: %q", rebuilt)
	}
}
