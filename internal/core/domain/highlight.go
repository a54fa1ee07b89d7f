package domain

import "regexp"

// HighlightSpan is one segment of highlighted text. Spans cover the
// source text completely, in order, with no gaps or overlaps; matched
// spans preserve the original casing.
type HighlightSpan struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// HighlightMatches splits text into alternating plain and matched spans
// by case-insensitive literal occurrence of query. The query is quoted
// before compilation so metacharacters match verbatim. An empty query,
// empty text, or a pattern that fails to compile degrades to the whole
// text as a single plain span; highlighting never fails.
func HighlightMatches(text, query string) []HighlightSpan {
	plain := []HighlightSpan{{Text: text}}
	if text == "" || query == "" {
		return plain
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return plain
	}

	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return plain
	}

	var spans []HighlightSpan
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			spans = append(spans, HighlightSpan{Text: text[prev:loc[0]]})
		}
		spans = append(spans, HighlightSpan{Text: text[loc[0]:loc[1]], Matched: true})
		prev = loc[1]
	}
	if prev < len(text) {
		spans = append(spans, HighlightSpan{Text: text[prev:]})
	}

	return spans
}
