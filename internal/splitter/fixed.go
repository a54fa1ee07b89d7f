package splitter

import "github.com/covenant-labs/covenant-core/internal/core/ports/driven"

// chunkSize is the fixed fragment length in runes. Text at or under
// this length stays unchunked; such documents are found through their
// metadata (name, parties, filename) rather than their body text.
const chunkSize = 1000

// FixedSplitter divides text into fixed-length fragments. Slicing is
// rune-based so multi-byte characters are never cut mid-sequence, and
// concatenating the fragments in order reproduces the input exactly.
type FixedSplitter struct{}

// NewFixedSplitter creates a new FixedSplitter
func NewFixedSplitter() *FixedSplitter {
	return &FixedSplitter{}
}

var _ driven.Splitter = (*FixedSplitter)(nil)

// Split divides text into ordered fragments of at most chunkSize runes.
// Returns nil when the text fits in a single fragment.
func (s *FixedSplitter) Split(text string) []driven.Fragment {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return nil
	}

	fragments := make([]driven.Fragment, 0, (len(runes)+chunkSize-1)/chunkSize)
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		fragments = append(fragments, driven.Fragment{
			Text:  string(runes[start:end]),
			Index: len(fragments),
		})
	}
	return fragments
}
