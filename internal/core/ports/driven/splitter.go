package driven

// Fragment is one piece of split document text.
type Fragment struct {
	Text  string
	Index int
}

// Splitter divides extracted text into fragments for chunk storage.
type Splitter interface {
	// Split divides text into ordered fragments. A nil result means the
	// text is short enough to be left unchunked.
	Split(text string) []Fragment
}
