package kisspad

// StyleSpan is a half-open byte range [Start, End) paired with its style.
type StyleSpan struct {
	Start      int
	End        int
	Attributes StyleAttributes
}

// Len returns the number of bytes covered by the span.
func (s StyleSpan) Len() int {
	return s.End - s.Start
}

// Tokenizer maps text to style spans for a single language.
type Tokenizer interface {
	// Tokenize returns spans ordered by Start that exactly partition
	// [0, len(text)). It never fails.
	Tokenize(text string) []StyleSpan

	// Language returns the language this tokenizer handles.
	Language() Language
}

// Classifier decides which language governs a document.
type Classifier interface {
	// Classify returns the language for the given file name (empty when
	// unbound) and text content.
	Classify(filename, text string) Language
}

// Surface is a rendering target that receives the result of a pass.
// A failed Apply must leave the previously applied styling in place.
type Surface interface {
	Apply(text string, spans []StyleSpan) error
}

// Clipboard provides clipboard operations.
type Clipboard interface {
	Copy(content string) error
}
