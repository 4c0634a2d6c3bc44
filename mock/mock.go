// Package mock provides test doubles for kisspad interfaces.
package mock

import "github.com/fwojciec/kisspad"

// Compile-time interface verification.
var (
	_ kisspad.Tokenizer  = (*Tokenizer)(nil)
	_ kisspad.Classifier = (*Classifier)(nil)
	_ kisspad.Surface    = (*Surface)(nil)
	_ kisspad.Clipboard  = (*Clipboard)(nil)
	_ kisspad.Theme      = (*Theme)(nil)
)

// Tokenizer is a mock implementation of kisspad.Tokenizer.
type Tokenizer struct {
	TokenizeFn func(text string) []kisspad.StyleSpan
	Lang       kisspad.Language
}

func (t *Tokenizer) Tokenize(text string) []kisspad.StyleSpan {
	return t.TokenizeFn(text)
}

func (t *Tokenizer) Language() kisspad.Language {
	return t.Lang
}

// Classifier is a mock implementation of kisspad.Classifier.
type Classifier struct {
	ClassifyFn func(filename, text string) kisspad.Language
}

func (c *Classifier) Classify(filename, text string) kisspad.Language {
	return c.ClassifyFn(filename, text)
}

// Surface is a mock implementation of kisspad.Surface.
type Surface struct {
	ApplyFn func(text string, spans []kisspad.StyleSpan) error
}

func (s *Surface) Apply(text string, spans []kisspad.StyleSpan) error {
	return s.ApplyFn(text, spans)
}

// Clipboard is a mock implementation of kisspad.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

// Theme is a mock implementation of kisspad.Theme.
type Theme struct {
	PaletteFn func() kisspad.Palette
}

func (t *Theme) Palette() kisspad.Palette {
	return t.PaletteFn()
}
