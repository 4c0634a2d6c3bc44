package lexer

import (
	"path/filepath"
	"strings"

	"github.com/fwojciec/kisspad"
)

// Compile-time interface verification.
var _ kisspad.Classifier = (*Classifier)(nil)

// basicThreshold is the number of distinct BASIC keywords an unbound buffer
// must contain before it is treated as BASIC.
const basicThreshold = 3

// Classifier picks a language from the file extension, falling back to a
// keyword count for unbound buffers.
type Classifier struct{}

// NewClassifier creates a new Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the language for filename and text. Rules, first match wins:
// .b/.bf is Brainfuck, .bas/.basic is BASIC, .asm/.nasm is NASM; an unbound
// buffer containing at least three BASIC keywords as substrings is BASIC;
// everything else is Kiss.
func (c *Classifier) Classify(filename, text string) kisspad.Language {
	if filename != "" {
		name := strings.ToLower(filepath.Base(filename))
		switch {
		case hasAnySuffix(name, ".b", ".bf"):
			return kisspad.LanguageBrainfuck
		case hasAnySuffix(name, ".bas", ".basic"):
			return kisspad.LanguageBasic
		case hasAnySuffix(name, ".asm", ".nasm"):
			return kisspad.LanguageNasm
		}
		return kisspad.LanguageKiss
	}

	if CountBasicKeywords(text) >= basicThreshold {
		return kisspad.LanguageBasic
	}
	return kisspad.LanguageKiss
}

// CountBasicKeywords returns how many distinct BASIC keywords occur in text as
// case-insensitive substrings. A keyword inside a longer identifier counts.
func CountBasicKeywords(text string) int {
	upper := strings.ToUpper(text)
	n := 0
	for _, kw := range basicKeywords {
		if strings.Contains(upper, kw) {
			n++
		}
	}
	return n
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
