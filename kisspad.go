// Package kisspad provides domain types for highlighting source text in the
// Kiss, Brainfuck, BASIC and NASM languages.
package kisspad

import (
	"fmt"
	"slices"
	"strings"
)

// Document is a snapshot of a buffer handed to the engine for one pass.
type Document struct {
	Text     string // Full text content
	Filename string // Bound file name or path, empty when unbound
}

// Bound reports whether the document is bound to a file.
func (d Document) Bound() bool {
	return d.Filename != ""
}

// Language identifies which tokenizer governs a document.
type Language int

// Supported languages. LanguageKiss is the default.
const (
	LanguageKiss Language = iota
	LanguageBrainfuck
	LanguageBasic
	LanguageNasm
)

// Languages lists every supported language in declaration order.
var Languages = []Language{LanguageKiss, LanguageBrainfuck, LanguageBasic, LanguageNasm}

func (l Language) String() string {
	switch l {
	case LanguageKiss:
		return "kiss"
	case LanguageBrainfuck:
		return "brainfuck"
	case LanguageBasic:
		return "basic"
	case LanguageNasm:
		return "nasm"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// ParseLanguage returns the language with the given name (case-insensitive).
func ParseLanguage(name string) (Language, error) {
	for _, l := range Languages {
		if strings.EqualFold(l.String(), name) {
			return l, nil
		}
	}
	return LanguageKiss, fmt.Errorf("kisspad: unknown language %q", name)
}

// ErrorLineSet is a set of 1-based line numbers flagged by an external tool.
// The engine only reads it.
type ErrorLineSet map[int]struct{}

// NewErrorLineSet returns a set containing the given line numbers.
func NewErrorLineSet(lines ...int) ErrorLineSet {
	s := make(ErrorLineSet, len(lines))
	for _, l := range lines {
		s[l] = struct{}{}
	}
	return s
}

// Contains reports whether line is flagged.
func (s ErrorLineSet) Contains(line int) bool {
	_, ok := s[line]
	return ok
}

// Len returns the number of flagged lines.
func (s ErrorLineSet) Len() int {
	return len(s)
}

// Lines returns the flagged line numbers in ascending order.
func (s ErrorLineSet) Lines() []int {
	lines := make([]int, 0, len(s))
	for l := range s {
		lines = append(lines, l)
	}
	slices.Sort(lines)
	return lines
}

// LineRange is the byte window of one line within a text.
// End excludes the trailing line separator.
type LineRange struct {
	Number int // 1-based
	Start  int
	End    int
}

// Lines splits text on '\n' and returns the window of every line.
// A text ending in '\n' has a final empty line, and empty text has one empty line.
func Lines(text string) []LineRange {
	ranges := make([]LineRange, 0, strings.Count(text, "\n")+1)
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			ranges = append(ranges, LineRange{Number: len(ranges) + 1, Start: start, End: i})
			start = i + 1
		}
	}
	return append(ranges, LineRange{Number: len(ranges) + 1, Start: start, End: len(text)})
}
