// Package lexer implements the line-oriented tokenizers and the language
// classifier for the four supported languages.
//
// Every tokenizer starts from a canvas filled with the default style and
// paints its passes in a fixed order; later passes win where they overlap.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/kisspad"
)

// kissCommands is scanned in order; the first prefix match wins.
var kissCommands = []string{
	"CP", "CI", "A", "I", "D", "X", "M", "P", "C", "S", "N", "B", "Y", "V", "E", "L", "G",
}

const brainfuckCommands = "><+-.,[]"

var basicKeywords = []string{
	"PRINT", "INPUT", "LET", "IF", "THEN", "ELSE", "ENDIF", "FOR", "TO", "STEP", "NEXT",
	"WHILE", "WEND", "DO", "LOOP", "UNTIL", "GOTO", "GOSUB", "RETURN", "DIM", "REM",
}

var nasmKeywords = []string{
	"mov", "add", "sub", "mul", "imul", "div", "idiv", "jmp", "je", "jne", "jg",
	"jge", "jl", "jle", "call", "ret", "push", "pop", "and", "or", "xor", "not",
	"cmp", "test", "lea", "inc", "dec", "nop", "int",
	"eax", "ebx", "ecx", "edx", "esi", "edi", "esp", "ebp",
	"rax", "rbx", "rcx", "rdx", "rsi", "rdi", "rsp", "rbp",
}

// All returns one tokenizer per supported language, styled with p.
func All(p kisspad.Palette) map[kisspad.Language]kisspad.Tokenizer {
	return map[kisspad.Language]kisspad.Tokenizer{
		kisspad.LanguageKiss:      NewKiss(p),
		kisspad.LanguageBrainfuck: NewBrainfuck(p),
		kisspad.LanguageBasic:     NewBasic(p),
		kisspad.LanguageNasm:      NewNasm(p),
	}
}

// New returns the tokenizer for lang. Unknown languages get the Kiss tokenizer.
func New(lang kisspad.Language, p kisspad.Palette) kisspad.Tokenizer {
	if t, ok := All(p)[lang]; ok {
		return t
	}
	return NewKiss(p)
}

// tokenizeLines runs fn over every line of text on a default-filled canvas.
func tokenizeLines(text string, p kisspad.Palette, fn func(c *kisspad.Canvas, line string, offset int)) []kisspad.StyleSpan {
	c := kisspad.NewCanvas(len(text), p.Attributes(kisspad.KindDefault))
	for _, ln := range kisspad.Lines(text) {
		fn(c, text[ln.Start:ln.End], ln.Start)
	}
	return c.Spans()
}

// field is a whitespace-delimited token within a line.
type field struct {
	start, end int
}

func (f field) text(line string) string {
	return line[f.start:f.end]
}

// fields splits line on ASCII whitespace and keeps byte positions.
func fields(line string) []field {
	var out []field
	start := -1
	for i := 0; i < len(line); i++ {
		if isSpace(rune(line[i])) {
			if start >= 0 {
				out = append(out, field{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, field{start, len(line)})
	}
	return out
}

// trim strips the control characters and spaces (bytes up to 0x20) from both
// ends of s. Other Unicode spaces are kept.
func trim(s string) string {
	s = s[leadingSpace(s):]
	end := len(s)
	for end > 0 && s[end-1] <= ' ' {
		end--
	}
	return s[:end]
}

// leadingSpace returns the byte length of the prefix of s that trim strips.
func leadingSpace(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] > ' ' {
			return i
		}
	}
	return len(s)
}

// hasPrefixFold reports whether s starts with the ASCII prefix, ignoring case.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && equalFoldASCII(s[:len(prefix)], prefix)
}

// indexFold returns the first index at or after from where the ASCII word
// occurs in s, ignoring case, or -1.
func indexFold(s, word string, from int) int {
	for i := from; i+len(word) <= len(s); i++ {
		if equalFoldASCII(s[i:i+len(word)], word) {
			return i
		}
	}
	return -1
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// isAlnumBefore reports whether the rune ending at i is a letter or digit.
func isAlnumBefore(s string, i int) bool {
	if i <= 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isAlnumAt reports whether the rune starting at i is a letter or digit.
func isAlnumAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isSpace reports whether r is an ASCII whitespace character.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
