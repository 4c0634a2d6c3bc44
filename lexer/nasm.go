package lexer

import (
	"regexp"
	"strings"

	"github.com/fwojciec/kisspad"
)

// Compile-time interface verification.
var _ kisspad.Tokenizer = (*Nasm)(nil)

var (
	nasmString = regexp.MustCompile(`"[^"]*"`)
	nasmNumber = regexp.MustCompile(`\b(?:0x[0-9a-fA-F]+|\d+)\b`)
)

// Nasm tokenizes x86 NASM assembly. Keywords are case-insensitive.
type Nasm struct {
	palette kisspad.Palette
}

// NewNasm creates a NASM tokenizer styled with p.
func NewNasm(p kisspad.Palette) *Nasm {
	return &Nasm{palette: p}
}

// Language returns kisspad.LanguageNasm.
func (n *Nasm) Language() kisspad.Language {
	return kisspad.LanguageNasm
}

// Tokenize runs four sweeps over each raw line in order: comment, string,
// number, keyword.
func (n *Nasm) Tokenize(text string) []kisspad.StyleSpan {
	return tokenizeLines(text, n.palette, n.line)
}

func (n *Nasm) line(c *kisspad.Canvas, line string, offset int) {
	if line == "" {
		return
	}

	if semi := strings.IndexByte(line, ';'); semi >= 0 {
		c.Paint(offset+semi, offset+len(line), n.palette.Attributes(kisspad.KindComment))
	}

	str := n.palette.Attributes(kisspad.KindString)
	for _, m := range nasmString.FindAllStringIndex(line, -1) {
		c.Paint(offset+m[0], offset+m[1], str)
	}

	num := n.palette.Attributes(kisspad.KindNumber)
	for _, m := range nasmNumber.FindAllStringIndex(line, -1) {
		c.Paint(offset+m[0], offset+m[1], num)
	}

	kw := n.palette.Attributes(kisspad.KindKeyword)
	for _, word := range nasmKeywords {
		for i := indexFold(line, word, 0); i >= 0; i = indexFold(line, word, i+len(word)) {
			end := i + len(word)
			if !isAlnumBefore(line, i) && !isAlnumAt(line, end) {
				c.Paint(offset+i, offset+end, kw)
			}
		}
	}
}
