package lexer

import (
	"regexp"
	"strings"

	"github.com/fwojciec/kisspad"
)

// Compile-time interface verification.
var _ kisspad.Tokenizer = (*Kiss)(nil)

var (
	kissNumber = regexp.MustCompile(`^-?\d+$`)
	kissChar   = regexp.MustCompile(`^'[^']'$`)
)

// Kiss tokenizes the Kiss pseudo-assembly language. Commands are case-sensitive.
type Kiss struct {
	palette kisspad.Palette
}

// NewKiss creates a Kiss tokenizer styled with p.
func NewKiss(p kisspad.Palette) *Kiss {
	return &Kiss{palette: p}
}

// Language returns kisspad.LanguageKiss.
func (k *Kiss) Language() kisspad.Language {
	return kisspad.LanguageKiss
}

// Tokenize styles text line by line.
func (k *Kiss) Tokenize(text string) []kisspad.StyleSpan {
	return tokenizeLines(text, k.palette, k.line)
}

func (k *Kiss) line(c *kisspad.Canvas, line string, offset int) {
	trimmed := trim(line)
	if trimmed == "" {
		return
	}
	lead := offset + leadingSpace(line)

	switch {
	case strings.HasPrefix(trimmed, "#include"):
		c.Paint(lead, offset+len(line), k.palette.Attributes(kisspad.KindInclude))
	case strings.HasPrefix(trimmed, "#"):
		c.Paint(offset, offset+len(line), k.palette.Attributes(kisspad.KindComment))
	default:
		if strings.HasPrefix(trimmed, ":") {
			end := strings.IndexFunc(trimmed, isSpace)
			if end < 0 {
				end = len(trimmed)
			}
			c.Paint(lead, lead+end, k.palette.Attributes(kisspad.KindLabel))
		}
		for _, cmd := range kissCommands {
			if strings.HasPrefix(trimmed, cmd) {
				c.Paint(lead, lead+len(cmd), k.palette.Attributes(kisspad.KindCommand))
				break
			}
		}
	}

	// Literal tokens are painted last on every non-blank line, comments included.
	for _, f := range fields(line) {
		tok := f.text(line)
		switch {
		case kissNumber.MatchString(tok):
			c.Paint(offset+f.start, offset+f.end, k.palette.Attributes(kisspad.KindNumber))
		case kissChar.MatchString(tok):
			c.Paint(offset+f.start, offset+f.end, k.palette.Attributes(kisspad.KindChar))
		}
	}
}
