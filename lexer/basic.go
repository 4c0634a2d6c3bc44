package lexer

import (
	"regexp"
	"strings"

	"github.com/fwojciec/kisspad"
)

// Compile-time interface verification.
var _ kisspad.Tokenizer = (*Basic)(nil)

var (
	basicNumber   = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	basicKeywordR = compileBasicKeywords()
)

func compileBasicKeywords() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(basicKeywords))
	for i, kw := range basicKeywords {
		res[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return res
}

// Basic tokenizes the BASIC dialect. Keywords are case-insensitive.
type Basic struct {
	palette kisspad.Palette
}

// NewBasic creates a BASIC tokenizer styled with p.
func NewBasic(p kisspad.Palette) *Basic {
	return &Basic{palette: p}
}

// Language returns kisspad.LanguageBasic.
func (b *Basic) Language() kisspad.Language {
	return kisspad.LanguageBasic
}

// Tokenize styles text line by line. A line whose trimmed form starts with
// REM or ' is a comment; a ' later in the line has no special meaning.
func (b *Basic) Tokenize(text string) []kisspad.StyleSpan {
	return tokenizeLines(text, b.palette, b.line)
}

func (b *Basic) line(c *kisspad.Canvas, line string, offset int) {
	trimmed := trim(line)
	if trimmed == "" {
		return
	}
	if hasPrefixFold(trimmed, "REM") || strings.HasPrefix(trimmed, "'") {
		c.Paint(offset, offset+len(line), b.palette.Attributes(kisspad.KindComment))
		return
	}

	str := b.palette.Attributes(kisspad.KindString)
	for _, r := range quotedRegions(line) {
		c.Paint(offset+r.start, offset+r.end, str)
	}

	num := b.palette.Attributes(kisspad.KindNumber)
	for _, m := range basicNumber.FindAllStringIndex(line, -1) {
		c.Paint(offset+m[0], offset+m[1], num)
	}

	kw := b.palette.Attributes(kisspad.KindKeyword)
	for _, re := range basicKeywordR {
		for _, m := range re.FindAllStringIndex(line, -1) {
			c.Paint(offset+m[0], offset+m[1], kw)
		}
	}
}

// quotedRegions returns the double-quoted regions of line, quotes included.
// An unterminated quote runs to the end of the line.
func quotedRegions(line string) []field {
	var out []field
	for i := 0; i < len(line); {
		open := strings.IndexByte(line[i:], '"')
		if open < 0 {
			break
		}
		open += i
		end := len(line)
		if closing := strings.IndexByte(line[open+1:], '"'); closing >= 0 {
			end = open + 1 + closing + 1
		}
		out = append(out, field{open, end})
		i = end
	}
	return out
}
