// Package chroma exports highlighted documents through the chroma formatters.
package chroma

import (
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/kisspad"
)

// TokenType maps a style kind to the chroma token type it is exported as.
func TokenType(k kisspad.Kind) chromalib.TokenType {
	switch k {
	case kisspad.KindCommand:
		return chromalib.NameBuiltin
	case kisspad.KindInclude:
		return chromalib.CommentPreproc
	case kisspad.KindLabel:
		return chromalib.NameLabel
	case kisspad.KindComment:
		return chromalib.CommentSingle
	case kisspad.KindNumber:
		return chromalib.LiteralNumber
	case kisspad.KindChar:
		return chromalib.LiteralStringChar
	case kisspad.KindString:
		return chromalib.LiteralString
	case kisspad.KindKeyword:
		return chromalib.Keyword
	default:
		return chromalib.Text
	}
}

// StyleFromPalette builds a chroma style that renders every kind with the
// palette's colors. Highlighted lines use the error background.
func StyleFromPalette(name string, p kisspad.Palette) (*chromalib.Style, error) {
	b := chromalib.NewStyleBuilder(name)
	b.Add(chromalib.Background, entry(p.Attributes(kisspad.KindDefault), p.Background))
	for _, k := range []kisspad.Kind{
		kisspad.KindDefault, kisspad.KindCommand, kisspad.KindInclude, kisspad.KindLabel,
		kisspad.KindComment, kisspad.KindNumber, kisspad.KindChar, kisspad.KindString,
		kisspad.KindKeyword,
	} {
		b.Add(TokenType(k), entry(p.Attributes(k), ""))
	}
	if p.ErrorBackground != "" {
		b.Add(chromalib.LineHighlight, "bg:"+string(p.ErrorBackground))
	}
	return b.Build()
}

// entry formats attributes in chroma's style entry syntax.
func entry(a kisspad.StyleAttributes, bg kisspad.ColorID) string {
	var parts []string
	if a.Bold {
		parts = append(parts, "bold")
	}
	if a.Italic {
		parts = append(parts, "italic")
	}
	if a.Foreground != "" {
		parts = append(parts, string(a.Foreground))
	}
	if bg != "" {
		parts = append(parts, "bg:"+string(bg))
	}
	return strings.Join(parts, " ")
}
