package lexer

import (
	"strings"

	"github.com/fwojciec/kisspad"
)

// Compile-time interface verification.
var _ kisspad.Tokenizer = (*Brainfuck)(nil)

// Brainfuck styles the eight command symbols; everything else is default.
type Brainfuck struct {
	palette kisspad.Palette
}

// NewBrainfuck creates a Brainfuck tokenizer styled with p.
func NewBrainfuck(p kisspad.Palette) *Brainfuck {
	return &Brainfuck{palette: p}
}

// Language returns kisspad.LanguageBrainfuck.
func (b *Brainfuck) Language() kisspad.Language {
	return kisspad.LanguageBrainfuck
}

// Tokenize scans text one byte at a time.
func (b *Brainfuck) Tokenize(text string) []kisspad.StyleSpan {
	c := kisspad.NewCanvas(len(text), b.palette.Attributes(kisspad.KindDefault))
	cmd := b.palette.Attributes(kisspad.KindCommand)
	for i := 0; i < len(text); i++ {
		if strings.IndexByte(brainfuckCommands, text[i]) >= 0 {
			c.Paint(i, i+1, cmd)
		}
	}
	return c.Spans()
}
