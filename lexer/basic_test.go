package lexer_test

import (
	"testing"

	"github.com/fwojciec/kisspad"
	"github.com/fwojciec/kisspad/lexer"
	"github.com/stretchr/testify/assert"
)

func TestBasic_Tokenize(t *testing.T) {
	t.Parallel()

	tok := lexer.NewBasic(testPalette)

	t.Run("REM line is a comment despite keywords", func(t *testing.T) {
		t.Parallel()

		text := "REM hello PRINT 5"
		spans := tok.Tokenize(text)

		requireKind(t, spans, 0, len(text), kisspad.KindComment)
	})

	t.Run("REM is case-insensitive", func(t *testing.T) {
		t.Parallel()

		text := "  rem lower"
		spans := tok.Tokenize(text)

		requireKind(t, spans, 0, len(text), kisspad.KindComment)
	})

	t.Run("leading quote is a comment", func(t *testing.T) {
		t.Parallel()

		text := "' note"
		spans := tok.Tokenize(text)

		requireKind(t, spans, 0, len(text), kisspad.KindComment)
	})

	t.Run("quote mid-line has no special styling", func(t *testing.T) {
		t.Parallel()

		text := "LET X = 5 ' comment"
		spans := tok.Tokenize(text)

		requireKind(t, spans, 0, 3, kisspad.KindKeyword)
		requireSubstrKind(t, spans, text, "5", kisspad.KindNumber)
		requireSubstrKind(t, spans, text, "' comment", kisspad.KindDefault)

		a, _ := kisspad.StyleAt(spans, 0)
		assert.True(t, a.Bold)
	})

	t.Run("keywords match case-insensitively at word boundaries", func(t *testing.T) {
		t.Parallel()

		text := "print x: PRINTER"
		spans := tok.Tokenize(text)

		requireKind(t, spans, 0, 5, kisspad.KindKeyword)
		requireSubstrKind(t, spans, text, "PRINTER", kisspad.KindDefault)
	})

	t.Run("every occurrence of every keyword", func(t *testing.T) {
		t.Parallel()

		text := "IF A THEN GOTO 10 ELSE GOTO 20"
		spans := tok.Tokenize(text)

		requireKind(t, spans, 0, 2, kisspad.KindKeyword)
		requireSubstrKind(t, spans, text, "THEN", kisspad.KindKeyword)
		requireKind(t, spans, 10, 14, kisspad.KindKeyword)
		requireKind(t, spans, 23, 27, kisspad.KindKeyword)
		requireSubstrKind(t, spans, text, "10", kisspad.KindNumber)
		requireSubstrKind(t, spans, text, "20", kisspad.KindNumber)
	})

	t.Run("strings include their quotes", func(t *testing.T) {
		t.Parallel()

		text := `PRINT "HELLO"`
		spans := tok.Tokenize(text)

		requireKind(t, spans, 0, 5, kisspad.KindKeyword)
		requireKind(t, spans, 6, len(text), kisspad.KindString)
	})

	t.Run("several strings on one line", func(t *testing.T) {
		t.Parallel()

		text := `PRINT "A"; X; "B"`
		spans := tok.Tokenize(text)

		requireSubstrKind(t, spans, text, `"A"`, kisspad.KindString)
		requireSubstrKind(t, spans, text, "; X; ", kisspad.KindDefault)
		requireSubstrKind(t, spans, text, `"B"`, kisspad.KindString)
	})

	t.Run("unterminated string runs to end of line", func(t *testing.T) {
		t.Parallel()

		text := "PRINT \"OPEN\nLET"
		spans := tok.Tokenize(text)

		requireKind(t, spans, 6, 11, kisspad.KindString)
		requireKind(t, spans, 11, 12, kisspad.KindDefault)
		requireKind(t, spans, 12, 15, kisspad.KindKeyword)
	})

	t.Run("later sweeps overwrite strings", func(t *testing.T) {
		t.Parallel()

		text := `PRINT "GOTO 7"`
		spans := tok.Tokenize(text)

		requireKind(t, spans, 6, 7, kisspad.KindString)
		requireSubstrKind(t, spans, text, "GOTO", kisspad.KindKeyword)
		requireSubstrKind(t, spans, text, "7", kisspad.KindNumber)
		requireKind(t, spans, len(text)-1, len(text), kisspad.KindString)
	})

	t.Run("decimal numbers", func(t *testing.T) {
		t.Parallel()

		text := "LET PI = 3.14"
		spans := tok.Tokenize(text)

		requireSubstrKind(t, spans, text, "3.14", kisspad.KindNumber)
	})

	t.Run("digits inside identifiers are not numbers", func(t *testing.T) {
		t.Parallel()

		text := "DIM A1"
		spans := tok.Tokenize(text)

		requireSubstrKind(t, spans, text, "A1", kisspad.KindDefault)
	})
}

func TestBasic_TrimsControlCharacters(t *testing.T) {
	t.Parallel()

	text := "\x01REM note"
	spans := lexer.NewBasic(testPalette).Tokenize(text)

	requireKind(t, spans, 0, len(text), kisspad.KindComment)
}
