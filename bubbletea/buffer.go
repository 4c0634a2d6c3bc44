package bubbletea

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/kisspad"
)

// Buffer is the editable text of one document with a byte-offset cursor.
type Buffer struct {
	text     string
	cursor   int
	goalCol  int // rune column kept across vertical moves, -1 when unset
	filename string
	modified bool
}

// NewBuffer creates a Buffer holding doc with the cursor at the start.
func NewBuffer(doc kisspad.Document) *Buffer {
	return &Buffer{text: doc.Text, filename: doc.Filename, goalCol: -1}
}

// Document returns a snapshot of the buffer.
func (b *Buffer) Document() kisspad.Document {
	return kisspad.Document{Text: b.text, Filename: b.filename}
}

// Text returns the buffer text.
func (b *Buffer) Text() string { return b.text }

// Cursor returns the cursor byte offset.
func (b *Buffer) Cursor() int { return b.cursor }

// Filename returns the bound file name, empty when unbound.
func (b *Buffer) Filename() string { return b.filename }

// Modified reports whether the buffer has unsaved edits.
func (b *Buffer) Modified() bool { return b.modified }

// Bind binds the buffer to a file name.
func (b *Buffer) Bind(filename string) {
	b.filename = filename
}

// MarkSaved clears the modified flag.
func (b *Buffer) MarkSaved() {
	b.modified = false
}

// Reset replaces the content with doc, keeping the cursor where possible.
func (b *Buffer) Reset(doc kisspad.Document) {
	b.text = doc.Text
	b.filename = doc.Filename
	b.modified = false
	b.goalCol = -1
	b.cursor = min(b.cursor, len(b.text))
	for b.cursor > 0 && b.cursor < len(b.text) && !utf8.RuneStart(b.text[b.cursor]) {
		b.cursor--
	}
}

// Title returns the file's base name, or Untitled, with " *" when modified.
func (b *Buffer) Title() string {
	title := "Untitled"
	if b.filename != "" {
		title = filepath.Base(b.filename)
	}
	if b.modified {
		title += " *"
	}
	return title
}

// Insert inserts s at the cursor and moves the cursor past it.
func (b *Buffer) Insert(s string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if s == "" {
		return
	}
	b.text = b.text[:b.cursor] + s + b.text[b.cursor:]
	b.cursor += len(s)
	b.goalCol = -1
	b.modified = true
}

// Backspace deletes the rune before the cursor and reports whether the text
// changed.
func (b *Buffer) Backspace() bool {
	if b.cursor == 0 {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(b.text[:b.cursor])
	b.text = b.text[:b.cursor-size] + b.text[b.cursor:]
	b.cursor -= size
	b.goalCol = -1
	b.modified = true
	return true
}

// Delete deletes the rune under the cursor and reports whether the text
// changed.
func (b *Buffer) Delete() bool {
	if b.cursor >= len(b.text) {
		return false
	}
	_, size := utf8.DecodeRuneInString(b.text[b.cursor:])
	b.text = b.text[:b.cursor] + b.text[b.cursor+size:]
	b.goalCol = -1
	b.modified = true
	return true
}

// Left moves the cursor one rune back.
func (b *Buffer) Left() {
	if b.cursor > 0 {
		_, size := utf8.DecodeLastRuneInString(b.text[:b.cursor])
		b.cursor -= size
	}
	b.goalCol = -1
}

// Right moves the cursor one rune forward.
func (b *Buffer) Right() {
	if b.cursor < len(b.text) {
		_, size := utf8.DecodeRuneInString(b.text[b.cursor:])
		b.cursor += size
	}
	b.goalCol = -1
}

// Home moves the cursor to the start of its line.
func (b *Buffer) Home() {
	b.cursor, _ = b.line()
	b.goalCol = -1
}

// End moves the cursor to the end of its line.
func (b *Buffer) End() {
	_, b.cursor = b.line()
	b.goalCol = -1
}

// Up moves the cursor to the previous line, keeping its column.
func (b *Buffer) Up() {
	start, _ := b.line()
	if start == 0 {
		return
	}
	col := b.column()
	prevEnd := start - 1
	prevStart := strings.LastIndexByte(b.text[:prevEnd], '\n') + 1
	b.cursor = offsetAtColumn(b.text, prevStart, prevEnd, col)
	b.goalCol = col
}

// Down moves the cursor to the next line, keeping its column.
func (b *Buffer) Down() {
	_, end := b.line()
	if end == len(b.text) {
		return
	}
	col := b.column()
	nextStart := end + 1
	nextEnd := len(b.text)
	if i := strings.IndexByte(b.text[nextStart:], '\n'); i >= 0 {
		nextEnd = nextStart + i
	}
	b.cursor = offsetAtColumn(b.text, nextStart, nextEnd, col)
	b.goalCol = col
}

// Position returns the 1-based line and rune column of the cursor.
func (b *Buffer) Position() (line, col int) {
	start, _ := b.line()
	line = strings.Count(b.text[:b.cursor], "\n") + 1
	col = utf8.RuneCountInString(b.text[start:b.cursor]) + 1
	return line, col
}

// line returns the byte window of the cursor's line, excluding '\n'.
func (b *Buffer) line() (start, end int) {
	start = strings.LastIndexByte(b.text[:b.cursor], '\n') + 1
	end = len(b.text)
	if i := strings.IndexByte(b.text[b.cursor:], '\n'); i >= 0 {
		end = b.cursor + i
	}
	return start, end
}

func (b *Buffer) column() int {
	if b.goalCol >= 0 {
		return b.goalCol
	}
	start, _ := b.line()
	return utf8.RuneCountInString(b.text[start:b.cursor])
}

// offsetAtColumn returns the offset of rune column col within [start, end),
// clamped to end.
func offsetAtColumn(text string, start, end, col int) int {
	off := start
	for i := 0; i < col && off < end; i++ {
		_, size := utf8.DecodeRuneInString(text[off:end])
		off += size
	}
	return off
}
