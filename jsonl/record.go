// Package jsonl provides JSONL span dumps of highlighted documents.
package jsonl

import (
	"sort"

	"github.com/fwojciec/kisspad"
)

// Record is one styled span of a highlighted document.
type Record struct {
	File       string `json:"file,omitempty"`
	Language   string `json:"language"`
	Line       int    `json:"line"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Kind       string `json:"kind"`
	Foreground string `json:"fg,omitempty"`
	Background string `json:"bg,omitempty"`
	Bold       bool   `json:"bold,omitempty"`
	Italic     bool   `json:"italic,omitempty"`
	Text       string `json:"text"`
}

// Records converts the spans of a pass over doc into records. Line is the
// 1-based line on which the span starts.
func Records(doc kisspad.Document, lang kisspad.Language, spans []kisspad.StyleSpan) []Record {
	lines := kisspad.Lines(doc.Text)
	out := make([]Record, 0, len(spans))
	for _, sp := range spans {
		i := sort.Search(len(lines), func(i int) bool { return lines[i].End >= sp.Start })
		line := len(lines)
		if i < len(lines) {
			line = lines[i].Number
		}
		a := sp.Attributes
		out = append(out, Record{
			File:       doc.Filename,
			Language:   lang.String(),
			Line:       line,
			Start:      sp.Start,
			End:        sp.End,
			Kind:       a.Kind.String(),
			Foreground: string(a.Foreground),
			Background: string(a.Background),
			Bold:       a.Bold,
			Italic:     a.Italic,
			Text:       doc.Text[sp.Start:sp.End],
		})
	}
	return out
}
