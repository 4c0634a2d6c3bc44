package kisspad

import (
	"fmt"
	"sort"
)

// Canvas composes style layers over a text of fixed length. Later writes
// replace earlier ones on the offsets they cover; attributes are never merged
// unless a caller does so explicitly through Update.
type Canvas struct {
	cells []StyleAttributes
}

// NewCanvas returns a canvas of n bytes filled with base.
func NewCanvas(n int, base StyleAttributes) *Canvas {
	cells := make([]StyleAttributes, n)
	for i := range cells {
		cells[i] = base
	}
	return &Canvas{cells: cells}
}

// CanvasFromSpans returns a canvas of n bytes initialised from spans.
// Offsets not covered by any span are left as zero attributes.
func CanvasFromSpans(n int, spans []StyleSpan) *Canvas {
	c := &Canvas{cells: make([]StyleAttributes, n)}
	for _, s := range spans {
		c.Paint(s.Start, s.End, s.Attributes)
	}
	return c
}

// Len returns the canvas length in bytes.
func (c *Canvas) Len() int {
	return len(c.cells)
}

// Paint overwrites [start, end) with attrs. The range is clamped to the canvas.
func (c *Canvas) Paint(start, end int, attrs StyleAttributes) {
	start, end = c.clamp(start, end)
	for i := start; i < end; i++ {
		c.cells[i] = attrs
	}
}

// Update replaces every cell in [start, end) with fn applied to it.
func (c *Canvas) Update(start, end int, fn func(StyleAttributes) StyleAttributes) {
	start, end = c.clamp(start, end)
	for i := start; i < end; i++ {
		c.cells[i] = fn(c.cells[i])
	}
}

// At returns the attributes at offset i.
func (c *Canvas) At(i int) StyleAttributes {
	return c.cells[i]
}

// Spans returns the canvas as ordered spans, joining adjacent equal cells.
func (c *Canvas) Spans() []StyleSpan {
	spans := []StyleSpan{}
	for i := 0; i < len(c.cells); {
		j := i + 1
		for j < len(c.cells) && c.cells[j] == c.cells[i] {
			j++
		}
		spans = append(spans, StyleSpan{Start: i, End: j, Attributes: c.cells[i]})
		i = j
	}
	return spans
}

func (c *Canvas) clamp(start, end int) (int, int) {
	start = max(start, 0)
	end = min(end, len(c.cells))
	if end < start {
		end = start
	}
	return start, end
}

// StyleAt returns the attributes of the span covering offset, or false when
// no span covers it. spans must be ordered by Start.
func StyleAt(spans []StyleSpan, offset int) (StyleAttributes, bool) {
	i := sort.Search(len(spans), func(i int) bool { return spans[i].End > offset })
	if i == len(spans) || spans[i].Start > offset {
		return StyleAttributes{}, false
	}
	return spans[i].Attributes, true
}

// ValidateSpans returns an error unless spans exactly partition [0, n):
// sorted, non-empty, contiguous and covering every offset.
func ValidateSpans(spans []StyleSpan, n int) error {
	next := 0
	for i, s := range spans {
		if s.Start != next {
			return fmt.Errorf("kisspad: span %d starts at %d, want %d", i, s.Start, next)
		}
		if s.End <= s.Start {
			return fmt.Errorf("kisspad: span %d is empty or inverted [%d, %d)", i, s.Start, s.End)
		}
		next = s.End
	}
	if next != n {
		return fmt.Errorf("kisspad: spans cover [0, %d), want [0, %d)", next, n)
	}
	return nil
}
