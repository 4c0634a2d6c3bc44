// Package overlay layers an error-line background over syntax spans.
package overlay

import (
	"slices"

	"github.com/fwojciec/kisspad"
)

// Compositor sets the error background on flagged lines, keeping every other
// attribute the tokenizer assigned.
type Compositor struct {
	background kisspad.ColorID
}

// NewCompositor creates a Compositor that paints flagged lines with background.
func NewCompositor(background kisspad.ColorID) *Compositor {
	return &Compositor{background: background}
}

// Background returns the color used for flagged lines.
func (c *Compositor) Background() kisspad.ColorID {
	return c.background
}

// Apply returns base with the error background set on every byte of each
// flagged line, excluding the line separator. base must be the spans of a
// tokenizer pass over text. Line numbers outside the text are ignored.
func (c *Compositor) Apply(text string, base []kisspad.StyleSpan, lines kisspad.ErrorLineSet) []kisspad.StyleSpan {
	if lines.Len() == 0 {
		return slices.Clone(base)
	}

	canvas := kisspad.CanvasFromSpans(len(text), base)
	for _, ln := range kisspad.Lines(text) {
		if !lines.Contains(ln.Number) {
			continue
		}
		canvas.Update(ln.Start, ln.End, func(a kisspad.StyleAttributes) kisspad.StyleAttributes {
			return a.WithBackground(c.background)
		})
	}
	return canvas.Spans()
}
