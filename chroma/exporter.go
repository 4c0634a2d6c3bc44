package chroma

import (
	"fmt"
	"io"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/fwojciec/kisspad"
)

// Export formats.
const (
	FormatHTML        = "html"
	FormatTerminal    = "terminal"
	FormatTerminal256 = "terminal256"
	FormatText        = "text"
)

// Formats lists the formats Export accepts.
var Formats = []string{FormatHTML, FormatTerminal, FormatTerminal256, FormatText}

// Exporter writes a highlighted document in one of the chroma output formats.
type Exporter struct {
	style       *chromalib.Style
	tabWidth    int
	lineNumbers bool
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithTabWidth sets the tab width used by the HTML formatter.
func WithTabWidth(n int) Option {
	return func(e *Exporter) {
		e.tabWidth = n
	}
}

// WithLineNumbers enables line numbers in HTML output.
func WithLineNumbers(enabled bool) Option {
	return func(e *Exporter) {
		e.lineNumbers = enabled
	}
}

// NewExporter creates an Exporter styled with palette p.
func NewExporter(p kisspad.Palette, opts ...Option) (*Exporter, error) {
	style, err := StyleFromPalette("kisspad", p)
	if err != nil {
		return nil, fmt.Errorf("chroma: building style: %w", err)
	}
	e := &Exporter{style: style, tabWidth: 8}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Tokens converts spans over text to chroma tokens.
func Tokens(text string, spans []kisspad.StyleSpan) []chromalib.Token {
	tokens := make([]chromalib.Token, 0, len(spans))
	for _, sp := range spans {
		tokens = append(tokens, chromalib.Token{
			Type:  TokenType(sp.Attributes.Kind),
			Value: text[sp.Start:sp.End],
		})
	}
	return tokens
}

// Export writes text styled by spans to w. Error lines are highlighted in
// HTML output; terminal formats carry token colors only.
func (e *Exporter) Export(w io.Writer, format, text string, spans []kisspad.StyleSpan, errs kisspad.ErrorLineSet) error {
	if err := kisspad.ValidateSpans(spans, len(text)); err != nil {
		return err
	}

	var f chromalib.Formatter
	switch format {
	case FormatHTML:
		f = html.New(
			html.Standalone(true),
			html.WithClasses(false),
			html.TabWidth(e.tabWidth),
			html.WithLineNumbers(e.lineNumbers),
			html.HighlightLines(lineRanges(errs)),
		)
	case FormatTerminal:
		f = formatters.Get("terminal16m")
	case FormatTerminal256:
		f = formatters.Get("terminal256")
	case FormatText:
		f = formatters.Get("noop")
	default:
		return fmt.Errorf("chroma: unknown format %q", format)
	}

	if err := f.Format(w, e.style, chromalib.Literator(Tokens(text, spans)...)); err != nil {
		return fmt.Errorf("chroma: formatting %s: %w", format, err)
	}
	return nil
}

// lineRanges collapses error lines into the inclusive ranges the HTML
// formatter expects.
func lineRanges(errs kisspad.ErrorLineSet) [][2]int {
	lines := errs.Lines()
	var ranges [][2]int
	for _, n := range lines {
		if len(ranges) > 0 && ranges[len(ranges)-1][1] == n-1 {
			ranges[len(ranges)-1][1] = n
			continue
		}
		ranges = append(ranges, [2]int{n, n})
	}
	return ranges
}
