package lipgloss

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/kisspad"
)

// Compile-time interface verification.
var _ kisspad.Surface = (*Surface)(nil)

// NoCursor disables cursor rendering in Render.
const NoCursor = -1

// Surface renders styled spans into terminal lines. Every Apply replaces the
// whole rendering at once; readers never observe a half-applied pass.
type Surface struct {
	renderer *lipgloss.Renderer
	tabWidth int

	mu      sync.RWMutex
	text    string
	spans   []kisspad.StyleSpan
	lines   []string
	applied int
	styles  map[kisspad.StyleAttributes]lipgloss.Style
}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithRenderer sets the lipgloss renderer. If nil, the default renderer is used.
func WithRenderer(r *lipgloss.Renderer) SurfaceOption {
	return func(s *Surface) {
		s.renderer = r
	}
}

// WithTabWidth sets the tab stop interval.
func WithTabWidth(n int) SurfaceOption {
	return func(s *Surface) {
		s.tabWidth = n
	}
}

// NewSurface creates an empty Surface.
func NewSurface(opts ...SurfaceOption) *Surface {
	s := &Surface{
		tabWidth: DefaultTabWidth,
		lines:    []string{""},
		styles:   make(map[kisspad.StyleAttributes]lipgloss.Style),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Apply renders text with spans and swaps the result in.
func (s *Surface) Apply(text string, spans []kisspad.StyleSpan) error {
	if err := kisspad.ValidateSpans(spans, len(text)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ranges := kisspad.Lines(text)
	lines := make([]string, len(ranges))
	for i, ln := range ranges {
		lines[i] = s.renderLine(text, spans, ln, NoCursor)
	}

	s.text = text
	s.spans = slices.Clone(spans)
	s.lines = lines
	s.applied++
	return nil
}

// Text returns the text of the last applied pass.
func (s *Surface) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// Spans returns the spans of the last applied pass.
func (s *Surface) Spans() []kisspad.StyleSpan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.spans)
}

// Applied returns how many passes have been applied.
func (s *Surface) Applied() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied
}

// Lines returns the rendered lines of the last applied pass.
func (s *Surface) Lines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lines)
}

// View returns the rendered text of the last applied pass.
func (s *Surface) View() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.Join(s.lines, "\n")
}

// Render returns the lines of text with the cursor drawn at byte offset
// cursor (NoCursor for none). When text differs from the last applied text
// the styling is stale, so text is drawn unstyled until the next pass.
func (s *Surface) Render(text string, cursor int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranges := kisspad.Lines(text)
	out := make([]string, len(ranges))
	if text == s.text {
		for i, ln := range ranges {
			if cursor >= ln.Start && cursor <= ln.End {
				out[i] = s.renderLine(text, s.spans, ln, cursor)
				continue
			}
			out[i] = s.lines[i]
		}
		return out
	}

	plain := []kisspad.StyleSpan{{Start: 0, End: len(text)}}
	if len(text) == 0 {
		plain = nil
	}
	for i, ln := range ranges {
		out[i] = s.renderLine(text, plain, ln, cursor)
	}
	return out
}

// renderLine draws one line. Spans must cover text; cursor is a byte offset
// into text, drawn reversed, or NoCursor.
func (s *Surface) renderLine(text string, spans []kisspad.StyleSpan, ln kisspad.LineRange, cursor int) string {
	var sb strings.Builder
	col := 0
	write := func(segment string, attrs kisspad.StyleAttributes, reverse bool) {
		expanded := ExpandTabs(segment, col, s.tabWidth)
		col += lipgloss.Width(expanded)
		st := s.style(attrs)
		if reverse {
			st = st.Reverse(true)
		}
		sb.WriteString(st.Render(expanded))
	}

	i := sort.Search(len(spans), func(i int) bool { return spans[i].End > ln.Start })
	for pos := ln.Start; pos < ln.End && i < len(spans); i++ {
		sp := spans[i]
		end := min(sp.End, ln.End)
		if cursor >= pos && cursor < end {
			_, size := utf8.DecodeRuneInString(text[cursor:])
			if cursor > pos {
				write(text[pos:cursor], sp.Attributes, false)
			}
			write(text[cursor:cursor+size], sp.Attributes, true)
			pos = cursor + size
			if pos >= end {
				continue
			}
		}
		write(text[pos:end], sp.Attributes, false)
		pos = end
	}
	if cursor == ln.End {
		write(" ", kisspad.StyleAttributes{}, true)
	}
	return sb.String()
}

func (s *Surface) style(a kisspad.StyleAttributes) lipgloss.Style {
	if st, ok := s.styles[a]; ok {
		return st
	}
	var st lipgloss.Style
	if s.renderer != nil {
		st = s.renderer.NewStyle()
	} else {
		st = lipgloss.NewStyle()
	}
	if a.Foreground != "" {
		st = st.Foreground(lipgloss.Color(a.Foreground))
	}
	if a.Background != "" {
		st = st.Background(lipgloss.Color(a.Background))
	}
	if a.Bold {
		st = st.Bold(true)
	}
	if a.Italic {
		st = st.Italic(true)
	}
	s.styles[a] = st
	return st
}
