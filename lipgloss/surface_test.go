package lipgloss_test

import (
	"io"
	"testing"

	lg "github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/kisspad"
	"github.com/fwojciec/kisspad/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asciiSurface() *lipgloss.Surface {
	r := lg.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))
	return lipgloss.NewSurface(lipgloss.WithRenderer(r))
}

func trueColorSurface() *lipgloss.Surface {
	r := lg.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return lipgloss.NewSurface(lipgloss.WithRenderer(r))
}

func whole(text string, attrs kisspad.StyleAttributes) []kisspad.StyleSpan {
	return []kisspad.StyleSpan{{Start: 0, End: len(text), Attributes: attrs}}
}

func TestSurface_Apply(t *testing.T) {
	t.Parallel()

	t.Run("renders one line per text line", func(t *testing.T) {
		t.Parallel()

		s := asciiSurface()
		text := "CP 1\n#x\n"
		require.NoError(t, s.Apply(text, whole(text, kisspad.StyleAttributes{})))

		assert.Equal(t, []string{"CP 1", "#x", ""}, s.Lines())
		assert.Equal(t, "CP 1\n#x\n", s.View())
		assert.Equal(t, text, s.Text())
		assert.Equal(t, 1, s.Applied())
	})

	t.Run("expands tabs", func(t *testing.T) {
		t.Parallel()

		r := lg.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))
		s := lipgloss.NewSurface(lipgloss.WithRenderer(r), lipgloss.WithTabWidth(4))
		text := "\tA"
		require.NoError(t, s.Apply(text, whole(text, kisspad.StyleAttributes{})))

		assert.Equal(t, []string{"    A"}, s.Lines())
	})

	t.Run("rejects spans that do not cover the text", func(t *testing.T) {
		t.Parallel()

		s := asciiSurface()
		require.NoError(t, s.Apply("ok", whole("ok", kisspad.StyleAttributes{})))

		err := s.Apply("abc", []kisspad.StyleSpan{{Start: 0, End: 2}})

		require.Error(t, err)
		assert.Equal(t, "ok", s.Text(), "previous rendering is kept")
		assert.Equal(t, 1, s.Applied())
	})

	t.Run("applies colors and attributes", func(t *testing.T) {
		t.Parallel()

		s := trueColorSurface()
		text := "CP 1"
		spans := []kisspad.StyleSpan{
			{Start: 0, End: 2, Attributes: kisspad.StyleAttributes{Kind: kisspad.KindCommand, Foreground: "#3b82f6", Bold: true}},
			{Start: 2, End: 4, Attributes: kisspad.StyleAttributes{Foreground: "#374151", Background: "#fee2e2"}},
		}
		require.NoError(t, s.Apply(text, spans))

		line := s.Lines()[0]
		assert.Contains(t, line, "38;2;59;130;246")
		assert.Contains(t, line, "\x1b[1;")
		assert.Contains(t, line, "48;2;254;226;226")
		assert.Equal(t, "CP 1", ansi.Strip(line))
	})
}

func TestSurface_Render(t *testing.T) {
	t.Parallel()

	t.Run("draws cursor at end of line", func(t *testing.T) {
		t.Parallel()

		s := trueColorSurface()
		text := "AB"
		require.NoError(t, s.Apply(text, whole(text, kisspad.StyleAttributes{})))

		lines := s.Render(text, 2)

		require.Len(t, lines, 1)
		assert.Equal(t, "AB ", ansi.Strip(lines[0]))
		assert.Contains(t, lines[0], "\x1b[7m")
	})

	t.Run("lines without the cursor reuse the applied rendering", func(t *testing.T) {
		t.Parallel()

		s := trueColorSurface()
		text := "A\nB"
		require.NoError(t, s.Apply(text, whole(text, kisspad.StyleAttributes{Foreground: "#ef4444"})))

		lines := s.Render(text, 0)

		assert.Equal(t, s.Lines()[1], lines[1])
		assert.NotEqual(t, s.Lines()[0], lines[0])
	})

	t.Run("stale styling draws current text unstyled", func(t *testing.T) {
		t.Parallel()

		s := asciiSurface()
		require.NoError(t, s.Apply("A", whole("A", kisspad.StyleAttributes{})))

		lines := s.Render("AB\nC", lipgloss.NoCursor)

		assert.Equal(t, []string{"AB", "C"}, lines)
	})

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()

		s := asciiSurface()
		assert.Equal(t, []string{""}, s.Render("", lipgloss.NoCursor))
		assert.Equal(t, []string{" "}, s.Render("", 0))
	})
}
