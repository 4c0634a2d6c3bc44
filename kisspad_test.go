package kisspad_test

import (
	"testing"

	"github.com/fwojciec/kisspad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguage(t *testing.T) {
	t.Parallel()

	t.Run("round-trips names", func(t *testing.T) {
		t.Parallel()

		for _, l := range kisspad.Languages {
			got, err := kisspad.ParseLanguage(l.String())
			require.NoError(t, err)
			assert.Equal(t, l, got)
		}
	})

	t.Run("parses case-insensitively", func(t *testing.T) {
		t.Parallel()

		got, err := kisspad.ParseLanguage("NASM")
		require.NoError(t, err)
		assert.Equal(t, kisspad.LanguageNasm, got)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		t.Parallel()

		_, err := kisspad.ParseLanguage("cobol")
		assert.Error(t, err)
	})
}

func TestErrorLineSet(t *testing.T) {
	t.Parallel()

	s := kisspad.NewErrorLineSet(5, 2, 2)

	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(3))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []int{2, 5}, s.Lines())

	var empty kisspad.ErrorLineSet
	assert.False(t, empty.Contains(1))
	assert.Empty(t, empty.Lines())
}

func TestLines(t *testing.T) {
	t.Parallel()

	t.Run("empty text has one empty line", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []kisspad.LineRange{{Number: 1, Start: 0, End: 0}}, kisspad.Lines(""))
	})

	t.Run("windows exclude separators", func(t *testing.T) {
		t.Parallel()

		got := kisspad.Lines("ab\nc\n")

		assert.Equal(t, []kisspad.LineRange{
			{Number: 1, Start: 0, End: 2},
			{Number: 2, Start: 3, End: 4},
			{Number: 3, Start: 5, End: 5},
		}, got)
	})
}

func TestDocument_Bound(t *testing.T) {
	t.Parallel()

	assert.False(t, kisspad.Document{Text: "x"}.Bound())
	assert.True(t, kisspad.Document{Filename: "a.bf"}.Bound())
}

func TestPalette_Attributes(t *testing.T) {
	t.Parallel()

	p := kisspad.Palette{
		Default: "#000000",
		Command: "#0000ff",
		Label:   "#ffaa00",
		Comment: "#888888",
		Keyword: "#0000ff",
	}

	t.Run("command is bold", func(t *testing.T) {
		t.Parallel()

		a := p.Attributes(kisspad.KindCommand)
		assert.Equal(t, kisspad.ColorID("#0000ff"), a.Foreground)
		assert.True(t, a.Bold)
		assert.False(t, a.HasBackground())
	})

	t.Run("comment is italic", func(t *testing.T) {
		t.Parallel()

		a := p.Attributes(kisspad.KindComment)
		assert.True(t, a.Italic)
		assert.False(t, a.Bold)
	})

	t.Run("unknown kinds fall back to default", func(t *testing.T) {
		t.Parallel()

		a := p.Attributes(kisspad.Kind(99))
		assert.Equal(t, kisspad.KindDefault, a.Kind)
		assert.Equal(t, kisspad.ColorID("#000000"), a.Foreground)
	})
}
