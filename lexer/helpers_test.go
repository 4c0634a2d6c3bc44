package lexer_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/kisspad"
	"github.com/stretchr/testify/require"
)

var testPalette = kisspad.Palette{
	Background:      "#ffffff",
	Default:         "#374151",
	Command:         "#3b82f6",
	Include:         "#10b981",
	Label:           "#f59e0b",
	Comment:         "#6b7280",
	Number:          "#8b5cf6",
	Char:            "#ef4444",
	String:          "#dc2626",
	Keyword:         "#1d4ed8",
	ErrorBackground: "#fee2e2",
}

// requireKind asserts that every byte in [start, end) has the given kind.
func requireKind(t *testing.T, spans []kisspad.StyleSpan, start, end int, want kisspad.Kind) {
	t.Helper()
	for i := start; i < end; i++ {
		a, ok := kisspad.StyleAt(spans, i)
		require.True(t, ok, "offset %d not covered", i)
		require.Equal(t, want, a.Kind, "offset %d", i)
	}
}

// requireSubstrKind asserts the kind of the first occurrence of substr in text.
func requireSubstrKind(t *testing.T, spans []kisspad.StyleSpan, text, substr string, want kisspad.Kind) {
	t.Helper()
	i := strings.Index(text, substr)
	require.GreaterOrEqual(t, i, 0, "%q not found in %q", substr, text)
	requireKind(t, spans, i, i+len(substr), want)
}
