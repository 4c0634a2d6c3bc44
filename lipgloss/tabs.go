package lipgloss

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultTabWidth is the tab stop interval used when none is configured.
const DefaultTabWidth = 8

// ExpandTabs converts tab characters to spaces using tab stops every
// tabWidth columns. startCol is the column where s begins, which affects how
// the first tab is expanded.
func ExpandTabs(s string, startCol, tabWidth int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	var sb strings.Builder
	col := startCol
	for _, r := range s {
		if r == '\t' {
			nextStop := ((col / tabWidth) + 1) * tabWidth
			sb.WriteString(strings.Repeat(" ", nextStop-col))
			col = nextStop
		} else {
			sb.WriteRune(r)
			col += lipgloss.Width(string(r))
		}
	}
	return sb.String()
}
