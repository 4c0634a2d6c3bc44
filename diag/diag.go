// Package diag reads compiler-style diagnostics and turns them into the error
// line sets the highlighter overlays.
//
// A diagnostic line has the form
//
//	file:line[:column]: [severity:] message
//
// where severity is one of error, warning, note or info. Lines that do not
// match are ignored.
package diag

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/kisspad"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityNote    = "note"
	SeverityInfo    = "info"
)

// Position locates a diagnostic in a source file.
type Position struct {
	File   string
	Line   int // 1-based
	Column int // 1-based, 0 when absent
}

func (p Position) String() string {
	if p.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Diagnostic is one parsed diagnostic.
type Diagnostic struct {
	Position Position
	Severity string
	Message  string
}

var linePattern = regexp.MustCompile(`^(.+?):(\d+)(?::(\d+))?:\s*(?:(error|warning|note|info):\s*)?(.*)$`)

// Parse reads diagnostics from r. Severity defaults to error.
func Parse(r io.Reader) ([]Diagnostic, error) {
	var out []Diagnostic
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if d, ok := parseLine(strings.TrimRight(sc.Text(), "\r")); ok {
			out = append(out, d)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("diag: reading diagnostics: %w", err)
	}
	return out, nil
}

func parseLine(s string) (Diagnostic, bool) {
	m := linePattern.FindStringSubmatch(s)
	if m == nil {
		return Diagnostic{}, false
	}
	line, err := strconv.Atoi(m[2])
	if err != nil || line < 1 {
		return Diagnostic{}, false
	}
	var col int
	if m[3] != "" {
		col, _ = strconv.Atoi(m[3])
	}
	sev := m[4]
	if sev == "" {
		sev = SeverityError
	}
	return Diagnostic{
		Position: Position{File: m[1], Line: line, Column: col},
		Severity: sev,
		Message:  strings.TrimSpace(m[5]),
	}, true
}

// ErrorLines collects the lines of error diagnostics that refer to file.
// Paths match when they are equal after cleaning or share a base name.
// An empty file accepts every diagnostic.
func ErrorLines(diags []Diagnostic, file string) kisspad.ErrorLineSet {
	set := kisspad.NewErrorLineSet()
	for _, d := range diags {
		if d.Severity != SeverityError || !sameFile(d.Position.File, file) {
			continue
		}
		set[d.Position.Line] = struct{}{}
	}
	return set
}

func sameFile(a, b string) bool {
	if b == "" {
		return true
	}
	a, b = filepath.Clean(a), filepath.Clean(b)
	return a == b || filepath.Base(a) == filepath.Base(b)
}

// Load reads the diagnostics file at path and returns the error lines for
// file. A missing diagnostics file yields an empty set.
func Load(path, file string) (kisspad.ErrorLineSet, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return kisspad.NewErrorLineSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("diag: opening %s: %w", path, err)
	}
	defer f.Close()

	diags, err := Parse(f)
	if err != nil {
		return nil, err
	}
	return ErrorLines(diags, file), nil
}
