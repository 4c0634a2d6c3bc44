// Package clipboard copies document text to a clipboard.
// It uses the system clipboard when one is available, and can fall back to
// an OSC 52 terminal escape or an in-memory buffer.
package clipboard

import (
	"errors"
	"io"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/fwojciec/kisspad"
)

// Compile-time interface verification.
var (
	_ kisspad.Clipboard = (*System)(nil)
	_ kisspad.Clipboard = (*OSC52)(nil)
	_ kisspad.Clipboard = (*Memory)(nil)
)

// New returns the system clipboard if it is supported, otherwise an OSC 52
// clipboard writing to w.
func New(w io.Writer) kisspad.Clipboard {
	if clipboard.Unsupported {
		return NewOSC52(w)
	}
	return NewSystem()
}

// System implements Clipboard using the platform clipboard.
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	return clipboard.WriteAll(content)
}

// OSC52 implements Clipboard by asking the terminal to set its clipboard.
// It works over SSH where no system clipboard is reachable.
type OSC52 struct {
	w io.Writer
}

// NewOSC52 returns an OSC52 clipboard writing escape sequences to w.
func NewOSC52(w io.Writer) *OSC52 {
	return &OSC52{w: w}
}

// Copy writes the OSC 52 sequence for content.
func (o *OSC52) Copy(content string) error {
	if o.w == nil {
		return errors.New("clipboard: no terminal writer")
	}
	_, err := osc52.New(content).WriteTo(o.w)
	return err
}

// Memory is an in-process clipboard, useful in tests.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory returns an empty Memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// Copy stores content.
func (m *Memory) Copy(content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = content
	return nil
}

// Text returns the last copied content.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
