// Package fs reads and writes documents on the local file system.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/kisspad"
)

// DefaultConfigDir returns the default configuration directory for kisspad.
// Uses XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/kisspad,
// or the system temp directory if home is unavailable.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kisspad")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "kisspad")
	}
	return filepath.Join(home, ".config", "kisspad")
}

// Load reads the document at path. A file that does not exist yet yields an
// empty document bound to path, so it is created on the first save.
func Load(path string) (kisspad.Document, error) {
	if path == "" {
		return kisspad.Document{}, errors.New("fs: empty path")
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return kisspad.Document{Filename: path}, nil
	}
	if err != nil {
		return kisspad.Document{}, fmt.Errorf("fs: reading %s: %w", path, err)
	}
	return kisspad.Document{Text: string(data), Filename: path}, nil
}

// Save writes doc to its bound file. The content is written to a temporary
// file in the same directory and renamed over the target.
func Save(doc kisspad.Document) error {
	if !doc.Bound() {
		return errors.New("fs: document has no file name")
	}

	dir := filepath.Dir(doc.Filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fs: creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(doc.Filename)+".*")
	if err != nil {
		return fmt.Errorf("fs: creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(doc.Text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("fs: writing %s: %w", doc.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("fs: writing %s: %w", doc.Filename, err)
	}
	if err := os.Rename(tmp.Name(), doc.Filename); err != nil {
		return fmt.Errorf("fs: replacing %s: %w", doc.Filename, err)
	}
	return nil
}
