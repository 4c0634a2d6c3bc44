// Package lipgloss provides themes and a terminal rendering surface using the
// Lipgloss styling library.
package lipgloss

import (
	"fmt"

	"github.com/fwojciec/kisspad"
)

// Compile-time interface verification.
var _ kisspad.Theme = (*Theme)(nil)

// Theme implements kisspad.Theme with Lipgloss-compatible colors.
type Theme struct {
	name    string
	palette kisspad.Palette
}

// Name returns the theme name used in configuration.
func (t *Theme) Name() string {
	return t.name
}

// Palette returns the color palette for this theme.
func (t *Theme) Palette() kisspad.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (light background).
func DefaultTheme() *Theme {
	return LightTheme()
}

// ThemeByName returns the theme registered under name.
func ThemeByName(name string) (*Theme, error) {
	switch name {
	case "", "light":
		return LightTheme(), nil
	case "dark":
		return DarkTheme(), nil
	default:
		return nil, fmt.Errorf("lipgloss: unknown theme %q", name)
	}
}

// LightTheme returns the editor's classic light palette.
func LightTheme() *Theme {
	return &Theme{
		name: "light",
		palette: kisspad.Palette{
			Background: "#ffffff",
			Default:    "#374151", // Slate
			Command:    "#3b82f6", // Blue
			Include:    "#10b981", // Green
			Label:      "#f59e0b", // Amber
			Comment:    "#6b7280", // Gray
			Number:     "#8b5cf6", // Violet
			Char:       "#ef4444", // Red
			String:     "#ef4444",
			Keyword:    "#3b82f6",

			ErrorBackground: "#fee2e2", // Pale red
		},
	}
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
// The error background is very dark so token colors stay readable.
func DarkTheme() *Theme {
	return &Theme{
		name: "dark",
		palette: kisspad.Palette{
			// Catppuccin Mocha
			Background: "#1e1e2e",
			Default:    "#cdd6f4",
			Command:    "#89b4fa",
			Include:    "#a6e3a1",
			Label:      "#f9e2af",
			Comment:    "#6c7086",
			Number:     "#fab387",
			Char:       "#f38ba8",
			String:     "#f38ba8",
			Keyword:    "#89b4fa",

			ErrorBackground: "#3f0001",
		},
	}
}
