package highlight_test

import "github.com/fwojciec/kisspad"

var palette = kisspad.Palette{
	Default:         "#374151",
	Command:         "#3b82f6",
	Include:         "#10b981",
	Label:           "#f59e0b",
	Comment:         "#6b7280",
	Number:          "#8b5cf6",
	Char:            "#ef4444",
	String:          "#ef4444",
	Keyword:         "#3b82f6",
	ErrorBackground: "#fee2e2",
}
