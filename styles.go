package kisspad

// ColorID is a hex color code in "#RRGGBB" form. Empty means no color override.
type ColorID string

// Kind is the semantic class of a styled range.
type Kind int

// Style kinds.
const (
	KindDefault Kind = iota
	KindCommand
	KindInclude
	KindLabel
	KindComment
	KindNumber
	KindChar
	KindString
	KindKeyword
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindInclude:
		return "include"
	case KindLabel:
		return "label"
	case KindComment:
		return "comment"
	case KindNumber:
		return "number"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindKeyword:
		return "keyword"
	default:
		return "default"
	}
}

// StyleAttributes is the immutable visual style of a range of text.
type StyleAttributes struct {
	Kind       Kind
	Foreground ColorID
	Bold       bool
	Italic     bool
	Background ColorID // Empty when no background is set
}

// HasBackground reports whether a background color is set.
func (a StyleAttributes) HasBackground() bool {
	return a.Background != ""
}

// WithBackground returns a copy of a with the background replaced.
func (a StyleAttributes) WithBackground(c ColorID) StyleAttributes {
	a.Background = c
	return a
}

// Palette holds the colors for every style kind plus the error line background.
type Palette struct {
	Background ColorID // Editor background, used by renderers only

	Default ColorID
	Command ColorID
	Include ColorID
	Label   ColorID
	Comment ColorID
	Number  ColorID
	Char    ColorID
	String  ColorID
	Keyword ColorID

	ErrorBackground ColorID
}

// Attributes returns fresh attributes for the given kind.
// Command, label and keyword are bold; comment is italic.
func (p Palette) Attributes(k Kind) StyleAttributes {
	a := StyleAttributes{Kind: k}
	switch k {
	case KindCommand:
		a.Foreground, a.Bold = p.Command, true
	case KindInclude:
		a.Foreground = p.Include
	case KindLabel:
		a.Foreground, a.Bold = p.Label, true
	case KindComment:
		a.Foreground, a.Italic = p.Comment, true
	case KindNumber:
		a.Foreground = p.Number
	case KindChar:
		a.Foreground = p.Char
	case KindString:
		a.Foreground = p.String
	case KindKeyword:
		a.Foreground, a.Bold = p.Keyword, true
	default:
		a.Kind = KindDefault
		a.Foreground = p.Default
	}
	return a
}

// Theme provides the palette used to style highlighted text.
type Theme interface {
	Palette() Palette
}
