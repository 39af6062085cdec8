// Package caption burns an outlined text caption into video frames.
package caption

import "strings"

const (
	MinFontSize = 12
	MaxFontSize = 72

	MinVerticalFraction = 0.05
	MaxVerticalFraction = 0.95

	DefaultText             = "TEXT HERE"
	DefaultFontSize         = 28
	DefaultVerticalFraction = 0.85
)

// Style is an immutable caption description. Use NewStyle or the With*
// methods so values stay in range.
type Style struct {
	Text             string
	FontSize         int
	VerticalFraction float64 // Caption center as a fraction of the frame height
}

// DefaultStyle returns the caption shown for a freshly opened video.
func DefaultStyle() Style {
	return NewStyle(DefaultText, DefaultFontSize, DefaultVerticalFraction)
}

// NewStyle returns a Style with size and position clamped to their ranges.
func NewStyle(text string, fontSize int, verticalFraction float64) Style {
	return Style{
		Text:             text,
		FontSize:         clampInt(fontSize, MinFontSize, MaxFontSize),
		VerticalFraction: clampFloat(verticalFraction, MinVerticalFraction, MaxVerticalFraction),
	}
}

func (s Style) WithText(text string) Style {
	return NewStyle(text, s.FontSize, s.VerticalFraction)
}

func (s Style) WithFontSize(size int) Style {
	return NewStyle(s.Text, size, s.VerticalFraction)
}

func (s Style) WithVerticalFraction(f float64) Style {
	return NewStyle(s.Text, s.FontSize, f)
}

// IsEmpty reports whether the caption draws nothing.
func (s Style) IsEmpty() bool {
	return strings.TrimSpace(s.Text) == ""
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v != v || v < lo { // NaN
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
