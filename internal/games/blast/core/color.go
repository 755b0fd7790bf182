package core

import "strings"

// Color identifies a tile color. Values are indices into the active
// palette, so a Color is only meaningful relative to the palette that
// produced it.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorCyan
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorCyan:
		return "cyan"
	default:
		return "unknown"
	}
}

// Char returns a single character representation of the color for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorBlue:
		return 'B'
	case ColorYellow:
		return 'Y'
	case ColorPurple:
		return 'P'
	case ColorCyan:
		return 'C'
	default:
		return '?'
	}
}

// ParseColor converts a string to a Color.
// Returns ColorRed and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "red", "r":
		return ColorRed, true
	case "green", "g":
		return ColorGreen, true
	case "blue", "b":
		return ColorBlue, true
	case "yellow", "y":
		return ColorYellow, true
	case "purple", "p":
		return ColorPurple, true
	case "cyan", "c":
		return ColorCyan, true
	default:
		return ColorRed, false
	}
}

// AllColors returns a slice of all valid colors.
func AllColors() []Color {
	colors := make([]Color, 0, ColorCount)
	for c := Color(0); c < ColorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}
