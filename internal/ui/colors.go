package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the base colours the tcell backend resets to.
type Theme struct {
	Foreground tcell.Color
	Background tcell.Color
}

// DefaultTheme keeps the terminal's own colours.
var DefaultTheme = Theme{
	Foreground: tcell.ColorDefault,
	Background: tcell.ColorDefault,
}

// NewTheme builds a theme from hex strings. Empty strings keep the
// terminal default.
func NewTheme(fg, bg string) (Theme, error) {
	theme := DefaultTheme
	if fg != "" {
		c, err := ParseHexColor(fg)
		if err != nil {
			return theme, fmt.Errorf("foreground: %w", err)
		}
		theme.Foreground = c
	}
	if bg != "" {
		c, err := ParseHexColor(bg)
		if err != nil {
			return theme, fmt.Errorf("background: %w", err)
		}
		theme.Background = c
	}
	return theme, nil
}

// Style returns the base style of the theme.
func (t Theme) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Foreground).Background(t.Background)
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}
