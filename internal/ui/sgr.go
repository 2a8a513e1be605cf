package ui

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
)

// readSGR decodes the escape sequence at the start of s with p. It reports
// the sequence length and, when the sequence is a Select Graphic Rendition,
// its parameters. The parameters are only valid until p is used again.
func readSGR(p *ansi.Parser, s string) (n int, params ansi.Params, ok bool) {
	seq, _, n, _ := ansi.DecodeSequence(s, ansi.NormalState, p)
	if n <= 0 {
		return len(s), nil, false
	}
	cmd := ansi.Cmd(p.Command())
	if !ansi.HasCsiPrefix(seq) || cmd.Final() != 'm' || cmd.Prefix() != 0 || cmd.Intermediate() != 0 {
		return n, nil, false
	}
	return n, p.Params(), true
}

// applySGR folds SGR parameters into style. Only the attributes tcell can
// represent are honoured; unknown codes are ignored.
func applySGR(style tcell.Style, theme Theme, params ansi.Params) tcell.Style {
	if len(params) == 0 {
		return theme.Style()
	}
	for i := 0; i < len(params); i++ {
		switch n := params[i].Param(0); {
		case n == 0:
			style = theme.Style()
		case n == 1:
			style = style.Bold(true)
		case n == 2:
			style = style.Dim(true)
		case n == 3:
			style = style.Italic(true)
		case n == 4:
			style = style.Underline(true)
		case n == 5:
			style = style.Blink(true)
		case n == 7:
			style = style.Reverse(true)
		case n == 9:
			style = style.StrikeThrough(true)
		case n == 22:
			style = style.Bold(false).Dim(false)
		case n == 23:
			style = style.Italic(false)
		case n == 24:
			style = style.Underline(false)
		case n == 25:
			style = style.Blink(false)
		case n == 27:
			style = style.Reverse(false)
		case n == 29:
			style = style.StrikeThrough(false)
		case n >= 30 && n <= 37:
			style = style.Foreground(tcell.PaletteColor(n - 30))
		case n >= 90 && n <= 97:
			style = style.Foreground(tcell.PaletteColor(n - 90 + 8))
		case n >= 40 && n <= 47:
			style = style.Background(tcell.PaletteColor(n - 40))
		case n >= 100 && n <= 107:
			style = style.Background(tcell.PaletteColor(n - 100 + 8))
		case n == 39:
			style = style.Foreground(theme.Foreground)
		case n == 49:
			style = style.Background(theme.Background)
		case n == 38 || n == 48:
			c, used := extendedColor(params[i+1:])
			if used == 0 {
				return style
			}
			i += used
			if n == 38 {
				style = style.Foreground(c)
			} else {
				style = style.Background(c)
			}
		}
	}
	return style
}

// extendedColor decodes the arguments of SGR 38/48: 5;n for the 256 colour
// palette or 2;r;g;b for true colour, with either separator. It returns how
// many parameters were consumed, zero when the arguments are malformed.
func extendedColor(args ansi.Params) (tcell.Color, int) {
	if len(args) == 0 {
		return tcell.ColorDefault, 0
	}
	switch args[0].Param(-1) {
	case 5:
		if len(args) < 2 {
			return tcell.ColorDefault, 0
		}
		n := args[1].Param(-1)
		if n < 0 || n > 255 {
			return tcell.ColorDefault, 0
		}
		return tcell.PaletteColor(n), 2
	case 2:
		if len(args) < 4 {
			return tcell.ColorDefault, 0
		}
		var rgb [3]int32
		for j := range rgb {
			v := args[j+1].Param(-1)
			if v < 0 || v > 255 {
				return tcell.ColorDefault, 0
			}
			rgb[j] = int32(v)
		}
		return tcell.NewRGBColor(rgb[0], rgb[1], rgb[2]), 4
	}
	return tcell.ColorDefault, 0
}
