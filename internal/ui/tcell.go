package ui

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// TcellBackend draws through a tcell.Screen.
//
// It behaves like a terminal: a pen position that advances as text is
// written, SGR sequences embedded in text change the current style, and
// the style persists until reset. Flush places the visible cursor at the
// pen and shows the frame.
type TcellBackend struct {
	screen tcell.Screen
	parser *ansi.Parser
	theme  Theme
	style  tcell.Style
	x, y   int
	savedX int
	savedY int
}

// NewTcellBackend creates and initializes a terminal screen.
func NewTcellBackend(theme Theme) (*TcellBackend, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return NewTcellBackendWithScreen(s, theme), nil
}

// NewTcellBackendWithScreen wraps an already initialized screen, such as a
// tcell.SimulationScreen in tests.
func NewTcellBackendWithScreen(s tcell.Screen, theme Theme) *TcellBackend {
	s.SetStyle(theme.Style())
	s.Clear()
	return &TcellBackend{
		screen: s,
		parser: ansi.NewParser(),
		theme:  theme,
		style:  theme.Style(),
	}
}

// Screen exposes the tcell screen for event polling.
func (b *TcellBackend) Screen() tcell.Screen {
	return b.screen
}

// MoveTo sets the pen position.
func (b *TcellBackend) MoveTo(x, y int) error {
	b.x, b.y = x, y
	return nil
}

// WriteString draws s at the pen, one grapheme cluster per cell run.
func (b *TcellBackend) WriteString(s string) error {
	state := -1
	for len(s) > 0 {
		switch s[0] {
		case '\x1b':
			n, params, ok := readSGR(b.parser, s)
			if ok {
				b.style = applySGR(b.style, b.theme, params)
			}
			s = s[n:]
			state = -1
			continue
		case '\n', '\r':
			s = s[1:]
			state = -1
			continue
		}

		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		mainc, size := utf8.DecodeRuneInString(cluster)
		var comb []rune
		if size < len(cluster) {
			comb = []rune(cluster[size:])
		}
		if width < 1 {
			width = 1
		}
		b.screen.SetContent(b.x, b.y, mainc, comb, b.style)
		b.x += width
	}
	return nil
}

// SaveCursor remembers the pen position.
func (b *TcellBackend) SaveCursor() error {
	b.savedX, b.savedY = b.x, b.y
	return nil
}

// RestoreCursor returns the pen to the remembered position.
func (b *TcellBackend) RestoreCursor() error {
	b.x, b.y = b.savedX, b.savedY
	return nil
}

// Flush shows the cursor at the pen and pushes the frame to the terminal.
func (b *TcellBackend) Flush() error {
	b.screen.ShowCursor(b.x, b.y)
	b.screen.Show()
	return nil
}

// Size returns the current terminal dimensions.
func (b *TcellBackend) Size() (width, height int) {
	return b.screen.Size()
}

// Close finalizes the screen and restores terminal state.
func (b *TcellBackend) Close() error {
	b.screen.Fini()
	return nil
}

// PollEvent waits for and returns the next terminal event.
func (b *TcellBackend) PollEvent() tcell.Event {
	return b.screen.PollEvent()
}

// Sync forces a complete redraw of the screen.
func (b *TcellBackend) Sync() {
	b.screen.Sync()
}

// Clear clears the screen buffer and resets the pen style.
func (b *TcellBackend) Clear() {
	b.style = b.theme.Style()
	b.screen.Clear()
}

var _ Backend = (*TcellBackend)(nil)
