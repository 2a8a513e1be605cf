package ui

import (
	"bufio"
	"io"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// Terminal is a Backend that streams escape sequences to a writer.
//
// Cursor movement uses absolute positioning (CUP), save and restore use
// DECSC/DECRC. Output is buffered until Flush.
type Terminal struct {
	out    *bufio.Writer
	fd     int
	width  int
	height int
}

// NewTerminal creates a backend writing to w. When w is a terminal its
// size is queried on every Size call; width and height are the fallback.
func NewTerminal(w io.Writer, width, height int) *Terminal {
	t := &Terminal{
		out:    bufio.NewWriter(w),
		fd:     -1,
		width:  width,
		height: height,
	}
	if f, ok := w.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
	}
	return t
}

// MoveTo positions the cursor. The terminal protocol is one based.
func (t *Terminal) MoveTo(x, y int) error {
	_, err := t.out.WriteString(ansi.CursorPosition(x+1, y+1))
	return err
}

// WriteString writes raw content.
func (t *Terminal) WriteString(s string) error {
	_, err := t.out.WriteString(s)
	return err
}

// SaveCursor emits DECSC.
func (t *Terminal) SaveCursor() error {
	_, err := t.out.WriteString(ansi.SaveCursor)
	return err
}

// RestoreCursor emits DECRC.
func (t *Terminal) RestoreCursor() error {
	_, err := t.out.WriteString(ansi.RestoreCursor)
	return err
}

// Flush writes buffered output.
func (t *Terminal) Flush() error {
	return t.out.Flush()
}

// Size returns the terminal dimensions, or the fallback when the writer is
// not a terminal.
func (t *Terminal) Size() (width, height int) {
	if t.fd >= 0 {
		if w, h, err := term.GetSize(t.fd); err == nil {
			return w, h
		}
	}
	return t.width, t.height
}

// Close resets styling and flushes.
func (t *Terminal) Close() error {
	if _, err := t.out.WriteString(ansi.ResetStyle); err != nil {
		return err
	}
	return t.out.Flush()
}

var _ Backend = (*Terminal)(nil)
