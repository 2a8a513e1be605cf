// Package ui provides the terminal handle every view writes through.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samdwyer/parley/internal/logger"
	"github.com/samdwyer/parley/internal/termtext"
)

// ErrClosed is reported for writes issued after the screen was closed.
var ErrClosed = errors.New("ui: screen closed")

// Backend is the output device behind a Screen. Coordinates are zero based.
type Backend interface {
	MoveTo(x, y int) error
	WriteString(s string) error
	SaveCursor() error
	RestoreCursor() error
	Flush() error
	Size() (width, height int)
	Close() error
}

// Screen wraps a Backend with cursor bookkeeping and a sticky error.
//
// A Screen is owned by the top-level loop and lent to views for the length
// of one call; it is not safe for concurrent use. The first write error is
// kept and every later write is dropped, so a redraw never has to check
// errors itself. Owners inspect Err or the result of Flush.
type Screen struct {
	backend Backend
	x, y    int
	savedX  int
	savedY  int
	closed  bool
	err     error
}

// NewScreen creates a screen writing through b.
func NewScreen(b Backend) *Screen {
	return &Screen{backend: b}
}

// Backend returns the device the screen writes to.
func (s *Screen) Backend() Backend {
	return s.backend
}

// Goto moves the cursor to column x, row y.
func (s *Screen) Goto(x, y int) {
	s.x, s.y = x, y
	s.do(func() error { return s.backend.MoveTo(x, y) })
}

// Print writes text at the cursor. Embedded styling sequences are passed
// through untouched and do not advance the tracked column.
func (s *Screen) Print(text string) {
	s.x += termtext.VisibleLen(text)
	s.do(func() error { return s.backend.WriteString(text) })
}

// Printf formats and prints.
func (s *Screen) Printf(format string, args ...any) {
	s.Print(fmt.Sprintf(format, args...))
}

// Blank clears width cells starting at (x, y) by overwriting them with
// spaces, then leaves the cursor at (x, y).
func (s *Screen) Blank(x, y, width int) {
	if width < 0 {
		width = 0
	}
	s.Goto(x, y)
	s.Print(strings.Repeat(" ", width))
	s.Goto(x, y)
}

// Cursor returns the last known cursor position.
func (s *Screen) Cursor() (x, y int) {
	return s.x, s.y
}

// Size returns the dimensions of the underlying device.
func (s *Screen) Size() (width, height int) {
	return s.backend.Size()
}

// Flush pushes pending output to the device and returns the sticky error.
func (s *Screen) Flush() error {
	s.do(s.backend.Flush)
	return s.err
}

// Err returns the first error encountered while writing.
func (s *Screen) Err() error {
	return s.err
}

// Close releases the device. Writes after Close fail with ErrClosed.
func (s *Screen) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.backend.Close()
}

func (s *Screen) do(op func() error) {
	if s.err != nil {
		return
	}
	if s.closed {
		s.err = ErrClosed
		return
	}
	if err := op(); err != nil {
		s.err = err
		logger.ComponentLogger("ui").Error("terminal write failed", "error", err)
	}
}
