package view

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/samdwyer/parley/internal/termtext"
	"github.com/samdwyer/parley/internal/ui"
)

// Message is what a BufferedWin displays. Equal messages are the same
// message; receiving one again replaces it in place.
type Message interface {
	comparable
	String() string
}

// BufferedWin is a scrolling window of messages, newest at the bottom.
// The offset counts lines scrolled back from the bottom.
type BufferedWin[M Message, E any] struct {
	Node
	messages []M
	index    map[M]int
	offset   int
	handler  Handler[*BufferedWin[M, E], E]
}

// NewBufferedWin creates an empty window filling its parent.
func NewBufferedWin[M Message, E any]() *BufferedWin[M, E] {
	return &BufferedWin[M, E]{
		Node:  newNode(FillParent, FillParent),
		index: make(map[M]int),
	}
}

// WithHandler attaches the event handler and returns b.
func (b *BufferedWin[M, E]) WithHandler(h Handler[*BufferedWin[M, E], E]) *BufferedWin[M, E] {
	b.handler = h
	return b
}

// RecvMessage appends m and redraws when render is set. A message equal to
// one already held is ignored.
func (b *BufferedWin[M, E]) RecvMessage(scr *ui.Screen, m M, render bool) {
	if _, ok := b.index[m]; ok {
		return
	}
	b.index[m] = len(b.messages)
	b.messages = append(b.messages, m)
	if render {
		b.Redraw(scr)
	}
}

// Len returns the number of distinct messages.
func (b *BufferedWin[M, E]) Len() int {
	return len(b.messages)
}

// Messages returns the messages, oldest first.
func (b *BufferedWin[M, E]) Messages() []M {
	return append([]M(nil), b.messages...)
}

// Offset returns how many lines the view is scrolled back.
func (b *BufferedWin[M, E]) Offset() int {
	return b.offset
}

// Lines returns the rendered lines of every message, oldest first.
func (b *BufferedWin[M, E]) Lines() []string {
	var lines []string
	for _, m := range b.messages {
		lines = append(lines, termtext.Lines(m.String())...)
	}
	return lines
}

// PageUp scrolls back one screen. Nothing happens while everything fits.
func (b *BufferedWin[M, E]) PageUp(scr *ui.Screen) {
	_, h := b.size()
	total := len(b.Lines())
	if total < h {
		return
	}
	limit := total - h
	if b.offset+h < limit {
		b.offset += h
	} else {
		b.offset = limit
	}
	b.Redraw(scr)
}

// PageDown scrolls forward one screen, stopping at the bottom.
func (b *BufferedWin[M, E]) PageDown(scr *ui.Screen) {
	_, h := b.size()
	if b.offset > h {
		b.offset -= h
	} else {
		b.offset = 0
	}
	b.Redraw(scr)
}

// Measure uses the widest line and the line count as natural size.
func (b *BufferedWin[M, E]) Measure(width, height Limit) {
	lines := b.Lines()
	b.measure(width, height, termtext.MaxVisibleLen(lines), len(lines))
}

// Redraw fills the window from the bottom, honouring the scroll offset.
// Lines wider than the window are cut. The cursor is left where it was.
func (b *BufferedWin[M, E]) Redraw(scr *ui.Screen) {
	x, y := b.Position()
	w, h := b.size()
	lines := b.Lines()

	first := 0
	if len(lines) > h {
		first = max(0, len(lines)-h-b.offset)
	}

	scr.SaveCursor()
	for row := 0; row < h; row++ {
		scr.Blank(x, y+row, w)
		if i := first + row; i < len(lines) {
			scr.Print(ansi.Truncate(lines[i], w, ""))
		}
	}
	scr.RestoreCursor()
	scr.Flush()
}

func (b *BufferedWin[M, E]) Event(scr *ui.Screen, ev E) {
	if b.handler != nil {
		b.handler.HandleEvent(scr, b, ev)
	}
}
