package view

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/parley/internal/ui"
	"github.com/samdwyer/parley/internal/ui/uitest"
)

// countingBackend records how many operations reach the device.
type countingBackend struct {
	ops int
}

func (c *countingBackend) MoveTo(x, y int) error { c.ops++; return nil }
func (c *countingBackend) WriteString(s string) error { c.ops++; return nil }
func (c *countingBackend) SaveCursor() error { c.ops++; return nil }
func (c *countingBackend) RestoreCursor() error { c.ops++; return nil }
func (c *countingBackend) Flush() error { c.ops++; return nil }
func (c *countingBackend) Size() (width, height int) { return 20, 3 }
func (c *countingBackend) Close() error { return nil }

func newTestWin(t *testing.T, width, height int) (*BufferedWin[text, *testEvent], *uitest.Sim) {
	t.Helper()
	sim := uitest.New(width, height)
	win := NewBufferedWin[text, *testEvent]()
	win.Measure(Cells(width), Cells(height))
	win.Layout(0, 0)
	return win, sim
}

func TestRecvMessageDeduplicates(t *testing.T) {
	win, sim := newTestWin(t, 20, 5)
	win.RecvMessage(sim.Screen, "hello", true)
	win.RecvMessage(sim.Screen, "two\nlines", true)
	before := len(win.Lines())

	win.RecvMessage(sim.Screen, "hello", true)

	assert.Equal(t, 2, win.Len())
	assert.Equal(t, before, len(win.Lines()))
	assert.Equal(t, []text{"hello", "two\nlines"}, win.Messages())
}

func TestRecvMessageDuplicateIsSilent(t *testing.T) {
	dev := &countingBackend{}
	scr := ui.NewScreen(dev)
	win := NewBufferedWin[text, *testEvent]()
	win.Measure(Cells(20), Cells(3))
	win.Layout(0, 0)

	win.RecvMessage(scr, "hello", true)
	require.NotZero(t, dev.ops)
	dev.ops = 0

	win.RecvMessage(scr, "hello", true)
	assert.Zero(t, dev.ops)
	assert.Equal(t, 1, win.Len())
}

func TestRedrawBottomAligned(t *testing.T) {
	win, sim := newTestWin(t, 10, 3)
	for i := range 5 {
		win.RecvMessage(sim.Screen, text(fmt.Sprintf("m%d", i)), false)
	}
	assert.False(t, sim.Contains("m4"))

	win.Redraw(sim.Screen)

	rows := sim.Rows()
	assert.Equal(t, "m2", strings.TrimSpace(rows[0]))
	assert.Equal(t, "m3", strings.TrimSpace(rows[1]))
	assert.Equal(t, "m4", strings.TrimSpace(rows[2]))
}

func TestRedrawShortHistoryFromTop(t *testing.T) {
	win, sim := newTestWin(t, 10, 4)
	win.RecvMessage(sim.Screen, "a\r\nb\n", true)

	rows := sim.Rows()
	assert.Equal(t, "a", strings.TrimSpace(rows[0]))
	assert.Equal(t, "b", strings.TrimSpace(rows[1]))
	assert.Equal(t, "", strings.TrimSpace(rows[2]))
}

func TestRedrawKeepsCursor(t *testing.T) {
	win, sim := newTestWin(t, 10, 3)
	sim.Goto(4, 2)

	win.RecvMessage(sim.Screen, "hi", true)

	x, y := sim.Cursor()
	assert.Equal(t, 4, x)
	assert.Equal(t, 2, y)
	require.NoError(t, sim.Err())
}

func TestPagination(t *testing.T) {
	win, sim := newTestWin(t, 10, 10)
	for i := range 25 {
		win.RecvMessage(sim.Screen, text(fmt.Sprintf("line %d", i)), false)
	}

	steps := []struct {
		up   bool
		want int
	}{
		{true, 10},
		{true, 15},
		{true, 15},
		{false, 5},
		{false, 0},
		{false, 0},
	}
	for _, s := range steps {
		if s.up {
			win.PageUp(sim.Screen)
		} else {
			win.PageDown(sim.Screen)
		}
		assert.Equal(t, s.want, win.Offset())
		assert.GreaterOrEqual(t, win.Offset(), 0)
		assert.LessOrEqual(t, win.Offset(), max(0, len(win.Lines())-10))
	}
}

func TestPageUpScrollsView(t *testing.T) {
	win, sim := newTestWin(t, 10, 2)
	for i := range 4 {
		win.RecvMessage(sim.Screen, text(fmt.Sprintf("l%d", i)), false)
	}

	win.PageUp(sim.Screen)

	rows := sim.Rows()
	assert.Equal(t, "l0", strings.TrimSpace(rows[0]))
	assert.Equal(t, "l1", strings.TrimSpace(rows[1]))
}

func TestPageUpWhenEverythingFits(t *testing.T) {
	win, sim := newTestWin(t, 10, 10)
	win.RecvMessage(sim.Screen, "only", false)

	win.PageUp(sim.Screen)

	assert.Equal(t, 0, win.Offset())
}

func TestBufferedWinNaturalSize(t *testing.T) {
	win := NewBufferedWin[text, *testEvent]()
	win.SetDimensions(ShrinkToContent, ShrinkToContent)
	win.RecvMessage(nil, "\x1b[1mbold\x1b[0m\nlonger line", false)

	win.Measure(NoLimit, NoLimit)

	assert.Equal(t, Cells(11), win.MeasuredWidth())
	assert.Equal(t, Cells(2), win.MeasuredHeight())
}

func TestRedrawCutsWideLines(t *testing.T) {
	sim := uitest.New(10, 1)
	win := NewBufferedWin[text, *testEvent]()
	win.Measure(Cells(5), Cells(1))
	win.Layout(0, 0)

	win.RecvMessage(sim.Screen, "abcdefgh", true)

	assert.Equal(t, "abcde     ", sim.Row(0))
}
