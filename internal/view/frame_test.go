package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/parley/internal/ui/uitest"
)

func TestFrameForwardsGeometry(t *testing.T) {
	f := NewFrameLayout[string, *testEvent]()
	a := newBox(FillParent, FillParent)
	f.Insert("a", a)

	f.Measure(Cells(40), Cells(10))
	f.Layout(1, 2)

	assert.Equal(t, Cells(40), f.MeasuredWidth())
	assert.Equal(t, Cells(10), f.MeasuredHeight())
	assert.Equal(t, Cells(40), a.MeasuredWidth())
	assert.Equal(t, Cells(10), a.MeasuredHeight())
	x, y := a.Position()
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)
}

func TestFrameInsertLaysOutChild(t *testing.T) {
	f := NewFrameLayout[string, *testEvent]()
	f.Measure(Cells(30), Cells(8))
	f.Layout(0, 0)

	win := NewBufferedWin[text, *testEvent]()
	f.Insert("late", win)

	assert.Equal(t, Cells(30), win.MeasuredWidth())
	assert.Equal(t, Cells(8), win.MeasuredHeight())
	assert.False(t, win.Dirty())
}

func TestFrameDrawsOnlyCurrent(t *testing.T) {
	sim := uitest.New(20, 4)
	f := NewFrameLayout[string, *testEvent]()
	f.Measure(Cells(20), Cells(4))
	f.Layout(0, 0)

	a := NewBufferedWin[text, *testEvent]()
	b := NewBufferedWin[text, *testEvent]()
	f.Insert("a", a)
	f.Insert("b", b)
	a.RecvMessage(sim.Screen, "from a", false)
	b.RecvMessage(sim.Screen, "from b", false)

	require.True(t, f.SetCurrent(sim.Screen, "a"))
	assert.True(t, sim.Contains("from a"))
	assert.False(t, sim.Contains("from b"))

	require.True(t, f.SetCurrent(sim.Screen, "b"))
	assert.True(t, sim.Contains("from b"))
	assert.False(t, sim.Contains("from a"))

	key, ok := f.Current()
	assert.True(t, ok)
	assert.Equal(t, "b", key)
}

func TestFrameSetCurrentUnknown(t *testing.T) {
	sim := uitest.New(10, 2)
	f := NewFrameLayout[string, *testEvent]()
	assert.False(t, f.SetCurrent(sim.Screen, "missing"))
	_, ok := f.Current()
	assert.False(t, ok)
	assert.NotPanics(t, func() { f.Redraw(sim.Screen) })
}

func TestFrameDirty(t *testing.T) {
	sim := uitest.New(10, 2)
	f := NewFrameLayout[string, *testEvent]()
	a := newBox(FillParent, FillParent)
	f.Insert("a", a)
	f.Measure(Cells(10), Cells(2))
	f.Layout(0, 0)
	require.False(t, f.Dirty())

	a.MarkDirty()
	assert.True(t, f.Dirty())

	f.Layout(0, 0)
	require.False(t, f.Dirty())
	f.SetCurrent(sim.Screen, "a")
	assert.True(t, f.Dirty())
	assert.Equal(t, 1, a.redraws)
}

func TestFrameRemove(t *testing.T) {
	sim := uitest.New(10, 2)
	f := NewFrameLayout[string, *testEvent]()
	f.Insert("a", newBox(FillParent, FillParent))
	f.Insert("b", newBox(FillParent, FillParent))
	f.Insert("c", newBox(FillParent, FillParent))
	f.SetCurrent(sim.Screen, "b")

	_, ok := f.Remove("b")
	assert.True(t, ok)
	_, ok = f.Remove("b")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "c"}, f.Keys())
	assert.Equal(t, 2, f.Len())
	_, ok = f.Current()
	assert.False(t, ok)
}
