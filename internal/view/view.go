// Package view implements the retained widget tree drawn on the terminal.
//
// A tree is driven in passes. Measure runs top-down once per resize and
// lets children report natural sizes bottom-up; Layout runs top-down and
// assigns positions; Redraw and Event run whenever application or input
// state changes. Layout must follow Measure before anything reads a
// view's position or size.
//
// Views never keep the screen. The owner of the tree lends its *ui.Screen
// to every call that may write, and each redraw ends with a flush.
package view

import "github.com/samdwyer/parley/internal/ui"

// View is implemented by every widget. E is the application event type,
// normally a pointer so handlers can mutate it.
type View[E any] interface {
	// Measure records the view's size given optional constraints.
	Measure(width, height Limit)
	// Layout places the view with its top-left corner at (left, top).
	Layout(top, left int)
	MeasuredWidth() Limit
	MeasuredHeight() Limit
	// Dirty reports whether the view needs a new layout and redraw.
	Dirty() bool
	// Redraw renders the current state. It is safe to call repeatedly.
	Redraw(scr *ui.Screen)
	// Event delivers an application event to the attached handler.
	Event(scr *ui.Screen, ev E)
}

// Handler reacts to events delivered to a widget of type W.
type Handler[W, E any] interface {
	HandleEvent(scr *ui.Screen, w W, ev E)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[W, E any] func(scr *ui.Screen, w W, ev E)

// HandleEvent calls f.
func (f HandlerFunc[W, E]) HandleEvent(scr *ui.Screen, w W, ev E) {
	f(scr, w, ev)
}

// Node holds the layout state shared by all views and the default
// Measure/Layout/Dirty behaviour for leaves. Containers override it.
type Node struct {
	width  Dimension
	height Dimension
	x, y   int
	w, h   Limit
	dirty  bool
}

func newNode(width, height Dimension) Node {
	return Node{width: width, height: height, dirty: true}
}

// Measure resolves both dimensions against the constraints. Content-sized
// leaves without their own Measure are empty.
func (n *Node) Measure(width, height Limit) {
	n.measure(width, height, 0, 0)
}

func (n *Node) measure(width, height Limit, naturalW, naturalH int) {
	n.w = n.width.resolve(width, naturalW)
	n.h = n.height.resolve(height, naturalH)
}

// Layout records the position and clears the dirty flag.
func (n *Node) Layout(top, left int) {
	n.x, n.y = left, top
	n.dirty = false
}

// MeasuredWidth returns the width set by the last Measure.
func (n *Node) MeasuredWidth() Limit { return n.w }

// MeasuredHeight returns the height set by the last Measure.
func (n *Node) MeasuredHeight() Limit { return n.h }

// Dirty reports whether a layout is pending.
func (n *Node) Dirty() bool { return n.dirty }

// MarkDirty requests a new layout.
func (n *Node) MarkDirty() { n.dirty = true }

// Position returns the column and row assigned by Layout.
func (n *Node) Position() (x, y int) { return n.x, n.y }

// Dimensions returns the sizing policy.
func (n *Node) Dimensions() (width, height Dimension) { return n.width, n.height }

// SetDimensions changes the sizing policy and requests a new layout.
func (n *Node) SetDimensions(width, height Dimension) {
	n.width, n.height = width, height
	n.dirty = true
}

// size returns the measured size, panicking if Measure has not run.
func (n *Node) size() (w, h int) {
	return n.w.Must("width"), n.h.Must("height")
}
