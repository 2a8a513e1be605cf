package view

import "github.com/samdwyer/parley/internal/ui"

// FrameLayout stacks keyed children on the same rectangle and shows one of
// them at a time. Every child receives the frame's own constraints and
// position; only the current child is drawn.
type FrameLayout[K comparable, E any] struct {
	Node
	children   map[K]View[E]
	order      []K
	current    K
	hasCurrent bool
	handler    Handler[*FrameLayout[K, E], E]
}

var _ View[struct{}] = (*FrameLayout[string, struct{}])(nil)

// NewFrameLayout creates an empty frame filling its parent.
func NewFrameLayout[K comparable, E any]() *FrameLayout[K, E] {
	return &FrameLayout[K, E]{
		Node:     newNode(FillParent, FillParent),
		children: make(map[K]View[E]),
	}
}

// WithHandler attaches the event handler and returns f.
func (f *FrameLayout[K, E]) WithHandler(h Handler[*FrameLayout[K, E], E]) *FrameLayout[K, E] {
	f.handler = h
	return f
}

// Insert adds or replaces the child under key. The child is measured and
// laid out straight away with the frame's current geometry so it can be
// drawn without waiting for the next layout pass.
func (f *FrameLayout[K, E]) Insert(key K, child View[E]) {
	child.Measure(f.w, f.h)
	child.Layout(f.y, f.x)
	if _, ok := f.children[key]; !ok {
		f.order = append(f.order, key)
	}
	f.children[key] = child
}

// Remove deletes the child under key. Removing the current child leaves the
// frame with nothing to show until SetCurrent is called again.
func (f *FrameLayout[K, E]) Remove(key K) (View[E], bool) {
	child, ok := f.children[key]
	if !ok {
		return nil, false
	}
	delete(f.children, key)
	for i, k := range f.order {
		if k == key {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	if f.hasCurrent && f.current == key {
		var zero K
		f.current, f.hasCurrent = zero, false
	}
	f.dirty = true
	return child, true
}

// SetCurrent selects the child to show and redraws. Unknown keys are
// ignored and reported as false.
func (f *FrameLayout[K, E]) SetCurrent(scr *ui.Screen, key K) bool {
	if _, ok := f.children[key]; !ok {
		return false
	}
	f.current, f.hasCurrent = key, true
	f.dirty = true
	f.Redraw(scr)
	return true
}

// Current returns the key of the shown child.
func (f *FrameLayout[K, E]) Current() (K, bool) {
	return f.current, f.hasCurrent
}

// Child returns the child under key.
func (f *FrameLayout[K, E]) Child(key K) (View[E], bool) {
	c, ok := f.children[key]
	return c, ok
}

// Keys returns the child keys in insertion order.
func (f *FrameLayout[K, E]) Keys() []K {
	return append([]K(nil), f.order...)
}

// Len returns the number of children.
func (f *FrameLayout[K, E]) Len() int {
	return len(f.children)
}

// Measure takes the constraints as the frame's size and hands them to
// every child unchanged.
func (f *FrameLayout[K, E]) Measure(width, height Limit) {
	f.w, f.h = width, height
	for _, k := range f.order {
		f.children[k].Measure(width, height)
	}
}

func (f *FrameLayout[K, E]) Layout(top, left int) {
	f.Node.Layout(top, left)
	for _, k := range f.order {
		f.children[k].Layout(top, left)
	}
}

func (f *FrameLayout[K, E]) Dirty() bool {
	if f.dirty {
		return true
	}
	for _, c := range f.children {
		if c.Dirty() {
			return true
		}
	}
	return false
}

func (f *FrameLayout[K, E]) Redraw(scr *ui.Screen) {
	if !f.hasCurrent {
		return
	}
	if c, ok := f.children[f.current]; ok {
		c.Redraw(scr)
	}
}

func (f *FrameLayout[K, E]) Event(scr *ui.Screen, ev E) {
	if f.handler != nil {
		f.handler.HandleEvent(scr, f, ev)
	}
}
