package view

import "github.com/samdwyer/parley/internal/ui"

// Orientation is the primary axis of a LinearLayout.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// LinearLayout places its children one after another along its primary
// axis. Children with a definite natural size get it; children that leave
// the primary axis open share what is left in equal parts.
type LinearLayout[E any] struct {
	Node
	orientation Orientation
	children    []View[E]
	handler     Handler[*LinearLayout[E], E]
}

var _ View[struct{}] = (*LinearLayout[struct{}])(nil)

// NewLinearLayout creates an empty layout with the given sizing policy.
func NewLinearLayout[E any](o Orientation, width, height Dimension) *LinearLayout[E] {
	return &LinearLayout[E]{
		Node:        newNode(width, height),
		orientation: o,
	}
}

// WithHandler attaches the event handler and returns l.
func (l *LinearLayout[E]) WithHandler(h Handler[*LinearLayout[E], E]) *LinearLayout[E] {
	l.handler = h
	return l
}

// Push appends a child.
func (l *LinearLayout[E]) Push(child View[E]) {
	l.children = append(l.children, child)
	l.dirty = true
}

// Children returns the children in order.
func (l *LinearLayout[E]) Children() []View[E] {
	return append([]View[E](nil), l.children...)
}

// Orientation returns the primary axis.
func (l *LinearLayout[E]) Orientation() Orientation {
	return l.orientation
}

func (l *LinearLayout[E]) along(v View[E]) Limit {
	if l.orientation == Horizontal {
		return v.MeasuredWidth()
	}
	return v.MeasuredHeight()
}

func (l *LinearLayout[E]) across(v View[E]) Limit {
	if l.orientation == Horizontal {
		return v.MeasuredHeight()
	}
	return v.MeasuredWidth()
}

// Measure runs two passes. The first measures every child without
// constraints to find the definite sizes; the second hands each elastic
// child an equal share of the space left and never lets the running total
// pass the maximum.
//
// The measured size is the sum of the children along the primary axis and
// the widest child across it, with one exception: a FillParent axis
// measured without a bound stays unset, so a parent layout treats the
// whole nested layout as elastic.
func (l *LinearLayout[E]) Measure(width, height Limit) {
	maxW := l.width.bound(width)
	maxH := l.height.bound(height)
	maxAlong, maxAcross := maxH, maxW
	if l.orientation == Horizontal {
		maxAlong, maxAcross = maxW, maxH
	}

	natural := make([]Limit, len(l.children))
	used, elastic := 0, 0
	for i, c := range l.children {
		c.Measure(NoLimit, NoLimit)
		natural[i] = l.along(c)
		if n, ok := natural[i].Get(); ok {
			used += n
		} else {
			elastic++
		}
	}

	share := 0
	if m, ok := maxAlong.Get(); ok && elastic > 0 && m > used {
		share = (m - used) / elastic
	}

	sum, widest := 0, 0
	for i, c := range l.children {
		n := natural[i].Or(share)
		if m, ok := maxAlong.Get(); ok {
			n = min(n, max(0, m-sum))
		}
		if l.orientation == Horizontal {
			c.Measure(Cells(n), maxAcross)
		} else {
			c.Measure(maxAcross, Cells(n))
		}
		sum += l.along(c).Or(0)
		widest = max(widest, l.across(c).Or(0))
	}

	alongSize := l.ownSize(sum, maxAlong, l.alongDimension())
	acrossSize := l.ownSize(widest, maxAcross, l.acrossDimension())
	if l.orientation == Horizontal {
		l.w, l.h = alongSize, acrossSize
	} else {
		l.w, l.h = acrossSize, alongSize
	}
}

// ownSize is the accumulated size, except that a fill-parent layout under
// no constraint stays open like any other fill-parent view.
func (l *LinearLayout[E]) ownSize(n int, bound Limit, d Dimension) Limit {
	if d.kind == fillParent && !bound.IsSet() {
		return NoLimit
	}
	return Cells(n)
}

func (l *LinearLayout[E]) alongDimension() Dimension {
	if l.orientation == Horizontal {
		return l.width
	}
	return l.height
}

func (l *LinearLayout[E]) acrossDimension() Dimension {
	if l.orientation == Horizontal {
		return l.height
	}
	return l.width
}

func (l *LinearLayout[E]) Layout(top, left int) {
	l.Node.Layout(top, left)
	x, y := left, top
	for _, c := range l.children {
		c.Layout(y, x)
		if l.orientation == Horizontal {
			x += c.MeasuredWidth().Must("width")
		} else {
			y += c.MeasuredHeight().Must("height")
		}
	}
}

func (l *LinearLayout[E]) Dirty() bool {
	if l.dirty {
		return true
	}
	for _, c := range l.children {
		if c.Dirty() {
			return true
		}
	}
	return false
}

func (l *LinearLayout[E]) Redraw(scr *ui.Screen) {
	for _, c := range l.children {
		c.Redraw(scr)
	}
}

func (l *LinearLayout[E]) Event(scr *ui.Screen, ev E) {
	if l.handler != nil {
		l.handler.HandleEvent(scr, l, ev)
	}
}
