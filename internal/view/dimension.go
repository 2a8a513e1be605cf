package view

import "fmt"

// Limit is an optional number of cells. It carries both the constraint a
// parent hands to a child during Measure and the size a view reports back.
// The zero value is NoLimit.
type Limit struct {
	n   int
	set bool
}

// NoLimit is the absent limit.
var NoLimit Limit

// Cells returns a limit of n cells. Negative counts are treated as zero.
func Cells(n int) Limit {
	if n < 0 {
		n = 0
	}
	return Limit{n: n, set: true}
}

// Get returns the count and whether it is set.
func (l Limit) Get() (int, bool) {
	return l.n, l.set
}

// IsSet reports whether the limit holds a value.
func (l Limit) IsSet() bool {
	return l.set
}

// Or returns the count, or def when unset.
func (l Limit) Or(def int) int {
	if !l.set {
		return def
	}
	return l.n
}

// Clamp returns the smaller of n and the limit. An unset limit does not
// constrain.
func (l Limit) Clamp(n int) int {
	if l.set && l.n < n {
		return l.n
	}
	return n
}

// Must returns the count and panics when it is unset. Views use it to read
// their measured size; doing so before Measure is a programming error.
func (l Limit) Must(what string) int {
	if !l.set {
		panic("view: " + what + " read before measure")
	}
	return l.n
}

func (l Limit) String() string {
	if !l.set {
		return "none"
	}
	return fmt.Sprintf("%d", l.n)
}

type dimensionKind int

const (
	fillParent dimensionKind = iota
	shrinkToContent
	fixed
)

// Dimension is the sizing policy of a view along one axis.
type Dimension struct {
	kind dimensionKind
	n    int
}

var (
	// FillParent takes whatever the parent offers.
	FillParent = Dimension{kind: fillParent}
	// ShrinkToContent takes the natural size of the content.
	ShrinkToContent = Dimension{kind: shrinkToContent}
)

// Fixed requests exactly n cells.
func Fixed(n int) Dimension {
	if n < 0 {
		n = 0
	}
	return Dimension{kind: fixed, n: n}
}

// resolve derives a measured size from the parent's constraint. Fixed and
// content sizes never exceed the constraint.
func (d Dimension) resolve(limit Limit, natural int) Limit {
	switch d.kind {
	case fillParent:
		return limit
	case shrinkToContent:
		return Cells(limit.Clamp(natural))
	default:
		return Cells(limit.Clamp(d.n))
	}
}

// bound is the most space a container following d may hand out.
func (d Dimension) bound(limit Limit) Limit {
	if d.kind == fixed {
		return Cells(limit.Clamp(d.n))
	}
	return limit
}

func (d Dimension) String() string {
	switch d.kind {
	case fillParent:
		return "fill"
	case shrinkToContent:
		return "shrink"
	default:
		return fmt.Sprintf("fixed(%d)", d.n)
	}
}
