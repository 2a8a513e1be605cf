package view

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/samdwyer/parley/internal/termtext"
	"github.com/samdwyer/parley/internal/ui"
)

// Item is an entry or group header of a ListView.
type Item interface {
	comparable
	String() string
}

const groupIndent = "  "

type groupKey[G comparable] struct {
	name    G
	present bool
}

type listGroup[G, I Item] struct {
	key   groupKey[G]
	items []I
	index map[I]int
}

// ListView shows items in optional named groups. Items under a group are
// indented below its header; ungrouped items have no header. Groups and
// items keep insertion order.
type ListView[G, I Item, E any] struct {
	Node
	groups  []*listGroup[G, I]
	byKey   map[groupKey[G]]*listGroup[G, I]
	handler Handler[*ListView[G, I, E], E]
}

// NewListView creates an empty list as wide as its content and as tall as
// its parent.
func NewListView[G, I Item, E any]() *ListView[G, I, E] {
	return &ListView[G, I, E]{
		Node:  newNode(ShrinkToContent, FillParent),
		byKey: make(map[groupKey[G]]*listGroup[G, I]),
	}
}

// WithHandler attaches the event handler and returns l.
func (l *ListView[G, I, E]) WithHandler(h Handler[*ListView[G, I, E], E]) *ListView[G, I, E] {
	l.handler = h
	return l
}

// WithUngrouped creates the ungrouped bucket so it is listed first.
func (l *ListView[G, I, E]) WithUngrouped() *ListView[G, I, E] {
	l.group(groupKey[G]{})
	return l
}

func (l *ListView[G, I, E]) group(key groupKey[G]) *listGroup[G, I] {
	if g, ok := l.byKey[key]; ok {
		return g
	}
	g := &listGroup[G, I]{key: key, index: make(map[I]int)}
	l.groups = append(l.groups, g)
	l.byKey[key] = g
	l.dirty = true
	return g
}

// AddGroup creates an empty group if it does not exist yet.
func (l *ListView[G, I, E]) AddGroup(name G) {
	l.group(groupKey[G]{name: name, present: true})
}

// Insert adds or replaces an ungrouped item.
func (l *ListView[G, I, E]) Insert(item I) {
	l.insert(groupKey[G]{}, item)
}

// InsertInGroup adds or replaces an item under group name.
func (l *ListView[G, I, E]) InsertInGroup(name G, item I) {
	l.insert(groupKey[G]{name: name, present: true}, item)
}

func (l *ListView[G, I, E]) insert(key groupKey[G], item I) {
	g := l.group(key)
	if i, ok := g.index[item]; ok {
		g.items[i] = item
	} else {
		g.index[item] = len(g.items)
		g.items = append(g.items, item)
	}
	l.dirty = true
}

// Remove deletes item from every group. Groups are kept even when empty.
func (l *ListView[G, I, E]) Remove(item I) bool {
	found := false
	for _, g := range l.groups {
		i, ok := g.index[item]
		if !ok {
			continue
		}
		g.items = append(g.items[:i], g.items[i+1:]...)
		delete(g.index, item)
		for j := i; j < len(g.items); j++ {
			g.index[g.items[j]] = j
		}
		found = true
	}
	if found {
		l.dirty = true
	}
	return found
}

// Groups returns the named groups in insertion order.
func (l *ListView[G, I, E]) Groups() []G {
	var names []G
	for _, g := range l.groups {
		if g.key.present {
			names = append(names, g.key.name)
		}
	}
	return names
}

// Items returns the items of group name.
func (l *ListView[G, I, E]) Items(name G) []I {
	if g, ok := l.byKey[groupKey[G]{name: name, present: true}]; ok {
		return append([]I(nil), g.items...)
	}
	return nil
}

// Ungrouped returns the items outside any group.
func (l *ListView[G, I, E]) Ungrouped() []I {
	if g, ok := l.byKey[groupKey[G]{}]; ok {
		return append([]I(nil), g.items...)
	}
	return nil
}

// rows renders headers and items in display order.
func (l *ListView[G, I, E]) rows() []string {
	var rows []string
	for _, g := range l.groups {
		if !g.key.present {
			for _, it := range g.items {
				rows = append(rows, it.String())
			}
			continue
		}
		rows = append(rows, g.key.name.String())
		for _, it := range g.items {
			rows = append(rows, groupIndent+it.String())
		}
	}
	return rows
}

// Measure uses the widest row and the row count as natural size.
func (l *ListView[G, I, E]) Measure(width, height Limit) {
	rows := l.rows()
	l.measure(width, height, termtext.MaxVisibleLen(rows), len(rows))
}

// Redraw blanks the list area and prints the rows that fit, cut to width.
func (l *ListView[G, I, E]) Redraw(scr *ui.Screen) {
	x, y := l.Position()
	w, h := l.size()

	scr.SaveCursor()
	for row := 0; row < h; row++ {
		scr.Blank(x, y+row, w)
	}
	for row, text := range l.rows() {
		if row >= h {
			break
		}
		scr.Goto(x, y+row)
		scr.Print(ansi.Truncate(text, w, ""))
	}
	scr.RestoreCursor()
	scr.Flush()
}

func (l *ListView[G, I, E]) Event(scr *ui.Screen, ev E) {
	if l.handler != nil {
		l.handler.HandleEvent(scr, l, ev)
	}
}
