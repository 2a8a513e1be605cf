// Package uitest provides a simulated terminal for rendering tests.
package uitest

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/parley/internal/ui"
)

// Sim is a ui.Screen backed by tcell's simulation screen.
type Sim struct {
	*ui.Screen
	Backend *ui.TcellBackend
	sim     tcell.SimulationScreen
}

// New creates a simulated terminal of the given size.
func New(width, height int) *Sim {
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		panic(err)
	}
	s.SetSize(width, height)
	b := ui.NewTcellBackendWithScreen(s, ui.DefaultTheme)
	return &Sim{
		Screen:  ui.NewScreen(b),
		Backend: b,
		sim:     s,
	}
}

// Row returns the text on row y, blank cells as spaces.
func (s *Sim) Row(y int) string {
	w, _ := s.sim.Size()
	return s.Region(0, y, w)
}

// Region returns width cells of row y starting at column x.
func (s *Sim) Region(x, y, width int) string {
	var line strings.Builder
	for col := x; col < x+width; col++ {
		mainc, comb, _, _ := s.sim.GetContent(col, y)
		if mainc == 0 {
			mainc = ' '
		}
		line.WriteRune(mainc)
		for _, c := range comb {
			line.WriteRune(c)
		}
	}
	return line.String()
}

// Rows returns every row of the screen.
func (s *Sim) Rows() []string {
	_, h := s.sim.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return rows
}

// Style returns the style of one cell.
func (s *Sim) Style(x, y int) tcell.Style {
	_, _, style, _ := s.sim.GetContent(x, y)
	return style
}

// Contains reports whether text appears on any row.
func (s *Sim) Contains(text string) bool {
	for _, row := range s.Rows() {
		if strings.Contains(row, text) {
			return true
		}
	}
	return false
}

// ShownCursor returns where the last Flush placed the visible cursor.
func (s *Sim) ShownCursor() (x, y int) {
	x, y, _ = s.sim.GetCursor()
	return x, y
}

// Resize changes the simulated terminal size.
func (s *Sim) Resize(width, height int) {
	s.sim.SetSize(width, height)
}
