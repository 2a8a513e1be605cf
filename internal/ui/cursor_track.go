//go:build nocursorsave

package ui

// SaveCursor records the last known cursor position. Built with the
// nocursorsave tag for terminals that ignore the save/restore sequences.
func (s *Screen) SaveCursor() {
	s.savedX, s.savedY = s.x, s.y
}

// RestoreCursor moves back to the position recorded by SaveCursor.
func (s *Screen) RestoreCursor() {
	s.Goto(s.savedX, s.savedY)
}
