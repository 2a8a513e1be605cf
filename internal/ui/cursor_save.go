//go:build !nocursorsave

package ui

// SaveCursor has the terminal remember the cursor position.
func (s *Screen) SaveCursor() {
	s.savedX, s.savedY = s.x, s.y
	s.do(s.backend.SaveCursor)
}

// RestoreCursor has the terminal return to the position remembered by
// SaveCursor.
func (s *Screen) RestoreCursor() {
	s.x, s.y = s.savedX, s.savedY
	s.do(s.backend.RestoreCursor)
}
