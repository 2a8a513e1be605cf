package termtext

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

const bgRed = "\x1b[41m"

func TestVisibleLenSkipsColorAndGoto(t *testing.T) {
	goto1x123 := ansi.CursorPosition(1, 123)

	assert.Equal(t, 2, VisibleLen(bgRed+"ab"+goto1x123))
	assert.Equal(t, 2, VisibleLen(goto1x123+"ab"+bgRed))
}

func TestVisibleLen(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"plain", "hello", 5},
		{"multibyte counts code points", "açã", 3},
		{"reset only", ansi.ResetStyle, 0},
		{"styled word", "\x1b[1;38;5;202mnick\x1b[0m", 4},
		{"save cursor is esc plus one", ansi.SaveCursor + "x", 1},
		{"dangling esc", "ab\x1b", 2},
		{"unterminated csi", "ab\x1b[12", 2},
		{"intermediate bytes", "\x1b[ qz", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleLen(tt.in))
		})
	}
}

func TestLines(t *testing.T) {
	assert.Nil(t, Lines(""))
	assert.Equal(t, []string{"one"}, Lines("one"))
	assert.Equal(t, []string{"one"}, Lines("one\n"))
	assert.Equal(t, []string{"one", "two"}, Lines("one\r\ntwo"))
	assert.Equal(t, []string{"one", "", "three"}, Lines("one\n\nthree"))
	assert.Equal(t, []string{""}, Lines("\n"))
}

func TestMaxVisibleLen(t *testing.T) {
	assert.Equal(t, 0, MaxVisibleLen(nil))
	assert.Equal(t, 5, MaxVisibleLen([]string{"ab", bgRed + "hello" + ansi.ResetStyle, "xyz"}))
}
