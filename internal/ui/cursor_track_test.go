//go:build nocursorsave

package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/parley/internal/ui"
)

func TestSaveRestoreTracksPosition(t *testing.T) {
	var buf bytes.Buffer
	scr := ui.NewScreen(ui.NewTerminal(&buf, 80, 24))

	scr.Goto(5, 5)
	scr.SaveCursor()
	scr.Goto(0, 0)
	scr.Print("x")
	scr.RestoreCursor()
	require.NoError(t, scr.Flush())

	out := buf.String()
	assert.NotContains(t, out, ansi.SaveCursor)
	assert.NotContains(t, out, ansi.RestoreCursor)
	assert.Equal(t, 2, strings.Count(out, ansi.CursorPosition(6, 6)))
}
