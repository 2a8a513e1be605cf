package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/parley/internal/ui/uitest"
)

func newTestInput(t *testing.T, width int) (*Input[*testEvent], *uitest.Sim) {
	t.Helper()
	sim := uitest.New(width, 3)
	in := NewInput[*testEvent]()
	in.Measure(Cells(width), Cells(3))
	in.Layout(2, 0)
	return in, sim
}

func typeText(in *Input[*testEvent], sim *uitest.Sim, s string) {
	for _, r := range s {
		in.Key(sim.Screen, r)
	}
}

func TestByteIndex(t *testing.T) {
	in, sim := newTestInput(t, 20)
	typeText(in, sim, "aça")

	assert.Equal(t, 0, in.byteIndex(0))
	assert.Equal(t, 1, in.byteIndex(1))
	assert.Equal(t, 3, in.byteIndex(2))
	assert.Equal(t, 4, in.byteIndex(3))
	assert.Panics(t, func() { in.byteIndex(4) })
}

func TestKeyInsertsAtCursor(t *testing.T) {
	in, sim := newTestInput(t, 20)
	typeText(in, sim, "hé!")
	in.Left(sim.Screen)
	in.Left(sim.Screen)
	in.Key(sim.Screen, 'ü')

	assert.Equal(t, "hüé!", in.Text())
	assert.Equal(t, 2, in.Cursor())
	assert.Equal(t, "hüé!", strings.TrimRight(sim.Row(2), " "))
	x, y := sim.ShownCursor()
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)
}

func TestCursorMovesByCodePoint(t *testing.T) {
	in, sim := newTestInput(t, 20)
	typeText(in, sim, "çaé")

	in.Home(sim.Screen)
	assert.Equal(t, 0, in.Cursor())
	in.Left(sim.Screen)
	assert.Equal(t, 0, in.Cursor())

	in.End(sim.Screen)
	assert.Equal(t, 3, in.Cursor())
	in.Right(sim.Screen)
	assert.Equal(t, 3, in.Cursor())

	in.Home(sim.Screen)
	in.Right(sim.Screen)
	assert.Equal(t, 1, in.Cursor())
}

func TestBackspaceAndDelete(t *testing.T) {
	in, sim := newTestInput(t, 20)
	typeText(in, sim, "añb")

	in.Backspace(sim.Screen)
	assert.Equal(t, "añ", in.Text())

	in.Home(sim.Screen)
	in.Backspace(sim.Screen)
	assert.Equal(t, "añ", in.Text())

	in.Right(sim.Screen)
	in.Delete(sim.Screen)
	assert.Equal(t, "a", in.Text())
	assert.Equal(t, 1, in.Cursor())

	in.Delete(sim.Screen)
	assert.Equal(t, "a", in.Text())
	assert.Equal(t, "a", strings.TrimRight(sim.Row(2), " "))
}

func TestBackwardDeleteWord(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"word", "hello world", "hello "},
		{"trailing spaces", "hello world   ", "hello "},
		{"separator stops word", "path/to/file", "path/to/"},
		{"separator run", "call((", "call"},
		{"single word", "word", ""},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"multibyte", "dit ça", "dit "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, sim := newTestInput(t, 30)
			typeText(in, sim, tt.input)

			in.BackwardDeleteWord(sim.Screen)

			assert.Equal(t, tt.want, in.Text())
			assert.Equal(t, len([]rune(tt.want)), in.Cursor())
		})
	}
}

func TestBackwardDeleteWordKeepsTail(t *testing.T) {
	in, sim := newTestInput(t, 30)
	typeText(in, sim, "one two three")
	for range len(" three") {
		in.Left(sim.Screen)
	}

	in.BackwardDeleteWord(sim.Screen)

	assert.Equal(t, "one  three", in.Text())
	assert.Equal(t, 4, in.Cursor())
}

func TestHistoryRoundTrip(t *testing.T) {
	in, sim := newTestInput(t, 20)
	typeText(in, sim, "hello")
	text, password := in.Validate(sim.Screen)
	assert.Equal(t, "hello", text)
	assert.False(t, password)
	typeText(in, sim, "world")
	in.Validate(sim.Screen)
	typeText(in, sim, "draft")

	in.Previous(sim.Screen)
	assert.Equal(t, "world", in.Text())
	in.Previous(sim.Screen)
	assert.Equal(t, "hello", in.Text())
	in.Previous(sim.Screen)
	assert.Equal(t, "hello", in.Text())

	in.Next(sim.Screen)
	assert.Equal(t, "world", in.Text())
	in.Next(sim.Screen)
	assert.Equal(t, "draft", in.Text())
	assert.Equal(t, 5, in.Cursor())
	in.Next(sim.Screen)
	assert.Equal(t, "draft", in.Text())

	assert.Equal(t, []string{"hello", "world"}, in.History())
}

func TestHistoryLimit(t *testing.T) {
	in, sim := newTestInput(t, 20)
	in.SetHistoryLimit(2)
	for _, s := range []string{"a", "b", "c"} {
		typeText(in, sim, s)
		in.Validate(sim.Screen)
	}

	assert.Equal(t, []string{"b", "c"}, in.History())
	in.Previous(sim.Screen)
	assert.Equal(t, "c", in.Text())
}

func TestPasswordMode(t *testing.T) {
	in, sim := newTestInput(t, 30)
	typeText(in, sim, "leftover")

	in.Password(sim.Screen)
	require.True(t, in.IsPassword())
	assert.Equal(t, "", in.Text())
	assert.Equal(t, passwordPrompt, strings.TrimRight(sim.Row(2), " ")+" ")

	typeText(in, sim, "s3cret")
	assert.False(t, sim.Contains("s3cret"))

	text, password := in.Validate(sim.Screen)
	assert.Equal(t, "s3cret", text)
	assert.True(t, password)
	assert.False(t, in.IsPassword())
	assert.Empty(t, in.History())
	assert.Equal(t, "", strings.TrimSpace(sim.Row(2)))
}

func TestClearForgetsDraft(t *testing.T) {
	in, sim := newTestInput(t, 20)
	typeText(in, sim, "old")
	in.Validate(sim.Screen)
	typeText(in, sim, "draft")
	in.Previous(sim.Screen)

	in.Clear(sim.Screen)
	in.Next(sim.Screen)

	assert.Equal(t, "", in.Text())
}

func TestInputMeasure(t *testing.T) {
	in := NewInput[*testEvent]()
	in.Measure(NoLimit, NoLimit)
	assert.False(t, in.MeasuredWidth().IsSet())
	assert.Equal(t, Cells(1), in.MeasuredHeight())

	in.SetDimensions(ShrinkToContent, Fixed(1))
	in.buf = "abc"
	in.Measure(Cells(80), Cells(24))
	assert.Equal(t, Cells(4), in.MeasuredWidth())
}

func TestRedrawScrollsLongLine(t *testing.T) {
	sim := uitest.New(10, 3)
	for y := range 3 {
		sim.Goto(0, y)
		sim.Print("..........")
	}
	in := NewInput[*testEvent]()
	in.Measure(Cells(5), Cells(3))
	in.Layout(2, 0)

	typeText(in, sim, "abcdefgh")

	assert.Equal(t, "efgh .....", sim.Row(2))
	x, y := sim.ShownCursor()
	assert.Equal(t, 4, x)
	assert.Equal(t, 2, y)

	in.Home(sim.Screen)
	assert.Equal(t, "abcde.....", sim.Row(2))
	x, _ = sim.ShownCursor()
	assert.Equal(t, 0, x)
}

func TestPasswordPromptIsCut(t *testing.T) {
	in, sim := newTestInput(t, 4)

	in.Password(sim.Screen)

	assert.Equal(t, "pass", sim.Row(2))
}
