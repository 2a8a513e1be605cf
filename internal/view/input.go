package view

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/samdwyer/parley/internal/ui"
)

const passwordPrompt = "password: "

// wordSeparators stop a backward word deletion in addition to spaces.
const wordSeparators = `/\'"&()*,;<=>?@[]^{|}`

// Input is a single line editor with history and a password mode. The
// cursor is counted in code points; buf always holds valid UTF-8.
type Input[E any] struct {
	Node
	buf          string
	cursor       int
	scratch      *string
	password     bool
	history      []string
	historyIndex int
	historyLimit int
	handler      Handler[*Input[E], E]
}

var _ View[struct{}] = (*Input[struct{}])(nil)

// NewInput creates an empty input one row high, filling the parent's width.
func NewInput[E any]() *Input[E] {
	return &Input[E]{Node: newNode(FillParent, Fixed(1))}
}

// WithHandler attaches the event handler and returns in.
func (in *Input[E]) WithHandler(h Handler[*Input[E], E]) *Input[E] {
	in.handler = h
	return in
}

// SetHistoryLimit caps the history, dropping the oldest entries first.
// Zero keeps everything.
func (in *Input[E]) SetHistoryLimit(n int) {
	in.historyLimit = max(0, n)
	in.trimHistory()
}

// Text returns the buffer.
func (in *Input[E]) Text() string { return in.buf }

// Cursor returns the cursor offset in code points.
func (in *Input[E]) Cursor() int { return in.cursor }

// IsPassword reports whether the input is collecting a password.
func (in *Input[E]) IsPassword() bool { return in.password }

// History returns the submitted lines, oldest first.
func (in *Input[E]) History() []string {
	return append([]string(nil), in.history...)
}

func (in *Input[E]) length() int {
	return utf8.RuneCountInString(in.buf)
}

// byteIndex maps a code point offset to a byte offset in buf.
func (in *Input[E]) byteIndex(cursor int) int {
	i := 0
	for ; cursor > 0; cursor-- {
		if i >= len(in.buf) {
			panic(fmt.Sprintf("view: code point offset past end of %q", in.buf))
		}
		i++
		for i < len(in.buf) && !utf8.RuneStart(in.buf[i]) {
			i++
		}
	}
	return i
}

// echo redraws unless the typed text must stay hidden.
func (in *Input[E]) echo(scr *ui.Screen) {
	if !in.password {
		in.Redraw(scr)
	}
}

// Key inserts r at the cursor.
func (in *Input[E]) Key(scr *ui.Screen, r rune) {
	i := in.byteIndex(in.cursor)
	in.buf = in.buf[:i] + string(r) + in.buf[i:]
	in.cursor++
	in.echo(scr)
}

// Backspace removes the code point before the cursor.
func (in *Input[E]) Backspace(scr *ui.Screen) {
	if in.cursor > 0 {
		start, end := in.byteIndex(in.cursor-1), in.byteIndex(in.cursor)
		in.buf = in.buf[:start] + in.buf[end:]
		in.cursor--
	}
	in.echo(scr)
}

// Delete removes the code point under the cursor.
func (in *Input[E]) Delete(scr *ui.Screen) {
	if in.cursor < in.length() {
		start, end := in.byteIndex(in.cursor), in.byteIndex(in.cursor+1)
		in.buf = in.buf[:start] + in.buf[end:]
	}
	in.echo(scr)
}

type wordState int

const (
	wordStart wordState = iota
	wordSpace
	wordSeparator
	wordBody
)

func isWordSeparator(r rune) bool {
	return strings.ContainsRune(wordSeparators, r)
}

// BackwardDeleteWord removes the word before the cursor along with the
// spaces after it. A run of separators counts as a word of its own.
func (in *Input[E]) BackwardDeleteWord(scr *ui.Screen) {
	runes := []rune(in.buf[:in.byteIndex(in.cursor)])
	start := len(runes)
	state := wordStart
scan:
	for ; start > 0; start-- {
		r := runes[start-1]
		switch state {
		case wordStart, wordSpace:
			switch {
			case r == ' ':
				state = wordSpace
			case isWordSeparator(r):
				state = wordSeparator
			default:
				state = wordBody
			}
		case wordSeparator:
			if !isWordSeparator(r) {
				break scan
			}
		case wordBody:
			if r == ' ' || isWordSeparator(r) {
				break scan
			}
		}
	}
	in.buf = in.buf[:in.byteIndex(start)] + in.buf[in.byteIndex(in.cursor):]
	in.cursor = start
	in.echo(scr)
}

// Home moves the cursor to the start of the line.
func (in *Input[E]) Home(scr *ui.Screen) {
	in.cursor = 0
	in.echo(scr)
}

// End moves the cursor past the last code point.
func (in *Input[E]) End(scr *ui.Screen) {
	in.cursor = in.length()
	in.echo(scr)
}

// Left moves the cursor back one code point.
func (in *Input[E]) Left(scr *ui.Screen) {
	if in.cursor > 0 {
		in.cursor--
	}
	in.echo(scr)
}

// Right moves the cursor forward one code point.
func (in *Input[E]) Right(scr *ui.Screen) {
	if in.cursor < in.length() {
		in.cursor++
	}
	in.echo(scr)
}

// Clear empties the buffer, forgets any unsubmitted draft and leaves
// password mode.
func (in *Input[E]) Clear(scr *ui.Screen) {
	in.buf = ""
	in.cursor = 0
	in.scratch = nil
	in.password = false
	x, y := in.Position()
	w, _ := in.size()
	scr.Blank(x, y, w)
	scr.Flush()
}

// Password clears the line and starts collecting a hidden entry.
func (in *Input[E]) Password(scr *ui.Screen) {
	in.Clear(scr)
	in.password = true
	in.Redraw(scr)
}

// Validate submits the line. It returns the text and whether it was a
// password, then clears the input. Only clear text enters the history.
func (in *Input[E]) Validate(scr *ui.Screen) (string, bool) {
	text, password := in.buf, in.password
	if !password {
		in.history = append(in.history, text)
		in.trimHistory()
		in.historyIndex = len(in.history)
	}
	in.Clear(scr)
	return text, password
}

func (in *Input[E]) trimHistory() {
	if in.historyLimit > 0 && len(in.history) > in.historyLimit {
		drop := len(in.history) - in.historyLimit
		in.history = append([]string(nil), in.history[drop:]...)
		in.historyIndex = max(0, in.historyIndex-drop)
	}
}

// Previous recalls the older history entry. The draft being typed is kept
// aside the first time so Next can bring it back.
func (in *Input[E]) Previous(scr *ui.Screen) {
	if in.historyIndex == 0 {
		return
	}
	if in.scratch == nil {
		draft := in.buf
		in.scratch = &draft
	}
	in.historyIndex--
	in.buf = in.history[in.historyIndex]
	in.cursor = in.length()
	in.Redraw(scr)
}

// Next recalls the newer history entry, or the draft once past the end.
func (in *Input[E]) Next(scr *ui.Screen) {
	if in.historyIndex >= len(in.history) {
		return
	}
	in.historyIndex++
	if in.historyIndex == len(in.history) {
		in.buf = ""
		if in.scratch != nil {
			in.buf = *in.scratch
		}
		in.scratch = nil
	} else {
		in.buf = in.history[in.historyIndex]
	}
	in.cursor = in.length()
	in.Redraw(scr)
}

// Measure reports the buffer plus the cursor cell as natural width.
func (in *Input[E]) Measure(width, height Limit) {
	in.measure(width, height, in.length()+1, 1)
}

// Redraw blanks the line and prints the buffer with the cursor in place.
// Text wider than the line scrolls so the cursor stays on the last column.
// In password mode only the prompt is shown.
func (in *Input[E]) Redraw(scr *ui.Screen) {
	x, y := in.Position()
	w, _ := in.size()
	scr.Blank(x, y, w)
	if in.password {
		scr.Print(ansi.Truncate(passwordPrompt, w, ""))
	} else {
		runes := []rune(in.buf)
		first := min(max(0, in.cursor-w+1), len(runes))
		shown := runes[first:]
		if len(shown) > w {
			shown = shown[:w]
		}
		scr.Print(string(shown))
		scr.Goto(x+max(0, in.cursor-first), y)
	}
	scr.Flush()
}

func (in *Input[E]) Event(scr *ui.Screen, ev E) {
	if in.handler != nil {
		in.handler.HandleEvent(scr, in, ev)
	}
}
