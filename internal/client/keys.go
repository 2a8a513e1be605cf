package client

import (
	"context"
	"io"
	"unicode"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/gdamore/tcell/v2"
)

// KeyCode identifies a key independently of the terminal driver.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyWordErase
	KeyHome
	KeyEnd
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyInterrupt
)

// Key is a decoded key press. Rune is set for KeyRune only.
type Key struct {
	Code KeyCode
	Rune rune
}

func runeKey(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// keyFromTcell maps a tcell key to a Key. Keys the client does not bind
// report false.
func keyFromTcell(k tcell.Key, r rune) (Key, bool) {
	switch k {
	case tcell.KeyRune:
		return runeKey(r), true
	case tcell.KeyEnter:
		return Key{Code: KeyEnter}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Key{Code: KeyBackspace}, true
	case tcell.KeyDelete:
		return Key{Code: KeyDelete}, true
	case tcell.KeyCtrlW:
		return Key{Code: KeyWordErase}, true
	case tcell.KeyHome, tcell.KeyCtrlA:
		return Key{Code: KeyHome}, true
	case tcell.KeyEnd, tcell.KeyCtrlE:
		return Key{Code: KeyEnd}, true
	case tcell.KeyLeft:
		return Key{Code: KeyLeft}, true
	case tcell.KeyRight:
		return Key{Code: KeyRight}, true
	case tcell.KeyUp:
		return Key{Code: KeyUp}, true
	case tcell.KeyDown:
		return Key{Code: KeyDown}, true
	case tcell.KeyPgUp:
		return Key{Code: KeyPageUp}, true
	case tcell.KeyPgDn:
		return Key{Code: KeyPageDown}, true
	case tcell.KeyCtrlC:
		return Key{Code: KeyInterrupt}, true
	}
	return Key{}, false
}

// TranslateTcell converts a tcell event, returning nil for events the
// client ignores.
func TranslateTcell(ev tcell.Event) *Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if key, ok := keyFromTcell(ev.Key(), ev.Rune()); ok {
			return &Event{Kind: EventKey, Key: key}
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		return &Event{Kind: EventResize, Width: w, Height: h}
	}
	return nil
}

// PumpTcell forwards translated events from s until the screen is
// finalized or ctx ends. It closes out when done.
func PumpTcell(ctx context.Context, s tcell.Screen, out chan<- *Event) {
	defer close(out)
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		e := TranslateTcell(ev)
		if e == nil {
			continue
		}
		select {
		case out <- e:
		case <-ctx.Done():
			return
		}
	}
}

// keyFromUV maps a key decoded from raw terminal input to a Key. Printable
// text may carry several runes; keys the client does not bind give none.
func keyFromUV(k uv.Key) []Key {
	switch {
	case k.Mod == uv.ModCtrl:
		switch k.Code {
		case 'w':
			return []Key{{Code: KeyWordErase}}
		case 'a':
			return []Key{{Code: KeyHome}}
		case 'e':
			return []Key{{Code: KeyEnd}}
		case 'c':
			return []Key{{Code: KeyInterrupt}}
		case 'h', uv.KeyBackspace:
			return []Key{{Code: KeyBackspace}}
		case 'j', 'm':
			return []Key{{Code: KeyEnter}}
		}
		return nil
	case k.Mod&^uv.ModShift != 0:
		return nil
	}

	switch k.Code {
	case uv.KeyEnter:
		return []Key{{Code: KeyEnter}}
	case uv.KeyBackspace:
		return []Key{{Code: KeyBackspace}}
	case uv.KeyDelete:
		return []Key{{Code: KeyDelete}}
	case uv.KeyHome:
		return []Key{{Code: KeyHome}}
	case uv.KeyEnd:
		return []Key{{Code: KeyEnd}}
	case uv.KeyLeft:
		return []Key{{Code: KeyLeft}}
	case uv.KeyRight:
		return []Key{{Code: KeyRight}}
	case uv.KeyUp:
		return []Key{{Code: KeyUp}}
	case uv.KeyDown:
		return []Key{{Code: KeyDown}}
	case uv.KeyPgUp:
		return []Key{{Code: KeyPageUp}}
	case uv.KeyPgDown:
		return []Key{{Code: KeyPageDown}}
	}

	var keys []Key
	for _, r := range k.Text {
		if unicode.IsPrint(r) {
			keys = append(keys, runeKey(r))
		}
	}
	return keys
}

// decodeKeys decodes one read of raw terminal input. A lone escape byte is
// the Escape key, which has no binding.
func decodeKeys(d *uv.EventDecoder, p []byte) []Key {
	var keys []Key
	for len(p) > 0 {
		n, ev := d.Decode(p)
		if n == 0 {
			break
		}
		p = p[n:]
		if k, ok := ev.(uv.KeyPressEvent); ok {
			keys = append(keys, keyFromUV(uv.Key(k))...)
		}
	}
	return keys
}

// ReadKeys decodes keys from r, typically a terminal in raw mode, and
// forwards them as events. It closes out when r fails or ctx ends.
func ReadKeys(ctx context.Context, r io.Reader, out chan<- *Event) {
	defer close(out)
	var d uv.EventDecoder
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		for _, k := range decodeKeys(&d, buf[:n]) {
			select {
			case out <- &Event{Kind: EventKey, Key: k}:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			return
		}
	}
}
