package client

import "github.com/samdwyer/parley/internal/chat"

// EventKind enumerates the events the client understands.
type EventKind int

const (
	// EventKey is a key press for the input line or scrollback.
	EventKey EventKind = iota
	// EventMessage delivers a message from the server.
	EventMessage
	// EventSendMessage carries a locally typed message to echo and send.
	EventSendMessage
	// EventChangeWindow switches to an open window.
	EventChangeWindow
	// EventAddWindow opens a window and switches to it.
	EventAddWindow
	// EventCloseWindow closes a window.
	EventCloseWindow
	// EventPassword carries a submitted password.
	EventPassword
	// EventResize reports new terminal dimensions.
	EventResize
	// EventQuit stops the client.
	EventQuit
)

func (k EventKind) String() string {
	switch k {
	case EventKey:
		return "key"
	case EventMessage:
		return "message"
	case EventSendMessage:
		return "send_message"
	case EventChangeWindow:
		return "change_window"
	case EventAddWindow:
		return "add_window"
	case EventCloseWindow:
		return "close_window"
	case EventPassword:
		return "password"
	case EventResize:
		return "resize"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is dispatched through the widget tree. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind    EventKind
	Key     Key
	Message chat.Message
	// Window names the target of window events.
	Window string
	// Text is the submitted password.
	Text   string
	Width  int
	Height int
}

// eventQueue is a FIFO that handlers push to while the dispatcher is
// draining it. It belongs to the goroutine running Dispatch.
type eventQueue struct {
	events []*Event
}

func (q *eventQueue) push(ev *Event) {
	q.events = append(q.events, ev)
}

func (q *eventQueue) pop() (*Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	ev := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	return ev, true
}
