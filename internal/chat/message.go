// Package chat defines the messages and roster entries shown by the client.
package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a message.
type Kind int

const (
	// KindIncoming is a message from someone else.
	KindIncoming Kind = iota
	// KindOutgoing is a message typed locally.
	KindOutgoing
	// KindInfo is a status line from the client itself.
	KindInfo
	// KindError reports a failed command or delivery.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindIncoming:
		return "incoming"
	case KindOutgoing:
		return "outgoing"
	case KindInfo:
		return "info"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

const timeLayout = "15:04"

// Message is one entry of a conversation. Messages are values: a copy
// delivered twice, such as a local echo and the server's acknowledgement,
// compares equal and is shown once.
type Message struct {
	ID   uuid.UUID
	Kind Kind
	// Window is the conversation the message belongs to.
	Window string
	From   string
	Body   string
	At     time.Time
}

// NewMessage stamps a message with a fresh ID.
func NewMessage(kind Kind, window, from, body string, at time.Time) Message {
	return Message{
		ID:     uuid.New(),
		Kind:   kind,
		Window: window,
		From:   from,
		Body:   body,
		At:     at.Round(0),
	}
}

// Info creates a client status line.
func Info(window, body string, at time.Time) Message {
	return NewMessage(KindInfo, window, "", body, at)
}

// Error creates an error line.
func Error(window, body string, at time.Time) Message {
	return NewMessage(KindError, window, "", body, at)
}

// String renders the message as terminal text, one line per body line.
// Continuation lines are indented under the first.
func (m Message) String() string {
	stamp := timeStyle.Render(m.At.Format(timeLayout))
	var prefix string
	switch m.Kind {
	case KindOutgoing:
		prefix = stamp + " " + selfStyle.Render("<"+m.From+">")
	case KindIncoming:
		prefix = stamp + " " + peerStyle.Render("<"+m.From+">")
	case KindError:
		prefix = stamp + " " + errorStyle.Render("-!- error:")
	default:
		prefix = stamp + " " + infoStyle.Render("-!-")
	}

	lines := strings.Split(strings.TrimRight(m.Body, "\n"), "\n")
	indent := strings.Repeat(" ", len(timeLayout)+1)
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(" ")
	b.WriteString(lines[0])
	for _, l := range lines[1:] {
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(l)
	}
	return b.String()
}
