// Package client runs the chat front end: it builds the widget tree,
// turns terminal input into events and dispatches them.
package client

// Mode represents what the input line is collecting.
type Mode int

const (
	// ModeChat is the default mode where lines are messages or commands.
	ModeChat Mode = iota
	// ModePassword hides typed text until the line is submitted.
	ModePassword
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeChat:
		return "chat"
	case ModePassword:
		return "password"
	default:
		return "unknown"
	}
}
