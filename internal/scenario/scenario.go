package scenario

import (
	"errors"
	"fmt"
	"time"

	"github.com/samdwyer/parley/internal/chat"
)

// DemoFile is the embedded scenario used when none is given.
const DemoFile = "demo.json"

// ContactDef is a roster entry as stored in JSON.
type ContactDef struct {
	Name     string `json:"name"`
	Presence string `json:"presence"` // "online", "away" or "offline"
}

// Contact converts the definition.
func (c ContactDef) Contact() chat.Contact {
	return chat.Contact{Name: c.Name, Presence: chat.ParsePresence(c.Presence)}
}

// GroupDef is a named roster group.
type GroupDef struct {
	Name     string       `json:"name"`
	Contacts []ContactDef `json:"contacts"`
}

// MessageDef is a past message of a conversation.
type MessageDef struct {
	From       string `json:"from"`
	Body       string `json:"body"`
	MinutesAgo int    `json:"minutesAgo"`
}

// ConversationDef is a window opened at start with its backlog.
type ConversationDef struct {
	Window   string       `json:"window"`
	Messages []MessageDef `json:"messages"`
}

// Scenario is the initial state of the demo client.
type Scenario struct {
	Console       []string          `json:"console"`
	Ungrouped     []ContactDef      `json:"ungrouped"`
	Groups        []GroupDef        `json:"groups"`
	Conversations []ConversationDef `json:"conversations"`
}

// Demo loads the embedded demo scenario.
func Demo() (*Scenario, error) {
	s, err := Load[Scenario](DemoFile)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", DemoFile, err)
	}
	return &s, nil
}

// FromFile loads and validates a scenario from disk.
func FromFile(path string) (*Scenario, error) {
	s, err := LoadFile[Scenario](path)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

// Validate rejects unnamed entries and contacts listed twice.
func (s *Scenario) Validate() error {
	seen := make(map[string]bool)
	check := func(c ContactDef) error {
		if c.Name == "" {
			return errors.New("contact without a name")
		}
		if seen[c.Name] {
			return fmt.Errorf("contact %q listed twice", c.Name)
		}
		seen[c.Name] = true
		return nil
	}
	for _, c := range s.Ungrouped {
		if err := check(c); err != nil {
			return err
		}
	}
	for _, g := range s.Groups {
		if g.Name == "" {
			return errors.New("group without a name")
		}
		for _, c := range g.Contacts {
			if err := check(c); err != nil {
				return err
			}
		}
	}
	for _, conv := range s.Conversations {
		if conv.Window == "" {
			return errors.New("conversation without a window")
		}
	}
	return nil
}

// ContactCount returns the number of roster entries.
func (s *Scenario) ContactCount() int {
	n := len(s.Ungrouped)
	for _, g := range s.Groups {
		n += len(g.Contacts)
	}
	return n
}

// Backlog converts the conversation messages relative to now. Messages
// from nick are outgoing.
func (c ConversationDef) Backlog(nick string, now time.Time) []chat.Message {
	msgs := make([]chat.Message, 0, len(c.Messages))
	for _, m := range c.Messages {
		kind := chat.KindIncoming
		if m.From == nick {
			kind = chat.KindOutgoing
		}
		at := now.Add(-time.Duration(m.MinutesAgo) * time.Minute)
		msgs = append(msgs, chat.NewMessage(kind, c.Window, m.From, m.Body, at))
	}
	return msgs
}
