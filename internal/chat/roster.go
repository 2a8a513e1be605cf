package chat

// Presence is a contact's availability.
type Presence int

const (
	Offline Presence = iota
	Online
	Away
)

// ParsePresence maps "online", "away" and anything else to a Presence.
func ParsePresence(s string) Presence {
	switch s {
	case "online":
		return Online
	case "away":
		return Away
	default:
		return Offline
	}
}

func (p Presence) String() string {
	switch p {
	case Online:
		return "online"
	case Away:
		return "away"
	default:
		return "offline"
	}
}

// Contact is a roster entry. A presence change makes a new value; the old
// one has to be removed from the roster first.
type Contact struct {
	Name     string
	Presence Presence
}

func (c Contact) String() string {
	switch c.Presence {
	case Online:
		return onlineStyle.Render(c.Name)
	case Away:
		return awayStyle.Render(c.Name)
	default:
		return offlineStyle.Render(c.Name)
	}
}

// Group is a roster heading.
type Group string

func (g Group) String() string {
	return groupStyle.Render(string(g))
}
