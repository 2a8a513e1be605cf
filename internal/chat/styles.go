package chat

import "github.com/charmbracelet/lipgloss"

// Colour palette for rendered messages and the roster.
var (
	ColorSelf    = lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}
	ColorPeer    = lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}
	ColorAway    = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFAA00"}
	ColorHeading = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}
)

var (
	timeStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	selfStyle    = lipgloss.NewStyle().Foreground(ColorSelf).Bold(true)
	peerStyle    = lipgloss.NewStyle().Foreground(ColorPeer).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	groupStyle   = lipgloss.NewStyle().Foreground(ColorHeading).Bold(true)
	onlineStyle  = lipgloss.NewStyle().Foreground(ColorPeer)
	awayStyle    = lipgloss.NewStyle().Foreground(ColorAway)
	offlineStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
