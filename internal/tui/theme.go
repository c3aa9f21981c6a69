package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wifui/wifui/wifi"
)

// Theme contains the colors for the application.
type Theme struct {
	Primary  lipgloss.TerminalColor
	Subtle   lipgloss.TerminalColor
	Success  lipgloss.TerminalColor
	Error    lipgloss.TerminalColor
	Normal   lipgloss.TerminalColor
	Disabled lipgloss.TerminalColor
	Border   lipgloss.TerminalColor

	SignalHigh lipgloss.TerminalColor
	SignalLow  lipgloss.TerminalColor
}

// CurrentTheme is the active theme for the application.
var CurrentTheme = NewDefaultTheme()

// NewDefaultTheme creates a new default theme.
func NewDefaultTheme() Theme {
	return Theme{
		Primary:  lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#D359E3"}, // Purple/Pink
		Subtle:   lipgloss.AdaptiveColor{Light: "#BDBDBD", Dark: "#616161"}, // Gray
		Success:  lipgloss.AdaptiveColor{Light: "#388E3C", Dark: "#81C784"}, // Green
		Error:    lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#E57373"}, // Red
		Normal:   lipgloss.AdaptiveColor{Light: "#212121", Dark: "#FFFFFF"}, // Black/White
		Disabled: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#424242"}, // Lighter/Darker Gray
		Border:   lipgloss.AdaptiveColor{Light: "#BDBDBD", Dark: "#616161"}, // Gray

		SignalHigh: lipgloss.AdaptiveColor{Light: "#00B300", Dark: "#00FF00"},
		SignalLow:  lipgloss.AdaptiveColor{Light: "#D05F00", Dark: "#BC3C00"},
	}
}

// IconSet supplies the per-network glyphs. The default uses unicode symbols;
// UseASCIIIcons switches to a plain set for terminals without them.
type IconSet struct {
	Locked    string
	Open      string
	Unknown   string
	Connected string
}

var nerdIcons = IconSet{
	Locked:    "🔒",
	Open:      "🔓",
	Unknown:   "❓",
	Connected: "✓",
}

var asciiIcons = IconSet{
	Locked:    "*",
	Open:      " ",
	Unknown:   "?",
	Connected: ">",
}

// Icons is the active icon set.
var Icons = nerdIcons

// UseASCIIIcons switches the icon set for plain terminals.
func UseASCIIIcons() {
	Icons = asciiIcons
}

// ForNetwork picks the leading glyph for a network row.
func (s IconSet) ForNetwork(n wifi.Network) string {
	switch {
	case n.IsConnected:
		return s.Connected
	case n.Security == wifi.SecurityUnknown:
		return s.Unknown
	case n.Security.IsOpen():
		return s.Open
	default:
		return s.Locked
	}
}
