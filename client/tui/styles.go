package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the colors of the chat screen.
type Theme struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	IsDark  bool
}

// DarkTheme is used on dark terminals.
func DarkTheme() Theme {
	return Theme{
		Primary: lipgloss.Color("#8BC34A"),
		Accent:  lipgloss.Color("#4db6ac"),
		Muted:   lipgloss.Color("#7a869a"),
		Warning: lipgloss.Color("#FFC107"),
		IsDark:  true,
	}
}

// LightTheme is used on light terminals.
func LightTheme() Theme {
	return Theme{
		Primary: lipgloss.Color("#101F38"),
		Accent:  lipgloss.Color("#00796b"),
		Muted:   lipgloss.Color("#5c6773"),
		Warning: lipgloss.Color("#b26a00"),
		IsDark:  false,
	}
}

// DetectTheme picks a theme from the terminal background.
func DetectTheme() Theme {
	if termenv.HasDarkBackground() {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Theme     Theme
	Header    lipgloss.Style
	UserLabel lipgloss.Style
	BotLabel  lipgloss.Style
	PlaceName lipgloss.Style
	PlaceLine lipgloss.Style
	MapLine   lipgloss.Style
	Notice    lipgloss.Style
	Help      lipgloss.Style
	Spinner   lipgloss.Style
}

// NewStyles builds Styles for t.
func NewStyles(t Theme) Styles {
	return Styles{
		Theme:     t,
		Header:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1),
		UserLabel: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		BotLabel:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		PlaceName: lipgloss.NewStyle().Bold(true),
		PlaceLine: lipgloss.NewStyle().Foreground(t.Muted).PaddingLeft(5),
		MapLine:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Notice:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Help:      lipgloss.NewStyle().Foreground(t.Muted),
		Spinner:   lipgloss.NewStyle().Foreground(t.Primary),
	}
}
