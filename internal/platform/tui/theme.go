package tui

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/boarding-gate/internal/core"
)

// Palette colors, taken from the gate's dark theme.
var (
	colorAccent  = lipgloss.Color("#38bdf8")
	colorMuted   = lipgloss.Color("#94a3b8")
	colorPrimary = lipgloss.Color("#ffffff")
	colorSurface = lipgloss.Color("#1f2937")
	colorInk     = lipgloss.Color("#0b1018")
	colorFlash   = lipgloss.Color("226")
	colorWarning = lipgloss.Color("209")
)

// GateTheme contains all visual styles for the menu and results screens.
type GateTheme struct {
	// Headings
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style

	// Form controls
	Option        lipgloss.Style
	OptionActive  lipgloss.Style
	OptionFocused lipgloss.Style
	Disabled      lipgloss.Style
	Error         lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style

	// Results
	Heading lipgloss.Style
	Score   lipgloss.Style
	Muted   lipgloss.Style

	// Frame around the menu form
	Panel lipgloss.Style
	Help  lipgloss.Style
}

// DefaultGateTheme returns the theme at the default UI size.
func DefaultGateTheme() GateTheme {
	return GateTheme{
		Title:    lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(colorMuted),
		Label:    lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),

		Option:        lipgloss.NewStyle().Foreground(colorPrimary).Background(colorSurface).Padding(0, 1),
		OptionActive:  lipgloss.NewStyle().Foreground(colorInk).Background(colorAccent).Bold(true).Padding(0, 1),
		OptionFocused: lipgloss.NewStyle().Foreground(colorAccent).Underline(true),
		Disabled:      lipgloss.NewStyle().Foreground(colorMuted).Faint(true),
		Error:         lipgloss.NewStyle().Foreground(colorWarning),

		Button:        lipgloss.NewStyle().Foreground(colorPrimary).Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 2),
		ButtonFocused: lipgloss.NewStyle().Foreground(colorInk).Background(colorAccent).Bold(true).Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 2),

		Heading: lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Score:   lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),

		Panel: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface).Padding(1, 3),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// ForSize scales paddings of the interactive controls by the UI size preset.
func (t GateTheme) ForSize(size core.UISizePreset) GateTheme {
	p := size.Preset()
	h := int(math.Round(2 * p.Scale))
	v := core.Max(0, (p.MinButtonHeight-40)/16)

	t.Option = t.Option.Padding(0, h)
	t.OptionActive = t.OptionActive.Padding(0, h)
	t.Button = t.Button.Padding(v, h+1)
	t.ButtonFocused = t.ButtonFocused.Padding(v, h+1)
	return t
}
