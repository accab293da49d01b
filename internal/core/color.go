package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to a terminal style.
type Color uint8

// Theme colors, named after their role in the gate screens.
const (
	ColorDefault Color = iota
	ColorAccent        // borders and highlighted values
	ColorMuted         // descriptions and hints
	ColorPrimary       // regular text
	ColorFlash         // a button that was just pressed
	ColorWarning       // validation messages
)
