package core

import (
	"errors"
	"fmt"
)

// GameMode identifies one of the four gate layouts.
// The value is an opaque tag carried through settings and display.
type GameMode string

// Known game modes.
const (
	ModeTB1 GameMode = "TB1"
	ModeTB2 GameMode = "TB2"
	ModeHR1 GameMode = "HR1"
	ModeHR2 GameMode = "HR2"
)

// DefaultMode is used when no valid mode has been stored.
const DefaultMode = ModeTB1

// ErrUnknownMode is returned by ParseMode for values outside the known set.
var ErrUnknownMode = errors.New("core: unknown game mode")

// ErrUnknownUISize is returned by ParseUISize for values outside the known set.
var ErrUnknownUISize = errors.New("core: unknown ui size")

// Modes returns all game modes in menu order.
func Modes() []GameMode {
	return []GameMode{ModeTB1, ModeTB2, ModeHR1, ModeHR2}
}

// Valid reports whether m is one of the known modes.
func (m GameMode) Valid() bool {
	switch m {
	case ModeTB1, ModeTB2, ModeHR1, ModeHR2:
		return true
	}
	return false
}

// ParseMode converts a stored or user-supplied string to a GameMode.
func ParseMode(s string) (GameMode, error) {
	m := GameMode(s)
	if !m.Valid() {
		return DefaultMode, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// UISizePreset selects how large the interface is drawn.
type UISizePreset string

// Known UI sizes.
const (
	UISizeS UISizePreset = "S"
	UISizeM UISizePreset = "M"
	UISizeL UISizePreset = "L"
)

// DefaultUISize is used when no valid size has been stored.
const DefaultUISize = UISizeM

// UISizes returns all presets from smallest to largest.
func UISizes() []UISizePreset {
	return []UISizePreset{UISizeS, UISizeM, UISizeL}
}

// Valid reports whether p is one of the known presets.
func (p UISizePreset) Valid() bool {
	switch p {
	case UISizeS, UISizeM, UISizeL:
		return true
	}
	return false
}

// ParseUISize converts a stored or user-supplied string to a UISizePreset.
func ParseUISize(s string) (UISizePreset, error) {
	p := UISizePreset(s)
	if !p.Valid() {
		return DefaultUISize, fmt.Errorf("%w: %q", ErrUnknownUISize, s)
	}
	return p, nil
}

// Preset holds the presentation values for a UI size.
type Preset struct {
	Scale           float64
	MinFont         int
	MinButtonHeight int
}

var presets = map[UISizePreset]Preset{
	UISizeS: {Scale: 1.0, MinFont: 22, MinButtonHeight: 48},
	UISizeM: {Scale: 1.15, MinFont: 26, MinButtonHeight: 56},
	UISizeL: {Scale: 1.3, MinFont: 30, MinButtonHeight: 64},
}

// Preset returns the presentation values for p.
// Unknown sizes get the default preset.
func (p UISizePreset) Preset() Preset {
	if v, ok := presets[p]; ok {
		return v
	}
	return presets[DefaultUISize]
}

// GameSettings is what the player picks in the menu.
// A round receives it by value and never modifies it.
type GameSettings struct {
	Name   string
	Mode   GameMode
	UISize UISizePreset
}

// DefaultSettings returns the settings used when nothing has been stored.
func DefaultSettings() GameSettings {
	return GameSettings{
		Name:   "",
		Mode:   DefaultMode,
		UISize: DefaultUISize,
	}
}

// Normalize replaces invalid fields with their defaults, field by field.
func (s GameSettings) Normalize() GameSettings {
	if !s.Mode.Valid() {
		s.Mode = DefaultMode
	}
	if !s.UISize.Valid() {
		s.UISize = DefaultUISize
	}
	return s
}

// GameResults is produced once when a round's countdown reaches zero.
type GameResults struct {
	Score    int
	Settings GameSettings
}
