package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/boarding-gate/internal/core"
)

// KeyMap defines the key bindings of the gate screens.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Confirm   key.Binding
	Back      key.Binding
	Tickets   key.Binding
	Coins     key.Binding
	PlayAgain key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("up", "previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "tab"),
			key.WithHelp("down/tab", "next field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "previous option"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "next option"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "m"),
			key.WithHelp("esc/m", "menu"),
		),
		Tickets: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tickets"),
		),
		Coins: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "coins"),
		),
		PlayAgain: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "play again"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// gameHelp is the help.KeyMap shown under the round.
type gameHelp KeyMap

func (k gameHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Tickets, k.Coins, k.Quit}
}

func (k gameHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// menuHelp is the help.KeyMap shown under the menu form.
type menuHelp KeyMap

func (k menuHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Left, k.Right, k.Confirm}
}

func (k menuHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Up, k.Quit}}
}

// resultsHelp is the help.KeyMap shown on the results screen.
type resultsHelp KeyMap

func (k resultsHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayAgain, k.Back, k.Left, k.Right, k.Confirm, k.Quit}
}

func (k resultsHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	case key.Matches(msg, k.Tickets):
		return core.ActionTickets, false
	case key.Matches(msg, k.Coins):
		return core.ActionCoins, false
	case key.Matches(msg, k.PlayAgain):
		return core.ActionPlayAgain, false
	}

	return core.ActionNone, false
}
