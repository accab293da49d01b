package core

// Action represents a semantic input, abstracted from physical key presses.
// Screens react to actions rather than raw keys.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // Up arrow, k - previous field / option row
	ActionDown             // Down arrow, j - next field / option row
	ActionLeft             // Left arrow, h - previous choice in a row
	ActionRight            // Right arrow, l - next choice in a row
	ActionConfirm          // Enter - submit / press focused button
	ActionBack             // Esc, m - back to menu from results
	ActionTickets          // t - press the Tickets button
	ActionCoins            // c - press the Coins button
	ActionPlayAgain        // r - play again from results
	ActionQuit             // Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionTickets:
		return "Tickets"
	case ActionCoins:
		return "Coins"
	case ActionPlayAgain:
		return "PlayAgain"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
