// Package tui provides the Bubble Tea integration for the boarding gate.
// It handles the terminal UI loop, input mapping and drawing of the scenes.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the round clock.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ticker converts wall-clock tick times into elapsed durations.
type ticker struct {
	last time.Time
}

// elapsed returns the time since the previous tick. The first tick and
// ticks that go backwards report zero.
func (t *ticker) elapsed(now time.Time) time.Duration {
	if t.last.IsZero() {
		t.last = now
		return 0
	}
	d := now.Sub(t.last)
	if d < 0 {
		d = 0
	}
	t.last = now
	return d
}
