// Package layouts implements one gate layout per game mode and registers
// them with the registry. Import it for side effects:
//
//	import _ "github.com/vovakirdan/boarding-gate/internal/layouts"
package layouts

import (
	"fmt"
	"math"

	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/registry"
)

// Button labels.
const (
	LabelTickets = "Tickets"
	LabelCoins   = "Coins"
)

const (
	hudHeight       = 3
	descriptionRow  = 4
	contentTop      = 6
	baseButtonWidth = 16
)

// buttonSize scales the action buttons by the UI size preset.
func buttonSize(size core.UISizePreset) (w, h int) {
	p := size.Preset()
	w = int(math.Round(baseButtonWidth * p.Scale))
	h = core.Max(3, p.MinButtonHeight/16)
	return w, h
}

// drawHUD draws the score, timer and mode strip across the top of dst.
func drawHUD(dst *core.Screen, v registry.View) {
	w := dst.Width()
	dst.DrawBox(core.NewRect(0, 0, w, hudHeight), core.ColorAccent)

	third := w / 3
	dst.DrawTextCenteredIn(core.NewRect(0, 0, third, 1), 1, fmt.Sprintf("Score: %d", v.Score), core.ColorPrimary)
	dst.DrawTextCenteredIn(core.NewRect(third, 0, third, 1), 1, fmt.Sprintf("Timer: %d", v.Countdown), core.ColorPrimary)
	dst.DrawTextCenteredIn(core.NewRect(2*third, 0, w-2*third, 1), 1, fmt.Sprintf("Mode: %s", v.Mode), core.ColorPrimary)
}

// drawButton draws a boxed button with a centered label.
// A flashing button is drawn in the flash color.
func drawButton(dst *core.Screen, r core.Rect, label string, lit bool) {
	color := core.ColorAccent
	if lit {
		color = core.ColorFlash
	}
	dst.DrawBox(r, color)

	_, cy := r.Center()
	labelColor := core.ColorPrimary
	if lit {
		labelColor = core.ColorFlash
	}
	dst.DrawTextCenteredIn(r, cy, label, labelColor)
}

// drawOverlay draws the passenger message on row y.
func drawOverlay(dst *core.Screen, y int, msg string) {
	if msg == "" {
		return
	}
	dst.DrawTextCentered(y, msg, core.ColorAccent)
}

// drawFrame draws everything shared by all layouts.
func drawFrame(dst *core.Screen, l registry.Layout, v registry.View) {
	drawHUD(dst, v)
	dst.DrawTextCentered(descriptionRow, l.Description(), core.ColorMuted)
}

// contentBottom returns the first row below the button area.
func contentBottom(dst *core.Screen) int {
	return core.Max(contentTop+1, dst.Height())
}
