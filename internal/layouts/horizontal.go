package layouts

import (
	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/registry"
)

// Horizontal draws the two counters side by side as tall panels.
// Mirrored layouts swap the counters.
type Horizontal struct {
	mode        core.GameMode
	mirrored    bool
	title       string
	description string
}

func init() {
	registry.Register(core.ModeHR1, func() registry.Layout {
		return &Horizontal{
			mode:        core.ModeHR1,
			title:       "Dual Panels",
			description: "Layout: Horizontal counters with dual panels.",
		}
	})
	registry.Register(core.ModeHR2, func() registry.Layout {
		return &Horizontal{
			mode:        core.ModeHR2,
			mirrored:    true,
			title:       "Mirrored Controls",
			description: "Layout: Horizontal counters with mirrored controls.",
		}
	})
}

// Mode implements registry.Layout.
func (l *Horizontal) Mode() core.GameMode { return l.mode }

// Title implements registry.Layout.
func (l *Horizontal) Title() string { return l.title }

// Description implements registry.Layout.
func (l *Horizontal) Description() string { return l.description }

// Render implements registry.Layout.
func (l *Horizontal) Render(dst *core.Screen, v registry.View) {
	drawFrame(dst, l, v)

	bw, bh := buttonSize(v.UISize)
	w := dst.Width()
	bottom := contentBottom(dst)

	// Panels stretch to fill the rows under the overlay line
	overlayRow := contentTop
	panelTop := overlayRow + 2
	panelH := core.Max(bh, bottom-panelTop)

	gap := core.Max(2, (w-2*bw)/3)
	left := core.NewRect(gap, panelTop, bw, panelH)
	right := core.NewRect(w-gap-bw, panelTop, bw, panelH)

	leftLabel, leftLit := LabelTickets, v.Tickets
	rightLabel, rightLit := LabelCoins, v.Coins
	if l.mirrored {
		leftLabel, leftLit, rightLabel, rightLit = rightLabel, rightLit, leftLabel, leftLit
	}

	drawButton(dst, left, leftLabel, leftLit)
	drawButton(dst, right, rightLabel, rightLit)

	drawOverlay(dst, overlayRow, v.Message)
}
