package layouts

import (
	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/registry"
)

// queueLength is how many waiting passengers the TB1 side queues show.
const queueLength = 5

// TopBottom draws Tickets above Coins. With split validation the top
// counter is divided into a ticket desk and a check desk.
type TopBottom struct {
	mode        core.GameMode
	split       bool
	title       string
	description string
}

func init() {
	registry.Register(core.ModeTB1, func() registry.Layout {
		return &TopBottom{
			mode:        core.ModeTB1,
			title:       "Top & Bottom",
			description: "Layout: Top & Bottom focus with queue at the sides.",
		}
	})
	registry.Register(core.ModeTB2, func() registry.Layout {
		return &TopBottom{
			mode:        core.ModeTB2,
			split:       true,
			title:       "Split Validation",
			description: "Layout: Top/Bottom with split ticket validation.",
		}
	})
}

// Mode implements registry.Layout.
func (l *TopBottom) Mode() core.GameMode { return l.mode }

// Title implements registry.Layout.
func (l *TopBottom) Title() string { return l.title }

// Description implements registry.Layout.
func (l *TopBottom) Description() string { return l.description }

// Render implements registry.Layout.
func (l *TopBottom) Render(dst *core.Screen, v registry.View) {
	drawFrame(dst, l, v)

	bw, bh := buttonSize(v.UISize)
	w := dst.Width()
	bottom := contentBottom(dst)

	top := core.NewRect((w-bw)/2, contentTop, bw, bh)
	low := core.NewRect((w-bw)/2, core.Max(top.Bottom()+1, bottom-bh), bw, bh)

	if l.split {
		left := core.NewRect(top.X-bw/2-1, top.Y, bw, bh)
		right := core.NewRect(top.X+bw/2+1, top.Y, bw, bh)
		drawButton(dst, left, LabelTickets, v.Tickets)
		drawButton(dst, right, "Check", v.Tickets)
	} else {
		drawButton(dst, top, LabelTickets, v.Tickets)
		l.drawQueues(dst, top.Y, low.Bottom())
	}
	drawButton(dst, low, LabelCoins, v.Coins)

	drawOverlay(dst, (top.Bottom()+low.Y)/2, v.Message)
}

// drawQueues draws the waiting passengers along both screen edges.
func (l *TopBottom) drawQueues(dst *core.Screen, from, to int) {
	w := dst.Width()
	step := core.Max(1, (to-from)/queueLength)
	for i := 0; i < queueLength; i++ {
		y := from + i*step
		if y >= to {
			break
		}
		dst.SetColored(2, y, 'o', core.ColorMuted)
		dst.SetColored(w-3, y, 'o', core.ColorMuted)
	}
}
