// Package round implements the lifecycle of one timed scoring round.
//
// A Controller moves Idle -> Running -> Ended exactly once. While running it
// drives three independent timers on a schedule.Scheduler: the round
// countdown, the score tick and the cosmetic passenger-arrival cycle. When the
// countdown reaches zero every timer is cancelled and the results are emitted.
package round

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/boarding-gate/internal/config"
	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/schedule"
)

// State is the lifecycle state of a Controller.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateEnded
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// Passenger overlay messages.
const (
	PassengerReady = "Passenger ready!"
	passengerNext  = "Next passenger in %d"
)

// PassengerMessage returns the overlay text for n seconds left.
func PassengerMessage(n int) string {
	return fmt.Sprintf(passengerNext, n)
}

// ErrRoundStarted is returned when Start is called on a controller that is not idle.
var ErrRoundStarted = errors.New("round: controller already started")

// Events receives the observable output of a round. Nil members are skipped.
type Events struct {
	Countdown func(remaining int)
	Score     func(score int)
	Passenger func(message string) // empty message clears the overlay
	Ended     func(results core.GameResults)
}

// Controller owns the state of a single round.
type Controller struct {
	cfg    config.RoundConfig
	sched  schedule.Scheduler
	rng    *rand.Rand
	events Events

	state     State
	settings  core.GameSettings
	countdown int
	score     int
	passenger int
	message   string

	timers    schedule.Group // countdown and score ticks
	passTimer schedule.Group // current passenger cycle
}

// New creates an idle controller. rng must not be shared with another goroutine.
func New(sched schedule.Scheduler, cfg config.RoundConfig, rng *rand.Rand, events Events) *Controller {
	return &Controller{
		cfg:    cfg,
		sched:  sched,
		rng:    rng,
		events: events,
	}
}

// Start begins the round with the given settings.
func (c *Controller) Start(settings core.GameSettings) error {
	if c.state != StateIdle {
		return fmt.Errorf("%w (state %s)", ErrRoundStarted, c.state)
	}

	c.state = StateRunning
	c.settings = settings
	c.countdown = c.cfg.CountdownSeconds
	c.score = 0

	// The score tick is scheduled first so that, when both tick at the same
	// instant, the final score includes the increment due at countdown zero.
	c.timers.Add(c.sched.Every(c.cfg.ScoreInterval, c.scoreTick))
	c.timers.Add(c.sched.Every(c.cfg.CountdownInterval, c.countdownTick))
	c.startPassengerCycle()

	return nil
}

// Abort stops a running round without producing results.
// Used when the presenting scene is torn down mid-round.
func (c *Controller) Abort() {
	if c.state != StateRunning {
		return
	}
	c.state = StateEnded
	c.cancelAll()
}

func (c *Controller) countdownTick() {
	if c.state != StateRunning {
		return
	}

	c.countdown--
	if c.countdown < 0 {
		c.countdown = 0
	}
	if c.events.Countdown != nil {
		c.events.Countdown(c.countdown)
	}

	if c.countdown == 0 {
		c.end()
	}
}

func (c *Controller) scoreTick() {
	if c.state != StateRunning {
		return
	}

	c.score += c.cfg.ScoreMin + c.rng.Intn(c.cfg.ScoreMax-c.cfg.ScoreMin+1)
	if c.events.Score != nil {
		c.events.Score(c.score)
	}
}

func (c *Controller) end() {
	c.state = StateEnded
	c.cancelAll()

	results := core.GameResults{
		Score:    c.score,
		Settings: c.settings,
	}
	if c.events.Ended != nil {
		c.events.Ended(results)
	}
}

func (c *Controller) cancelAll() {
	c.timers.CancelAll()
	c.passTimer.CancelAll()
}

// startPassengerCycle shows "Next passenger in N", counts down once per
// interval, announces the passenger, clears the overlay after the hold time
// and schedules the next cycle.
func (c *Controller) startPassengerCycle() {
	c.passTimer.CancelAll()

	c.passenger = c.cfg.PassengerCountdown
	c.setMessage(PassengerMessage(c.passenger))

	c.passTimer.Add(c.sched.Repeat(c.cfg.PassengerInterval, c.cfg.PassengerCountdown, c.passengerTick))
	c.passTimer.Add(c.sched.After(c.cfg.PassengerRestart, func() {
		if c.state == StateRunning {
			c.startPassengerCycle()
		}
	}))
}

func (c *Controller) passengerTick() {
	if c.state != StateRunning {
		return
	}

	c.passenger--
	if c.passenger > 0 {
		c.setMessage(PassengerMessage(c.passenger))
		return
	}

	c.setMessage(PassengerReady)
	c.passTimer.Add(c.sched.After(c.cfg.PassengerHold, func() {
		if c.state == StateRunning {
			c.setMessage("")
		}
	}))
}

func (c *Controller) setMessage(msg string) {
	c.message = msg
	if c.events.Passenger != nil {
		c.events.Passenger(msg)
	}
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Countdown returns the seconds left in the round.
func (c *Controller) Countdown() int {
	return c.countdown
}

// Score returns the current score.
func (c *Controller) Score() int {
	return c.score
}

// PassengerCountdown returns the current passenger countdown value.
func (c *Controller) PassengerCountdown() int {
	return c.passenger
}

// Message returns the passenger overlay text, empty when hidden.
func (c *Controller) Message() string {
	return c.message
}

// Settings returns the settings the round was started with.
func (c *Controller) Settings() core.GameSettings {
	return c.settings
}
