// Package scene implements the screen flow of the gate:
//
//	Boot -> Menu -> Game -> Results -> (Game | Menu)
//
// Flow owns the transitions, the live round and the remote session. It never
// draws; a Presenter is told about scene changes and round events.
package scene

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/boarding-gate/internal/api"
	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/round"
	"github.com/vovakirdan/boarding-gate/internal/settings"
)

// ID identifies a scene.
type ID int

const (
	Boot ID = iota
	Menu
	Game
	Results
)

// String returns the scene name.
func (id ID) String() string {
	switch id {
	case Boot:
		return "Boot"
	case Menu:
		return "Menu"
	case Game:
		return "Game"
	case Results:
		return "Results"
	default:
		return "Unknown"
	}
}

// edges lists the allowed transitions.
var edges = map[ID][]ID{
	Boot:    {Menu},
	Menu:    {Game},
	Game:    {Results},
	Results: {Game, Menu},
}

// CanTransition reports whether from -> to is an allowed edge.
func CanTransition(from, to ID) bool {
	for _, next := range edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

var (
	// ErrInvalidTransition is returned for edges outside the flow.
	ErrInvalidTransition = errors.New("scene: invalid transition")
	// ErrShutdown is returned by every transition after Shutdown.
	ErrShutdown = errors.New("scene: flow is shut down")
)

// Presenter is told what to show. Calls happen on the goroutine that drives
// the flow and its scheduler.
type Presenter interface {
	SceneChanged(id ID)
	Countdown(remaining int)
	Score(score int)
	Passenger(message string)
	RoundEnded(results core.GameResults)
}

// Remote receives best-effort notifications about the session.
// *api.Notifier implements it.
type Remote interface {
	UpsertUser(name string)
	StartSession(s api.SessionStart)
	FinishRound(r api.RoundFinish)
	FinishSession(s api.SessionFinish)
}

// RoundFactory builds a fresh idle round controller wired to events.
type RoundFactory func(events round.Events) *round.Controller

// Options configures a Flow. NewRound is required.
type Options struct {
	Store     *settings.Store
	Session   *settings.Session
	NewRound  RoundFactory
	Presenter Presenter
	Remote    Remote
	Logger    *log.Logger
	Now       func() time.Time
	NewID     func() string
}

// Flow drives the scene transitions of one player.
type Flow struct {
	opts   Options
	logger *log.Logger

	current  ID
	round    *round.Controller
	active   core.GameSettings
	results  core.GameResults
	finished bool // results holds a finished round

	sessionID   string
	sessionOpen bool
	rounds      int
	best        int

	shutdown bool
}

// New creates a flow in the Boot scene.
func New(opts Options) *Flow {
	if opts.NewRound == nil {
		panic("scene: Options.NewRound is required")
	}
	if opts.Session == nil {
		opts.Session = settings.NewSession()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	return &Flow{
		opts:    opts,
		logger:  opts.Logger,
		current: Boot,
	}
}

// Current returns the active scene.
func (f *Flow) Current() ID {
	return f.current
}

// Round returns the controller of the current or last round, or nil.
func (f *Flow) Round() *round.Controller {
	return f.round
}

// Settings returns the settings of the current or last round.
func (f *Flow) Settings() core.GameSettings {
	return f.active
}

// Results returns the results of the last finished round.
func (f *Flow) Results() (core.GameResults, bool) {
	return f.results, f.finished
}

// SessionID returns the remote session id, empty before the first submit.
func (f *Flow) SessionID() string {
	return f.sessionID
}

// MenuSettings returns the settings the menu should be prefilled with.
func (f *Flow) MenuSettings() core.GameSettings {
	if f.opts.Store == nil {
		return core.DefaultSettings()
	}
	return f.opts.Store.Load()
}

// SaveDraft persists a menu field change before the form is submitted.
func (f *Flow) SaveDraft(s core.GameSettings) {
	if f.current != Menu || f.opts.Store == nil {
		return
	}
	f.opts.Store.Save(s.Normalize())
}

func (f *Flow) transition(to ID) error {
	if f.shutdown {
		return ErrShutdown
	}
	if !CanTransition(f.current, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, f.current, to)
	}
	f.logger.Debug("scene transition", "from", f.current, "to", to)
	f.current = to
	if f.opts.Presenter != nil {
		f.opts.Presenter.SceneChanged(to)
	}
	return nil
}

// Boot moves from Boot to Menu.
func (f *Flow) Boot() error {
	return f.transition(Menu)
}

// Submit persists and remembers the settings, then starts a round.
func (f *Flow) Submit(s core.GameSettings) error {
	if f.shutdown {
		return ErrShutdown
	}
	if f.current != Menu {
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, f.current)
	}

	s = s.Normalize()
	if f.opts.Store != nil {
		f.opts.Store.Save(s)
	}
	f.opts.Session.Remember(s)
	if f.opts.Remote != nil {
		f.opts.Remote.UpsertUser(s.Name)
	}

	return f.EnterGame(&s)
}

// EnterGame starts a new round. A nil payload recovers the settings from the
// session context, then from the store.
func (f *Flow) EnterGame(s *core.GameSettings) error {
	if f.shutdown {
		return ErrShutdown
	}
	if !CanTransition(f.current, Game) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, f.current, Game)
	}

	var next core.GameSettings
	if s != nil {
		next = *s
	} else {
		next = settings.Resolve(f.opts.Session, f.opts.Store)
		f.logger.Debug("entering game without settings, recovered", "mode", next.Mode)
	}
	next = next.Normalize()

	// The presenter reads Settings when it sees the Game scene
	prev, prevFinished := f.active, f.finished
	f.active = next
	f.finished = false
	if err := f.transition(Game); err != nil {
		f.active, f.finished = prev, prevFinished
		return err
	}

	if !f.sessionOpen {
		f.startSession(next)
	}

	f.round = f.opts.NewRound(f.roundEvents())
	if err := f.round.Start(next); err != nil {
		return fmt.Errorf("scene: start round: %w", err)
	}
	f.logger.Info("round started", "name", next.Name, "mode", next.Mode, "uiSize", next.UISize)
	return nil
}

// PlayAgain starts another round with the same settings.
func (f *Flow) PlayAgain() error {
	if f.current != Results {
		return fmt.Errorf("%w: play again from %s", ErrInvalidTransition, f.current)
	}
	s := f.results.Settings
	return f.EnterGame(&s)
}

// BackToMenu leaves the results screen and closes the remote session.
func (f *Flow) BackToMenu() error {
	if f.shutdown {
		return ErrShutdown
	}
	if f.current != Results {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, f.current, Menu)
	}
	f.finishSession()
	return f.transition(Menu)
}

// Shutdown aborts the live round and closes the remote session.
// Safe to call multiple times.
func (f *Flow) Shutdown() {
	if f.shutdown {
		return
	}
	if f.round != nil {
		f.round.Abort()
	}
	f.finishSession()
	f.shutdown = true
	f.logger.Debug("scene flow shut down", "scene", f.current)
}

func (f *Flow) roundEvents() round.Events {
	p := f.opts.Presenter
	ev := round.Events{Ended: f.roundEnded}
	if p != nil {
		ev.Countdown = p.Countdown
		ev.Score = p.Score
		ev.Passenger = p.Passenger
	}
	return ev
}

func (f *Flow) roundEnded(res core.GameResults) {
	f.results = res
	f.finished = true
	f.rounds++
	if res.Score > f.best {
		f.best = res.Score
	}
	f.logger.Info("round finished", "name", res.Settings.Name, "mode", res.Settings.Mode, "score", res.Score)

	if f.opts.Remote != nil {
		f.opts.Remote.FinishRound(api.RoundFinish{
			SessionID: f.sessionID,
			Round:     f.rounds,
			Player:    res.Settings.Name,
			Mode:      res.Settings.Mode,
			Score:     res.Score,
		})
	}

	if err := f.transition(Results); err != nil {
		f.logger.Error("cannot show results", "err", err)
		return
	}
	if f.opts.Presenter != nil {
		f.opts.Presenter.RoundEnded(res)
	}
}

func (f *Flow) startSession(s core.GameSettings) {
	f.sessionID = f.opts.NewID()
	f.sessionOpen = true
	f.rounds = 0
	f.best = 0

	if f.opts.Remote != nil {
		f.opts.Remote.StartSession(api.SessionStart{
			SessionID: f.sessionID,
			Player:    s.Name,
			Mode:      s.Mode,
			UISize:    s.UISize,
			StartedAt: f.opts.Now(),
		})
	}
}

func (f *Flow) finishSession() {
	if !f.sessionOpen {
		return
	}
	f.sessionOpen = false
	if f.opts.Remote != nil {
		f.opts.Remote.FinishSession(api.SessionFinish{
			SessionID: f.sessionID,
			Rounds:    f.rounds,
			BestScore: f.best,
		})
	}
}
