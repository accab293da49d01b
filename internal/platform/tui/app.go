package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/boarding-gate/internal/api"
	"github.com/vovakirdan/boarding-gate/internal/config"
	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/registry"
	"github.com/vovakirdan/boarding-gate/internal/round"
	"github.com/vovakirdan/boarding-gate/internal/scene"
	"github.com/vovakirdan/boarding-gate/internal/schedule"
	"github.com/vovakirdan/boarding-gate/internal/settings"
)

// Results copy.
const (
	resultsTitle     = "Shift complete!"
	playAgainLabel   = "Play again"
	backToMenuLabel  = "Back to Menu"
	flashDuration    = 320 * time.Millisecond
	bestScoreTimeout = 3 * time.Second
	helpHeight       = 1
)

// HighScores answers best-score queries for the results screen.
// api.Service implements it.
type HighScores interface {
	GetHighScores(ctx context.Context, mode core.GameMode, limit int) ([]api.HighScore, error)
}

// Options configures an App.
type Options struct {
	Round   config.RoundConfig
	Runtime core.RuntimeConfig
	Store   *settings.Store
	Session *settings.Session
	Remote  scene.Remote
	Scores  HighScores
	Logger  *log.Logger
}

// bestScoreMsg carries the result of the async high-score query.
type bestScoreMsg struct {
	mode  core.GameMode
	score int
	err   error
}

// App is the Bubble Tea model of one player: menu, round and results.
// It drives the scene flow and advances the round clock on every tick.
type App struct {
	flow     *scene.Flow
	roundCfg config.RoundConfig
	clock    *schedule.Clock
	tick     ticker
	rng      *rand.Rand
	cfg      core.RuntimeConfig
	scores   HighScores
	logger   *log.Logger

	screen *core.Screen
	keys   *KeyMapper
	help   help.Model
	theme  GateTheme
	width  int
	height int

	form    *menuForm
	layout  registry.Layout
	view    registry.View
	flashes map[core.Action]schedule.Handle

	results     core.GameResults
	best        int
	bestKnown   bool
	resultsBack bool // "Back to Menu" has focus

	pending  []tea.Cmd
	quitting bool
}

// NewApp creates the model. The flow starts in the Boot scene; Init moves it
// to the menu.
func NewApp(opts Options) *App {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	a := &App{
		roundCfg: opts.Round,
		clock:    schedule.NewClock(),
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		cfg:      cfg,
		scores:   opts.Scores,
		logger:   logger,
		screen:   core.NewScreen(cfg.ScreenW, core.Max(1, cfg.ScreenH-helpHeight)),
		keys:     NewKeyMapper(),
		help:     help.New(),
		theme:    DefaultGateTheme(),
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
		flashes:  make(map[core.Action]schedule.Handle),
	}

	a.flow = scene.New(scene.Options{
		Store:   opts.Store,
		Session: opts.Session,
		NewRound: func(ev round.Events) *round.Controller {
			return round.New(a.clock, a.roundCfg, a.rng, ev)
		},
		Presenter: a,
		Remote:    opts.Remote,
		Logger:    logger,
	})
	return a
}

// Flow returns the scene flow driven by the app.
func (a *App) Flow() *scene.Flow {
	return a.flow
}

// Init boots the flow into the menu and starts the tick loop.
func (a *App) Init() tea.Cmd {
	if a.flow.Current() == scene.Boot {
		if err := a.flow.Boot(); err != nil {
			a.logger.Error("cannot open menu", "err", err)
		}
	}
	return tea.Batch(tickCmd(a.cfg.TickRate), textinput.Blink)
}

// Update handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.handleResize(msg)
	case TickMsg:
		a.clock.Advance(a.tick.elapsed(time.Time(msg)))
		cmd = tickCmd(a.cfg.TickRate)
	case bestScoreMsg:
		a.handleBestScore(msg)
	default:
		if a.flow.Current() == scene.Menu && a.form != nil {
			a.form.name, cmd = a.form.name.Update(msg)
		}
	}
	return a, a.drain(cmd)
}

// drain batches cmd with the commands queued by presenter callbacks.
func (a *App) drain(cmd tea.Cmd) tea.Cmd {
	if len(a.pending) == 0 {
		return cmd
	}
	cmds := append(a.pending, cmd)
	a.pending = nil
	return tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	typing := a.flow.Current() == scene.Menu && a.form != nil && a.form.focus == fieldName
	action, quit := a.keys.MapKey(msg)
	if quit && (!typing || msg.Type == tea.KeyCtrlC) {
		return a.quit()
	}

	switch a.flow.Current() {
	case scene.Menu:
		return a.handleMenuKey(msg)
	case scene.Game:
		a.handleGameAction(action)
	case scene.Results:
		a.handleResultsAction(action)
	}
	return nil
}

func (a *App) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	ev, cmd := a.form.Update(msg, a.keys.Keys())
	switch ev {
	case formChanged:
		a.flow.SaveDraft(a.form.Settings())
	case formSubmit:
		if err := a.flow.Submit(a.form.Settings()); err != nil {
			a.logger.Error("cannot start round", "err", err)
		}
	}
	return cmd
}

func (a *App) handleGameAction(action core.Action) {
	switch action {
	case core.ActionTickets, core.ActionCoins:
		a.flash(action)
	}
}

func (a *App) handleResultsAction(action core.Action) {
	var err error
	switch action {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown:
		a.resultsBack = !a.resultsBack
	case core.ActionPlayAgain:
		err = a.flow.PlayAgain()
	case core.ActionBack:
		err = a.flow.BackToMenu()
	case core.ActionConfirm:
		if a.resultsBack {
			err = a.flow.BackToMenu()
		} else {
			err = a.flow.PlayAgain()
		}
	}
	if err != nil {
		a.logger.Error("cannot leave results", "err", err)
	}
}

// flash lights the button for action until flashDuration has passed on the
// round clock. Pressing again restarts the flash.
func (a *App) flash(action core.Action) {
	if h, ok := a.flashes[action]; ok {
		h.Cancel()
	}
	a.setLit(action, true)
	a.flashes[action] = a.clock.After(flashDuration, func() {
		a.setLit(action, false)
		delete(a.flashes, action)
	})
}

func (a *App) setLit(action core.Action, lit bool) {
	switch action {
	case core.ActionTickets:
		a.view.Tickets = lit
	case core.ActionCoins:
		a.view.Coins = lit
	}
}

func (a *App) cancelFlashes() {
	for action, h := range a.flashes {
		h.Cancel()
		delete(a.flashes, action)
	}
	a.view.Tickets = false
	a.view.Coins = false
}

func (a *App) quit() tea.Cmd {
	a.cancelFlashes()
	a.flow.Shutdown()
	a.quitting = true
	return tea.Quit
}

func (a *App) handleResize(msg tea.WindowSizeMsg) {
	a.width = msg.Width
	a.height = msg.Height
	a.cfg.ScreenW = msg.Width
	a.cfg.ScreenH = msg.Height
	a.screen.Resize(msg.Width, core.Max(1, msg.Height-helpHeight))
	a.help.Width = msg.Width
}

func (a *App) handleBestScore(msg bestScoreMsg) {
	if msg.mode != a.results.Settings.Mode {
		return
	}
	if msg.err != nil {
		a.logger.Warn("cannot load best score", "mode", msg.mode, "err", msg.err)
		return
	}
	a.best = core.Max(msg.score, a.results.Score)
	a.bestKnown = true
}

func fetchBestScore(svc HighScores, mode core.GameMode) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), bestScoreTimeout)
		defer cancel()

		scores, err := svc.GetHighScores(ctx, mode, 1)
		if err != nil {
			return bestScoreMsg{mode: mode, err: err}
		}
		best := 0
		for _, s := range scores {
			best = core.Max(best, s.Score)
		}
		return bestScoreMsg{mode: mode, score: best}
	}
}

// SceneChanged implements scene.Presenter.
func (a *App) SceneChanged(id scene.ID) {
	a.cancelFlashes()

	switch id {
	case scene.Menu:
		a.form = newMenuForm(a.flow.MenuSettings())
	case scene.Game:
		s := a.flow.Settings()
		a.view = registry.View{
			Name:      s.Name,
			Mode:      s.Mode,
			UISize:    s.UISize,
			Countdown: a.roundCfg.CountdownSeconds,
		}
		layout, err := registry.Create(s.Mode)
		if err != nil {
			a.logger.Error("no layout for mode", "mode", s.Mode, "err", err)
		}
		a.layout = layout
	case scene.Results:
		a.resultsBack = false
		a.bestKnown = false
		a.best = 0
	}
}

// Countdown implements scene.Presenter.
func (a *App) Countdown(remaining int) { a.view.Countdown = remaining }

// Score implements scene.Presenter.
func (a *App) Score(score int) { a.view.Score = score }

// Passenger implements scene.Presenter.
func (a *App) Passenger(message string) { a.view.Message = message }

// RoundEnded implements scene.Presenter.
func (a *App) RoundEnded(results core.GameResults) {
	a.results = results
	if a.scores == nil {
		a.best = results.Score
		a.bestKnown = true
		return
	}
	a.pending = append(a.pending, fetchBestScore(a.scores, results.Settings.Mode))
}

// View renders the current scene.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.flow.Current() {
	case scene.Menu:
		return a.place(a.form.View(a.theme) + "\n\n" + a.help.View(menuHelp(a.keys.Keys())))
	case scene.Game:
		return a.gameView()
	case scene.Results:
		return a.place(a.resultsView())
	}
	return ""
}

func (a *App) gameView() string {
	a.screen.Clear()
	if a.layout == nil {
		a.screen.DrawTextCentered(a.screen.Height()/2, fmt.Sprintf("Layout %s unavailable", a.view.Mode), core.ColorWarning)
	} else {
		a.layout.Render(a.screen, a.view)
	}
	return RenderScreen(a.screen) + "\n" + a.help.View(gameHelp(a.keys.Keys()))
}

func (a *App) resultsView() string {
	theme := a.theme.ForSize(a.results.Settings.UISize)

	var b strings.Builder
	b.WriteString(theme.Heading.Render(resultsTitle))
	b.WriteString("\n\n")
	b.WriteString(theme.Score.Render(fmt.Sprintf("Score: %d", a.results.Score)))
	b.WriteString("\n")
	if a.bestKnown {
		b.WriteString(theme.Muted.Render(fmt.Sprintf("Best %s: %d", a.results.Settings.Mode, a.best)))
	} else {
		b.WriteString(theme.Muted.Render(fmt.Sprintf("Best %s: ...", a.results.Settings.Mode)))
	}
	b.WriteString("\n\n")

	again, back := theme.ButtonFocused, theme.Button
	if a.resultsBack {
		again, back = theme.Button, theme.ButtonFocused
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		again.Render(playAgainLabel), "  ", back.Render(backToMenuLabel)))
	b.WriteString("\n\n")
	b.WriteString(a.help.View(resultsHelp(a.keys.Keys())))
	return b.String()
}

// place centers content in the window once its size is known.
func (a *App) place(content string) string {
	if a.width <= 0 || a.height <= 0 {
		return content
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// Run starts the Bubble Tea program for a local player.
func Run(opts Options) error {
	app := NewApp(opts)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	// A killed program never reaches quit
	app.flow.Shutdown()
	return err
}
