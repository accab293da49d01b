package scene

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/boarding-gate/internal/api"
	"github.com/vovakirdan/boarding-gate/internal/config"
	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/round"
	"github.com/vovakirdan/boarding-gate/internal/schedule"
	"github.com/vovakirdan/boarding-gate/internal/settings"
	"github.com/vovakirdan/boarding-gate/internal/storage"
)

type presenter struct {
	scenes  []ID
	scores  []int
	timers  []int
	results []core.GameResults
}

func (p *presenter) SceneChanged(id ID)              { p.scenes = append(p.scenes, id) }
func (p *presenter) Countdown(v int)                 { p.timers = append(p.timers, v) }
func (p *presenter) Score(v int)                     { p.scores = append(p.scores, v) }
func (p *presenter) Passenger(string)                {}
func (p *presenter) RoundEnded(res core.GameResults) { p.results = append(p.results, res) }

type remote struct {
	calls    []string
	rounds   []api.RoundFinish
	sessions []api.SessionStart
	finishes []api.SessionFinish
}

func (r *remote) UpsertUser(name string) { r.calls = append(r.calls, "upsertUser:"+name) }

func (r *remote) StartSession(s api.SessionStart) {
	r.calls = append(r.calls, "startSession:"+s.SessionID)
	r.sessions = append(r.sessions, s)
}

func (r *remote) FinishRound(f api.RoundFinish) {
	r.calls = append(r.calls, "finishRound:"+f.SessionID)
	r.rounds = append(r.rounds, f)
}

func (r *remote) FinishSession(s api.SessionFinish) {
	r.calls = append(r.calls, "finishSession:"+s.SessionID)
	r.finishes = append(r.finishes, s)
}

type harness struct {
	flow    *Flow
	clock   *schedule.Clock
	kv      *storage.MemoryKV
	store   *settings.Store
	session *settings.Session
	pres    *presenter
	remote  *remote
	built   int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := log.New(&bytes.Buffer{})
	h := &harness{
		clock:   schedule.NewClock(),
		kv:      storage.NewMemoryKV(),
		session: settings.NewSession(),
		pres:    &presenter{},
		remote:  &remote{},
	}
	h.store = settings.NewStore(h.kv, "", logger)

	ids := 0
	h.flow = New(Options{
		Store:   h.store,
		Session: h.session,
		NewRound: func(events round.Events) *round.Controller {
			h.built++
			return round.New(h.clock, config.DefaultRound(), rand.New(rand.NewSource(int64(h.built))), events)
		},
		Presenter: h.pres,
		Remote:    h.remote,
		Logger:    logger,
		Now:       func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) },
		NewID: func() string {
			ids++
			return fmt.Sprintf("session-%d", ids)
		},
	})
	return h
}

var ava = core.GameSettings{Name: "Ava", Mode: core.ModeTB1, UISize: core.UISizeM}

func TestFullFlow(t *testing.T) {
	h := newHarness(t)

	if h.flow.Current() != Boot {
		t.Fatalf("Current() = %s, expected Boot", h.flow.Current())
	}
	if err := h.flow.Boot(); err != nil {
		t.Fatalf("Boot() failed: %v", err)
	}
	if err := h.flow.Submit(ava); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if h.flow.Current() != Game {
		t.Fatalf("Current() = %s after submit, expected Game", h.flow.Current())
	}

	// Settings are persisted and remembered before the round starts
	if got := h.store.Load(); got != ava {
		t.Errorf("stored settings = %+v, expected %+v", got, ava)
	}
	if got, ok := h.session.Recall(); !ok || got != ava {
		t.Errorf("session settings = %+v, %v", got, ok)
	}

	h.clock.Advance(20 * time.Second)

	if h.flow.Current() != Results {
		t.Fatalf("Current() = %s after 20s, expected Results", h.flow.Current())
	}
	res, ok := h.flow.Results()
	if !ok {
		t.Fatal("Results() reports no finished round")
	}
	if res.Settings != ava {
		t.Errorf("results settings = %+v, expected %+v", res.Settings, ava)
	}
	if len(h.pres.results) != 1 || h.pres.results[0] != res {
		t.Errorf("presenter results = %+v", h.pres.results)
	}
	if len(h.pres.scores) != 40 {
		t.Errorf("presenter saw %d score updates, expected 40", len(h.pres.scores))
	}

	if err := h.flow.BackToMenu(); err != nil {
		t.Fatalf("BackToMenu() failed: %v", err)
	}

	expectedScenes := []ID{Menu, Game, Results, Menu}
	if !reflect.DeepEqual(h.pres.scenes, expectedScenes) {
		t.Errorf("scenes = %v, expected %v", h.pres.scenes, expectedScenes)
	}

	expectedCalls := []string{
		"upsertUser:Ava",
		"startSession:session-1",
		"finishRound:session-1",
		"finishSession:session-1",
	}
	if !reflect.DeepEqual(h.remote.calls, expectedCalls) {
		t.Errorf("remote calls = %v, expected %v", h.remote.calls, expectedCalls)
	}
	if r := h.remote.rounds[0]; r.Score != res.Score || r.Round != 1 || r.Mode != core.ModeTB1 {
		t.Errorf("finishRound payload = %+v", r)
	}
	if f := h.remote.finishes[0]; f.Rounds != 1 || f.BestScore != res.Score {
		t.Errorf("finishSession payload = %+v", f)
	}
}

func TestPlayAgainStartsFreshRound(t *testing.T) {
	h := newHarness(t)
	h.flow.Boot()
	h.flow.Submit(ava)
	h.clock.Advance(20 * time.Second)

	first := h.flow.Round()
	if err := h.flow.PlayAgain(); err != nil {
		t.Fatalf("PlayAgain() failed: %v", err)
	}

	second := h.flow.Round()
	if second == first {
		t.Fatal("PlayAgain() reused the finished controller")
	}
	if second.Countdown() != 20 || second.Score() != 0 {
		t.Errorf("new round countdown %d score %d, expected 20 and 0", second.Countdown(), second.Score())
	}
	if second.Settings() != ava {
		t.Errorf("new round settings = %+v, expected %+v", second.Settings(), ava)
	}
	if _, ok := h.flow.Results(); ok {
		t.Error("Results() should be cleared while the new round runs")
	}

	h.clock.Advance(20 * time.Second)

	// Same session across rounds; the best score is kept
	if len(h.remote.sessions) != 1 {
		t.Errorf("started %d sessions, expected 1", len(h.remote.sessions))
	}
	if len(h.remote.rounds) != 2 || h.remote.rounds[1].Round != 2 {
		t.Errorf("finishRound payloads = %+v", h.remote.rounds)
	}

	h.flow.BackToMenu()
	best := h.remote.rounds[0].Score
	if h.remote.rounds[1].Score > best {
		best = h.remote.rounds[1].Score
	}
	if f := h.remote.finishes[0]; f.Rounds != 2 || f.BestScore != best {
		t.Errorf("finishSession payload = %+v, expected 2 rounds best %d", f, best)
	}
}

func TestNewSessionAfterMenu(t *testing.T) {
	h := newHarness(t)
	h.flow.Boot()
	h.flow.Submit(ava)
	h.clock.Advance(20 * time.Second)
	h.flow.BackToMenu()

	bo := core.GameSettings{Name: "Bo", Mode: core.ModeHR2, UISize: core.UISizeL}
	if err := h.flow.Submit(bo); err != nil {
		t.Fatalf("second Submit() failed: %v", err)
	}
	if h.flow.SessionID() != "session-2" {
		t.Errorf("SessionID() = %q, expected a new session", h.flow.SessionID())
	}
	if h.flow.Settings() != bo {
		t.Errorf("Settings() = %+v, expected %+v", h.flow.Settings(), bo)
	}
}

func TestInvalidTransitions(t *testing.T) {
	h := newHarness(t)

	check := func(name string, err error) {
		t.Helper()
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s = %v, expected ErrInvalidTransition", name, err)
		}
	}

	check("Submit from Boot", h.flow.Submit(ava))
	check("PlayAgain from Boot", h.flow.PlayAgain())
	check("BackToMenu from Boot", h.flow.BackToMenu())
	check("EnterGame from Boot", h.flow.EnterGame(nil))

	h.flow.Boot()
	check("Boot twice", h.flow.Boot())
	check("PlayAgain from Menu", h.flow.PlayAgain())
	check("BackToMenu from Menu", h.flow.BackToMenu())

	h.flow.Submit(ava)
	check("Submit from Game", h.flow.Submit(ava))
	check("EnterGame from Game", h.flow.EnterGame(&ava))
	check("BackToMenu from Game", h.flow.BackToMenu())
	check("PlayAgain from Game", h.flow.PlayAgain())

	if h.flow.Current() != Game {
		t.Errorf("invalid calls changed the scene to %s", h.flow.Current())
	}
	if h.built != 1 {
		t.Errorf("built %d rounds, expected 1", h.built)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]ID]bool{
		{Boot, Menu}:    true,
		{Menu, Game}:    true,
		{Game, Results}: true,
		{Results, Game}: true,
		{Results, Menu}: true,
	}
	for _, from := range []ID{Boot, Menu, Game, Results} {
		for _, to := range []ID{Boot, Menu, Game, Results} {
			if got := CanTransition(from, to); got != allowed[[2]ID{from, to}] {
				t.Errorf("CanTransition(%s, %s) = %v", from, to, got)
			}
		}
	}
}

func TestEnterGameWithoutPayloadRecallsSession(t *testing.T) {
	h := newHarness(t)
	h.flow.Boot()

	remembered := core.GameSettings{Name: "Cy", Mode: core.ModeHR1, UISize: core.UISizeS}
	h.session.Remember(remembered)

	if err := h.flow.EnterGame(nil); err != nil {
		t.Fatalf("EnterGame(nil) failed: %v", err)
	}
	if got := h.flow.Round().Settings(); got != remembered {
		t.Errorf("round settings = %+v, expected the session settings", got)
	}
}

func TestEnterGameWithoutPayloadFallsBackToStore(t *testing.T) {
	h := newHarness(t)
	h.kv.Set("ticket-mockup:name", "Dee")
	h.kv.Set("ticket-mockup:mode", "XX1")
	h.kv.Set("ticket-mockup:ui-size", "L")
	h.flow.Boot()

	if err := h.flow.EnterGame(nil); err != nil {
		t.Fatalf("EnterGame(nil) failed: %v", err)
	}
	want := core.GameSettings{Name: "Dee", Mode: core.ModeTB1, UISize: core.UISizeL}
	if got := h.flow.Round().Settings(); got != want {
		t.Errorf("round settings = %+v, expected %+v", got, want)
	}
}

func TestShutdownMidRound(t *testing.T) {
	h := newHarness(t)
	h.flow.Boot()
	h.flow.Submit(ava)
	h.clock.Advance(5 * time.Second)

	h.flow.Shutdown()
	h.flow.Shutdown()

	if h.clock.Pending() != 0 {
		t.Errorf("Pending() = %d after shutdown, expected every timer cancelled", h.clock.Pending())
	}

	scores := len(h.pres.scores)
	h.clock.Advance(time.Minute)
	if len(h.pres.scores) != scores || len(h.pres.results) != 0 {
		t.Error("round kept running after Shutdown")
	}
	if h.flow.Current() != Game {
		t.Errorf("Current() = %s, Shutdown should not change scene", h.flow.Current())
	}
	if len(h.remote.finishes) != 1 {
		t.Errorf("finishSession sent %d times, expected 1", len(h.remote.finishes))
	}

	if err := h.flow.BackToMenu(); !errors.Is(err, ErrShutdown) {
		t.Errorf("BackToMenu() after shutdown = %v, expected ErrShutdown", err)
	}
}

func TestSubmitNormalizesSettings(t *testing.T) {
	h := newHarness(t)
	h.flow.Boot()

	if err := h.flow.Submit(core.GameSettings{Name: "Ava", Mode: "bogus", UISize: "XL"}); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	want := core.GameSettings{Name: "Ava", Mode: core.DefaultMode, UISize: core.DefaultUISize}
	if got := h.flow.Settings(); got != want {
		t.Errorf("Settings() = %+v, expected %+v", got, want)
	}
}

func TestSaveDraftOnlyInMenu(t *testing.T) {
	h := newHarness(t)
	draft := core.GameSettings{Name: "Ed", Mode: core.ModeTB2, UISize: core.UISizeS}

	h.flow.SaveDraft(draft)
	if got := h.store.Load(); got != core.DefaultSettings() {
		t.Errorf("SaveDraft in Boot stored %+v", got)
	}

	h.flow.Boot()
	h.flow.SaveDraft(draft)
	if got := h.flow.MenuSettings(); got != draft {
		t.Errorf("MenuSettings() = %+v, expected the draft", got)
	}
}

func TestFlowWithoutOptionalCollaborators(t *testing.T) {
	clock := schedule.NewClock()
	f := New(Options{
		Logger: log.New(&bytes.Buffer{}),
		NewRound: func(events round.Events) *round.Controller {
			return round.New(clock, config.DefaultRound(), rand.New(rand.NewSource(1)), events)
		},
	})

	if err := f.Boot(); err != nil {
		t.Fatal(err)
	}
	if got := f.MenuSettings(); got != core.DefaultSettings() {
		t.Errorf("MenuSettings() = %+v, expected defaults", got)
	}
	if err := f.Submit(ava); err != nil {
		t.Fatal(err)
	}
	clock.Advance(20 * time.Second)
	if f.Current() != Results {
		t.Errorf("Current() = %s, expected Results", f.Current())
	}
	if f.SessionID() == "" {
		t.Error("SessionID() is empty, expected a generated uuid")
	}
	f.Shutdown()
}

func TestIDString(t *testing.T) {
	tests := map[ID]string{Boot: "Boot", Menu: "Menu", Game: "Game", Results: "Results", ID(42): "Unknown"}
	for id, want := range tests {
		if id.String() != want {
			t.Errorf("ID(%d).String() = %q, expected %q", id, id.String(), want)
		}
	}
}
