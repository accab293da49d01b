package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/storage"
)

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"tickets", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}}, core.ActionTickets, false},
		{"coins", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}, core.ActionCoins, false},
		{"play again", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, core.ActionPlayAgain, false},
		{"back m", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}}, core.ActionBack, false},
		{"back esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"confirm", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionDown, false},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, core.ActionUp, false},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"quit q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit, true},
		{"quit ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey = (%s, %v), want (%s, %v)", action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMenuFormNavigation(t *testing.T) {
	keys := DefaultKeyMap()
	f := newMenuForm(core.GameSettings{Name: "Ada", Mode: core.ModeHR2, UISize: core.UISizeL})

	if f.focus != fieldName {
		t.Fatalf("initial focus = %d, want name", f.focus)
	}

	f.Update(tea.KeyMsg{Type: tea.KeyDown}, keys)
	ev, _ := f.Update(tea.KeyMsg{Type: tea.KeyRight}, keys)
	if ev != formChanged || f.mode != core.ModeTB1 {
		t.Errorf("right on HR2 = (%d, %s), want wrap to TB1", ev, f.mode)
	}

	f.Update(tea.KeyMsg{Type: tea.KeyDown}, keys)
	f.Update(tea.KeyMsg{Type: tea.KeyRight}, keys)
	if f.size != core.UISizeS {
		t.Errorf("right on L = %s, want wrap to S", f.size)
	}

	// Enter on a radio row moves on to Start
	ev, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter}, keys)
	if ev != formNone || f.focus != fieldStart {
		t.Fatalf("enter on size = (%d, focus %d), want focus on Start", ev, f.focus)
	}
	ev, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter}, keys)
	if ev != formSubmit {
		t.Errorf("enter on Start = %d, want submit", ev)
	}

	// Down from Start wraps to the name field
	f.Update(tea.KeyMsg{Type: tea.KeyDown}, keys)
	if f.focus != fieldName {
		t.Errorf("focus after wrap = %d, want name", f.focus)
	}

	want := core.GameSettings{Name: "Ada", Mode: core.ModeTB1, UISize: core.UISizeS}
	if got := f.Settings(); got != want {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}
}

func TestMenuFormValidation(t *testing.T) {
	keys := DefaultKeyMap()
	f := newMenuForm(core.DefaultSettings())
	f.setFocus(fieldStart)

	ev, _ := f.Update(tea.KeyMsg{Type: tea.KeyEnter}, keys)
	if ev != formNone {
		t.Fatalf("submit with empty name = %d, want none", ev)
	}
	if f.err != nameRequired || f.focus != fieldName {
		t.Errorf("err = %q focus = %d, want name error and focus on name", f.err, f.focus)
	}

	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'B'}}, keys)
	if f.err != "" {
		t.Errorf("error should clear once a name is typed, got %q", f.err)
	}
}

func TestMenuFormTrimsName(t *testing.T) {
	f := newMenuForm(core.GameSettings{Name: "  Ada  "})
	if got := f.Settings().Name; got != "Ada" {
		t.Errorf("Name = %q, want Ada", got)
	}
}

func TestMenuFormEndlessIsNotFocusable(t *testing.T) {
	keys := DefaultKeyMap()
	f := newMenuForm(core.DefaultSettings())

	seen := map[menuField]bool{}
	for range fieldCount {
		seen[f.focus] = true
		f.Update(tea.KeyMsg{Type: tea.KeyTab}, keys)
	}
	if len(seen) != int(fieldCount) {
		t.Errorf("visited %d fields, want %d", len(seen), fieldCount)
	}
	if !strings.Contains(f.View(DefaultGateTheme()), "[ ] "+endlessLabel) {
		t.Error("endless checkbox should always render unchecked")
	}
}

func TestCycle(t *testing.T) {
	modes := core.Modes()
	if got := cycle(modes, core.ModeTB1, -1); got != core.ModeHR2 {
		t.Errorf("cycle back from TB1 = %s, want HR2", got)
	}
	if got := cycle(modes, core.ModeTB2, 1); got != core.ModeHR1 {
		t.Errorf("cycle on from TB2 = %s, want HR1", got)
	}
	if got := cycle(modes, core.GameMode("ZZ"), 1); got != core.ModeTB2 {
		t.Errorf("cycle from unknown = %s, want TB2", got)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "Score:", core.ColorPrimary)
	s.DrawText(7, 0, "42", core.ColorAccent)
	s.DrawText(0, 1, "Coins", core.ColorFlash)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"Score:", "42", "Coins"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestTickerElapsed(t *testing.T) {
	var tk ticker
	if d := tk.elapsed(t0); d != 0 {
		t.Errorf("first tick = %v, want 0", d)
	}
	if d := tk.elapsed(t0.Add(40 * time.Millisecond)); d != 40*time.Millisecond {
		t.Errorf("second tick = %v, want 40ms", d)
	}
	if d := tk.elapsed(t0); d != 0 {
		t.Errorf("backwards tick = %v, want 0", d)
	}
}

func TestThemeForSizeGrowsButtons(t *testing.T) {
	base := DefaultGateTheme()
	small := base.ForSize(core.UISizeS).Button.Render(startLabel)
	large := base.ForSize(core.UISizeL).Button.Render(startLabel)

	if len(large) <= len(small) {
		t.Errorf("L button (%d bytes) should be wider than S (%d bytes)", len(large), len(small))
	}
}

func TestSSHSessionAppsKeepSettingsApart(t *testing.T) {
	kv := storage.NewMemoryKV()
	srv := &SSHServer{
		config: DefaultSSHServerConfig(),
		deps:   SSHDeps{KV: kv},
		logger: log.New(io.Discard),
	}

	for _, user := range []string{"ada", "bob"} {
		app := srv.newSessionApp(user, 80, 24)
		app.Init()
		for _, r := range user {
			app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
		app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}

	for _, user := range []string{"ada", "bob"} {
		v, ok, err := kv.Get("ticket-mockup:" + user + ":name")
		if err != nil || !ok || v != user {
			t.Errorf("name of %s = (%q, %v, %v), want own name", user, v, ok, err)
		}
	}
}

func TestScoreboardShowsModeRounds(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "gate.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.StartSession(storage.SessionRecord{ID: "s1", Player: "Ada", Mode: "TB2", UISize: "M", StartedAt: t0}); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	for i, score := range []int{210, 480, 330} {
		if _, err := store.SaveRound(storage.RoundRecord{SessionID: "s1", Round: i + 1, Player: "Ada", Mode: "TB2", Score: score}); err != nil {
			t.Fatalf("SaveRound: %v", err)
		}
	}

	m := NewScoreboardModel(store, core.ModeTB2, 100, 30)
	if m.Mode() != core.ModeTB2 {
		t.Fatalf("Mode() = %s, want TB2", m.Mode())
	}
	if len(m.scores) != 3 || m.scores[0].Score != 480 {
		t.Fatalf("scores = %+v, want 3 rounds led by 480", m.scores)
	}
	view := m.View()
	for _, want := range []string{"TB2", "Ada", "480", "Rounds: 3", "Best: 480"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard missing %q", want)
		}
	}

	// Switch to an empty mode
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.Mode() != core.ModeHR1 {
		t.Errorf("after tab Mode() = %s, want HR1", m.Mode())
	}
	if !strings.Contains(m.View(), "No rounds recorded yet.") {
		t.Error("empty mode should show the empty message")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, core.GameMode("nope"), 60, 20)
	if m.Mode() != core.ModeTB1 {
		t.Errorf("unknown mode should open TB1, got %s", m.Mode())
	}
	if !strings.Contains(m.View(), "No rounds played") {
		t.Error("scoreboard without store should show no rounds")
	}
}
