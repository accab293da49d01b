package settings

import (
	"testing"

	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/storage"
)

func TestSessionRememberRecall(t *testing.T) {
	s := NewSession()

	if _, ok := s.Recall(); ok {
		t.Fatal("Recall() on a new session should report nothing remembered")
	}

	want := core.GameSettings{Name: "Ava", Mode: core.ModeTB1, UISize: core.UISizeM}
	s.Remember(want)

	got, ok := s.Recall()
	if !ok || got != want {
		t.Errorf("Recall() = %+v, %v; expected %+v", got, ok, want)
	}

	next := core.GameSettings{Name: "Bo", Mode: core.ModeHR2, UISize: core.UISizeS}
	s.Remember(next)
	if got, _ := s.Recall(); got != next {
		t.Errorf("Recall() = %+v, expected the latest settings", got)
	}
}

func TestResolve(t *testing.T) {
	kv := storage.NewMemoryKV()
	store := NewStore(kv, "", quietLogger())
	stored := core.GameSettings{Name: "Stored", Mode: core.ModeHR1, UISize: core.UISizeL}
	store.Save(stored)

	session := NewSession()
	if got := Resolve(session, store); got != stored {
		t.Errorf("Resolve() with empty session = %+v, expected the stored settings", got)
	}

	remembered := core.GameSettings{Name: "Ava", Mode: core.ModeTB2, UISize: core.UISizeS}
	session.Remember(remembered)
	if got := Resolve(session, store); got != remembered {
		t.Errorf("Resolve() = %+v, expected the session settings", got)
	}

	if got := Resolve(nil, nil); got != core.DefaultSettings() {
		t.Errorf("Resolve(nil, nil) = %+v, expected defaults", got)
	}
}
