package settings

import (
	"sync"

	"github.com/vovakirdan/boarding-gate/internal/core"
)

// Session holds the settings the player last submitted in this process or
// SSH session. It replaces a process-wide registry slot.
type Session struct {
	mu       sync.RWMutex
	settings core.GameSettings
	set      bool
}

// NewSession returns an empty session context.
func NewSession() *Session {
	return &Session{}
}

// Remember stores the submitted settings.
func (s *Session) Remember(settings core.GameSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.set = true
}

// Recall returns the remembered settings, if any.
func (s *Session) Recall() (core.GameSettings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, s.set
}

// Resolve returns the remembered settings, falling back to the store and
// then to defaults.
func Resolve(session *Session, store *Store) core.GameSettings {
	if session != nil {
		if s, ok := session.Recall(); ok {
			return s
		}
	}
	if store != nil {
		store.logger.Debug("no session settings, loading from store", "namespace", store.Namespace())
		return store.Load()
	}
	return core.DefaultSettings()
}
