// Package settings persists the player's last-used menu choices and keeps
// the settings of the current session in memory.
package settings

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/storage"
)

// DefaultNamespace prefixes every stored key.
const DefaultNamespace = "ticket-mockup"

// AnonymousUser names the settings of SSH sessions without a user name.
const AnonymousUser = "anonymous"

// Key suffixes under the namespace.
const (
	keyName   = "name"
	keyMode   = "mode"
	keyUISize = "ui-size"
)

// Store loads and saves GameSettings in a durable key-value store.
// A Store with a nil KV runs degraded: Load returns defaults and Save does nothing.
type Store struct {
	kv        storage.KV
	namespace string
	logger    *log.Logger
}

// NewStore creates a settings store. An empty namespace uses DefaultNamespace;
// a nil logger uses log.Default().
func NewStore(kv storage.KV, namespace string, logger *log.Logger) *Store {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		kv:        kv,
		namespace: namespace,
		logger:    logger,
	}
}

// UserNamespace returns the namespace that keeps one user's settings apart
// from everyone else's under base.
func UserNamespace(base, user string) string {
	if base == "" {
		base = DefaultNamespace
	}
	user = strings.TrimSpace(user)
	if user == "" {
		user = AnonymousUser
	}
	return base + ":" + user
}

// Namespace returns the key prefix of this store.
func (s *Store) Namespace() string {
	return s.namespace
}

// Key returns the full storage key for a field.
func (s *Store) Key(field string) string {
	return s.namespace + ":" + field
}

// Load reads the stored settings. Missing or malformed fields fall back to
// their defaults one by one; the other fields are kept.
func (s *Store) Load() core.GameSettings {
	settings := core.DefaultSettings()
	if s.kv == nil {
		return settings
	}

	if name, ok := s.get(keyName); ok {
		settings.Name = name
	}

	if raw, ok := s.get(keyMode); ok {
		mode, err := core.ParseMode(raw)
		if err != nil {
			s.logger.Warn("ignoring stored mode", "value", raw, "err", err)
		}
		settings.Mode = mode
	}

	if raw, ok := s.get(keyUISize); ok {
		size, err := core.ParseUISize(raw)
		if err != nil {
			s.logger.Warn("ignoring stored ui size", "value", raw, "err", err)
		}
		settings.UISize = size
	}

	return settings
}

func (s *Store) get(field string) (string, bool) {
	v, ok, err := s.kv.Get(s.Key(field))
	if err != nil {
		s.logger.Warn("cannot read setting", "key", s.Key(field), "err", err)
		return "", false
	}
	return v, ok
}

// Save writes all three fields. Failures are logged, never returned.
func (s *Store) Save(settings core.GameSettings) {
	if s.kv == nil {
		return
	}

	fields := []struct {
		key   string
		value string
	}{
		{keyName, settings.Name},
		{keyMode, string(settings.Mode)},
		{keyUISize, string(settings.UISize)},
	}
	for _, f := range fields {
		if err := s.kv.Set(s.Key(f.key), f.value); err != nil {
			s.logger.Error("cannot save setting", "key", s.Key(f.key), "err", err)
		}
	}
}
