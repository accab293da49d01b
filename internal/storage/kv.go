package storage

import (
	"fmt"
	"strings"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// KV is a durable string key-value store.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}

// MemoryKV keeps values in process memory. Safe for concurrent use.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// GDataKV stores each key as a property file of one gdata object,
// inside the per-user application data directory.
type GDataKV struct {
	manager *gdata.Manager
	object  string
}

// gdataObject is the gdata object that holds all settings properties.
const gdataObject = "settings"

// OpenGData opens the gdata save directory for appName.
func OpenGData(appName string) (*GDataKV, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata for %q: %w", appName, err)
	}
	return NewGDataKV(m), nil
}

// NewGDataKV wraps an opened gdata manager.
func NewGDataKV(m *gdata.Manager) *GDataKV {
	return &GDataKV{manager: m, object: gdataObject}
}

// propName turns a namespaced key like "ticket-mockup:ui-size" into a
// file-system friendly property name.
func propName(key string) string {
	return strings.NewReplacer(":", ".", "/", "_", "\\", "_").Replace(key)
}

// Get implements KV.
func (g *GDataKV) Get(key string) (string, bool, error) {
	prop := propName(key)
	if !g.manager.ObjectPropExists(g.object, prop) {
		return "", false, nil
	}
	data, err := g.manager.LoadObjectProp(g.object, prop)
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot load %q: %w", key, err)
	}
	return string(data), true, nil
}

// Set implements KV.
func (g *GDataKV) Set(key, value string) error {
	if err := g.manager.SaveObjectProp(g.object, propName(key), []byte(value)); err != nil {
		return fmt.Errorf("storage: cannot save %q: %w", key, err)
	}
	return nil
}

var (
	_ KV = (*MemoryKV)(nil)
	_ KV = (*GDataKV)(nil)
)
