// Package registry provides a global registry for gate layouts.
// Layouts register themselves in init() functions, allowing the platform
// to draw any game mode without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/boarding-gate/internal/core"
)

// Layout draws the game screen for one GameMode.
// Layouts contain pure drawing logic with no external dependencies (especially no Bubble Tea).
type Layout interface {
	// Mode returns the game mode this layout draws.
	Mode() core.GameMode

	// Title returns a short human-readable name (e.g., "Top & Bottom").
	Title() string

	// Description returns the one-line layout summary shown under the HUD.
	Description() string

	// Render draws the round view into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen, v View)
}

// View is everything a layout needs to draw one frame.
type View struct {
	Name      string
	Mode      core.GameMode
	UISize    core.UISizePreset
	Score     int
	Countdown int
	Message   string // passenger overlay, empty when hidden
	Tickets   bool   // Tickets button is flashing
	Coins     bool   // Coins button is flashing
}

// LayoutInfo contains metadata about a registered layout.
type LayoutInfo struct {
	Mode        core.GameMode
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a layout.
type Factory func() Layout

var (
	factories = make(map[core.GameMode]Factory)
	infos     = make(map[core.GameMode]LayoutInfo)
	mu        sync.RWMutex
)

// Register adds a layout factory to the registry.
// Typically called from a layout's init() function.
// Panics if a layout for the same mode is already registered.
func Register(mode core.GameMode, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[mode]; exists {
		panic(fmt.Sprintf("registry: layout %q already registered", mode))
	}

	factories[mode] = f

	// Get metadata by creating a temporary instance
	l := f()
	infos[mode] = LayoutInfo{
		Mode:        mode,
		Title:       l.Title(),
		Description: l.Description(),
	}
}

// List returns information about all registered layouts in menu order.
func List() []LayoutInfo {
	mu.RLock()
	defer mu.RUnlock()

	order := make(map[core.GameMode]int)
	for i, m := range core.Modes() {
		order[m] = i
	}

	result := make([]LayoutInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		oi, iok := order[result[i].Mode]
		oj, jok := order[result[j].Mode]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return result[i].Mode < result[j].Mode
	})

	return result
}

// Create instantiates a new layout for mode.
// Returns an error if no layout is registered for it.
func Create(mode core.GameMode) (Layout, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[mode]
	if !ok {
		return nil, fmt.Errorf("registry: unknown layout %q", mode)
	}

	return f(), nil
}

// Exists checks if a layout for mode is registered.
func Exists(mode core.GameMode) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[mode]
	return ok
}

// Describe returns the description of mode's layout, or a placeholder when
// none is registered.
func Describe(mode core.GameMode) string {
	mu.RLock()
	defer mu.RUnlock()

	if info, ok := infos[mode]; ok {
		return info.Description
	}
	return "Layout: Placeholder configuration."
}
