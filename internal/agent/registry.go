// Package agent provides a global registry for pilot factories plus the
// built-in reference pilots. Pilots register themselves in init() functions,
// allowing the CLI and the viewer to discover and instantiate them without
// hardcoded dependencies.
package agent

import (
	"fmt"
	"sort"
	"sync"

	"github.com/TimArnettThales/FuzzyAsteroids/internal/game"
)

// PilotInfo contains metadata about a registered pilot.
type PilotInfo struct {
	Name        string
	Description string
}

// Factory is a function that creates a new pilot instance. Each episode
// gets a fresh instance so stateful pilots never leak state across runs.
type Factory func() game.Pilot

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a pilot factory to the registry.
// Typically called from a pilot's init() function.
// Panics if a pilot with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("agent: pilot %q already registered", name))
	}
	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered pilots, sorted by name.
func List() []PilotInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PilotInfo, 0, len(factories))
	for name := range factories {
		result = append(result, PilotInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a new pilot by name.
// Returns an error if the name is not registered.
func Create(name string) (game.Pilot, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("agent: unknown pilot %q", name)
	}
	return f(), nil
}

// Exists checks if a pilot with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
