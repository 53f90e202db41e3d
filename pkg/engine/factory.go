package engine

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Factory is a function that creates an engine from configuration
type Factory func(log logrus.FieldLogger, cfg *Config) (Engine, error)

// Registry manages engine factories by name
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// globalRegistry is the singleton registry for execution engines
//
//nolint:gochecknoglobals // Required for the factory registration pattern
var globalRegistry = &Registry{
	factories: make(map[string]Factory),
}

// RegisterEngine registers an engine factory under a name
func RegisterEngine(name string, factory Factory) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.factories[name] = factory
}

// New creates the engine named by cfg.Name
func New(log logrus.FieldLogger, cfg *Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	factory, exists := globalRegistry.factories[cfg.Name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, cfg.Name)
	}

	return factory(log, cfg)
}

// Names returns the registered engine names
func Names() []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	names := make([]string, 0, len(globalRegistry.factories))
	for name := range globalRegistry.factories {
		names = append(names, name)
	}

	return names
}
