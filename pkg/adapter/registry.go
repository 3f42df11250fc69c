package adapter

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func(*slog.Logger) Connector)
)

// Register adds a connector factory to the registry.
// Called by connector implementations in their init() functions.
func Register(name string, factory func(*slog.Logger) Connector) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = factory
}

// Get retrieves a connector factory by name.
func Get(name string) (func(*slog.Logger) Connector, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[strings.ToLower(name)]
	return f, ok
}

// New creates a connector instance based on config type.
// The logger is passed to the connector constructor (nil uses a discard
// logger).
func New(cfg Config, logger *slog.Logger) (Connector, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("connector type not specified")
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownConnectorError{
			Type:      cfg.Type,
			Available: List(),
		}
	}
	return factory(logger), nil
}

// List returns all registered connector names (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a connector type is registered.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// UnknownConnectorError is returned when an unknown connector type is
// requested.
type UnknownConnectorError struct {
	Type      string
	Available []string
}

func (e *UnknownConnectorError) Error() string {
	return fmt.Sprintf("unknown connector type %q\nAvailable connectors: %v\nHint: Check your target.type in fluentsql.yaml", e.Type, e.Available)
}
