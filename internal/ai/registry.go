package ai

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Options configure a provider at construction.
type Options struct {
	// BaseURL overrides the provider's API root (tests, proxies).
	BaseURL string

	// Timeout bounds each HTTP call.
	Timeout time.Duration

	// Latency is the simulated delay of the placeholder provider.
	Latency time.Duration
}

// Factory builds a provider from options.
type Factory func(Options) Provider

var (
	registry   = make(map[string]Factory)
	registryMu sync.RWMutex
)

// Register adds a provider factory under name.
// Panics if the name is already taken.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("ai provider already registered: %s", name))
	}
	registry[name] = f
}

// New builds the provider registered under name.
func New(name string, opts Options) (Provider, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown ai provider: %s", name)
	}
	return f(opts), nil
}

// Names returns the registered provider names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
