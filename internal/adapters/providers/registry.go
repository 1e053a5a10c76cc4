package providers

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"veracity/internal/core/content"
)

// Factory constructs an adapter from shared config
type Factory func(cfg Config) (Adapter, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register adds a factory under a name. Adapter packages call this from
// init(); the providers/all package blank-imports them so a single import
// wires the full set
func Register(name string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[strings.ToLower(name)] = f
}

// Registered returns the sorted names of every registered factory
func Registered() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New constructs one adapter by name
func New(name string, cfg Config) (Adapter, error) {
	regMu.RLock()
	f := factories[strings.ToLower(name)]
	regMu.RUnlock()
	if f == nil {
		return nil, fmt.Errorf("providers: %q not registered (have %s)", name, strings.Join(Registered(), ", "))
	}
	return f(cfg)
}

// BuildEnabled constructs the configured adapter set, preserving the
// cfg.Enabled order and dropping duplicate names. A factory failure (usually
// missing endpoint config) aborts the build so misconfiguration surfaces at
// startup, not mid-request
func BuildEnabled(cfg Config) ([]Adapter, error) {
	seen := make(map[string]struct{}, len(cfg.Enabled))
	out := make([]Adapter, 0, len(cfg.Enabled))
	for _, name := range cfg.Enabled {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		a, err := New(name, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// SelectFor filters adapters down to those supporting t, preserving order
func SelectFor(adapters []Adapter, t content.Type) []Adapter {
	var out []Adapter
	for _, a := range adapters {
		if a.Supports(t) {
			out = append(out, a)
		}
	}
	return out
}
