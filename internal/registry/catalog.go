// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/MKhiriev/go-app-kernel/internal/metrics"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// Factory constructs a component from the parameters map of its descriptor.
type Factory func(params tree.Map) (any, error)

type entry struct {
	factory   Factory
	singleton bool

	mu       sync.Mutex
	built    bool
	instance any
}

// Catalog maps class identifiers to factories. It is filled once at startup
// and then shared, read-only, by every [Registry]; only the singleton memo
// changes afterwards and it is guarded per entry.
type Catalog struct {
	mu        sync.RWMutex
	entries   map[string]*entry
	fallbacks map[string]string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		entries:   make(map[string]*entry),
		fallbacks: make(map[string]string),
	}
}

// SetFallback makes class serve the component called name whenever the
// class derived from the application name is not registered. Descriptors
// with an explicit class_identifier never fall back.
func (c *Catalog) SetFallback(name, class string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallbacks[name] = class
}

// Fallback returns the class set by SetFallback for name.
func (c *Catalog) Fallback(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	class, ok := c.fallbacks[name]
	return class, ok
}

// Register adds a factory that is invoked on every resolution.
// It panics if class is empty, f is nil or class is already registered.
func (c *Catalog) Register(class string, f Factory) {
	c.add(class, &entry{factory: f})
}

// RegisterSingleton adds a factory whose first successful result is
// memoized and returned for every later resolution, whatever the registry
// or parameters.
func (c *Catalog) RegisterSingleton(class string, f Factory) {
	c.add(class, &entry{factory: f, singleton: true})
}

func (c *Catalog) add(class string, e *entry) {
	if class == "" {
		panic("registry: empty class identifier")
	}
	if e.factory == nil {
		panic("registry: nil factory for " + class)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.entries[class]; dup {
		panic("registry: class registered twice: " + class)
	}
	c.entries[class] = e
}

// Has reports whether class is registered.
func (c *Catalog) Has(class string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[class]
	return ok
}

// Classes returns the registered class identifiers in sorted order.
func (c *Catalog) Classes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.entries))
	for class := range c.entries {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}

// Instantiate builds (or, for singletons, fetches) an instance of class.
func (c *Catalog) Instantiate(class string, params tree.Map) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[class]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, class)
	}

	if !e.singleton {
		return construct(class, e.factory, params)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.built {
		return e.instance, nil
	}
	instance, err := construct(class, e.factory, params)
	if err != nil {
		return nil, err
	}
	metrics.SingletonConstructions.WithLabelValues(class).Inc()
	e.instance, e.built = instance, true
	return instance, nil
}

func construct(class string, f Factory, params tree.Map) (any, error) {
	if params == nil {
		params = tree.Map{}
	}
	instance, err := f(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConstruction, class, err)
	}
	return instance, nil
}
