// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package registry resolves named components from the required_objects
// section of a configuration tree and caches one instance per name.
//
// Class identifiers come from the descriptor's class_identifier or, when it
// is absent, from the convention "<application_name>.<PascalCase(name)>".
// A Registry belongs to exactly one configuration and is not safe for
// concurrent use; the [Catalog] it reads from is.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-app-kernel/internal/logger"
	"github.com/MKhiriev/go-app-kernel/internal/merger"
	"github.com/MKhiriev/go-app-kernel/internal/metrics"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// Configuration is the surface components see through the back-reference
// hook.
type Configuration interface {
	GetConfig(section string, keys ...string) (tree.Value, bool)
	SetConfig(section, key string, value tree.Value)
	GetComponent(name string) (any, error)
}

// ConfigurationAware components receive the configuration that resolved
// them right after construction.
type ConfigurationAware interface {
	SetConfigurationObject(conf Configuration)
}

// Registry is the per-configuration component cache.
type Registry struct {
	conf    Configuration
	catalog *Catalog
	cache   map[string]any
	logger  *logger.Logger
}

// New creates an empty registry reading descriptors from conf.
func New(conf Configuration, catalog *Catalog, log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		conf:    conf,
		catalog: catalog,
		cache:   make(map[string]any),
		logger:  log,
	}
}

// SetLogger replaces the logger used for resolution messages.
func (r *Registry) SetLogger(log *logger.Logger) {
	if log != nil {
		r.logger = log
	}
}

// Get returns the cached instance for name, resolving it on first use.
func (r *Registry) Get(name string) (any, error) {
	if instance, ok := r.cache[name]; ok {
		return instance, nil
	}
	return r.Resolve(name, nil)
}

// Cached reports the instance currently cached under name, if any.
func (r *Registry) Cached(name string) (any, bool) {
	instance, ok := r.cache[name]
	return instance, ok
}

// Names returns the names of the cached components in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cache))
	for name := range r.cache {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Resolve constructs the component registered under name and caches it,
// replacing any earlier instance. Parameters come from override when it is
// non-nil, otherwise from required_objects.<name>.parameters.
func (r *Registry) Resolve(name string, override *tree.Map) (any, error) {
	class, params, derived := r.describe(name)
	if derived && !r.catalog.Has(class) {
		if fallback, ok := r.catalog.Fallback(name); ok {
			class = fallback
		}
	}
	if override != nil {
		params = override.Clone()
	}

	instance, err := r.catalog.Instantiate(class, params)
	metrics.ComponentResolutions.WithLabelValues(class, metrics.Outcome(err)).Inc()
	if err != nil {
		r.logger.Debug().Err(err).Str("component", name).Str("class", class).Msg("component resolution failed")
		return nil, fmt.Errorf("resolve component %q: %w", name, err)
	}

	if aware, ok := instance.(ConfigurationAware); ok {
		aware.SetConfigurationObject(r.conf)
	}

	r.cache[name] = instance
	r.logger.Debug().
		Str("component", name).
		Str("class", class).
		Bool("override", override != nil).
		Msg("component resolved")

	return instance, nil
}

// describe returns the class and parameters of name. derived is true when
// the class comes from the naming convention.
func (r *Registry) describe(name string) (class string, params tree.Map, derived bool) {
	descriptor := tree.Map{}
	if v, ok := r.conf.GetConfig(merger.SectionRequiredObjects, name); ok && v.IsMap() {
		descriptor = v.Map()
	}

	class = strings.TrimSpace(descriptor["class_identifier"].StringOr(""))
	if class == "" {
		app, _ := r.conf.GetConfig(merger.SectionGeneral, "application_name")
		class = ClassIdentifier(strings.TrimSpace(app.StringOr("")), name)
		derived = true
	}

	return class, descriptor.Section("parameters").Clone(), derived
}

// ClassIdentifier derives the conventional class identifier of a component:
// "Demo" and "widget" give "Demo.Widget".
func ClassIdentifier(application, name string) string {
	return application + "." + PascalCase(name)
}

// PascalCase upper-cases the first letter of every word of s and drops the
// separators between words. "http_client" becomes "HttpClient".
func PascalCase(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
