// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the per-request Configuration (merged tree plus
// component cache) and the Bootstrapper that builds it and dispatches to the
// application component.
package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/message"

	"github.com/MKhiriev/go-app-kernel/internal/callback"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
	"github.com/MKhiriev/go-app-kernel/internal/merger"
	"github.com/MKhiriev/go-app-kernel/internal/metrics"
	"github.com/MKhiriev/go-app-kernel/internal/registry"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// Application is the contract of the "application" component.
type Application interface {
	Main() string
}

// Hook names under which resolved callbacks are kept.
const (
	HookError    = "errorhandler.error_callback"
	HookShutdown = "errorhandler.shutdown_callback"
)

// Configuration bundles one merged configuration tree with its component
// cache. It lives for one bootstrap/request cycle and is not safe for
// concurrent use.
type Configuration struct {
	tree      tree.Map
	registry  *registry.Registry
	callbacks *callback.Resolver
	logger    *logger.Logger
	location  *time.Location
	printer   *message.Printer
	hooks     map[string]callback.Func
}

// NewConfiguration wraps an already merged tree. Most callers get a
// Configuration from Bootstrapper.Bootstrap instead.
func NewConfiguration(t tree.Map, catalog *registry.Catalog, log *logger.Logger) *Configuration {
	if t == nil {
		t = tree.Map{}
	}
	if log == nil {
		log = logger.Nop()
	}
	c := &Configuration{
		tree:     t,
		logger:   log,
		location: time.UTC,
		hooks:    make(map[string]callback.Func),
	}
	c.registry = registry.New(c, catalog, log)
	c.callbacks = callback.NewResolver(c.registry)
	return c
}

// GetConfig navigates the tree. With only section it returns the whole
// section. The second result is false when any segment is missing.
func (c *Configuration) GetConfig(section string, keys ...string) (tree.Value, bool) {
	return c.tree.Get(append([]string{section}, keys...)...)
}

// SetConfig writes value at section.key, creating the section if needed.
func (c *Configuration) SetConfig(section, key string, value tree.Value) {
	c.tree.Set(value, section, key)
}

// GetComponent returns the cached component called name, resolving it on
// first use.
func (c *Configuration) GetComponent(name string) (any, error) {
	return c.registry.Get(name)
}

// ResolveComponent constructs name again, with override parameters when
// override is non-nil, and caches the result.
func (c *Configuration) ResolveComponent(name string, override *tree.Map) (any, error) {
	return c.registry.Resolve(name, override)
}

// Tree returns a copy of the merged tree.
func (c *Configuration) Tree() tree.Map {
	return c.tree.Clone()
}

// Logger returns the logger configured for this configuration's log level.
func (c *Configuration) Logger() *logger.Logger {
	return c.logger
}

// Location returns the time zone from general.timezone.
func (c *Configuration) Location() *time.Location {
	return c.location
}

// Now returns the current time in the configured time zone.
func (c *Configuration) Now() time.Time {
	return time.Now().In(c.location)
}

// Callback returns a callback resolved during bootstrap: HookError,
// HookShutdown or the name of an enabled auth section.
func (c *Configuration) Callback(name string) (callback.Func, bool) {
	fn, ok := c.hooks[name]
	return fn, ok
}

// Translatef formats the message registered under key for general.language.
// Unknown keys are formatted as is.
func (c *Configuration) Translatef(key string, args ...any) string {
	if c.printer == nil {
		if len(args) == 0 {
			return key
		}
		return fmt.Sprintf(key, args...)
	}
	return c.printer.Sprintf(key, args...)
}

// Authenticate runs the callback of an enabled auth section (api_auth,
// http_auth or session_auth). Disabled sections accept everything. A boolean
// callback result is the decision; any other non-nil result counts as
// success.
func (c *Configuration) Authenticate(ctx context.Context, method string, args ...any) (bool, error) {
	if !slices.Contains(merger.AuthSections, method) {
		return false, fmt.Errorf("%w: %q", ErrAuthMethodUnknown, method)
	}

	section, _ := c.GetConfig(method)
	if !section.Map()["enable"].BoolOr(false) {
		return true, nil
	}

	fn, ok := c.hooks[method]
	if !ok {
		return false, fmt.Errorf("%w: %s has no resolved callback", callback.ErrInvalidCallback, method)
	}

	out, err := fn(ctx, args...)
	if err != nil {
		metrics.AuthDecisions.WithLabelValues(method, "error").Inc()
		return false, err
	}

	allowed, isBool := out.(bool)
	if !isBool {
		allowed = out != nil
	}
	if allowed {
		metrics.AuthDecisions.WithLabelValues(method, "allowed").Inc()
	} else {
		metrics.AuthDecisions.WithLabelValues(method, "denied").Inc()
	}
	return allowed, nil
}

// RunApplication resolves the "application" component and returns the
// result of its Main. The shutdown callback runs afterwards in every case.
// A panic inside Main is reported to the error callback and returned as
// ErrApplicationPanic.
func (c *Configuration) RunApplication(ctx context.Context) (response string, err error) {
	instance, err := c.GetComponent(callback.ApplicationComponent)
	if err != nil {
		return "", err
	}
	application, ok := instance.(Application)
	if !ok {
		return "", fmt.Errorf("%w: application component %T has no Main", callback.ErrInvalidCallback, instance)
	}

	defer c.shutdown(ctx)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrApplicationPanic, r)
			c.HandleError(ctx, err)
		}
	}()

	return application.Main(), nil
}

// HandleError passes err to the error callback, or logs it when error
// handling is disabled.
func (c *Configuration) HandleError(ctx context.Context, err error) {
	fn, ok := c.hooks[HookError]
	if !ok {
		c.logger.Error().Err(err).Msg("unhandled application error")
		return
	}
	if _, cbErr := fn(ctx, err); cbErr != nil {
		c.logger.Error().Err(cbErr).AnErr("original", err).Msg("error callback failed")
	}
}

func (c *Configuration) shutdown(ctx context.Context) {
	fn, ok := c.hooks[HookShutdown]
	if !ok {
		return
	}
	if _, err := fn(ctx); err != nil {
		c.logger.Error().Err(err).Msg("shutdown callback failed")
	}
}
