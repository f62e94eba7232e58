// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package callback turns callback descriptors stored in the configuration
// tree into invokable functions.
//
// A descriptor is either a function value placed in the tree by code, or a
// two-element list [component, method] naming a component resolved through
// the registry and one of the methods it exposes via [MethodProvider].
package callback

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// ApplicationComponent is the component fallbacks are looked up on.
const ApplicationComponent = "application"

// Func is the single shape every callback is invoked through.
type Func func(ctx context.Context, args ...any) (any, error)

// MethodProvider is implemented by components that expose named callbacks.
type MethodProvider interface {
	Method(name string) (Func, bool)
}

// Methods is a ready-made MethodProvider backed by a map.
type Methods map[string]Func

// Method implements MethodProvider.
func (m Methods) Method(name string) (Func, bool) {
	fn, ok := m[name]
	return fn, ok && fn != nil
}

// Descriptor names a callback.
type Descriptor struct {
	Target any
	Method string
}

// IsZero reports whether the descriptor names nothing.
func (d Descriptor) IsZero() bool {
	if d.Method != "" {
		return false
	}
	switch t := d.Target.(type) {
	case nil:
		return true
	case string:
		return t == ""
	}
	return false
}

func (d Descriptor) String() string {
	if name, ok := d.Target.(string); ok {
		return fmt.Sprintf("[%s %s]", name, d.Method)
	}
	if d.Target == nil {
		return "[]"
	}
	return fmt.Sprintf("[%T %s]", d.Target, d.Method)
}

// ParseDescriptor reads a descriptor from a configuration value. Null and
// empty lists give the zero descriptor.
func ParseDescriptor(v tree.Value) (Descriptor, error) {
	switch v.Kind() {
	case tree.KindNull:
		return Descriptor{}, nil
	case tree.KindScalar:
		if _, ok := AsFunc(v.Scalar()); ok {
			return Descriptor{Target: v.Scalar()}, nil
		}
	case tree.KindList:
		items := v.List()
		switch len(items) {
		case 0:
			return Descriptor{}, nil
		case 1:
			return Descriptor{Target: items[0].Scalar()}, nil
		case 2:
			method, ok := items[1].Str()
			if !ok {
				break
			}
			return Descriptor{Target: items[0].Scalar(), Method: method}, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: malformed descriptor %s", ErrInvalidCallback, v)
}

// AsFunc adapts the function shapes accepted as callbacks to Func.
func AsFunc(v any) (Func, bool) {
	switch fn := v.(type) {
	case Func:
		return fn, fn != nil
	case func(context.Context, ...any) (any, error):
		return fn, fn != nil
	case func(context.Context) error:
		if fn == nil {
			return nil, false
		}
		return func(ctx context.Context, _ ...any) (any, error) { return nil, fn(ctx) }, true
	case func():
		if fn == nil {
			return nil, false
		}
		return func(context.Context, ...any) (any, error) { fn(); return nil, nil }, true
	}
	return nil, false
}
