package callback

import (
	"errors"
	"fmt"
)

// Components looks up components by name.
type Components interface {
	Get(name string) (any, error)
}

// Resolver binds descriptors to functions.
type Resolver struct {
	components Components
}

// NewResolver creates a Resolver that looks components up in c.
func NewResolver(c Components) *Resolver {
	return &Resolver{components: c}
}

// Resolve returns the function d names. Function targets are returned
// unchanged; string targets are resolved as components and the method is
// bound through MethodProvider. Component lookup errors are returned as is.
func (r *Resolver) Resolve(d Descriptor) (Func, error) {
	if fn, ok := AsFunc(d.Target); ok {
		return fn, nil
	}

	name, ok := d.Target.(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: %s: no target", ErrInvalidCallback, d)
	}

	instance, err := r.components.Get(name)
	if err != nil {
		return nil, err
	}

	if provider, ok := instance.(MethodProvider); ok {
		if fn, ok := provider.Method(d.Method); ok {
			return fn, nil
		}
	}
	if d.Method == "" {
		if fn, ok := AsFunc(instance); ok {
			return fn, nil
		}
	}

	return nil, fmt.Errorf("%w: %s: component %q has no method %q", ErrInvalidCallback, d, name, d.Method)
}

// ResolveWithFallback resolves d and, when d is empty or names something
// that is not invokable, binds method on the application component instead.
func (r *Resolver) ResolveWithFallback(d Descriptor, method string) (Func, error) {
	if !d.IsZero() {
		fn, err := r.Resolve(d)
		if err == nil || !errors.Is(err, ErrInvalidCallback) {
			return fn, err
		}
	}

	fn, err := r.Resolve(Descriptor{Target: ApplicationComponent, Method: method})
	if err != nil {
		return nil, fmt.Errorf("%s: fallback failed: %w", d, err)
	}
	return fn, nil
}
