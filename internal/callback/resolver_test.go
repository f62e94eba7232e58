package callback

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

var errUnknown = errors.New("unknown component")

type components map[string]any

func (c components) Get(name string) (any, error) {
	instance, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknown, name)
	}
	return instance, nil
}

func returning(v string) Func {
	return func(context.Context, ...any) (any, error) { return v, nil }
}

func call(t *testing.T, fn Func) any {
	t.Helper()
	require.NotNil(t, fn)
	out, err := fn(context.Background())
	require.NoError(t, err)
	return out
}

// ── Resolve ──

func TestResolve_FunctionTargetUnchanged(t *testing.T) {
	r := NewResolver(components{})

	fn, err := r.Resolve(Descriptor{Target: returning("direct")})
	require.NoError(t, err)
	assert.Equal(t, "direct", call(t, fn))
}

func TestResolve_ComponentMethod(t *testing.T) {
	r := NewResolver(components{
		"token": Methods{"Verify": returning("verified")},
	})

	fn, err := r.Resolve(Descriptor{Target: "token", Method: "Verify"})
	require.NoError(t, err)
	assert.Equal(t, "verified", call(t, fn))
}

func TestResolve_Invalid(t *testing.T) {
	r := NewResolver(components{
		"token": Methods{"Verify": returning("verified")},
		"plain": struct{}{},
	})

	tests := []struct {
		name string
		d    Descriptor
	}{
		{"empty", Descriptor{}},
		{"missing method", Descriptor{Target: "token", Method: "Sign"}},
		{"not a provider", Descriptor{Target: "plain", Method: "Run"}},
		{"number target", Descriptor{Target: 42, Method: "Run"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.d)
			assert.ErrorIs(t, err, ErrInvalidCallback)
		})
	}
}

func TestResolve_ComponentErrorPropagates(t *testing.T) {
	r := NewResolver(components{})

	_, err := r.Resolve(Descriptor{Target: "missing", Method: "Run"})
	assert.ErrorIs(t, err, errUnknown)
	assert.NotErrorIs(t, err, ErrInvalidCallback)
}

// ── ResolveWithFallback ──

func TestResolveWithFallback_ShutdownFunction(t *testing.T) {
	app := Methods{"CustomShutdownFunction": returning("app shutdown")}

	tests := []struct {
		name string
		d    Descriptor
	}{
		{"unset", Descriptor{}},
		{"component without method", Descriptor{Target: "errorhandler", Method: "Nope"}},
		{"non invokable target", Descriptor{Target: 3.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(components{
				ApplicationComponent: app,
				"errorhandler":       Methods{},
			})

			fn, err := r.ResolveWithFallback(tt.d, "CustomShutdownFunction")
			require.NoError(t, err)
			assert.Equal(t, "app shutdown", call(t, fn))
		})
	}
}

func TestResolveWithFallback_PrefersDescriptor(t *testing.T) {
	r := NewResolver(components{
		ApplicationComponent: Methods{"CustomErrorHandler": returning("app")},
		"errorhandler":       Methods{"CustomErrorHandler": returning("handler")},
	})

	fn, err := r.ResolveWithFallback(Descriptor{Target: "errorhandler", Method: "CustomErrorHandler"}, "CustomErrorHandler")
	require.NoError(t, err)
	assert.Equal(t, "handler", call(t, fn))
}

func TestResolveWithFallback_StillInvalid(t *testing.T) {
	r := NewResolver(components{ApplicationComponent: Methods{}})

	_, err := r.ResolveWithFallback(Descriptor{}, "CustomShutdownFunction")
	assert.ErrorIs(t, err, ErrInvalidCallback)
}

// ── descriptors ──

func TestParseDescriptor(t *testing.T) {
	fn := returning("x")

	tests := []struct {
		name    string
		in      tree.Value
		target  any
		method  string
		wantErr bool
	}{
		{"null", tree.Null(), nil, "", false},
		{"empty list", tree.List(), nil, "", false},
		{"pair", tree.Strings("token", "Verify"), "token", "Verify", false},
		{"single", tree.Strings("hook"), "hook", "", false},
		{"three items", tree.Strings("a", "b", "c"), nil, "", true},
		{"plain string", tree.Scalar("token.Verify"), nil, "", true},
		{"numeric method", tree.List(tree.Scalar("token"), tree.Scalar(1)), nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDescriptor(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCallback)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, d.Target)
			assert.Equal(t, tt.method, d.Method)
		})
	}

	t.Run("function scalar", func(t *testing.T) {
		d, err := ParseDescriptor(tree.Scalar(fn))
		require.NoError(t, err)
		got, ok := AsFunc(d.Target)
		require.True(t, ok)
		assert.Equal(t, "x", call(t, got))
	})
}

func TestAsFunc(t *testing.T) {
	ran := false
	shapes := []any{
		returning("a"),
		func(context.Context, ...any) (any, error) { return nil, nil },
		func(context.Context) error { return nil },
		func() { ran = true },
	}
	for i, shape := range shapes {
		fn, ok := AsFunc(shape)
		require.True(t, ok, "shape %d", i)
		_, err := fn(context.Background())
		require.NoError(t, err)
	}
	assert.True(t, ran)

	_, ok := AsFunc("not a function")
	assert.False(t, ok)
	var nilFunc Func
	_, ok = AsFunc(nilFunc)
	assert.False(t, ok)
}
