package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// fakeConfiguration is a minimal Configuration over a plain tree.
type fakeConfiguration struct {
	tree     tree.Map
	registry *Registry
}

func (f *fakeConfiguration) GetConfig(section string, keys ...string) (tree.Value, bool) {
	return f.tree.Get(append([]string{section}, keys...)...)
}

func (f *fakeConfiguration) SetConfig(section, key string, value tree.Value) {
	f.tree.Set(value, section, key)
}

func (f *fakeConfiguration) GetComponent(name string) (any, error) {
	return f.registry.Get(name)
}

func newFake(t *testing.T, objects tree.Map, catalog *Catalog) *fakeConfiguration {
	t.Helper()
	f := &fakeConfiguration{tree: tree.Map{
		"general":          tree.Object(tree.Map{"application_name": tree.Scalar("Demo")}),
		"required_objects": tree.Object(objects),
	}}
	f.registry = New(f, catalog, nil)
	return f
}

type widget struct {
	params tree.Map
	conf   Configuration
}

func (w *widget) SetConfigurationObject(conf Configuration) { w.conf = conf }

func widgetFactory(params tree.Map) (any, error) {
	return &widget{params: params}, nil
}

// ── naming ──

func TestClassIdentifier(t *testing.T) {
	tests := []struct {
		app, name, want string
	}{
		{"Demo", "widget", "Demo.Widget"},
		{"Demo", "http_client", "Demo.HttpClient"},
		{"Demo", "session-store", "Demo.SessionStore"},
		{"Demo", "Application", "Demo.Application"},
		{"Demo", "v2 api", "Demo.V2Api"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassIdentifier(tt.app, tt.name))
		})
	}
}

// ── resolution ──

func TestResolve_DerivedClassNotFound(t *testing.T) {
	f := newFake(t, tree.Map{"widget": tree.Object(tree.Map{"name": tree.Scalar("widget")})}, NewCatalog())

	_, err := f.registry.Resolve("widget", nil)
	require.ErrorIs(t, err, ErrClassNotFound)
	assert.Contains(t, err.Error(), "Demo.Widget")

	_, cached := f.registry.Cached("widget")
	assert.False(t, cached)
}

func TestResolve_DerivedClassFound(t *testing.T) {
	catalog := NewCatalog()
	catalog.Register("Demo.Widget", widgetFactory)
	f := newFake(t, tree.Map{}, catalog)

	got, err := f.registry.Get("widget")
	require.NoError(t, err)
	assert.IsType(t, &widget{}, got)
}

func TestResolve_Fallback(t *testing.T) {
	fallback := func(tree.Map) (any, error) { return "fallback", nil }
	registered := func(tree.Map) (any, error) { return "registered", nil }

	tests := []struct {
		name    string
		objects tree.Map
		classes map[string]Factory
		want    any
		wantErr error
	}{
		{
			name:    "derived class missing",
			objects: tree.Map{},
			classes: map[string]Factory{"core.Fallback": fallback},
			want:    "fallback",
		},
		{
			name:    "derived class registered",
			objects: tree.Map{},
			classes: map[string]Factory{"core.Fallback": fallback, "Demo.Widget": registered},
			want:    "registered",
		},
		{
			name: "explicit class missing",
			objects: tree.Map{"widget": tree.Object(tree.Map{
				"class_identifier": tree.Scalar("custom.Widget"),
			})},
			classes: map[string]Factory{"core.Fallback": fallback},
			wantErr: ErrClassNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := NewCatalog()
			for class, f := range tt.classes {
				catalog.Register(class, f)
			}
			catalog.SetFallback("widget", "core.Fallback")
			f := newFake(t, tt.objects, catalog)

			got, err := f.registry.Get("widget")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_TrimsApplicationName(t *testing.T) {
	catalog := NewCatalog()
	catalog.Register("Demo.Widget", widgetFactory)
	f := newFake(t, tree.Map{}, catalog)
	f.tree.Set(tree.Scalar("  Demo "), "general", "application_name")

	got, err := f.registry.Get("widget")
	require.NoError(t, err)
	assert.IsType(t, &widget{}, got)
}

func TestResolve_ExplicitClassIdentifier(t *testing.T) {
	catalog := NewCatalog()
	catalog.Register("core.Widget", widgetFactory)
	f := newFake(t, tree.Map{"widget": tree.Object(tree.Map{
		"class_identifier": tree.Scalar("core.Widget"),
		"parameters":       tree.Object(tree.Map{"size": tree.Scalar(3)}),
	})}, catalog)

	got, err := f.registry.Get("widget")
	require.NoError(t, err)

	w := got.(*widget)
	size, _ := w.params["size"].Int()
	assert.Equal(t, 3, size)
}

func TestResolve_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	catalog := NewCatalog()
	catalog.Register("Demo.Widget", func(tree.Map) (any, error) { return nil, boom })
	f := newFake(t, tree.Map{}, catalog)

	_, err := f.registry.Get("widget")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrConstruction)
}

// ── caching ──

func TestGet_ReturnsCachedInstance(t *testing.T) {
	catalog := NewCatalog()
	catalog.Register("Demo.Widget", widgetFactory)
	f := newFake(t, tree.Map{}, catalog)

	first, err := f.registry.Get("widget")
	require.NoError(t, err)
	second, err := f.registry.Get("widget")
	require.NoError(t, err)

	assert.Same(t, first.(*widget), second.(*widget))
	assert.Equal(t, []string{"widget"}, f.registry.Names())
}

func TestResolve_OverrideParamsReplaceCachedInstance(t *testing.T) {
	catalog := NewCatalog()
	catalog.Register("Demo.Widget", widgetFactory)
	f := newFake(t, tree.Map{"widget": tree.Object(tree.Map{
		"parameters": tree.Object(tree.Map{"size": tree.Scalar(1)}),
	})}, catalog)

	first, err := f.registry.Get("widget")
	require.NoError(t, err)

	override := tree.Map{"size": tree.Scalar(9)}
	second, err := f.registry.Resolve("widget", &override)
	require.NoError(t, err)
	assert.NotSame(t, first.(*widget), second.(*widget))

	size, _ := second.(*widget).params["size"].Int()
	assert.Equal(t, 9, size)

	cached, err := f.registry.Get("widget")
	require.NoError(t, err)
	assert.Same(t, second.(*widget), cached.(*widget))
}

func TestResolve_SingletonSharedAcrossRegistries(t *testing.T) {
	calls := 0
	catalog := NewCatalog()
	catalog.RegisterSingleton("Demo.Widget", func(params tree.Map) (any, error) {
		calls++
		return &widget{params: params}, nil
	})

	a := newFake(t, tree.Map{}, catalog)
	b := newFake(t, tree.Map{}, catalog)

	first, err := a.registry.Resolve("widget", nil)
	require.NoError(t, err)
	second, err := b.registry.Resolve("widget", nil)
	require.NoError(t, err)

	assert.Same(t, first.(*widget), second.(*widget))
	assert.Equal(t, 1, calls)
}

func TestResolve_SingletonRetriesAfterError(t *testing.T) {
	fail := true
	catalog := NewCatalog()
	catalog.RegisterSingleton("Demo.Widget", func(params tree.Map) (any, error) {
		if fail {
			return nil, errors.New("not yet")
		}
		return &widget{}, nil
	})
	f := newFake(t, tree.Map{}, catalog)

	_, err := f.registry.Get("widget")
	require.Error(t, err)

	fail = false
	_, err = f.registry.Get("widget")
	assert.NoError(t, err)
}

// ── back-reference hook ──

func TestResolve_HandsBackConfiguration(t *testing.T) {
	catalog := NewCatalog()
	catalog.Register("Demo.Widget", widgetFactory)
	f := newFake(t, tree.Map{}, catalog)

	got, err := f.registry.Get("widget")
	require.NoError(t, err)

	w := got.(*widget)
	require.NotNil(t, w.conf)
	name, ok := w.conf.GetConfig("general", "application_name")
	require.True(t, ok)
	assert.Equal(t, "Demo", name.StringOr(""))
}

// ── catalog ──

func TestCatalog_RegisterPanics(t *testing.T) {
	c := NewCatalog()
	c.Register("core.Widget", widgetFactory)

	assert.Panics(t, func() { c.Register("core.Widget", widgetFactory) })
	assert.Panics(t, func() { c.RegisterSingleton("", widgetFactory) })
	assert.Panics(t, func() { c.Register("core.Other", nil) })
}

func TestCatalog_Classes(t *testing.T) {
	c := NewCatalog()
	c.Register("b.Two", widgetFactory)
	c.RegisterSingleton("a.One", widgetFactory)

	assert.Equal(t, []string{"a.One", "b.Two"}, c.Classes())
	assert.True(t, c.Has("a.One"))
	assert.False(t, c.Has("c.Three"))
}

func TestCatalog_InstantiateNilParams(t *testing.T) {
	c := NewCatalog()
	c.Register("core.Widget", widgetFactory)

	got, err := c.Instantiate("core.Widget", nil)
	require.NoError(t, err)
	assert.NotNil(t, got.(*widget).params)
}
