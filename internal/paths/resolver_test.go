package paths

import (
	"testing"

	"github.com/MKhiriev/go-app-kernel/internal/tree"
	"github.com/stretchr/testify/assert"
)

func TestResolvePlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		section  map[string]any
		expected map[string]any
	}{
		{
			name:     "first order reference",
			section:  map[string]any{"base": "/srv", "app": "{base}/app"},
			expected: map[string]any{"base": "/srv", "app": "/srv/app"},
		},
		{
			name:     "second order reference resolves fully",
			section:  map[string]any{"base": "/srv", "mid": "{base}/x", "app": "{mid}/app"},
			expected: map[string]any{"base": "/srv", "mid": "/srv/x", "app": "/srv/x/app"},
		},
		{
			name:     "chain declared against key order",
			section:  map[string]any{"a": "{b}/a", "b": "{c}/b", "c": "/root"},
			expected: map[string]any{"a": "/root/b/a", "b": "/root/b", "c": "/root"},
		},
		{
			name:     "repeated token",
			section:  map[string]any{"x": "v", "y": "{x}-{x}"},
			expected: map[string]any{"x": "v", "y": "v-v"},
		},
		{
			name:     "unknown token left alone",
			section:  map[string]any{"x": "{nope}/x"},
			expected: map[string]any{"x": "{nope}/x"},
		},
		{
			name:     "non-string entries skipped",
			section:  map[string]any{"base": "/srv", "list": []any{"{base}"}, "n": 3, "app": "{base}/{n}"},
			expected: map[string]any{"base": "/srv", "list": []any{"{base}"}, "n": 3, "app": "/srv/{n}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePlaceholders(tree.MapFromAny(tt.section))
			assert.Equal(t, tt.expected, got.Interface())
		})
	}
}

func TestResolvePlaceholders_CycleTerminates(t *testing.T) {
	section := tree.MapFromAny(map[string]any{"a": "{b}", "b": "{a}"})

	got := ResolvePlaceholders(section)

	assert.Len(t, got, 2)
	assert.NotEmpty(t, Unresolved(got))
}

func TestResolvePlaceholders_DoesNotMutateInput(t *testing.T) {
	section := tree.MapFromAny(map[string]any{"base": "/srv", "app": "{base}/app"})

	_ = ResolvePlaceholders(section)

	assert.Equal(t, "{base}/app", section["app"].StringOr(""))
}

func TestResolvePlaceholders_Nil(t *testing.T) {
	assert.Equal(t, tree.Map{}, ResolvePlaceholders(nil))
}

func TestUnresolved(t *testing.T) {
	section := tree.MapFromAny(map[string]any{"base": "/srv", "app": "{base}/app", "free": "{other}"})
	assert.Equal(t, []string{"app"}, Unresolved(section))
	assert.Empty(t, Unresolved(ResolvePlaceholders(section)))
}
