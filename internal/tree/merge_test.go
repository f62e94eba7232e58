package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Merge ─────────────────────────────────────────────────────────────────────

func TestMergeMaps_UserOverridesAtEveryLevel(t *testing.T) {
	defaults := MapFromAny(map[string]any{
		"general": map[string]any{
			"timezone":       "UTC",
			"items_per_page": 20,
			"parameters": map[string]any{
				"context": "browser",
				"option":  "index",
			},
		},
		"path": map[string]any{"base_path": "/srv"},
	})
	user := MapFromAny(map[string]any{
		"general": map[string]any{
			"timezone": "Europe/Berlin",
			"parameters": map[string]any{
				"option": "edit",
			},
		},
	})

	merged := MergeMaps(defaults, user)

	tz, ok := merged.Get("general", "timezone")
	require.True(t, ok)
	assert.Equal(t, "Europe/Berlin", tz.StringOr(""))

	option, _ := merged.Get("general", "parameters", "option")
	assert.Equal(t, "edit", option.StringOr(""))

	context, _ := merged.Get("general", "parameters", "context")
	assert.Equal(t, "browser", context.StringOr(""), "keys absent from user must survive")

	perPage, _ := merged.Get("general", "items_per_page")
	assert.Equal(t, 20, perPage.IntOr(0))

	base, _ := merged.Get("path", "base_path")
	assert.Equal(t, "/srv", base.StringOr(""))
}

func TestMergeMaps_ListsReplacedWholesale(t *testing.T) {
	defaults := Map{"files": Strings("a.yaml", "b.yaml", "c.yaml")}
	user := Map{"files": Strings("z.yaml")}

	merged := MergeMaps(defaults, user)

	assert.Equal(t, []string{"z.yaml"}, merged["files"].StringList())
}

func TestMergeMaps_KindMismatchRightWins(t *testing.T) {
	tests := []struct {
		name     string
		defaults Value
		user     Value
	}{
		{"map replaced by scalar", Object(Map{"a": Scalar(1)}), Scalar("flat")},
		{"scalar replaced by map", Scalar("flat"), Object(Map{"a": Scalar(1)})},
		{"list replaced by map", Strings("x"), Object(Map{"a": Scalar(1)})},
		{"map replaced by list", Object(Map{"a": Scalar(1)}), Strings("x")},
		{"scalar replaced by null", Scalar(3), Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := MergeMaps(Map{"k": tt.defaults}, Map{"k": tt.user})
			assert.True(t, merged["k"].Equal(tt.user))
		})
	}
}

func TestMergeMaps_Idempotent(t *testing.T) {
	defaults := MapFromAny(map[string]any{
		"general": map[string]any{"a": 1, "b": []any{"x", "y"}, "c": map[string]any{"d": true}},
		"auth":    map[string]any{"enable": false},
	})
	user := MapFromAny(map[string]any{
		"general": map[string]any{"b": []any{"z"}, "c": map[string]any{"e": "new"}},
		"extra":   map[string]any{"k": "v"},
	})

	once := MergeMaps(defaults, user)
	twice := MergeMaps(once, user)

	assert.True(t, once.Equal(twice))
}

func TestMergeMaps_DoesNotMutateInputs(t *testing.T) {
	defaults := MapFromAny(map[string]any{"s": map[string]any{"a": 1}})
	user := MapFromAny(map[string]any{"s": map[string]any{"b": 2}})

	merged := MergeMaps(defaults, user)
	merged.Set(Scalar(99), "s", "a")

	a, _ := defaults.Get("s", "a")
	assert.Equal(t, 1, a.IntOr(0))
	_, hasB := defaults.Get("s", "b")
	assert.False(t, hasB)
}

func TestMergeMaps_NilInputs(t *testing.T) {
	assert.Equal(t, Map{}, MergeMaps(nil, nil))

	merged := MergeMaps(nil, Map{"a": Scalar("b")})
	assert.Equal(t, "b", merged["a"].StringOr(""))
}
