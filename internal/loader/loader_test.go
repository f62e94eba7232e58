package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

const (
	jsonDoc = `{"general": {"application_name": "Demo", "items_per_page": 30, "required_files": ["a.yaml"]}}`
	yamlDoc = `
general:
  application_name: Demo
  items_per_page: 30
  required_files:
    - a.yaml
`
	tomlDoc = `
[general]
application_name = "Demo"
items_per_page = 30
required_files = ["a.yaml"]
`
	hclDoc = `
general {
  application_name = "Demo"
  items_per_page   = 30
  required_files   = ["a.yaml"]
}
`
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// ── formats ──

func TestLoad_AllFormatsAgree(t *testing.T) {
	tests := []struct {
		file, body string
	}{
		{"app.json", jsonDoc},
		{"app.yaml", yamlDoc},
		{"app.yml", yamlDoc},
		{"app.toml", tomlDoc},
		{"app.hcl", hclDoc},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, err := Load(writeFile(t, tt.file, tt.body))
			require.NoError(t, err)

			general := got.Section("general")
			assert.Equal(t, "Demo", general["application_name"].StringOr(""))
			assert.Equal(t, 30, general["items_per_page"].IntOr(0))
			assert.Equal(t, []string{"a.yaml"}, general["required_files"].StringList())
		})
	}
}

func TestParse_HCLLabelledBlocks(t *testing.T) {
	doc := `
required_objects "widget" {
  class_identifier = "core.Widget"
  parameters {
    size    = 3
    enabled = true
    ratio   = 0.5
  }
}
api_auth {
  enable   = true
  callback = ["token", "Verify"]
}
`
	got, err := Parse([]byte(doc), FormatHCL)
	require.NoError(t, err)

	class, ok := got.Get("required_objects", "widget", "class_identifier")
	require.True(t, ok)
	assert.Equal(t, "core.Widget", class.StringOr(""))

	size, _ := got.Get("required_objects", "widget", "parameters", "size")
	assert.Equal(t, 3, size.IntOr(0))
	enabled, _ := got.Get("required_objects", "widget", "parameters", "enabled")
	assert.True(t, enabled.BoolOr(false))
	ratio, _ := got.Get("required_objects", "widget", "parameters", "ratio")
	assert.Equal(t, 0.5, ratio.Scalar())

	cb, _ := got.Get("api_auth", "callback")
	assert.Equal(t, []string{"token", "Verify"}, cb.StringList())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name, format, body string
		target             error
	}{
		{"unknown format", "ini", "a=1", ErrUnsupportedFormat},
		{"top level list", FormatJSON, `[1, 2]`, ErrNotAMapping},
		{"broken json", FormatJSON, `{"a":`, nil},
		{"broken hcl", FormatHCL, `general {`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body), tt.format)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	got, err := Parse([]byte("  \n"), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load(writeFile(t, "app.ini", "a=1"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

// ── source ──

func TestSource_ReloadSwapsTree(t *testing.T) {
	path := writeFile(t, "app.json", `{"general": {"application_name": "One"}}`)

	s, err := NewSource(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())

	v, _ := s.Snapshot().Get("general", "application_name")
	assert.Equal(t, "One", v.StringOr(""))

	require.NoError(t, os.WriteFile(path, []byte(`{"general": {"application_name": "Two"}}`), 0o600))
	require.NoError(t, s.Reload())

	v, _ = s.Snapshot().Get("general", "application_name")
	assert.Equal(t, "Two", v.StringOr(""))
}

func TestSource_ReloadErrorKeepsPrevious(t *testing.T) {
	path := writeFile(t, "app.json", `{"general": {"application_name": "One"}}`)
	s, err := NewSource(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))
	assert.Error(t, s.Reload())

	v, _ := s.Snapshot().Get("general", "application_name")
	assert.Equal(t, "One", v.StringOr(""))
}

func TestSource_SnapshotIsPrivate(t *testing.T) {
	s := Static(tree.Map{"general": tree.Object(tree.Map{"application_name": tree.Scalar("Demo")})})

	snap := s.Snapshot()
	snap.Set(tree.Scalar("Changed"), "general", "application_name")

	v, _ := s.Snapshot().Get("general", "application_name")
	assert.Equal(t, "Demo", v.StringOr(""))
}

func TestNewSource_EmptyPath(t *testing.T) {
	s, err := NewSource("")
	require.NoError(t, err)
	assert.Empty(t, s.Snapshot())
	assert.NoError(t, s.Reload())
}
