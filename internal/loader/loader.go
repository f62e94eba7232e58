// Package loader reads user configuration documents into configuration
// trees. JSON, YAML, TOML and HCL are supported, chosen by file extension.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// Format names accepted by Parse.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatHCL  = "hcl"
)

type decodeFunc func(data []byte, name string) (any, error)

var decoders = map[string]decodeFunc{
	FormatJSON: decodeJSON,
	FormatYAML: decodeYAML,
	FormatTOML: decodeTOML,
	FormatHCL:  decodeHCL,
}

// FormatOf maps a file name to its format by extension.
func FormatOf(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Load reads and parses the file at path.
func Load(path string) (tree.Map, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parse(data, format, path)
}

// Parse decodes data in the given format. An empty document gives an empty
// tree.
func Parse(data []byte, format string) (tree.Map, error) {
	return parse(data, format, "<"+format+">")
}

func parse(data []byte, format, name string) (tree.Map, error) {
	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return tree.Map{}, nil
	}

	raw, err := decode(data, name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	v := tree.FromAny(raw)
	switch {
	case v.IsMap():
		return v.Map(), nil
	case v.IsNull():
		return tree.Map{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotAMapping, name)
	}
}

func decodeJSON(data []byte, _ string) (any, error) {
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeYAML(data []byte, _ string) (any, error) {
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeTOML(data []byte, _ string) (any, error) {
	out := map[string]any{}
	if _, err := toml.Decode(string(data), &out); err != nil {
		return nil, err
	}
	return out, nil
}
