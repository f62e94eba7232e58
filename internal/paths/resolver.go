// Package paths resolves {key} placeholders inside the "path" section of the
// configuration tree.
package paths

import (
	"sort"
	"strings"

	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// ResolvePlaceholders returns a copy of section in which every occurrence of
// {K} inside a string value is replaced by the string value of key K.
//
// Only string-to-string substitution happens: list and mapping entries are
// copied untouched and never used as a source. Passes are repeated until no
// value changes, so chains such as app -> {mid} -> {base} resolve fully. The
// number of passes is bounded by the number of entries, which leaves cyclic
// references unresolved instead of looping.
func ResolvePlaceholders(section tree.Map) tree.Map {
	out := section.Clone()
	if out == nil {
		return tree.Map{}
	}

	keys := stringKeys(out)
	for pass := 0; pass <= len(keys); pass++ {
		if !resolvePass(out, keys) {
			break
		}
	}

	return out
}

// resolvePass performs one pass over the cross-product of string entries in
// key order and reports whether any value changed.
func resolvePass(section tree.Map, keys []string) bool {
	changed := false
	for _, source := range keys {
		replacement, _ := section[source].Str()
		token := "{" + source + "}"

		for _, target := range keys {
			if target == source {
				continue
			}
			value, _ := section[target].Str()
			if !strings.Contains(value, token) {
				continue
			}
			resolved := strings.ReplaceAll(value, token, replacement)
			if resolved == value {
				continue
			}
			section[target] = tree.Scalar(resolved)
			changed = true
		}
	}
	return changed
}

// Unresolved lists the keys whose values still contain a {key} token that
// names another entry of the section, for diagnostics.
func Unresolved(section tree.Map) []string {
	keys := stringKeys(section)
	var out []string
	for _, target := range keys {
		value, _ := section[target].Str()
		for _, source := range keys {
			if source != target && strings.Contains(value, "{"+source+"}") {
				out = append(out, target)
				break
			}
		}
	}
	return out
}

func stringKeys(section tree.Map) []string {
	keys := make([]string, 0, len(section))
	for k, v := range section {
		if _, ok := v.Str(); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
