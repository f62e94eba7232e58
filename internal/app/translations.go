package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/MKhiriev/go-app-kernel/internal/loader"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

var languageExtensions = []string{".yaml", ".yml", ".json", ".toml"}

func findLanguageFile(folder, lang string) (string, error) {
	for _, ext := range languageExtensions {
		path := filepath.Join(folder, lang+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s.{yaml,yml,json,toml}", ErrLanguageFileNotFound, folder, lang)
}

// newPrinter builds a message printer from a translation file. Nested keys
// are joined with dots: {errors: {not_found: "..."}} registers
// "errors.not_found".
func newPrinter(lang, path string) (*message.Printer, int, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, 0, fmt.Errorf("parse language %q: %w", lang, err)
	}

	doc, err := loader.Load(path)
	if err != nil {
		return nil, 0, err
	}

	messages := make(map[string]string)
	flatten("", doc, messages)

	keys := make([]string, 0, len(messages))
	for k := range messages {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := catalog.NewBuilder(catalog.Fallback(tag))
	for _, k := range keys {
		if err := b.SetString(tag, k, messages[k]); err != nil {
			return nil, 0, fmt.Errorf("translation %q: %w", k, err)
		}
	}

	return message.NewPrinter(tag, message.Catalog(b)), len(keys), nil
}

func flatten(prefix string, m tree.Map, out map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch {
		case v.IsMap():
			flatten(key, v.Map(), out)
		case v.IsScalar():
			out[key] = strings.TrimRight(fmt.Sprint(v.Scalar()), "\n")
		}
	}
}
