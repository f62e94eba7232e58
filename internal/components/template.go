package components

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Masterminds/sprig/v3"

	"github.com/MKhiriev/go-app-kernel/internal/callback"
)

// Template renders html templates from path.template_path with the sprig
// function set. Parsed templates are kept for the life of the component.
type Template struct {
	dir       string
	extension string

	mu     sync.Mutex
	parsed map[string]*template.Template
}

func NewTemplate(dir, extension string) *Template {
	return &Template{
		dir:       dir,
		extension: extension,
		parsed:    make(map[string]*template.Template),
	}
}

// Render executes the template called name (without extension) with data.
func (t *Template) Render(name string, data any) (string, error) {
	tpl, err := t.lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func (t *Template) lookup(name string) (*template.Template, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tpl, ok := t.parsed[name]; ok {
		return tpl, nil
	}

	path := filepath.Join(t.dir, name+t.extension)
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, err
	}

	tpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	t.parsed[name] = tpl
	return tpl, nil
}

// Method exposes "Render" (name, data).
func (t *Template) Method(name string) (callback.Func, bool) {
	if name != "Render" {
		return nil, false
	}
	return func(_ context.Context, args ...any) (any, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: Render wants a template name", callback.ErrInvalidCallback)
		}
		var data any
		if len(args) > 1 {
			data = args[1]
		}
		return t.Render(fmt.Sprint(args[0]), data)
	}, true
}
