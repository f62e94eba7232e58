package components

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-app-kernel/internal/callback"
)

// Filesystem gives components access to files below the application
// folder. Every path is taken relative to the root and may not leave it.
type Filesystem struct {
	root       string
	uploadPath string
}

// NewFilesystem returns a Filesystem rooted at root. An empty uploadPath
// defaults to root/uploads.
func NewFilesystem(root, uploadPath string) (*Filesystem, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty root", ErrOutsideRoot)
	}
	root = filepath.Clean(root)
	if uploadPath == "" {
		uploadPath = filepath.Join(root, "uploads")
	}
	return &Filesystem{root: root, uploadPath: filepath.Clean(uploadPath)}, nil
}

// Root returns the cleaned root directory.
func (f *Filesystem) Root() string { return f.root }

// UploadPath returns the directory uploads are stored in.
func (f *Filesystem) UploadPath() string { return f.uploadPath }

// Path resolves name against the root.
func (f *Filesystem) Path(name string) (string, error) {
	full := name
	if !filepath.IsAbs(full) {
		full = filepath.Join(f.root, name)
	}
	full = filepath.Clean(full)

	rel, err := filepath.Rel(f.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, name)
	}
	return full, nil
}

// Exists reports whether name exists below the root.
func (f *Filesystem) Exists(name string) (bool, error) {
	full, err := f.Path(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	}
	return false, err
}

// ReadFile returns the contents of name.
func (f *Filesystem) ReadFile(name string) ([]byte, error) {
	full, err := f.Path(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

// WriteFile writes data to name, creating parent directories.
func (f *Filesystem) WriteFile(name string, data []byte) error {
	full, err := f.Path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

// Method exposes "ReadFile" (name) returning a string and "WriteFile"
// (name, content).
func (f *Filesystem) Method(name string) (callback.Func, bool) {
	switch name {
	case "ReadFile":
		return func(_ context.Context, args ...any) (any, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("%w: ReadFile wants 1 argument", callback.ErrInvalidCallback)
			}
			data, err := f.ReadFile(fmt.Sprint(args[0]))
			if err != nil {
				return nil, err
			}
			return string(data), nil
		}, true
	case "WriteFile":
		return func(_ context.Context, args ...any) (any, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("%w: WriteFile wants 2 arguments", callback.ErrInvalidCallback)
			}
			return nil, f.WriteFile(fmt.Sprint(args[0]), []byte(fmt.Sprint(args[1])))
		}, true
	}
	return nil, false
}
