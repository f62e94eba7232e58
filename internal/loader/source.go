package loader

import (
	"sync/atomic"

	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// Source holds the current user configuration. It is read by every
// bootstrap and swapped atomically by Reload, so concurrent readers always
// see a complete document.
type Source struct {
	path    string
	current atomic.Pointer[tree.Map]
}

// NewSource loads path. An empty path gives a source holding an empty tree.
func NewSource(path string) (*Source, error) {
	s := &Source{path: path}
	if path == "" {
		s.store(tree.Map{})
		return s, nil
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Static wraps an in-memory tree.
func Static(m tree.Map) *Source {
	s := &Source{}
	s.store(m.Clone())
	return s
}

// Path returns the file the source reads, if any.
func (s *Source) Path() string {
	return s.path
}

// Snapshot returns a private copy of the current tree.
func (s *Source) Snapshot() tree.Map {
	m := s.current.Load()
	if m == nil {
		return tree.Map{}
	}
	return m.Clone()
}

// Reload re-reads the file. On error the previous tree is kept.
func (s *Source) Reload() error {
	if s.path == "" {
		return nil
	}
	m, err := Load(s.path)
	if err != nil {
		return err
	}
	s.store(m)
	return nil
}

func (s *Source) store(m tree.Map) {
	if m == nil {
		m = tree.Map{}
	}
	s.current.Store(&m)
}
