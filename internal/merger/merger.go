// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package merger

import (
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-app-kernel/internal/codec"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// SectionBuilder produces one or more sections of the final tree. It sees
// the sections built by the builders that ran before it and the complete
// user configuration.
type SectionBuilder func(built, user tree.Map) (tree.Map, error)

// Merger turns a user configuration into the final configuration tree by
// running its section builders in a fixed order.
type Merger struct {
	basePath string
	decoder  codec.Decoder
	builders []SectionBuilder
}

// Option customises a [Merger].
type Option func(*Merger)

// WithBasePath sets the default path.base_path. Relative paths are kept
// as given; trailing separators are removed.
func WithBasePath(basePath string) Option {
	return func(m *Merger) {
		if basePath != "" {
			m.basePath = filepath.Clean(basePath)
		}
	}
}

// WithDecoder replaces the decoder used for encoded browser parameters.
func WithDecoder(d codec.Decoder) Option {
	return func(m *Merger) {
		if d != nil {
			m.decoder = d
		}
	}
}

// WithBuilder appends a builder that runs after the built-in ones.
func WithBuilder(b SectionBuilder) Option {
	return func(m *Merger) {
		m.builders = append(m.builders, b)
	}
}

// New creates a Merger. The built-in builders run in the order general,
// auth, path, testing, required_objects: path needs the application name
// and required_objects needs the resolved paths.
func New(opts ...Option) *Merger {
	m := &Merger{
		basePath: workingDir(),
		decoder:  codec.NewBase64(),
	}
	m.builders = []SectionBuilder{
		m.buildGeneral,
		m.buildAuth,
		m.buildPath,
		m.buildTesting,
		m.buildRequiredObjects,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge builds the final configuration tree. Sections of user that no
// builder produces are copied through unchanged. Merge has no side effects
// outside the returned tree.
func (m *Merger) Merge(user tree.Map) (tree.Map, error) {
	if user == nil {
		user = tree.Map{}
	}

	built := tree.Map{}
	for _, build := range m.builders {
		sections, err := build(built, user)
		if err != nil {
			return nil, err
		}
		for name, section := range sections {
			built[name] = section
		}
	}

	for name, section := range user {
		if _, ok := built[name]; !ok {
			built[name] = section.Clone()
		}
	}

	return built, nil
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
