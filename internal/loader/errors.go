package loader

import "errors"

var (
	// ErrUnsupportedFormat is returned for file extensions no decoder handles.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
	// ErrNotAMapping is returned when a document's top level is not a mapping.
	ErrNotAMapping = errors.New("configuration document is not a mapping")
)
