package registry

import "errors"

var (
	// ErrClassNotFound is returned when a class identifier has no factory in
	// the catalog.
	ErrClassNotFound = errors.New("class not found")
	// ErrConstruction wraps errors returned by a component factory.
	ErrConstruction = errors.New("component construction failed")
)
