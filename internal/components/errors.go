package components

import "errors"

var (
	// ErrOutsideRoot is returned when a filesystem path escapes the
	// component root.
	ErrOutsideRoot = errors.New("path escapes filesystem root")

	// ErrNoSigningKey is returned when api_auth lists no credentials to sign
	// or verify tokens with.
	ErrNoSigningKey = errors.New("no token signing key in api_auth.credentials")

	// ErrTemplateNotFound is returned when no file exists for a template name.
	ErrTemplateNotFound = errors.New("template not found")
)
