package app

import "errors"

var (
	// ErrMissingIncludeFile is returned when a configured required file does
	// not exist on disk.
	ErrMissingIncludeFile = errors.New("missing include file")
	// ErrLanguageFileNotFound is returned when general.language is set but no
	// translation file for it exists in path.language_folder.
	ErrLanguageFileNotFound = errors.New("language file not found")
	// ErrApplicationPanic wraps a panic recovered from the application's Main.
	ErrApplicationPanic = errors.New("application panicked")
	// ErrAuthMethodUnknown is returned by Authenticate for a section that is
	// not one of the auth sections.
	ErrAuthMethodUnknown = errors.New("unknown auth method")
)
