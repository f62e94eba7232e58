package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a settings
// group is incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid bootstrap settings
	// (for example, an unknown context or log level).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings
	// (for example, a malformed listen address).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, watching without a config file).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

// ErrInvalidEnvironment is returned when an APP_*, SERVER_* or WORKERS_*
// variable cannot be converted to its field type.
var ErrInvalidEnvironment = errors.New("invalid environment variable")
