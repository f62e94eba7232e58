package store

import "errors"

// Sentinel errors returned by the database component. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrUnsupportedDriver is returned when the driver parameter names
	// neither sqlite3 nor pgx.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrEmptyDSN is returned when no data source name is configured.
	ErrEmptyDSN = errors.New("empty database dsn")

	// ErrSessionNotSaved is returned when an INSERT of a session completes
	// without error but affects no rows.
	ErrSessionNotSaved = errors.New("session was not saved")
)

// Low-level database operation errors. These wrap the driver error when a
// SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")
)
