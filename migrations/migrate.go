// Package migrations applies the kernel schema and application-supplied
// migration directories with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/pressly/goose/v3"
)

// VersionTable is the goose bookkeeping table used for kernel and
// application migrations alike.
const VersionTable = "kernel_db_version"

//go:embed *.sql
var embedMigrations embed.FS

// goose keeps dialect, base FS and table name in package globals.
var mu sync.Mutex

// Migrate applies the embedded kernel migrations. dialect is a goose dialect
// name such as "sqlite3" or "pgx".
func Migrate(db *sql.DB, dialect string) error {
	return up(db, dialect, embedMigrations, ".")
}

// MigrateDir applies the migrations found in dir on disk. A missing dir is
// not an error: most applications have no migrations of their own.
func MigrateDir(db *sql.DB, dialect, dir string) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return up(db, dialect, nil, dir)
}

func up(db *sql.DB, dialect string, fsys fs.FS, dir string) error {
	if db == nil {
		return fmt.Errorf("migration error: db is nil")
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(fsys)
	goose.SetTableName(VersionTable)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
