// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the database component: a lazily opened
// database/sql pool over SQLite or PostgreSQL with goose migrations and a
// small session table used by session authentication.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-app-kernel/internal/callback"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
	"github.com/MKhiriev/go-app-kernel/migrations"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

const defaultMaxOpenConns = 10

// Settings are the parameters of the database component descriptor.
type Settings struct {
	Driver         string
	DSN            string
	MigrationsPath string
	MaxOpenConns   int
}

// SettingsFromParams reads Settings from a descriptor's parameters map.
func SettingsFromParams(params tree.Map) (Settings, error) {
	s := Settings{
		Driver:         params["driver"].StringOr(DriverSQLite),
		DSN:            strings.TrimSpace(params["dsn"].StringOr("")),
		MigrationsPath: params["migrations_path"].StringOr(""),
		MaxOpenConns:   params["max_open_conns"].IntOr(defaultMaxOpenConns),
	}

	switch s.Driver {
	case DriverSQLite, DriverPostgres:
	case "postgres", "postgresql":
		s.Driver = DriverPostgres
	default:
		return Settings{}, fmt.Errorf("%w: %q", ErrUnsupportedDriver, s.Driver)
	}
	if s.DSN == "" {
		return Settings{}, ErrEmptyDSN
	}
	if s.MaxOpenConns <= 0 {
		s.MaxOpenConns = defaultMaxOpenConns
	}

	return s, nil
}

// Database is the database component. The pool is opened and migrated on
// the first call to Conn, so resolving the component never touches the
// disk or the network. It is safe for concurrent use and is meant to be
// registered as a singleton.
type Database struct {
	settings   Settings
	logger     *logger.Logger
	classifier ErrorClassifier

	mu sync.Mutex
	db *sql.DB
}

// NewDatabase returns an unopened Database.
func NewDatabase(settings Settings, log *logger.Logger) *Database {
	if log == nil {
		log = logger.Nop()
	}
	d := &Database{
		settings:   settings,
		logger:     log,
		classifier: noRetryClassifier{},
	}
	if settings.Driver == DriverPostgres {
		d.classifier = NewPostgresErrorClassifier()
	}
	return d
}

// Settings returns the settings the component was built with.
func (d *Database) Settings() Settings {
	return d.settings
}

// Conn opens, pings and migrates the pool on first use and returns it.
// A failed open is not remembered; the next call tries again.
func (d *Database) Conn(ctx context.Context) (*sql.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return d.db, nil
	}

	var (
		db  *sql.DB
		err error
	)
	switch d.settings.Driver {
	case DriverPostgres:
		db, err = openPostgres(ctx, d.settings.DSN, d.settings.MaxOpenConns, d.logger)
	default:
		db, err = openSQLite(ctx, d.settings.DSN, d.logger)
	}
	if err != nil {
		return nil, err
	}

	if err = d.migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	d.db = db
	return d.db, nil
}

func (d *Database) migrate(db *sql.DB) error {
	if err := migrations.Migrate(db, d.settings.Driver); err != nil {
		d.logger.Err(err).Str("func", "*Database.migrate").Msg("kernel migrations failed")
		return err
	}
	if err := migrations.MigrateDir(db, d.settings.Driver, d.settings.MigrationsPath); err != nil {
		d.logger.Err(err).Str("func", "*Database.migrate").Str("dir", d.settings.MigrationsPath).Msg("application migrations failed")
		return err
	}
	return nil
}

// Builder returns a squirrel statement builder using the placeholder format
// of the configured driver.
func (d *Database) Builder() sq.StatementBuilderType {
	if d.settings.Driver == DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// Close releases the pool if it was opened.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// Method exposes session callbacks for auth descriptors such as
// ["database", "VerifySession"].
//
// VerifySession and SessionAuth take a session id and return a bool.
// CreateSession takes a subject and an optional time.Duration and returns
// the new session id. DeleteSession takes a session id.
func (d *Database) Method(name string) (callback.Func, bool) {
	switch name {
	case "VerifySession", "SessionAuth":
		return func(ctx context.Context, args ...any) (any, error) {
			id, err := stringArg(args, 0)
			if err != nil {
				return nil, err
			}
			return d.VerifySession(ctx, id)
		}, true
	case "CreateSession":
		return func(ctx context.Context, args ...any) (any, error) {
			subject, err := stringArg(args, 0)
			if err != nil {
				return nil, err
			}
			ttl := DefaultSessionTTL
			if len(args) > 1 {
				if dur, ok := args[1].(time.Duration); ok {
					ttl = dur
				}
			}
			return d.CreateSession(ctx, subject, ttl)
		}, true
	case "DeleteSession":
		return func(ctx context.Context, args ...any) (any, error) {
			id, err := stringArg(args, 0)
			if err != nil {
				return nil, err
			}
			return nil, d.DeleteSession(ctx, id)
		}, true
	}
	return nil, false
}

func stringArg(args []any, i int) (string, error) {
	if len(args) <= i {
		return "", fmt.Errorf("%w: missing argument %d", callback.ErrInvalidCallback, i)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %d is %T, want string", callback.ErrInvalidCallback, i, args[i])
	}
	return s, nil
}
