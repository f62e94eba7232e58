package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-app-kernel/internal/logger"
)

func openPostgres(ctx context.Context, dsn string, maxOpenConns int, log *logger.Logger) (*sql.DB, error) {
	// establish connection
	conn, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		log.Err(err).Str("func", "openPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxOpenConns / 2)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "openPostgres").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Info().Str("func", "openPostgres").Msg("connected to database successfully")

	return conn, nil
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
