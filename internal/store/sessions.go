package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-app-kernel/internal/logger"
)

// DefaultSessionTTL is used by CreateSession callbacks that pass no lifetime.
const DefaultSessionTTL = 24 * time.Hour

const sessionsTable = "kernel_sessions"

// Pauses between attempts of a retryable operation.
var retryDelays = []time.Duration{time.Second, 3 * time.Second, 5 * time.Second}

// VerifySession reports whether id names an unexpired session.
func (d *Database) VerifySession(ctx context.Context, id string) (bool, error) {
	log := logger.FromContext(ctx)

	if id == "" {
		return false, nil
	}

	db, err := d.Conn(ctx)
	if err != nil {
		return false, err
	}

	query, args, err := d.Builder().
		Select("COUNT(*)").
		From(sessionsTable).
		Where(sq.Eq{"session_id": id}).
		Where(sq.Gt{"expires_at": time.Now().UTC()}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	err = d.withRetry(ctx, func() error {
		return db.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		log.Err(err).Str("func", "*Database.VerifySession").Msg("error querying session")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count > 0, nil
}

// CreateSession stores a session for subject valid for ttl and returns its id.
func (d *Database) CreateSession(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	log := logger.FromContext(ctx)

	db, err := d.Conn(ctx)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	query, args, err := d.Builder().
		Insert(sessionsTable).
		Columns("session_id", "subject", "created_at", "expires_at").
		Values(id, subject, now, now.Add(ttl)).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = d.withRetry(ctx, func() error {
		res, execErr := db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*Database.CreateSession").Msg("error saving session")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return "", ErrSessionNotSaved
	}

	return id, nil
}

// DeleteSession removes the session. Deleting an unknown id is not an error.
func (d *Database) DeleteSession(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	db, err := d.Conn(ctx)
	if err != nil {
		return err
	}

	query, args, err := d.Builder().
		Delete(sessionsTable).
		Where(sq.Eq{"session_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = d.withRetry(ctx, func() error {
		_, execErr := db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*Database.DeleteSession").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// withRetry runs op, repeating it after each delay in retryDelays while the
// classifier considers the error transient.
func (d *Database) withRetry(ctx context.Context, op func() error) error {
	err := op()
	for _, delay := range retryDelays {
		if err == nil || d.classifier.Classify(err) != Retryable {
			return err
		}
		d.logger.Warn().Err(err).Str("pg_code", postgresError(err)).Dur("delay", delay).Msg("retrying database operation")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		err = op()
	}
	return err
}
