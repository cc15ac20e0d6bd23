// Package postgres contains PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPool is a minimal abstraction over a Postgres connection pool,
// used by repositories. It is implemented by *pgxpool.Pool and pgxmock.PgxPoolIface.
type PgxPool interface {
	// Exec executes a SQL command and returns the command tag.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	// Query executes a SELECT and returns a rows iterator.
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	// QueryRow executes a query expected to return at most one row.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	// BeginTx starts a transaction with the provided options.
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	// Close shuts down the pool and frees resources.
	Close()
}

// DB wraps pgxpool.Pool to satisfy repository constructors and allow testing.
type DB struct{ Pool PgxPool }

// New creates a new connection pool for the given DSN.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &DB{Pool: pool}, nil
}

// Close closes the underlying pool.
func (db *DB) Close() { db.Pool.Close() }

// PostgreSQL error codes the repositories translate into sentinels.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeExclusionViolation  = "23P01"
	codeRaiseException      = "P0001"
)

// asPgError unwraps err into *pgconn.PgError, or nil.
func asPgError(err error) *pgconn.PgError {
	var pg *pgconn.PgError
	if errors.As(err, &pg) {
		return pg
	}
	return nil
}

// isUniqueViolation reports whether the error is a unique constraint
// violation; with a non-empty constraint name it matches only that constraint.
func isUniqueViolation(err error, constraint string) bool {
	pg := asPgError(err)
	if pg == nil || pg.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pg.ConstraintName == constraint
}

// isForeignKeyViolation reports whether the error is a foreign key violation
// of the named constraint (any constraint when the name is empty).
func isForeignKeyViolation(err error, constraint string) bool {
	pg := asPgError(err)
	if pg == nil || pg.Code != codeForeignKeyViolation {
		return false
	}
	return constraint == "" || pg.ConstraintName == constraint
}

// isExclusionViolation reports whether the error is an exclusion constraint
// violation (the phase-overlap backstop).
func isExclusionViolation(err error) bool {
	pg := asPgError(err)
	return pg != nil && pg.Code == codeExclusionViolation
}

// isAuditProtectViolation reports whether the error was raised by the
// audit_log_protect trigger.
func isAuditProtectViolation(err error) bool {
	pg := asPgError(err)
	return pg != nil && pg.Code == codeRaiseException && pg.Message == "audit log entries are immutable"
}
