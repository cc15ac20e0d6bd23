package postgres

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/benmoussati/nemis/internal/errs"
	"github.com/benmoussati/nemis/internal/model"
)

// AuditRepo implements AuditRepository using PostgreSQL. The type exposes no
// update or delete: the ledger is append-only by construction, and the
// audit_log_protect trigger enforces the same rule against raw SQL.
type AuditRepo struct{ db *DB }

// NewAuditRepo constructs an audit repository.
func NewAuditRepo(db *DB) *AuditRepo { return &AuditRepo{db: db} }

// Append inserts a new ledger entry.
func (r *AuditRepo) Append(ctx context.Context, e *model.AuditEntry) error {
	const q = `
INSERT INTO audit_log (id, actor_id, action, table_name, record_id, ip_address, details, logged_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Pool.Exec(ctx, q,
		e.ID, e.ActorID, e.Action, e.TableName, e.RecordID, e.IPAddress, e.Details, e.LoggedAt)
	if isForeignKeyViolation(err, "") {
		return errs.ErrNotFound
	}
	if isAuditProtectViolation(err) {
		return errs.ErrAuditLogImmutable
	}
	return err
}

const selectAudit = `
SELECT id, actor_id, action, table_name, record_id, ip_address, details, logged_at
FROM audit_log`

func collectAuditRows(rows pgx.Rows) ([]model.AuditEntry, error) {
	defer rows.Close()
	var out []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.TableName, &e.RecordID,
			&e.IPAddress, &e.Details, &e.LoggedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Recent returns the newest entries, newest first.
func (r *AuditRepo) Recent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	rows, err := r.db.Pool.Query(ctx, selectAudit+` ORDER BY logged_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectAuditRows(rows)
}

// ByActor returns the newest entries of one actor, newest first.
func (r *AuditRepo) ByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]model.AuditEntry, error) {
	rows, err := r.db.Pool.Query(ctx, selectAudit+` WHERE actor_id=$1 ORDER BY logged_at DESC LIMIT $2`, actorID, limit)
	if err != nil {
		return nil, err
	}
	return collectAuditRows(rows)
}
