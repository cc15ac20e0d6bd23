package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/benmoussati/nemis/internal/errs"
	"github.com/benmoussati/nemis/internal/model"
)

// AccountRepo implements AccountRepository using PostgreSQL.
type AccountRepo struct{ db *DB }

// NewAccountRepo constructs an account repository.
func NewAccountRepo(db *DB) *AccountRepo { return &AccountRepo{db: db} }

const insertAccount = `
INSERT INTO user_account (id, cnie, name, role, is_active)
VALUES ($1, $2, $3, $4, $5)`

// Create inserts a new account row.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	_, err := r.db.Pool.Exec(ctx, insertAccount, a.ID, a.CNIE, a.Name, string(a.Role), a.IsActive)
	if isUniqueViolation(err, "") {
		return errs.ErrAlreadyExists
	}
	return err
}

// CreateWithVoter inserts an account and its voter profile in one transaction.
// Voter provisioning is all-or-nothing: a failed voter insert rolls back the
// account row too.
func (r *AccountRepo) CreateWithVoter(ctx context.Context, a *model.Account, v *model.Voter) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	if _, err = tx.Exec(ctx, insertAccount, a.ID, a.CNIE, a.Name, string(a.Role), a.IsActive); err != nil {
		if isUniqueViolation(err, "") {
			err = errs.ErrAlreadyExists
		}
		return err
	}

	const insVoter = `
INSERT INTO voter (id, user_id, region_id, is_eligible, registered_at, birth_date)
VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err = tx.Exec(ctx, insVoter, v.ID, v.UserID, v.RegionID, v.IsEligible, v.RegisteredAt, v.BirthDate); err != nil {
		if isUniqueViolation(err, "") {
			err = errs.ErrAlreadyExists
		}
		return err
	}
	return nil
}

const selectAccount = `
SELECT id, cnie, name, role, is_active, created_at, last_login_at
FROM user_account`

func scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	var role string
	if err := row.Scan(&a.ID, &a.CNIE, &a.Name, &role, &a.IsActive, &a.CreatedAt, &a.LastLoginAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	a.Role = model.Role(role)
	return &a, nil
}

// GetByID selects an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return scanAccount(r.db.Pool.QueryRow(ctx, selectAccount+` WHERE id=$1`, id))
}

// GetByCNIE selects an account by its natural ID.
func (r *AccountRepo) GetByCNIE(ctx context.Context, cnie string) (*model.Account, error) {
	return scanAccount(r.db.Pool.QueryRow(ctx, selectAccount+` WHERE cnie=$1`, cnie))
}

// SetActive flips the active flag.
func (r *AccountRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	const q = `UPDATE user_account SET is_active=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// RecordLogin stamps the last-login timestamp.
func (r *AccountRepo) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	const q = `UPDATE user_account SET last_login_at=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes an account; dependent voter/candidate rows cascade.
func (r *AccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM user_account WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
