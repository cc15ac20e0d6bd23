package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/benmoussati/nemis/internal/errs"
	"github.com/benmoussati/nemis/internal/model"
)

// RegionRepo implements RegionRepository using PostgreSQL.
type RegionRepo struct{ db *DB }

// NewRegionRepo constructs a region repository.
func NewRegionRepo(db *DB) *RegionRepo { return &RegionRepo{db: db} }

// Create inserts a new region row.
func (r *RegionRepo) Create(ctx context.Context, reg *model.Region) error {
	const q = `INSERT INTO region (id, name, population) VALUES ($1, $2, $3)`
	_, err := r.db.Pool.Exec(ctx, q, reg.ID, reg.Name, reg.Population)
	if isUniqueViolation(err, "") {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects a region by ID.
func (r *RegionRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Region, error) {
	const q = `SELECT id, name, population FROM region WHERE id=$1`
	var reg model.Region
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&reg.ID, &reg.Name, &reg.Population); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

// List returns all regions ordered by name.
func (r *RegionRepo) List(ctx context.Context) ([]model.Region, error) {
	const q = `SELECT id, name, population FROM region ORDER BY name`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Region
	for rows.Next() {
		var reg model.Region
		if err = rows.Scan(&reg.ID, &reg.Name, &reg.Population); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

// VoterRepo implements VoterRepository using PostgreSQL.
type VoterRepo struct{ db *DB }

// NewVoterRepo constructs a voter repository.
func NewVoterRepo(db *DB) *VoterRepo { return &VoterRepo{db: db} }

const selectVoter = `
SELECT id, user_id, region_id, is_eligible, registered_at, birth_date
FROM voter`

func scanVoter(row pgx.Row) (*model.Voter, error) {
	var v model.Voter
	if err := row.Scan(&v.ID, &v.UserID, &v.RegionID, &v.IsEligible, &v.RegisteredAt, &v.BirthDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// GetByID selects a voter by ID.
func (r *VoterRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Voter, error) {
	return scanVoter(r.db.Pool.QueryRow(ctx, selectVoter+` WHERE id=$1`, id))
}

// GetByUserID selects a voter by its owning account.
func (r *VoterRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Voter, error) {
	return scanVoter(r.db.Pool.QueryRow(ctx, selectVoter+` WHERE user_id=$1`, userID))
}

// SetEligibility flips the eligibility flag.
func (r *VoterRepo) SetEligibility(ctx context.Context, id uuid.UUID, eligible bool) error {
	const q = `UPDATE voter SET is_eligible=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, eligible)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
