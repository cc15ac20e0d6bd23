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

// ElectionRepo implements ElectionRepository using PostgreSQL.
type ElectionRepo struct{ db *DB }

// NewElectionRepo constructs an election repository.
func NewElectionRepo(db *DB) *ElectionRepo { return &ElectionRepo{db: db} }

// Create inserts a new election row.
func (r *ElectionRepo) Create(ctx context.Context, e *model.Election) error {
	const q = `
INSERT INTO election (id, name, type, start_date, end_date, status, admin_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Pool.Exec(ctx, q, e.ID, e.Name, e.Type, e.StartDate, e.EndDate, string(e.Status), e.AdminID)
	return err
}

// Update rewrites the election's core fields, including status.
func (r *ElectionRepo) Update(ctx context.Context, e *model.Election) error {
	const q = `
UPDATE election SET name=$2, type=$3, start_date=$4, end_date=$5, status=$6
WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, e.ID, e.Name, e.Type, e.StartDate, e.EndDate, string(e.Status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// GetByID selects an election by ID.
func (r *ElectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Election, error) {
	const q = `
SELECT id, name, type, start_date, end_date, status, admin_id, created_at
FROM election WHERE id=$1`
	var e model.Election
	var status string
	err := r.db.Pool.QueryRow(ctx, q, id).
		Scan(&e.ID, &e.Name, &e.Type, &e.StartDate, &e.EndDate, &status, &e.AdminID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	e.Status = model.ElectionStatus(status)
	return &e, nil
}

// AddRegion attaches a region to the election's configured set.
func (r *ElectionRepo) AddRegion(ctx context.Context, electionID, regionID uuid.UUID) error {
	const q = `INSERT INTO election_region (election_id, region_id) VALUES ($1, $2)`
	_, err := r.db.Pool.Exec(ctx, q, electionID, regionID)
	if isUniqueViolation(err, "") {
		return errs.ErrAlreadyExists
	}
	if isForeignKeyViolation(err, "") {
		return errs.ErrNotFound
	}
	return err
}

// HasRegion reports whether the region is configured for the election.
func (r *ElectionRepo) HasRegion(ctx context.Context, electionID, regionID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM election_region WHERE election_id=$1 AND region_id=$2)`
	var ok bool
	if err := r.db.Pool.QueryRow(ctx, q, electionID, regionID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// SyncStatuses advances every lagging election in one statement. Transitions
// are forward-only: Planned moves to Active or Completed once the window has
// started or closed, Active moves to Completed once it has closed. Cancelled
// and Completed rows are untouched.
func (r *ElectionRepo) SyncStatuses(ctx context.Context, now time.Time) (int64, error) {
	const q = `
UPDATE election SET status = CASE
    WHEN end_date < $1 THEN 'Completed'
    ELSE 'Active'
END
WHERE status IN ('Planned', 'Active')
  AND ((status = 'Planned' AND start_date <= $1) OR (status = 'Active' AND end_date < $1))`
	tag, err := r.db.Pool.Exec(ctx, q, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
