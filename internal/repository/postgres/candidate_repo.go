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

// CandidateRepo implements CandidateRepository using PostgreSQL.
type CandidateRepo struct{ db *DB }

// NewCandidateRepo constructs a candidate repository.
func NewCandidateRepo(db *DB) *CandidateRepo { return &CandidateRepo{db: db} }

// candidateWriteErr maps constraint failures shared by Create and Update.
// The composite FK onto election_region is the containment backstop.
func candidateWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if isForeignKeyViolation(err, "candidate_election_region_fkey") {
		return errs.ErrInvalidCandidateRegion
	}
	if isUniqueViolation(err, "") {
		return errs.ErrAlreadyExists
	}
	if isForeignKeyViolation(err, "") {
		return errs.ErrNotFound
	}
	return err
}

// Create inserts a new candidate row.
func (r *CandidateRepo) Create(ctx context.Context, c *model.Candidate) error {
	const q = `
INSERT INTO candidate (id, user_id, election_id, region_id, party, manifesto, is_approved)
VALUES ($1, $2, $3, $4, $5, $6, false)`
	_, err := r.db.Pool.Exec(ctx, q, c.ID, c.UserID, c.ElectionID, c.RegionID, c.Party, c.Manifesto)
	return candidateWriteErr(err)
}

// Update rewrites the candidate's declared election, region, party and
// manifesto. Approval fields are untouched; only Approve writes them.
func (r *CandidateRepo) Update(ctx context.Context, c *model.Candidate) error {
	const q = `
UPDATE candidate SET election_id=$2, region_id=$3, party=$4, manifesto=$5
WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, c.ID, c.ElectionID, c.RegionID, c.Party, c.Manifesto)
	if err != nil {
		return candidateWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

const selectCandidate = `
SELECT id, user_id, election_id, region_id, party, manifesto, is_approved, approved_at, approved_by
FROM candidate`

func scanCandidate(row pgx.Row) (*model.Candidate, error) {
	var c model.Candidate
	err := row.Scan(&c.ID, &c.UserID, &c.ElectionID, &c.RegionID, &c.Party, &c.Manifesto,
		&c.IsApproved, &c.ApprovedAt, &c.ApprovedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByID selects a candidate by ID.
func (r *CandidateRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	return scanCandidate(r.db.Pool.QueryRow(ctx, selectCandidate+` WHERE id=$1`, id))
}

// ListByElection returns the election's candidates.
func (r *CandidateRepo) ListByElection(ctx context.Context, electionID uuid.UUID) ([]model.Candidate, error) {
	rows, err := r.db.Pool.Query(ctx, selectCandidate+` WHERE election_id=$1`, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Candidate
	for rows.Next() {
		var c model.Candidate
		err = rows.Scan(&c.ID, &c.UserID, &c.ElectionID, &c.RegionID, &c.Party, &c.Manifesto,
			&c.IsApproved, &c.ApprovedAt, &c.ApprovedBy)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Approve stamps approval only on the false->true flip. Approving an already
// approved candidate leaves the original stamp intact and succeeds.
func (r *CandidateRepo) Approve(ctx context.Context, id, approverID uuid.UUID, at time.Time) error {
	const q = `
UPDATE candidate SET is_approved=true, approved_at=$2, approved_by=$3
WHERE id=$1 AND is_approved=false`
	tag, err := r.db.Pool.Exec(ctx, q, id, at, approverID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already approved; only the former is an error.
		const exists = `SELECT EXISTS (SELECT 1 FROM candidate WHERE id=$1)`
		var ok bool
		if err := r.db.Pool.QueryRow(ctx, exists, id).Scan(&ok); err != nil {
			return err
		}
		if !ok {
			return errs.ErrNotFound
		}
	}
	return nil
}
