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

// PhaseRepo implements PhaseRepository using PostgreSQL.
type PhaseRepo struct{ db *DB }

// NewPhaseRepo constructs a phase repository.
func NewPhaseRepo(db *DB) *PhaseRepo { return &PhaseRepo{db: db} }

// Create inserts a new phase row. The exclusion constraint backs the overlap
// rule under concurrency and maps to ErrPhaseOverlap.
func (r *PhaseRepo) Create(ctx context.Context, p *model.ElectionPhase) error {
	const q = `
INSERT INTO election_phase (id, election_id, name, starts_at, ends_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Pool.Exec(ctx, q, p.ID, p.ElectionID, p.Name, p.StartsAt, p.EndsAt)
	if isExclusionViolation(err) {
		return errs.ErrPhaseOverlap
	}
	if isForeignKeyViolation(err, "") {
		return errs.ErrNotFound
	}
	return err
}

// Update rewrites an existing phase row.
func (r *PhaseRepo) Update(ctx context.Context, p *model.ElectionPhase) error {
	const q = `
UPDATE election_phase SET name=$2, starts_at=$3, ends_at=$4
WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, p.ID, p.Name, p.StartsAt, p.EndsAt)
	if err != nil {
		if isExclusionViolation(err) {
			return errs.ErrPhaseOverlap
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// GetByID selects a phase by ID.
func (r *PhaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.ElectionPhase, error) {
	const q = `
SELECT id, election_id, name, starts_at, ends_at
FROM election_phase WHERE id=$1`
	var p model.ElectionPhase
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.ElectionID, &p.Name, &p.StartsAt, &p.EndsAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByElection returns the election's phases ordered by start time.
func (r *PhaseRepo) ListByElection(ctx context.Context, electionID uuid.UUID) ([]model.ElectionPhase, error) {
	const q = `
SELECT id, election_id, name, starts_at, ends_at
FROM election_phase WHERE election_id=$1 ORDER BY starts_at`
	rows, err := r.db.Pool.Query(ctx, q, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ElectionPhase
	for rows.Next() {
		var p model.ElectionPhase
		if err = rows.Scan(&p.ID, &p.ElectionID, &p.Name, &p.StartsAt, &p.EndsAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// HasOverlap reports whether any other phase of the election intersects
// [startsAt, endsAt) half-open: s1 < e2 AND s2 < e1.
func (r *PhaseRepo) HasOverlap(ctx context.Context, electionID, excludeID uuid.UUID, startsAt, endsAt time.Time) (bool, error) {
	const q = `
SELECT EXISTS (
    SELECT 1 FROM election_phase
    WHERE election_id=$1 AND id<>$2 AND starts_at<$4 AND $3<ends_at
)`
	var ok bool
	if err := r.db.Pool.QueryRow(ctx, q, electionID, excludeID, startsAt, endsAt).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
