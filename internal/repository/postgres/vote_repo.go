package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/benmoussati/nemis/internal/errs"
	"github.com/benmoussati/nemis/internal/model"
)

// VoteRepo implements VoteRepository using PostgreSQL. There is no update or
// delete method: vote rows are immutable once written.
type VoteRepo struct{ db *DB }

// NewVoteRepo constructs a vote repository.
func NewVoteRepo(db *DB) *VoteRepo { return &VoteRepo{db: db} }

// Insert persists a new vote. The unique (voter_id, election_id) index is
// the race-safety guarantee: of two concurrent identical casts exactly one
// lands, the other returns ErrDuplicateVote.
func (r *VoteRepo) Insert(ctx context.Context, v *model.Vote) error {
	const q = `
INSERT INTO vote (id, voter_id, election_id, candidate_id, cast_at, verification_code)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Pool.Exec(ctx, q, v.ID, v.VoterID, v.ElectionID, v.CandidateID, v.CastAt, v.VerificationCode)
	if isUniqueViolation(err, "vote_voter_election_uq") {
		return errs.ErrDuplicateVote
	}
	if isForeignKeyViolation(err, "") {
		return errs.ErrNotFound
	}
	return err
}

// GetByID selects a vote by ID.
func (r *VoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Vote, error) {
	const q = `
SELECT id, voter_id, election_id, candidate_id, cast_at, verification_code
FROM vote WHERE id=$1`
	var v model.Vote
	err := r.db.Pool.QueryRow(ctx, q, id).
		Scan(&v.ID, &v.VoterID, &v.ElectionID, &v.CandidateID, &v.CastAt, &v.VerificationCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// HasVoted reports whether the voter already voted in the election.
func (r *VoteRepo) HasVoted(ctx context.Context, voterID, electionID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM vote WHERE voter_id=$1 AND election_id=$2)`
	var ok bool
	if err := r.db.Pool.QueryRow(ctx, q, voterID, electionID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
