package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/benmoussati/nemis/internal/model"
)

// VoteRepository provides insert-only access to votes. Votes have no update
// or delete path; the unique (voter, election) constraint in storage is the
// final backstop against concurrent duplicate casts.
type VoteRepository interface {
	// Insert persists a new vote. A duplicate (voter, election) pair fails
	// with errs.ErrDuplicateVote.
	Insert(ctx context.Context, v *model.Vote) error
	// GetByID loads a vote by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vote, error)
	// HasVoted reports whether the voter already voted in the election.
	HasVoted(ctx context.Context, voterID, electionID uuid.UUID) (bool, error)
}

// AuditRepository provides append-only access to the audit ledger. The
// interface deliberately exposes no update or delete operation; a storage
// trigger additionally rejects mutations issued around it.
type AuditRepository interface {
	// Append inserts a new ledger entry.
	Append(ctx context.Context, e *model.AuditEntry) error
	// Recent returns the newest entries, newest first.
	Recent(ctx context.Context, limit int) ([]model.AuditEntry, error)
	// ByActor returns the newest entries of one actor, newest first.
	ByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]model.AuditEntry, error)
}

// ReportRepository provides read-only aggregate projections. Reports never
// mutate core entities.
type ReportRepository interface {
	// Turnout returns per-region turnout for an election.
	Turnout(ctx context.Context, electionID uuid.UUID) ([]model.TurnoutRow, error)
	// Winners returns the leading approved candidate per region for an election.
	Winners(ctx context.Context, electionID uuid.UUID) ([]model.WinnerRow, error)
	// RegionStatistics returns per-region voter/candidate counts.
	RegionStatistics(ctx context.Context) ([]model.RegionStats, error)
}
