package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/benmoussati/nemis/internal/model"
)

// CandidateRepository provides access to candidacies.
type CandidateRepository interface {
	// Create inserts a new candidate.
	Create(ctx context.Context, c *model.Candidate) error
	// Update rewrites the candidate's declared election, region, party and
	// manifesto. Approval fields are only writable through Approve.
	Update(ctx context.Context, c *model.Candidate) error
	// GetByID loads a candidate by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
	// ListByElection returns the election's candidates.
	ListByElection(ctx context.Context, electionID uuid.UUID) ([]model.Candidate, error)
	// Approve flips the approval flag and stamps approver and time, only on
	// the false->true transition; approving twice is a no-op.
	Approve(ctx context.Context, id, approverID uuid.UUID, at time.Time) error
}
