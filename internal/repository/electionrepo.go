package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/benmoussati/nemis/internal/model"
)

// ElectionRepository provides access to elections and their region sets.
type ElectionRepository interface {
	// Create inserts a new election.
	Create(ctx context.Context, e *model.Election) error
	// Update rewrites the election's core fields, including status.
	Update(ctx context.Context, e *model.Election) error
	// GetByID loads an election by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Election, error)
	// AddRegion attaches a region to the election's configured set.
	AddRegion(ctx context.Context, electionID, regionID uuid.UUID) error
	// HasRegion reports whether the region is configured for the election.
	HasRegion(ctx context.Context, electionID, regionID uuid.UUID) (bool, error)
	// SyncStatuses advances Planned->Active and Active->Completed for every
	// election whose window has moved past the stored status, and returns
	// the number of rows changed.
	SyncStatuses(ctx context.Context, now time.Time) (int64, error)
}

// PhaseRepository provides access to election phases.
type PhaseRepository interface {
	// Create inserts a new phase.
	Create(ctx context.Context, p *model.ElectionPhase) error
	// Update rewrites an existing phase.
	Update(ctx context.Context, p *model.ElectionPhase) error
	// GetByID loads a phase by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.ElectionPhase, error)
	// ListByElection returns the election's phases ordered by start time.
	ListByElection(ctx context.Context, electionID uuid.UUID) ([]model.ElectionPhase, error)
	// HasOverlap reports whether any phase of the election other than
	// excludeID overlaps [startsAt, endsAt) under the half-open convention.
	HasOverlap(ctx context.Context, electionID, excludeID uuid.UUID, startsAt, endsAt time.Time) (bool, error)
}
