package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/benmoussati/nemis/internal/model"
)

// RegionRepository provides access to administrative regions.
type RegionRepository interface {
	// Create inserts a new region.
	Create(ctx context.Context, r *model.Region) error
	// GetByID loads a region by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Region, error)
	// List returns all regions ordered by name.
	List(ctx context.Context) ([]model.Region, error)
}

// VoterRepository provides access to voter profiles.
type VoterRepository interface {
	// GetByID loads a voter by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Voter, error)
	// GetByUserID loads a voter by its owning account.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Voter, error)
	// SetEligibility flips the eligibility flag.
	SetEligibility(ctx context.Context, id uuid.UUID, eligible bool) error
}
