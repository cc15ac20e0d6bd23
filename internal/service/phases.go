package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/benmoussati/nemis/internal/errs"
	"github.com/benmoussati/nemis/internal/model"
	"github.com/benmoussati/nemis/internal/repository"
)

// PhaseInput carries the writable fields of an election phase.
type PhaseInput struct {
	Name     string
	StartsAt time.Time
	EndsAt   time.Time
}

// PhaseService manages election phases and enforces the non-overlap rule.
type PhaseService interface {
	// Define creates a phase inside an election's timeline.
	Define(ctx context.Context, electionID uuid.UUID, in PhaseInput) (*model.ElectionPhase, error)
	// Update rewrites a phase, excluding it from its own overlap check.
	Update(ctx context.Context, id uuid.UUID, in PhaseInput) (*model.ElectionPhase, error)
	// List returns an election's phases ordered by start time.
	List(ctx context.Context, electionID uuid.UUID) ([]model.ElectionPhase, error)
}

type PhaseServiceImpl struct {
	phases repository.PhaseRepository
}

// NewPhaseService constructs PhaseService with required dependencies.
func NewPhaseService(phases repository.PhaseRepository) *PhaseServiceImpl {
	return &PhaseServiceImpl{phases: phases}
}

func validatePhaseInput(in PhaseInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("validation: empty phase name")
	}
	if !in.EndsAt.After(in.StartsAt) {
		return errors.New("validation: phase end must be after start")
	}
	return nil
}

// Define creates a phase after checking no sibling phase intersects it.
// The gist exclusion constraint backs the check under concurrency.
func (s *PhaseServiceImpl) Define(ctx context.Context, electionID uuid.UUID, in PhaseInput) (*model.ElectionPhase, error) {
	if electionID == uuid.Nil {
		return nil, errors.New("validation: empty election id")
	}
	if err := validatePhaseInput(in); err != nil {
		return nil, err
	}

	overlap, err := s.phases.HasOverlap(ctx, electionID, uuid.Nil, in.StartsAt, in.EndsAt)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, errs.ErrPhaseOverlap
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	p := &model.ElectionPhase{
		ID:         id,
		ElectionID: electionID,
		Name:       strings.TrimSpace(in.Name),
		StartsAt:   in.StartsAt,
		EndsAt:     in.EndsAt,
	}
	if err := s.phases.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update rewrites a phase. The phase under update is excluded from the
// overlap comparison set.
func (s *PhaseServiceImpl) Update(ctx context.Context, id uuid.UUID, in PhaseInput) (*model.ElectionPhase, error) {
	if id == uuid.Nil {
		return nil, errors.New("validation: empty id")
	}
	if err := validatePhaseInput(in); err != nil {
		return nil, err
	}

	cur, err := s.phases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	overlap, err := s.phases.HasOverlap(ctx, cur.ElectionID, id, in.StartsAt, in.EndsAt)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, errs.ErrPhaseOverlap
	}

	cur.Name = strings.TrimSpace(in.Name)
	cur.StartsAt = in.StartsAt
	cur.EndsAt = in.EndsAt
	if err := s.phases.Update(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// List returns an election's phases ordered by start time.
func (s *PhaseServiceImpl) List(ctx context.Context, electionID uuid.UUID) ([]model.ElectionPhase, error) {
	if electionID == uuid.Nil {
		return nil, errors.New("validation: empty election id")
	}
	return s.phases.ListByElection(ctx, electionID)
}
