package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jonboulle/clockwork"

	"github.com/benmoussati/nemis/internal/errs"
	"github.com/benmoussati/nemis/internal/model"
	"github.com/benmoussati/nemis/internal/repository"
)

// CandidateInput carries the writable fields of a candidacy. Approval fields
// are absent: they are only ever stamped server-side.
type CandidateInput struct {
	UserID     uuid.UUID
	ElectionID uuid.UUID
	RegionID   uuid.UUID
	Party      string
	Manifesto  string
}

// CandidateService manages candidacies and enforces region containment on
// every write, insert and update alike.
type CandidateService interface {
	// Register creates a new candidacy.
	Register(ctx context.Context, in CandidateInput) (*model.Candidate, error)
	// Update rewrites an existing candidacy, re-running containment.
	Update(ctx context.Context, id uuid.UUID, in CandidateInput) (*model.Candidate, error)
	// Approve flips the approval flag, stamping approver and time.
	Approve(ctx context.Context, id, approverID uuid.UUID) error
	// Get returns a candidate by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
}

type CandidateServiceImpl struct {
	candidates repository.CandidateRepository
	elections  repository.ElectionRepository
	clock      clockwork.Clock
}

// NewCandidateService constructs CandidateService with required dependencies.
func NewCandidateService(
	candidates repository.CandidateRepository,
	elections repository.ElectionRepository,
	clock clockwork.Clock,
) *CandidateServiceImpl {
	return &CandidateServiceImpl{candidates: candidates, elections: elections, clock: clock}
}

// checkContainment rejects a declared (election, region) pair that is not in
// the election's configured set. The composite FK in storage backs this under
// concurrency.
func (s *CandidateServiceImpl) checkContainment(ctx context.Context, electionID, regionID uuid.UUID) error {
	ok, err := s.elections.HasRegion(ctx, electionID, regionID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrInvalidCandidateRegion
	}
	return nil
}

// Register creates a candidacy after the containment check.
func (s *CandidateServiceImpl) Register(ctx context.Context, in CandidateInput) (*model.Candidate, error) {
	if in.UserID == uuid.Nil || in.ElectionID == uuid.Nil || in.RegionID == uuid.Nil {
		return nil, errors.New("validation: empty user/election/region id")
	}
	if err := s.checkContainment(ctx, in.ElectionID, in.RegionID); err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	c := &model.Candidate{
		ID:         id,
		UserID:     in.UserID,
		ElectionID: in.ElectionID,
		RegionID:   in.RegionID,
		Party:      in.Party,
		Manifesto:  in.Manifesto,
	}
	if err := s.candidates.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update rewrites a candidacy. Containment is re-checked on every update
// because the declared election or region may change.
func (s *CandidateServiceImpl) Update(ctx context.Context, id uuid.UUID, in CandidateInput) (*model.Candidate, error) {
	if id == uuid.Nil || in.ElectionID == uuid.Nil || in.RegionID == uuid.Nil {
		return nil, errors.New("validation: empty candidate/election/region id")
	}
	cur, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkContainment(ctx, in.ElectionID, in.RegionID); err != nil {
		return nil, err
	}

	cur.ElectionID = in.ElectionID
	cur.RegionID = in.RegionID
	cur.Party = in.Party
	cur.Manifesto = in.Manifesto
	if err := s.candidates.Update(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// Approve stamps approval with the injected clock; callers supply neither
// the timestamp nor any other field.
func (s *CandidateServiceImpl) Approve(ctx context.Context, id, approverID uuid.UUID) error {
	if id == uuid.Nil || approverID == uuid.Nil {
		return errors.New("validation: empty candidate/approver id")
	}
	return s.candidates.Approve(ctx, id, approverID, s.clock.Now())
}

// Get fetches a single candidate by ID.
func (s *CandidateServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	if id == uuid.Nil {
		return nil, errors.New("validation: empty id")
	}
	return s.candidates.GetByID(ctx, id)
}
