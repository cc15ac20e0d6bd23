// Package service contains the enforcement core: every mutation of the
// election schema goes through a service here, which runs the business-rule
// validators before the write and relies on storage constraints as the
// concurrency backstop.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jonboulle/clockwork"

	"github.com/benmoussati/nemis/internal/errs"
	"github.com/benmoussati/nemis/internal/model"
	"github.com/benmoussati/nemis/internal/repository"
	"github.com/benmoussati/nemis/internal/vcode"
)

// CastVoteInput is a vote-cast request. The timestamp is optional and
// defaults to the current time; there is deliberately no field for a
// verification code.
type CastVoteInput struct {
	VoterID     uuid.UUID
	ElectionID  uuid.UUID
	CandidateID uuid.UUID
	RequestedAt *time.Time
}

// VoteService admits votes. It is the single gate for vote creation; votes
// have no other mutation path.
type VoteService interface {
	// Cast validates and persists one vote, returning it with the
	// server-stamped timestamp and verification code.
	Cast(ctx context.Context, in CastVoteInput) (*model.Vote, error)
	// Get returns a vote by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Vote, error)
}

type VoteServiceImpl struct {
	elections  repository.ElectionRepository
	voters     repository.VoterRepository
	candidates repository.CandidateRepository
	votes      repository.VoteRepository
	clock      clockwork.Clock
}

// NewVoteService constructs VoteService with required dependencies.
func NewVoteService(
	elections repository.ElectionRepository,
	voters repository.VoterRepository,
	candidates repository.CandidateRepository,
	votes repository.VoteRepository,
	clock clockwork.Clock,
) *VoteServiceImpl {
	return &VoteServiceImpl{
		elections:  elections,
		voters:     voters,
		candidates: candidates,
		votes:      votes,
		clock:      clock,
	}
}

// Cast runs the admission checks in their dependency order:
//  1. election status must derive to Active (ErrElectionNotActive)
//  2. the accepted timestamp must fall inside the window (ErrVoteOutsideWindow)
//  3. voter and candidate regions must match (ErrRegionMismatch)
//  4. the (voter, election) pair must be fresh; the unique constraint is the
//     final backstop and surfaces as ErrDuplicateVote
//
// The voter's eligibility flag and the voter region's membership in the
// election are checked after the ordered four. Any rejection aborts the whole
// operation; nothing is clamped or coerced.
func (s *VoteServiceImpl) Cast(ctx context.Context, in CastVoteInput) (*model.Vote, error) {
	if in.VoterID == uuid.Nil || in.ElectionID == uuid.Nil || in.CandidateID == uuid.Nil {
		return nil, errors.New("validation: empty voter/election/candidate id")
	}

	now := s.clock.Now()

	e, err := s.elections.GetByID(ctx, in.ElectionID)
	if err != nil {
		return nil, err
	}
	if e.EffectiveStatus(now) != model.StatusActive {
		return nil, errs.ErrElectionNotActive
	}

	ts := now
	if in.RequestedAt != nil {
		ts = *in.RequestedAt
	}
	if !e.InWindow(ts) {
		return nil, errs.ErrVoteOutsideWindow
	}

	c, err := s.candidates.GetByID(ctx, in.CandidateID)
	if err != nil {
		return nil, err
	}
	if c.ElectionID != in.ElectionID {
		return nil, errors.New("validation: candidate does not run in this election")
	}

	v, err := s.voters.GetByID(ctx, in.VoterID)
	if err != nil {
		return nil, err
	}
	if v.RegionID != c.RegionID {
		return nil, errs.ErrRegionMismatch
	}
	if !v.IsEligible {
		return nil, errs.ErrVoterNotEligible
	}
	inRegion, err := s.elections.HasRegion(ctx, in.ElectionID, v.RegionID)
	if err != nil {
		return nil, err
	}
	if !inRegion {
		return nil, errs.ErrRegionNotInElection
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	vote := &model.Vote{
		ID:               id,
		VoterID:          in.VoterID,
		ElectionID:       in.ElectionID,
		CandidateID:      in.CandidateID,
		CastAt:           ts,
		VerificationCode: vcode.Compute(in.VoterID, in.ElectionID, ts),
	}
	if err := s.votes.Insert(ctx, vote); err != nil {
		return nil, err
	}
	return vote, nil
}

// Get fetches a single vote by ID.
func (s *VoteServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Vote, error) {
	if id == uuid.Nil {
		return nil, errors.New("validation: empty id")
	}
	return s.votes.GetByID(ctx, id)
}
