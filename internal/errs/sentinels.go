// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation
	// (e.g., CNIE taken, region name taken, duplicate election-region pair).
	ErrAlreadyExists = errors.New("already exists")
)

// Vote admission rejections, in the order the validator checks them.
var (
	// ErrElectionNotActive indicates a vote attempted while the election's
	// derived status is not Active.
	ErrElectionNotActive = errors.New("election not active")

	// ErrVoteOutsideWindow indicates a vote timestamp outside the election's
	// configured [start, end] window.
	ErrVoteOutsideWindow = errors.New("vote outside election window")

	// ErrRegionMismatch indicates the voter's region differs from the
	// candidate's region.
	ErrRegionMismatch = errors.New("voter and candidate regions differ")

	// ErrDuplicateVote indicates the voter already voted in this election;
	// retrying the same request cannot succeed.
	ErrDuplicateVote = errors.New("duplicate vote")

	// ErrVoterNotEligible indicates the voter's eligibility flag is off.
	ErrVoterNotEligible = errors.New("voter not eligible")

	// ErrRegionNotInElection indicates the voter's region is not configured
	// for the election.
	ErrRegionNotInElection = errors.New("election not available in voter region")
)

// Other business-rule rejections.
var (
	// ErrInvalidCandidateRegion indicates a candidate declared a region that
	// is not in the election's configured region set.
	ErrInvalidCandidateRegion = errors.New("candidate region not configured for election")

	// ErrPhaseOverlap indicates a phase interval collides with an existing
	// phase of the same election.
	ErrPhaseOverlap = errors.New("election phase overlaps existing phase")

	// ErrAuditLogImmutable indicates an attempted mutation of an existing
	// audit log entry. There is no bypass.
	ErrAuditLogImmutable = errors.New("audit log entries are immutable")
)
