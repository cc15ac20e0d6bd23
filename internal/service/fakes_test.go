package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/benmoussati/nemis/internal/model"
	"github.com/benmoussati/nemis/internal/repository"
)

type fakeElectionRepo struct {
	created   *model.Election
	createErr error

	updated   *model.Election
	updateErr error

	get    *model.Election
	getErr error

	addedElection uuid.UUID
	addedRegion   uuid.UUID
	addErr        error

	hasRegionInElection uuid.UUID
	hasRegionInRegion   uuid.UUID
	hasRegion           bool
	hasRegionErr        error

	syncIn  time.Time
	syncOut int64
	syncErr error
}

var _ repository.ElectionRepository = (*fakeElectionRepo)(nil)

func (f *fakeElectionRepo) Create(_ context.Context, e *model.Election) error {
	cp := *e
	f.created = &cp
	return f.createErr
}
func (f *fakeElectionRepo) Update(_ context.Context, e *model.Election) error {
	cp := *e
	f.updated = &cp
	return f.updateErr
}
func (f *fakeElectionRepo) GetByID(_ context.Context, _ uuid.UUID) (*model.Election, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.get
	return &cp, nil
}
func (f *fakeElectionRepo) AddRegion(_ context.Context, electionID, regionID uuid.UUID) error {
	f.addedElection, f.addedRegion = electionID, regionID
	return f.addErr
}
func (f *fakeElectionRepo) HasRegion(_ context.Context, electionID, regionID uuid.UUID) (bool, error) {
	f.hasRegionInElection, f.hasRegionInRegion = electionID, regionID
	return f.hasRegion, f.hasRegionErr
}
func (f *fakeElectionRepo) SyncStatuses(_ context.Context, now time.Time) (int64, error) {
	f.syncIn = now
	return f.syncOut, f.syncErr
}

type fakeVoterRepo struct {
	get    *model.Voter
	getErr error

	eligibilityID  uuid.UUID
	eligibilityVal bool
	eligibilityErr error
}

var _ repository.VoterRepository = (*fakeVoterRepo)(nil)

func (f *fakeVoterRepo) GetByID(_ context.Context, _ uuid.UUID) (*model.Voter, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.get
	return &cp, nil
}
func (f *fakeVoterRepo) GetByUserID(_ context.Context, _ uuid.UUID) (*model.Voter, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.get
	return &cp, nil
}
func (f *fakeVoterRepo) SetEligibility(_ context.Context, id uuid.UUID, eligible bool) error {
	f.eligibilityID, f.eligibilityVal = id, eligible
	return f.eligibilityErr
}

type fakeCandidateRepo struct {
	created   *model.Candidate
	createErr error

	updated   *model.Candidate
	updateErr error

	get    *model.Candidate
	getErr error

	list    []model.Candidate
	listErr error

	approvedID uuid.UUID
	approvedBy uuid.UUID
	approvedAt time.Time
	approveErr error
}

var _ repository.CandidateRepository = (*fakeCandidateRepo)(nil)

func (f *fakeCandidateRepo) Create(_ context.Context, c *model.Candidate) error {
	cp := *c
	f.created = &cp
	return f.createErr
}
func (f *fakeCandidateRepo) Update(_ context.Context, c *model.Candidate) error {
	cp := *c
	f.updated = &cp
	return f.updateErr
}
func (f *fakeCandidateRepo) GetByID(_ context.Context, _ uuid.UUID) (*model.Candidate, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.get
	return &cp, nil
}
func (f *fakeCandidateRepo) ListByElection(_ context.Context, _ uuid.UUID) ([]model.Candidate, error) {
	return append([]model.Candidate(nil), f.list...), f.listErr
}
func (f *fakeCandidateRepo) Approve(_ context.Context, id, approverID uuid.UUID, at time.Time) error {
	f.approvedID, f.approvedBy, f.approvedAt = id, approverID, at
	return f.approveErr
}

type fakeVoteRepo struct {
	inserted  *model.Vote
	insertErr error

	get    *model.Vote
	getErr error

	hasVoted    bool
	hasVotedErr error
}

var _ repository.VoteRepository = (*fakeVoteRepo)(nil)

func (f *fakeVoteRepo) Insert(_ context.Context, v *model.Vote) error {
	cp := *v
	f.inserted = &cp
	return f.insertErr
}
func (f *fakeVoteRepo) GetByID(_ context.Context, _ uuid.UUID) (*model.Vote, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.get
	return &cp, nil
}
func (f *fakeVoteRepo) HasVoted(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return f.hasVoted, f.hasVotedErr
}

type fakePhaseRepo struct {
	created   *model.ElectionPhase
	createErr error

	updated   *model.ElectionPhase
	updateErr error

	get    *model.ElectionPhase
	getErr error

	list    []model.ElectionPhase
	listErr error

	overlapInElection uuid.UUID
	overlapInExclude  uuid.UUID
	overlapInStart    time.Time
	overlapInEnd      time.Time
	overlap           bool
	overlapErr        error
}

var _ repository.PhaseRepository = (*fakePhaseRepo)(nil)

func (f *fakePhaseRepo) Create(_ context.Context, p *model.ElectionPhase) error {
	cp := *p
	f.created = &cp
	return f.createErr
}
func (f *fakePhaseRepo) Update(_ context.Context, p *model.ElectionPhase) error {
	cp := *p
	f.updated = &cp
	return f.updateErr
}
func (f *fakePhaseRepo) GetByID(_ context.Context, _ uuid.UUID) (*model.ElectionPhase, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.get
	return &cp, nil
}
func (f *fakePhaseRepo) ListByElection(_ context.Context, _ uuid.UUID) ([]model.ElectionPhase, error) {
	return append([]model.ElectionPhase(nil), f.list...), f.listErr
}
func (f *fakePhaseRepo) HasOverlap(_ context.Context, electionID, excludeID uuid.UUID, startsAt, endsAt time.Time) (bool, error) {
	f.overlapInElection, f.overlapInExclude = electionID, excludeID
	f.overlapInStart, f.overlapInEnd = startsAt, endsAt
	return f.overlap, f.overlapErr
}

type fakeAccountRepo struct {
	created   *model.Account
	createErr error

	withVoterAccount *model.Account
	withVoterProfile *model.Voter
	withVoterErr     error

	get    *model.Account
	getErr error

	setActiveID  uuid.UUID
	setActiveVal bool
	setActiveErr error

	loginID  uuid.UUID
	loginAt  time.Time
	loginErr error

	deletedID uuid.UUID
	deleteErr error
}

var _ repository.AccountRepository = (*fakeAccountRepo)(nil)

func (f *fakeAccountRepo) Create(_ context.Context, a *model.Account) error {
	cp := *a
	f.created = &cp
	return f.createErr
}
func (f *fakeAccountRepo) CreateWithVoter(_ context.Context, a *model.Account, v *model.Voter) error {
	acp, vcp := *a, *v
	f.withVoterAccount, f.withVoterProfile = &acp, &vcp
	return f.withVoterErr
}
func (f *fakeAccountRepo) GetByID(_ context.Context, _ uuid.UUID) (*model.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.get
	return &cp, nil
}
func (f *fakeAccountRepo) GetByCNIE(_ context.Context, _ string) (*model.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.get
	return &cp, nil
}
func (f *fakeAccountRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	f.setActiveID, f.setActiveVal = id, active
	return f.setActiveErr
}
func (f *fakeAccountRepo) RecordLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	f.loginID, f.loginAt = id, at
	return f.loginErr
}
func (f *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeAuditRepo struct {
	appended  *model.AuditEntry
	appendErr error

	recentLimit int
	recentOut   []model.AuditEntry
	recentErr   error

	byActorID    uuid.UUID
	byActorLimit int
	byActorOut   []model.AuditEntry
	byActorErr   error
}

var _ repository.AuditRepository = (*fakeAuditRepo)(nil)

func (f *fakeAuditRepo) Append(_ context.Context, e *model.AuditEntry) error {
	cp := *e
	f.appended = &cp
	return f.appendErr
}
func (f *fakeAuditRepo) Recent(_ context.Context, limit int) ([]model.AuditEntry, error) {
	f.recentLimit = limit
	return append([]model.AuditEntry(nil), f.recentOut...), f.recentErr
}
func (f *fakeAuditRepo) ByActor(_ context.Context, actorID uuid.UUID, limit int) ([]model.AuditEntry, error) {
	f.byActorID, f.byActorLimit = actorID, limit
	return append([]model.AuditEntry(nil), f.byActorOut...), f.byActorErr
}

type fakeReportRepo struct {
	turnoutIn  uuid.UUID
	turnoutOut []model.TurnoutRow
	turnoutErr error

	winnersIn  uuid.UUID
	winnersOut []model.WinnerRow
	winnersErr error

	statsOut []model.RegionStats
	statsErr error
}

var _ repository.ReportRepository = (*fakeReportRepo)(nil)

func (f *fakeReportRepo) Turnout(_ context.Context, electionID uuid.UUID) ([]model.TurnoutRow, error) {
	f.turnoutIn = electionID
	return append([]model.TurnoutRow(nil), f.turnoutOut...), f.turnoutErr
}
func (f *fakeReportRepo) Winners(_ context.Context, electionID uuid.UUID) ([]model.WinnerRow, error) {
	f.winnersIn = electionID
	return append([]model.WinnerRow(nil), f.winnersOut...), f.winnersErr
}
func (f *fakeReportRepo) RegionStatistics(_ context.Context) ([]model.RegionStats, error) {
	return append([]model.RegionStats(nil), f.statsOut...), f.statsErr
}
