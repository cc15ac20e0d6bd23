package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jonboulle/clockwork"

	"github.com/benmoussati/nemis/internal/model"
	"github.com/benmoussati/nemis/internal/repository"
)

// ElectionInput carries the writable core fields of an election. Status is
// deliberately absent: it is always recomputed server-side, and Cancelled is
// only reachable through Cancel.
type ElectionInput struct {
	Name      string
	Type      string
	StartDate time.Time
	EndDate   time.Time
	AdminID   uuid.UUID
}

// ElectionService manages elections, their region sets, and the derived
// status lifecycle.
type ElectionService interface {
	// Create inserts an election with a server-derived status.
	Create(ctx context.Context, in ElectionInput) (*model.Election, error)
	// Update rewrites core fields and recomputes status monotonically.
	Update(ctx context.Context, id uuid.UUID, in ElectionInput) (*model.Election, error)
	// Get returns an election by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Election, error)
	// Cancel is the explicit administrative side-entry into Cancelled.
	Cancel(ctx context.Context, id uuid.UUID) error
	// AddRegion attaches a region to the election's configured set.
	AddRegion(ctx context.Context, electionID, regionID uuid.UUID) error
	// SyncStatuses advances every lagging election and returns how many moved.
	SyncStatuses(ctx context.Context) (int64, error)
}

type ElectionServiceImpl struct {
	elections repository.ElectionRepository
	clock     clockwork.Clock
}

// NewElectionService constructs ElectionService with required dependencies.
func NewElectionService(elections repository.ElectionRepository, clock clockwork.Clock) *ElectionServiceImpl {
	return &ElectionServiceImpl{elections: elections, clock: clock}
}

func validateElectionInput(in ElectionInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("validation: empty election name")
	}
	if strings.TrimSpace(in.Type) == "" {
		return errors.New("validation: empty election type")
	}
	if !in.EndDate.After(in.StartDate) {
		return errors.New("validation: end date must be after start date")
	}
	if in.AdminID == uuid.Nil {
		return errors.New("validation: empty admin id")
	}
	return nil
}

// Create inserts a new election. The stored status is derived from the
// window at creation time, never taken from the caller.
func (s *ElectionServiceImpl) Create(ctx context.Context, in ElectionInput) (*model.Election, error) {
	if err := validateElectionInput(in); err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	e := &model.Election{
		ID:        id,
		Name:      strings.TrimSpace(in.Name),
		Type:      strings.TrimSpace(in.Type),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    model.StatusPlanned,
		AdminID:   in.AdminID,
	}
	e.Status = e.EffectiveStatus(s.clock.Now())

	if err := s.elections.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update rewrites core fields. Whatever the caller intended for status, the
// stored value is recomputed from the new window and only ever moves forward;
// a Cancelled election stays Cancelled.
func (s *ElectionServiceImpl) Update(ctx context.Context, id uuid.UUID, in ElectionInput) (*model.Election, error) {
	if id == uuid.Nil {
		return nil, errors.New("validation: empty id")
	}
	if err := validateElectionInput(in); err != nil {
		return nil, err
	}

	cur, err := s.elections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *cur
	next.Name = strings.TrimSpace(in.Name)
	next.Type = strings.TrimSpace(in.Type)
	next.StartDate = in.StartDate
	next.EndDate = in.EndDate
	next.Status = model.AdvanceStatus(cur.Status, next.EffectiveStatus(s.clock.Now()))

	if err := s.elections.Update(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Get fetches a single election by ID.
func (s *ElectionServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Election, error) {
	if id == uuid.Nil {
		return nil, errors.New("validation: empty id")
	}
	return s.elections.GetByID(ctx, id)
}

// Cancel moves the election into Cancelled regardless of its current state.
func (s *ElectionServiceImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("validation: empty id")
	}
	cur, err := s.elections.GetByID(ctx, id)
	if err != nil {
		return err
	}
	cur.Status = model.StatusCancelled
	return s.elections.Update(ctx, cur)
}

// AddRegion attaches a region to the election's configured set.
func (s *ElectionServiceImpl) AddRegion(ctx context.Context, electionID, regionID uuid.UUID) error {
	if electionID == uuid.Nil || regionID == uuid.Nil {
		return errors.New("validation: empty election/region id")
	}
	return s.elections.AddRegion(ctx, electionID, regionID)
}

// SyncStatuses forces the forward transitions for every election whose
// stored status lags its window. Without a sweep, a status only moves when a
// write touches the row.
func (s *ElectionServiceImpl) SyncStatuses(ctx context.Context) (int64, error) {
	return s.elections.SyncStatuses(ctx, s.clock.Now())
}
