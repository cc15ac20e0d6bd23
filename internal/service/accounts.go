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

// CreateAccountInput carries the fields of a new account. RegionID and
// BirthDate only apply to voter accounts.
type CreateAccountInput struct {
	CNIE      string
	Name      string
	Role      model.Role
	RegionID  *uuid.UUID
	BirthDate *time.Time
}

// AccountService provisions and manages system identities. A voter account
// gets its voter profile in the same transaction: there is never an account
// with role Voter and no voter row.
type AccountService interface {
	// Create validates formats and provisions the account (and voter profile
	// for role Voter).
	Create(ctx context.Context, in CreateAccountInput) (*model.Account, error)
	// Get returns an account by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// GetByCNIE returns an account by its natural ID.
	GetByCNIE(ctx context.Context, cnie string) (*model.Account, error)
	// RecordLogin stamps the last-login timestamp.
	RecordLogin(ctx context.Context, id uuid.UUID) error
	// Deactivate clears the active flag.
	Deactivate(ctx context.Context, id uuid.UUID) error
	// Delete removes the account; voter/candidate rows cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

type AccountServiceImpl struct {
	accounts repository.AccountRepository
	clock    clockwork.Clock
}

// NewAccountService constructs AccountService with required dependencies.
func NewAccountService(accounts repository.AccountRepository, clock clockwork.Clock) *AccountServiceImpl {
	return &AccountServiceImpl{accounts: accounts, clock: clock}
}

// Create validates the natural ID format, display name and role, then
// provisions the account. Role Voter requires a region; the voter profile is
// created in the same transaction and must pass the adult-age rule when a
// birth date is supplied.
func (s *AccountServiceImpl) Create(ctx context.Context, in CreateAccountInput) (*model.Account, error) {
	cnie := strings.ToUpper(strings.TrimSpace(in.CNIE))
	if !model.ValidCNIE(cnie) {
		return nil, errors.New("validation: cnie must be 2 letters followed by 6 digits")
	}
	if !model.ValidName(in.Name) {
		return nil, errors.New("validation: name must be 2-100 letters")
	}
	if !in.Role.Valid() {
		return nil, errors.New("validation: unknown role")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	a := &model.Account{
		ID:       id,
		CNIE:     cnie,
		Name:     strings.TrimSpace(in.Name),
		Role:     in.Role,
		IsActive: true,
	}

	if in.Role != model.RoleVoter {
		if err := s.accounts.Create(ctx, a); err != nil {
			return nil, err
		}
		return a, nil
	}

	if in.RegionID == nil || *in.RegionID == uuid.Nil {
		return nil, errors.New("validation: voter account requires a region")
	}
	vid, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	v := &model.Voter{
		ID:           vid,
		UserID:       a.ID,
		RegionID:     *in.RegionID,
		IsEligible:   true,
		RegisteredAt: s.clock.Now(),
		BirthDate:    in.BirthDate,
	}
	if !v.AdultAt(v.RegisteredAt) {
		return nil, errors.New("validation: voter must be at least 18 years old")
	}
	if err := s.accounts.CreateWithVoter(ctx, a, v); err != nil {
		return nil, err
	}
	return a, nil
}

// Get fetches an account by ID.
func (s *AccountServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	if id == uuid.Nil {
		return nil, errors.New("validation: empty id")
	}
	return s.accounts.GetByID(ctx, id)
}

// GetByCNIE fetches an account by its natural ID.
func (s *AccountServiceImpl) GetByCNIE(ctx context.Context, cnie string) (*model.Account, error) {
	cnie = strings.ToUpper(strings.TrimSpace(cnie))
	if !model.ValidCNIE(cnie) {
		return nil, errors.New("validation: malformed cnie")
	}
	return s.accounts.GetByCNIE(ctx, cnie)
}

// RecordLogin stamps the last-login timestamp with the injected clock.
func (s *AccountServiceImpl) RecordLogin(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("validation: empty id")
	}
	return s.accounts.RecordLogin(ctx, id, s.clock.Now())
}

// Deactivate clears the active flag.
func (s *AccountServiceImpl) Deactivate(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("validation: empty id")
	}
	return s.accounts.SetActive(ctx, id, false)
}

// Delete removes the account; storage cascades take the voter/candidate rows.
func (s *AccountServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("validation: empty id")
	}
	return s.accounts.Delete(ctx, id)
}
