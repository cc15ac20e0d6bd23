package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/jonboulle/clockwork"

	"github.com/benmoussati/nemis/internal/model"
	"github.com/benmoussati/nemis/internal/repository"
)

// AppendAuditInput carries one ledger entry. The timestamp is stamped
// server-side on append.
type AppendAuditInput struct {
	ActorID   *uuid.UUID
	Action    string
	TableName string
	RecordID  string
	IPAddress string
	Details   string
}

// AuditService is the append-only ledger surface. It deliberately has no
// update or delete operation: a mistaken entry is superseded by appending a
// compensating one.
type AuditService interface {
	// Append writes one entry and returns it with ID and timestamp set.
	Append(ctx context.Context, in AppendAuditInput) (*model.AuditEntry, error)
	// Recent returns the newest entries, newest first.
	Recent(ctx context.Context, limit int) ([]model.AuditEntry, error)
	// ByActor returns the newest entries of one actor, newest first.
	ByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]model.AuditEntry, error)
}

type AuditServiceImpl struct {
	ledger repository.AuditRepository
	clock  clockwork.Clock
}

// defaultAuditLimit caps read queries when the caller passes no usable limit.
const defaultAuditLimit = 50

// NewAuditService constructs AuditService with required dependencies.
func NewAuditService(ledger repository.AuditRepository, clock clockwork.Clock) *AuditServiceImpl {
	return &AuditServiceImpl{ledger: ledger, clock: clock}
}

// Append writes one ledger entry.
func (s *AuditServiceImpl) Append(ctx context.Context, in AppendAuditInput) (*model.AuditEntry, error) {
	if strings.TrimSpace(in.Action) == "" {
		return nil, errors.New("validation: empty action")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	e := &model.AuditEntry{
		ID:        id,
		ActorID:   in.ActorID,
		Action:    strings.TrimSpace(in.Action),
		TableName: in.TableName,
		RecordID:  in.RecordID,
		IPAddress: in.IPAddress,
		Details:   in.Details,
		LoggedAt:  s.clock.Now(),
	}
	if err := s.ledger.Append(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Recent returns the newest entries.
func (s *AuditServiceImpl) Recent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	return s.ledger.Recent(ctx, limit)
}

// ByActor returns the newest entries of one actor.
func (s *AuditServiceImpl) ByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]model.AuditEntry, error) {
	if actorID == uuid.Nil {
		return nil, errors.New("validation: empty actor id")
	}
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	return s.ledger.ByActor(ctx, actorID, limit)
}
