// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/benmoussati/nemis/internal/model"
)

// AccountRepository provides access to system accounts. Accounts are the
// root entities: deleting one cascades to its voter/candidate rows.
type AccountRepository interface {
	// Create inserts a new account.
	Create(ctx context.Context, a *model.Account) error
	// CreateWithVoter inserts an account and its voter profile atomically.
	CreateWithVoter(ctx context.Context, a *model.Account, v *model.Voter) error
	// GetByID loads an account by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// GetByCNIE loads an account by its natural ID.
	GetByCNIE(ctx context.Context, cnie string) (*model.Account, error)
	// SetActive flips the active flag.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// RecordLogin stamps the last-login timestamp.
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	// Delete removes the account; voter/candidate rows cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}
