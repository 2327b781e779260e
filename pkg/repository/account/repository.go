package account

import (
	"context"

	"github.com/amirasaad/ledgerbook/pkg/dto"
)

// Repository defines the interface for account data access operations.
type Repository interface {
	// Create inserts a new account and returns it with its assigned ID.
	Create(ctx context.Context, create dto.AccountCreate) (*dto.AccountRead, error)

	// Update applies the non-nil fields of update to the account with the given ID.
	Update(ctx context.Context, id int64, update dto.AccountUpdate) error

	// Get retrieves an account by its ID.
	Get(ctx context.Context, id int64) (*dto.AccountRead, error)

	// GetByName retrieves an account by its exact name.
	GetByName(ctx context.Context, name string) (*dto.AccountRead, error)

	// List returns every account ordered by name.
	List(ctx context.Context) ([]*dto.AccountRead, error)

	// Delete removes the account with the given ID.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored accounts.
	Count(ctx context.Context) (int64, error)
}
