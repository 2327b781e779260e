package transaction

import (
	"context"
	"time"

	"github.com/amirasaad/ledgerbook/pkg/dto"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for ledger data access operations.
type Repository interface {
	// Create inserts a new transaction and returns it with its assigned ID.
	Create(ctx context.Context, create dto.TransactionCreate) (*dto.TransactionRead, error)

	// Update applies the non-nil fields of update to the transaction with the given ID.
	Update(ctx context.Context, id int64, update dto.TransactionUpdate) error

	// Get retrieves a transaction by its ID.
	Get(ctx context.Context, id int64) (*dto.TransactionRead, error)

	// List returns transactions newest first (date, then id), optionally for a single account.
	List(ctx context.Context, filter dto.TransactionFilter) ([]*dto.TransactionRead, error)

	// ListSince returns the date and amount of every transaction dated at or after since,
	// oldest first.
	ListSince(ctx context.Context, since time.Time) ([]dto.DatedAmount, error)

	// Delete removes the transaction with the given ID.
	Delete(ctx context.Context, id int64) error

	// DeleteByAccount removes every transaction of an account.
	DeleteByAccount(ctx context.Context, accountID int64) (int64, error)

	// Count returns the number of stored transactions.
	Count(ctx context.Context) (int64, error)

	// Sum returns the exact sum of all amounts, zero when the ledger is empty.
	Sum(ctx context.Context) (decimal.Decimal, error)
}
