package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRead is a read-optimized DTO for ledger queries and API responses.
type TransactionRead struct {
	ID          int64
	AccountID   int64
	Date        time.Time
	Description *string
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// TransactionCreate is a DTO for recording a new transaction.
type TransactionCreate struct {
	AccountID   int64
	Date        *time.Time // defaults to now when nil
	Description *string
	Amount      decimal.Decimal
}

// TransactionUpdate is a DTO for updating one or more fields of a transaction.
type TransactionUpdate struct {
	Date        *time.Time
	Description *string
	Amount      *decimal.Decimal
}

// Empty reports whether the update carries no fields.
func (u TransactionUpdate) Empty() bool {
	return u.Date == nil && u.Description == nil && u.Amount == nil
}

// TransactionFilter narrows a ledger listing.
type TransactionFilter struct {
	AccountID *int64
	Limit     int
}
