// Package events defines the domain events emitted after ledger mutations commit.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is implemented by every domain event.
type Event interface {
	Type() string
}

// Meta carries the identity and timestamp shared by all events.
type Meta struct {
	ID         uuid.UUID `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewMeta stamps a fresh event identity at the given time.
func NewMeta(at time.Time) Meta {
	return Meta{ID: uuid.New(), OccurredAt: at.UTC()}
}

// AccountCreated is emitted after an account is stored.
type AccountCreated struct {
	Meta
	AccountID   int64  `json:"account_id"`
	Name        string `json:"name"`
	AccountType string `json:"account_type"`
}

func (AccountCreated) Type() string { return EventTypeAccountCreated.String() }

// AccountUpdated is emitted after a partial account update.
type AccountUpdated struct {
	Meta
	AccountID   int64  `json:"account_id"`
	Name        string `json:"name"`
	AccountType string `json:"account_type"`
}

func (AccountUpdated) Type() string { return EventTypeAccountUpdated.String() }

// AccountDeleted is emitted after an account and its transactions are removed.
type AccountDeleted struct {
	Meta
	AccountID int64 `json:"account_id"`
}

func (AccountDeleted) Type() string { return EventTypeAccountDeleted.String() }

// TransactionCreated is emitted after a transaction is recorded.
type TransactionCreated struct {
	Meta
	TransactionID int64           `json:"transaction_id"`
	AccountID     int64           `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
}

func (TransactionCreated) Type() string { return EventTypeTransactionCreated.String() }

// TransactionUpdated is emitted after a partial transaction update.
type TransactionUpdated struct {
	Meta
	TransactionID int64           `json:"transaction_id"`
	AccountID     int64           `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
}

func (TransactionUpdated) Type() string { return EventTypeTransactionUpdated.String() }

// TransactionDeleted is emitted after a transaction is removed.
type TransactionDeleted struct {
	Meta
	TransactionID int64 `json:"transaction_id"`
}

func (TransactionDeleted) Type() string { return EventTypeTransactionDeleted.String() }
