package transaction

import (
	"time"
)

// Transaction represents a ledger entry in the database.
// Amounts are stored in cents so aggregates stay exact on every backend.
type Transaction struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	AccountID   int64     `gorm:"not null;index:idx_transactions_account_id"`
	Date        time.Time `gorm:"column:date;not null;index:idx_transactions_date_id,priority:1"`
	Description *string
	AmountCents int64     `gorm:"column:amount_cents;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
