package account

import (
	"time"
)

// Account represents an account record in the database.
type Account struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_accounts_name"`
	Type      string    `gorm:"size:50;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
