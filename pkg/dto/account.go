package dto

import (
	"time"

	"github.com/amirasaad/ledgerbook/pkg/domain"
)

// AccountRead is a read-optimized DTO for account queries and API responses.
type AccountRead struct {
	ID        int64
	Name      string
	Type      domain.AccountType
	CreatedAt time.Time
}

// AccountCreate is a DTO for creating a new account.
type AccountCreate struct {
	Name string
	Type domain.AccountType
}

// AccountUpdate is a DTO for updating one or more fields of an account.
// Nil fields are left untouched.
type AccountUpdate struct {
	Name *string
	Type *domain.AccountType
}

// Empty reports whether the update carries no fields.
func (u AccountUpdate) Empty() bool {
	return u.Name == nil && u.Type == nil
}
