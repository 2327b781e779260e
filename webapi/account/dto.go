package account

import (
	"github.com/amirasaad/ledgerbook/pkg/dto"
	"github.com/amirasaad/ledgerbook/webapi/common"
)

//revive:disable

// CreateAccountRequest represents the request body for creating an account.
type CreateAccountRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Type string `json:"type" validate:"required"`
}

// UpdateAccountRequest represents the request body for a partial account update.
type UpdateAccountRequest struct {
	Name *string `json:"name" validate:"omitempty,max=255"`
	Type *string `json:"type"`
}

// AccountDTO is the API response representation of an account.
type AccountDTO struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	CreatedAt common.Date `json:"created_at"`
}

// ToAccountDTO maps a dto.AccountRead to an AccountDTO.
func ToAccountDTO(a *dto.AccountRead) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{
		ID:        a.ID,
		Name:      a.Name,
		Type:      a.Type.String(),
		CreatedAt: common.Date{Time: a.CreatedAt},
	}
}
