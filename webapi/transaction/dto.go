package transaction

import (
	"github.com/amirasaad/ledgerbook/pkg/dto"
	"github.com/amirasaad/ledgerbook/webapi/common"
	"github.com/shopspring/decimal"
)

//revive:disable

// CreateTransactionRequest represents the request body for recording a transaction.
// Amount accepts a JSON number or a numeric string.
type CreateTransactionRequest struct {
	AccountID   int64            `json:"account_id" validate:"required,gt=0"`
	Date        *common.Date     `json:"date"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
}

// UpdateTransactionRequest represents the request body for a partial transaction update.
type UpdateTransactionRequest struct {
	Date        *common.Date     `json:"date"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
}

// TransactionDTO is the API response representation of a transaction.
type TransactionDTO struct {
	ID          int64       `json:"id"`
	AccountID   int64       `json:"account_id"`
	Date        common.Date `json:"date"`
	Description *string     `json:"description"`
	Amount      float64     `json:"amount"`
	CreatedAt   common.Date `json:"created_at"`
}

// ToTransactionDTO maps a dto.TransactionRead to a TransactionDTO.
func ToTransactionDTO(tx *dto.TransactionRead) *TransactionDTO {
	if tx == nil {
		return nil
	}
	return &TransactionDTO{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		Date:        common.Date{Time: tx.Date},
		Description: tx.Description,
		Amount:      tx.Amount.InexactFloat64(),
		CreatedAt:   common.Date{Time: tx.CreatedAt},
	}
}

// ToTransactionDTOs maps a slice, never returning nil.
func ToTransactionDTOs(txs []*dto.TransactionRead) []*TransactionDTO {
	out := make([]*TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, ToTransactionDTO(tx))
	}
	return out
}
