package transaction

import (
	"fmt"

	"github.com/amirasaad/ledgerbook/pkg/domain"
	"github.com/amirasaad/ledgerbook/pkg/dto"
	txsvc "github.com/amirasaad/ledgerbook/pkg/service/transaction"
	"github.com/amirasaad/ledgerbook/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the ledger endpoints under router.
//
// Routes:
//   - GET    /transactions      : List transactions (?account_id=&limit=).
//   - POST   /transactions      : Record a transaction.
//   - GET    /transactions/:id  : Fetch one transaction.
//   - PATCH  /transactions/:id  : Change date, description and/or amount.
//   - DELETE /transactions/:id  : Delete a transaction.
func Routes(router fiber.Router, txSvc *txsvc.Service) {
	router.Get("/transactions", ListTransactions(txSvc))
	router.Post("/transactions", CreateTransaction(txSvc))
	router.Get("/transactions/:id", GetTransaction(txSvc))
	router.Patch("/transactions/:id", UpdateTransaction(txSvc))
	router.Delete("/transactions/:id", DeleteTransaction(txSvc))
}

// ListTransactions returns a handler listing transactions newest first.
func ListTransactions(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter dto.TransactionFilter
		limit, err := common.QueryInt(c, "limit", txsvc.DefaultListLimit)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid limit", err)
		}
		filter.Limit = limit
		if limit == 0 {
			// an explicit zero is out of range, not "use the default"
			return common.ProblemDetailsJSON(c, "Invalid limit",
				fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrValidation, txsvc.MaxListLimit))
		}
		if c.Query("account_id") != "" {
			id, err := common.QueryInt(c, "account_id", 0)
			if err != nil || id < 1 {
				return common.ProblemDetailsJSON(c, "Invalid account_id",
					fmt.Errorf("%w: account_id must be a positive integer", domain.ErrValidation))
			}
			accountID := int64(id)
			filter.AccountID = &accountID
		}
		txs, err := txSvc.ListTransactions(c.UserContext(), filter)
		if err != nil {
			log.Errorf("Failed to list transactions: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return c.JSON(ToTransactionDTOs(txs))
	}
}

// CreateTransaction returns a handler recording a transaction. An unknown
// account_id is rejected with 400.
func CreateTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err // error response already written
		}
		create := dto.TransactionCreate{
			AccountID:   input.AccountID,
			Description: input.Description,
			Amount:      *input.Amount,
		}
		if input.Date != nil {
			create.Date = &input.Date.Time
		}
		tx, err := txSvc.CreateTransaction(c.UserContext(), create)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create transaction", err)
		}
		return c.Status(fiber.StatusCreated).JSON(ToTransactionDTO(tx))
	}
}

// GetTransaction returns a handler fetching one transaction.
func GetTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		tx, err := txSvc.GetTransaction(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transaction not found", err)
		}
		return c.JSON(ToTransactionDTO(tx))
	}
}

// UpdateTransaction returns a handler applying a partial update.
func UpdateTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		input, err := common.BindAndValidate[UpdateTransactionRequest](c)
		if input == nil {
			return err // error response already written
		}
		update := dto.TransactionUpdate{
			Description: input.Description,
			Amount:      input.Amount,
		}
		if input.Date != nil {
			update.Date = &input.Date.Time
		}
		tx, err := txSvc.UpdateTransaction(c.UserContext(), id, update)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update transaction", err)
		}
		return c.JSON(ToTransactionDTO(tx))
	}
}

// DeleteTransaction returns a handler deleting one transaction.
func DeleteTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		if err := txSvc.DeleteTransaction(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete transaction", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
