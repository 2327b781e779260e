package account

import (
	"github.com/amirasaad/ledgerbook/pkg/domain"
	"github.com/amirasaad/ledgerbook/pkg/dto"
	accountsvc "github.com/amirasaad/ledgerbook/pkg/service/account"
	"github.com/amirasaad/ledgerbook/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the account registry endpoints under router.
//
// Routes:
//   - GET    /accounts      : List accounts ordered by name.
//   - POST   /accounts      : Create an account.
//   - GET    /accounts/:id  : Fetch one account.
//   - PATCH  /accounts/:id  : Rename and/or retype an account.
//   - DELETE /accounts/:id  : Delete an account and all of its transactions.
func Routes(router fiber.Router, accountSvc *accountsvc.Service) {
	router.Get("/accounts", ListAccounts(accountSvc))
	router.Post("/accounts", CreateAccount(accountSvc))
	router.Get("/accounts/:id", GetAccount(accountSvc))
	router.Patch("/accounts/:id", UpdateAccount(accountSvc))
	router.Delete("/accounts/:id", DeleteAccount(accountSvc))
}

// ListAccounts returns a handler listing every account.
func ListAccounts(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accts, err := accountSvc.ListAccounts(c.UserContext())
		if err != nil {
			log.Errorf("Failed to list accounts: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		out := make([]*AccountDTO, 0, len(accts))
		for _, a := range accts {
			out = append(out, ToAccountDTO(a))
		}
		return c.JSON(out)
	}
}

// CreateAccount returns a handler creating an account. Duplicate names and
// unknown types are rejected with 400.
func CreateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err // error response already written
		}
		accountType, err := domain.ParseAccountType(input.Type)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account type", err)
		}
		a, err := accountSvc.CreateAccount(c.UserContext(), input.Name, accountType)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return c.Status(fiber.StatusCreated).JSON(ToAccountDTO(a))
	}
}

// GetAccount returns a handler fetching one account.
func GetAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err)
		}
		a, err := accountSvc.GetAccount(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Account not found", err)
		}
		return c.JSON(ToAccountDTO(a))
	}
}

// UpdateAccount returns a handler applying a partial update.
func UpdateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err)
		}
		input, err := common.BindAndValidate[UpdateAccountRequest](c)
		if input == nil {
			return err // error response already written
		}
		update := dto.AccountUpdate{Name: input.Name}
		if input.Type != nil {
			accountType, err := domain.ParseAccountType(*input.Type)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid account type", err)
			}
			update.Type = &accountType
		}
		a, err := accountSvc.UpdateAccount(c.UserContext(), id, update)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update account", err)
		}
		return c.JSON(ToAccountDTO(a))
	}
}

// DeleteAccount returns a handler deleting an account with its transactions.
func DeleteAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err)
		}
		if err := accountSvc.DeleteAccount(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete account", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
