package repository

import (
	"context"
	"reflect"

	"github.com/amirasaad/ledgerbook/pkg/repository/account"
	"github.com/amirasaad/ledgerbook/pkg/repository/transaction"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Do runs the given function in a transaction boundary, providing a UnitOfWork for repository access.
// Repositories obtained from the inner UnitOfWork share its session, so every read and write
// inside fn is committed or rolled back together.
//
//	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
//		repo, err := uow.AccountRepository()
//		if err != nil {
//			return err
//		}
//		_, err = repo.Create(ctx, dto.AccountCreate{Name: "Cash", Type: domain.AccountTypeAsset})
//		return err
//	})
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// If the function returns an error, the transaction is rolled back.
	// Errors leaving Do are domain errors (see pkg/domain).
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested type, bound to the current transaction.
	GetRepository(repoType reflect.Type) (any, error)

	AccountRepository() (account.Repository, error)
	TransactionRepository() (transaction.Repository, error)
}
