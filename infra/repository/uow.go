package repository

import (
	"context"
	"fmt"
	"reflect"

	accountrepo "github.com/amirasaad/ledgerbook/infra/repository/account"
	"github.com/amirasaad/ledgerbook/infra/repository/dberr"
	transactionrepo "github.com/amirasaad/ledgerbook/infra/repository/transaction"
	"github.com/amirasaad/ledgerbook/pkg/repository"
	"github.com/amirasaad/ledgerbook/pkg/repository/account"
	"github.com/amirasaad/ledgerbook/pkg/repository/transaction"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// All repositories handed out inside Do share the same transaction session.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*account.Repository)(nil)).Elem():     func(db *gorm.DB) any { return accountrepo.New(db) },
			reflect.TypeOf((*transaction.Repository)(nil)).Elem(): func(db *gorm.DB) any { return transactionrepo.New(db) },
		},
	}
}

// Do runs fn in a database transaction. The transaction commits when fn returns
// nil and rolls back otherwise. Errors from fn and from the commit itself are
// mapped to domain errors, so a unique violation detected at commit time still
// surfaces as domain.ErrDuplicateName.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return dberr.WrapError(func() error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
			return fn(txnUow)
		})
	})
}

// GetRepository provides generic, type-safe access to repositories using the transaction session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	if u.tx == nil {
		return nil, fmt.Errorf("repository %v requested outside of a unit of work", repoType)
	}
	return constructor(u.tx), nil
}

// AccountRepository returns the account repository bound to the current transaction.
func (u *UoW) AccountRepository() (account.Repository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*account.Repository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(account.Repository), nil
}

// TransactionRepository returns the transaction repository bound to the current transaction.
func (u *UoW) TransactionRepository() (transaction.Repository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*transaction.Repository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(transaction.Repository), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
