package repository_test

import (
	"context"
	"testing"
	"time"

	infrarepo "github.com/amirasaad/ledgerbook/infra/repository"
	"github.com/amirasaad/ledgerbook/internal/testutils"
	"github.com/amirasaad/ledgerbook/pkg/domain"
	"github.com/amirasaad/ledgerbook/pkg/dto"
	"github.com/amirasaad/ledgerbook/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// RepositorySuite runs against whichever migrated database openDB returns.
type RepositorySuite struct {
	suite.Suite
	openDB func(t testing.TB) *gorm.DB
	uow    *infrarepo.UoW
	ctx    context.Context
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositorySuite{openDB: testutils.NewTestDB})
}

func (s *RepositorySuite) SetupTest() {
	s.uow = infrarepo.NewUoW(s.openDB(s.T()))
	s.ctx = context.Background()
}

func (s *RepositorySuite) createAccount(name string) *dto.AccountRead {
	var acct *dto.AccountRead
	s.Require().NoError(s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err = repo.Create(s.ctx, dto.AccountCreate{Name: name, Type: domain.AccountTypeAsset})
		return err
	}))
	return acct
}

func (s *RepositorySuite) createTransaction(accountID int64, date time.Time, amount string) *dto.TransactionRead {
	var tx *dto.TransactionRead
	s.Require().NoError(s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		tx, err = repo.Create(s.ctx, dto.TransactionCreate{
			AccountID: accountID,
			Date:      &date,
			Amount:    decimal.RequireFromString(amount),
		})
		return err
	}))
	return tx
}

func (s *RepositorySuite) TestUniqueNameConstraint() {
	s.createAccount("Cash")

	err := s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		_, err = repo.Create(s.ctx, dto.AccountCreate{Name: "Cash", Type: domain.AccountTypeExpense})
		return err
	})
	s.ErrorIs(err, domain.ErrDuplicateName)

	// names are case-sensitive
	s.NotNil(s.createAccount("cash"))
}

func (s *RepositorySuite) TestForeignKeyRejectsUnknownAccount() {
	err := s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		_, err = repo.Create(s.ctx, dto.TransactionCreate{AccountID: 999, Amount: decimal.NewFromInt(5)})
		return err
	})
	s.ErrorIs(err, domain.ErrInvalidAccount)
}

func (s *RepositorySuite) TestListOrderingAndFilter() {
	cash := s.createAccount("Cash")
	bank := s.createAccount("Bank")
	day := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	first := s.createTransaction(cash.ID, day, "1.00")
	second := s.createTransaction(cash.ID, day, "2.00") // same date, higher id
	older := s.createTransaction(bank.ID, day.Add(-time.Hour), "3.00")

	s.Require().NoError(s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		all, err := repo.List(s.ctx, dto.TransactionFilter{Limit: 100})
		s.Require().NoError(err)
		s.Require().Len(all, 3)
		s.Equal([]int64{second.ID, first.ID, older.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})
		s.True(day.Equal(all[0].Date))
		s.Equal(time.UTC, all[0].Date.Location())

		limited, err := repo.List(s.ctx, dto.TransactionFilter{Limit: 2})
		s.Require().NoError(err)
		s.Len(limited, 2)

		bankOnly, err := repo.List(s.ctx, dto.TransactionFilter{AccountID: &bank.ID, Limit: 100})
		s.Require().NoError(err)
		s.Require().Len(bankOnly, 1)
		s.Equal(older.ID, bankOnly[0].ID)
		return nil
	}))
}

func (s *RepositorySuite) TestSumCountAndListSince() {
	cash := s.createAccount("Cash")
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	s.createTransaction(cash.ID, now.AddDate(0, 0, -40), "0.10")
	s.createTransaction(cash.ID, now.AddDate(0, 0, -1), "0.20")
	s.createTransaction(cash.ID, now, "-0.05")

	s.Require().NoError(s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		sum, err := repo.Sum(s.ctx)
		s.Require().NoError(err)
		s.True(decimal.RequireFromString("0.25").Equal(sum), sum.String())

		n, err := repo.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(int64(3), n)

		since, err := repo.ListSince(s.ctx, now.AddDate(0, 0, -30))
		s.Require().NoError(err)
		s.Require().Len(since, 2)
		s.True(since[0].Date.Before(since[1].Date))
		s.Equal("0.2", since[0].Amount.String())
		return nil
	}))
}

func (s *RepositorySuite) TestDeleteAccountCascades() {
	cash := s.createAccount("Cash")
	bank := s.createAccount("Bank")
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s.createTransaction(cash.ID, day, "10.00")
	s.createTransaction(cash.ID, day, "20.00")
	kept := s.createTransaction(bank.ID, day, "30.00")

	s.Require().NoError(s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		acctRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		removed, err := txRepo.DeleteByAccount(s.ctx, cash.ID)
		if err != nil {
			return err
		}
		s.Equal(int64(2), removed)
		return acctRepo.Delete(s.ctx, cash.ID)
	}))

	s.Require().NoError(s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		txRepo, _ := uow.TransactionRepository()
		acctRepo, _ := uow.AccountRepository()
		txs, err := txRepo.List(s.ctx, dto.TransactionFilter{Limit: 100})
		s.Require().NoError(err)
		s.Require().Len(txs, 1)
		s.Equal(kept.ID, txs[0].ID)
		_, err = acctRepo.Get(s.ctx, cash.ID)
		s.Error(err)
		return nil
	}))
}

func (s *RepositorySuite) TestForeignKeyCascadeAtStorageLevel() {
	cash := s.createAccount("Cash")
	s.createTransaction(cash.ID, time.Now().UTC(), "1.00")

	s.Require().NoError(s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		acctRepo, _ := uow.AccountRepository()
		return acctRepo.Delete(s.ctx, cash.ID)
	}))
	s.Require().NoError(s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		txRepo, _ := uow.TransactionRepository()
		n, err := txRepo.Count(s.ctx)
		s.Require().NoError(err)
		s.Zero(n)
		return nil
	}))
}

func (s *RepositorySuite) TestRollbackLeavesNoTrace() {
	err := s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, _ := uow.AccountRepository()
		if _, err := repo.Create(s.ctx, dto.AccountCreate{Name: "Temp", Type: domain.AccountTypeEquity}); err != nil {
			return err
		}
		return domain.ErrValidation
	})
	s.ErrorIs(err, domain.ErrValidation)

	s.Require().NoError(s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, _ := uow.AccountRepository()
		_, err := repo.GetByName(s.ctx, "Temp")
		s.ErrorIs(err, domain.ErrNotFound)
		return nil
	}))
}

// Errors are checked inside Do, before the unit of work sees them.
func (s *RepositorySuite) TestMissingRowsReportNotFound() {
	name := "Nowhere"
	amount := decimal.NewFromInt(1)

	s.Require().NoError(s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		acctRepo, err := uow.AccountRepository()
		s.Require().NoError(err)
		txRepo, err := uow.TransactionRepository()
		s.Require().NoError(err)

		_, err = acctRepo.Get(s.ctx, 404)
		s.ErrorIs(err, domain.ErrNotFound)
		_, err = acctRepo.GetByName(s.ctx, name)
		s.ErrorIs(err, domain.ErrNotFound)
		s.ErrorIs(acctRepo.Update(s.ctx, 404, dto.AccountUpdate{Name: &name}), domain.ErrNotFound)
		s.ErrorIs(acctRepo.Delete(s.ctx, 404), domain.ErrNotFound)

		_, err = txRepo.Get(s.ctx, 404)
		s.ErrorIs(err, domain.ErrNotFound)
		s.ErrorIs(txRepo.Update(s.ctx, 404, dto.TransactionUpdate{Amount: &amount}), domain.ErrNotFound)
		s.ErrorIs(txRepo.Delete(s.ctx, 404), domain.ErrNotFound)
		return nil
	}))
}

func TestSQLiteUpdatePartial(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uow := infrarepo.NewUoW(testutils.NewTestDB(t))
	date := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	desc := "Rent"

	var created *dto.TransactionRead
	require.NoError(t, uow.Do(ctx, func(u repository.UnitOfWork) error {
		acctRepo, _ := u.AccountRepository()
		acct, err := acctRepo.Create(ctx, dto.AccountCreate{Name: "Bank", Type: domain.AccountTypeAsset})
		if err != nil {
			return err
		}
		txRepo, _ := u.TransactionRepository()
		created, err = txRepo.Create(ctx, dto.TransactionCreate{
			AccountID: acct.ID, Date: &date, Description: &desc, Amount: decimal.RequireFromString("-800"),
		})
		return err
	}))

	amount := decimal.RequireFromString("-850.25")
	require.NoError(t, uow.Do(ctx, func(u repository.UnitOfWork) error {
		txRepo, _ := u.TransactionRepository()
		return txRepo.Update(ctx, created.ID, dto.TransactionUpdate{Amount: &amount})
	}))

	require.NoError(t, uow.Do(ctx, func(u repository.UnitOfWork) error {
		txRepo, _ := u.TransactionRepository()
		got, err := txRepo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, amount.Equal(got.Amount))
		assert.True(t, date.Equal(got.Date))
		require.NotNil(t, got.Description)
		assert.Equal(t, "Rent", *got.Description)
		return nil
	}))
}
