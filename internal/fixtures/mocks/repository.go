package mocks

import (
	"context"
	"time"

	"github.com/amirasaad/ledgerbook/pkg/domain/events"
	"github.com/amirasaad/ledgerbook/pkg/dto"
	"github.com/amirasaad/ledgerbook/pkg/eventbus"
	"github.com/amirasaad/ledgerbook/pkg/repository/account"
	"github.com/amirasaad/ledgerbook/pkg/repository/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// AccountRepository is a mock of account.Repository.
type AccountRepository struct {
	mock.Mock
}

// NewAccountRepository creates an AccountRepository mock.
func NewAccountRepository(t testingT) *AccountRepository {
	m := &AccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *AccountRepository) Create(ctx context.Context, create dto.AccountCreate) (*dto.AccountRead, error) {
	ret := _m.Called(ctx, create)
	return accountOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *AccountRepository) Update(ctx context.Context, id int64, update dto.AccountUpdate) error {
	return _m.Called(ctx, id, update).Error(0)
}

func (_m *AccountRepository) Get(ctx context.Context, id int64) (*dto.AccountRead, error) {
	ret := _m.Called(ctx, id)
	return accountOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *AccountRepository) GetByName(ctx context.Context, name string) (*dto.AccountRead, error) {
	ret := _m.Called(ctx, name)
	return accountOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *AccountRepository) List(ctx context.Context) ([]*dto.AccountRead, error) {
	ret := _m.Called(ctx)
	var r0 []*dto.AccountRead
	if v := ret.Get(0); v != nil {
		r0 = v.([]*dto.AccountRead)
	}
	return r0, ret.Error(1)
}

func (_m *AccountRepository) Delete(ctx context.Context, id int64) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *AccountRepository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func accountOrNil(v any) *dto.AccountRead {
	if v == nil {
		return nil
	}
	return v.(*dto.AccountRead)
}

// TransactionRepository is a mock of transaction.Repository.
type TransactionRepository struct {
	mock.Mock
}

// NewTransactionRepository creates a TransactionRepository mock.
func NewTransactionRepository(t testingT) *TransactionRepository {
	m := &TransactionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *TransactionRepository) Create(ctx context.Context, create dto.TransactionCreate) (*dto.TransactionRead, error) {
	ret := _m.Called(ctx, create)
	return transactionOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *TransactionRepository) Update(ctx context.Context, id int64, update dto.TransactionUpdate) error {
	return _m.Called(ctx, id, update).Error(0)
}

func (_m *TransactionRepository) Get(ctx context.Context, id int64) (*dto.TransactionRead, error) {
	ret := _m.Called(ctx, id)
	return transactionOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *TransactionRepository) List(ctx context.Context, filter dto.TransactionFilter) ([]*dto.TransactionRead, error) {
	ret := _m.Called(ctx, filter)
	var r0 []*dto.TransactionRead
	if v := ret.Get(0); v != nil {
		r0 = v.([]*dto.TransactionRead)
	}
	return r0, ret.Error(1)
}

func (_m *TransactionRepository) ListSince(ctx context.Context, since time.Time) ([]dto.DatedAmount, error) {
	ret := _m.Called(ctx, since)
	var r0 []dto.DatedAmount
	if v := ret.Get(0); v != nil {
		r0 = v.([]dto.DatedAmount)
	}
	return r0, ret.Error(1)
}

func (_m *TransactionRepository) Delete(ctx context.Context, id int64) error {
	return _m.Called(ctx, id).Error(0)
}

func (_m *TransactionRepository) DeleteByAccount(ctx context.Context, accountID int64) (int64, error) {
	ret := _m.Called(ctx, accountID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *TransactionRepository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *TransactionRepository) Sum(ctx context.Context) (decimal.Decimal, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(decimal.Decimal), ret.Error(1)
}

func transactionOrNil(v any) *dto.TransactionRead {
	if v == nil {
		return nil
	}
	return v.(*dto.TransactionRead)
}

// Emitter is a mock of eventbus.Emitter.
type Emitter struct {
	mock.Mock
}

// NewEmitter creates an Emitter mock.
func NewEmitter(t testingT) *Emitter {
	m := &Emitter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *Emitter) Emit(ctx context.Context, event events.Event) error {
	return _m.Called(ctx, event).Error(0)
}

var (
	_ account.Repository     = (*AccountRepository)(nil)
	_ transaction.Repository = (*TransactionRepository)(nil)
	_ eventbus.Emitter       = (*Emitter)(nil)
)
