// Package mocks holds testify mocks for the repository contracts.
package mocks

import (
	"context"
	"reflect"

	"github.com/amirasaad/ledgerbook/pkg/repository"
	"github.com/amirasaad/ledgerbook/pkg/repository/account"
	"github.com/amirasaad/ledgerbook/pkg/repository/transaction"
	"github.com/stretchr/testify/mock"
)

// UnitOfWork is a mock of repository.UnitOfWork.
type UnitOfWork struct {
	mock.Mock
}

// NewUnitOfWork creates a UnitOfWork mock whose expectations are asserted on cleanup.
func NewUnitOfWork(t testingT) *UnitOfWork {
	m := &UnitOfWork{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Do provides a mock function. A Return of type
// func(context.Context, func(repository.UnitOfWork) error) error is invoked.
func (_m *UnitOfWork) Do(ctx context.Context, fn func(repository.UnitOfWork) error) error {
	ret := _m.Called(ctx, fn)
	if len(ret) == 0 {
		panic("no return value specified for Do")
	}
	if rf, ok := ret.Get(0).(func(context.Context, func(repository.UnitOfWork) error) error); ok {
		return rf(ctx, fn)
	}
	return ret.Error(0)
}

// RunInline makes Do call fn with the mock itself, as a real transaction would.
func (_m *UnitOfWork) RunInline() *mock.Call {
	return _m.On("Do", mock.Anything, mock.Anything).Return(
		func(_ context.Context, fn func(repository.UnitOfWork) error) error {
			return fn(_m)
		},
	)
}

// GetRepository provides a mock function.
func (_m *UnitOfWork) GetRepository(repoType reflect.Type) (any, error) {
	ret := _m.Called(repoType)
	return ret.Get(0), ret.Error(1)
}

// AccountRepository provides a mock function.
func (_m *UnitOfWork) AccountRepository() (account.Repository, error) {
	ret := _m.Called()
	var r0 account.Repository
	if v := ret.Get(0); v != nil {
		r0 = v.(account.Repository)
	}
	return r0, ret.Error(1)
}

// TransactionRepository provides a mock function.
func (_m *UnitOfWork) TransactionRepository() (transaction.Repository, error) {
	ret := _m.Called()
	var r0 transaction.Repository
	if v := ret.Get(0); v != nil {
		r0 = v.(transaction.Repository)
	}
	return r0, ret.Error(1)
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)
