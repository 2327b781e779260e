// Package account implements the account registry: creating, reading,
// renaming, retyping and deleting accounts. Every operation runs inside a
// single unit of work and publishes a domain event once it has committed.
package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/ledgerbook/pkg/domain"
	"github.com/amirasaad/ledgerbook/pkg/domain/events"
	"github.com/amirasaad/ledgerbook/pkg/dto"
	"github.com/amirasaad/ledgerbook/pkg/eventbus"
	"github.com/amirasaad/ledgerbook/pkg/repository"
)

// Service provides the account registry operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Emitter
	logger *slog.Logger
	now    func() time.Time
}

// New creates an account Service. bus may be nil, in which case no events are published.
func New(uow repository.UnitOfWork, bus eventbus.Emitter, logger *slog.Logger) *Service {
	if bus == nil {
		bus = eventbus.Nop{}
	}
	return &Service{
		uow:    uow,
		bus:    bus,
		logger: logger.With("service", "account"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used to stamp events.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateAccount validates and stores a new account.
// A name already in use yields domain.ErrDuplicateName, whether it is caught by
// the pre-check or by the unique constraint at commit.
func (s *Service) CreateAccount(
	ctx context.Context,
	name string,
	accountType domain.AccountType,
) (acct *dto.AccountRead, err error) {
	logger := s.logger.With("name", name, "type", accountType)
	if err = domain.ValidateAccountName(name); err != nil {
		return nil, err
	}
	if _, err = domain.ParseAccountType(accountType.String()); err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := repo.GetByName(ctx, name); err == nil {
			return domain.ErrDuplicateName
		} else if err = notFoundOK(err); err != nil {
			return err
		}
		acct, err = repo.Create(ctx, dto.AccountCreate{Name: name, Type: accountType})
		return err
	})
	if err != nil {
		logger.Warn("CreateAccount failed", "error", err)
		return nil, err
	}

	logger.Info("account created", "account_id", acct.ID)
	eventbus.EmitAndLog(ctx, s.bus, s.logger, events.AccountCreated{
		Meta:        events.NewMeta(s.now()),
		AccountID:   acct.ID,
		Name:        acct.Name,
		AccountType: acct.Type.String(),
	})
	return acct, nil
}

// GetAccount returns the account with the given id or domain.ErrNotFound.
func (s *Service) GetAccount(ctx context.Context, id int64) (acct *dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acct, nil
}

// ListAccounts returns every account ordered by name.
func (s *Service) ListAccounts(ctx context.Context) (accts []*dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accts, err = repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return accts, nil
}

// UpdateAccount applies the non-nil fields of update and returns the stored result.
// Renaming onto a name held by another account yields domain.ErrDuplicateName.
func (s *Service) UpdateAccount(
	ctx context.Context,
	id int64,
	update dto.AccountUpdate,
) (acct *dto.AccountRead, err error) {
	logger := s.logger.With("account_id", id)
	if update.Name != nil {
		if err = domain.ValidateAccountName(*update.Name); err != nil {
			return nil, err
		}
	}
	if update.Type != nil {
		if _, err = domain.ParseAccountType(update.Type.String()); err != nil {
			return nil, err
		}
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		current, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if update.Name != nil && *update.Name != current.Name {
			if other, err := repo.GetByName(ctx, *update.Name); err == nil && other.ID != id {
				return domain.ErrDuplicateName
			} else if err = notFoundOK(err); err != nil {
				return err
			}
		}
		if err := repo.Update(ctx, id, update); err != nil {
			return err
		}
		acct, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		logger.Warn("UpdateAccount failed", "error", err)
		return nil, err
	}

	if !update.Empty() {
		logger.Info("account updated")
		eventbus.EmitAndLog(ctx, s.bus, s.logger, events.AccountUpdated{
			Meta:        events.NewMeta(s.now()),
			AccountID:   acct.ID,
			Name:        acct.Name,
			AccountType: acct.Type.String(),
		})
	}
	return acct, nil
}

// DeleteAccount removes the account and every transaction posted to it atomically.
func (s *Service) DeleteAccount(ctx context.Context, id int64) (err error) {
	logger := s.logger.With("account_id", id)
	var removed int64
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acctRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if _, err := acctRepo.Get(ctx, id); err != nil {
			return err
		}
		if removed, err = txRepo.DeleteByAccount(ctx, id); err != nil {
			return err
		}
		return acctRepo.Delete(ctx, id)
	})
	if err != nil {
		logger.Warn("DeleteAccount failed", "error", err)
		return err
	}

	logger.Info("account deleted", "transactions_removed", removed)
	eventbus.EmitAndLog(ctx, s.bus, s.logger, events.AccountDeleted{
		Meta:      events.NewMeta(s.now()),
		AccountID: id,
	})
	return nil
}

// notFoundOK swallows a not-found lookup so callers can treat it as "free".
func notFoundOK(err error) error {
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}
