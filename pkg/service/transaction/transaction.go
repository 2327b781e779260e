// Package transaction implements the ledger: recording, listing, editing and
// removing transactions posted to accounts.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/ledgerbook/pkg/domain"
	"github.com/amirasaad/ledgerbook/pkg/domain/events"
	"github.com/amirasaad/ledgerbook/pkg/dto"
	"github.com/amirasaad/ledgerbook/pkg/eventbus"
	"github.com/amirasaad/ledgerbook/pkg/repository"
)

const (
	// DefaultListLimit is used when a listing does not ask for a limit.
	DefaultListLimit = 100
	// MaxListLimit is the largest page a listing may request.
	MaxListLimit = 1000
)

// Service provides the ledger operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Emitter
	logger *slog.Logger
	now    func() time.Time
}

// New creates a ledger Service. bus may be nil.
func New(uow repository.UnitOfWork, bus eventbus.Emitter, logger *slog.Logger) *Service {
	if bus == nil {
		bus = eventbus.Nop{}
	}
	return &Service{
		uow:    uow,
		bus:    bus,
		logger: logger.With("service", "transaction"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for default dates and event stamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateTransaction records a transaction against an existing account.
// A missing date defaults to now; the amount is rounded to cents.
func (s *Service) CreateTransaction(
	ctx context.Context,
	in dto.TransactionCreate,
) (tx *dto.TransactionRead, err error) {
	logger := s.logger.With("account_id", in.AccountID)
	amount, err := domain.NormalizeAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	in.Amount = amount
	date := s.now().UTC()
	if in.Date != nil {
		date = in.Date.UTC()
	}
	in.Date = &date

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acctRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := acctRepo.Get(ctx, in.AccountID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: account %d does not exist", domain.ErrInvalidAccount, in.AccountID)
			}
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		tx, err = txRepo.Create(ctx, in)
		return err
	})
	if err != nil {
		logger.Warn("CreateTransaction failed", "error", err)
		return nil, err
	}

	logger.Info("transaction recorded", "transaction_id", tx.ID, "amount", tx.Amount.StringFixed(domain.AmountScale))
	eventbus.EmitAndLog(ctx, s.bus, s.logger, events.TransactionCreated{
		Meta:          events.NewMeta(s.now()),
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		Amount:        tx.Amount,
		Date:          tx.Date,
	})
	return tx, nil
}

// GetTransaction returns the transaction with the given id or domain.ErrNotFound.
func (s *Service) GetTransaction(ctx context.Context, id int64) (tx *dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		tx, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// ListTransactions returns transactions newest first (date, then id), optionally
// restricted to one account. A zero limit means DefaultListLimit.
func (s *Service) ListTransactions(
	ctx context.Context,
	filter dto.TransactionFilter,
) (txs []*dto.TransactionRead, err error) {
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit < 1 || filter.Limit > MaxListLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrValidation, MaxListLimit)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		txs, err = repo.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// UpdateTransaction applies the non-nil fields of update and returns the stored result.
// The owning account cannot be changed.
func (s *Service) UpdateTransaction(
	ctx context.Context,
	id int64,
	update dto.TransactionUpdate,
) (tx *dto.TransactionRead, err error) {
	logger := s.logger.With("transaction_id", id)
	if update.Amount != nil {
		amount, err := domain.NormalizeAmount(*update.Amount)
		if err != nil {
			return nil, err
		}
		update.Amount = &amount
	}
	if update.Date != nil {
		date := update.Date.UTC()
		update.Date = &date
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, id); err != nil {
			return err
		}
		if err := repo.Update(ctx, id, update); err != nil {
			return err
		}
		tx, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		logger.Warn("UpdateTransaction failed", "error", err)
		return nil, err
	}

	if !update.Empty() {
		logger.Info("transaction updated")
		eventbus.EmitAndLog(ctx, s.bus, s.logger, events.TransactionUpdated{
			Meta:          events.NewMeta(s.now()),
			TransactionID: tx.ID,
			AccountID:     tx.AccountID,
			Amount:        tx.Amount,
			Date:          tx.Date,
		})
	}
	return tx, nil
}

// DeleteTransaction removes a single transaction.
func (s *Service) DeleteTransaction(ctx context.Context, id int64) (err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn("DeleteTransaction failed", "transaction_id", id, "error", err)
		return err
	}

	s.logger.Info("transaction deleted", "transaction_id", id)
	eventbus.EmitAndLog(ctx, s.bus, s.logger, events.TransactionDeleted{
		Meta:          events.NewMeta(s.now()),
		TransactionID: id,
	})
	return nil
}
