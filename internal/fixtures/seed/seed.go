package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/amirasaad/ledgerbook/pkg/dto"
	accountsvc "github.com/amirasaad/ledgerbook/pkg/service/account"
	txsvc "github.com/amirasaad/ledgerbook/pkg/service/transaction"
	"github.com/shopspring/decimal"
)

const (
	// DefaultCount is the number of random transactions recorded by Seed.
	DefaultCount = 100
	// maxAgeDays bounds how far back a seeded transaction may be dated.
	maxAgeDays  = 60
	description = "Auto seed"
)

// Result reports what Seed wrote.
type Result struct {
	Skipped      bool
	Accounts     int
	Transactions int
}

// Seeder fills an empty ledger with demo data through the services, so the
// usual validation and events apply.
type Seeder struct {
	accounts *accountsvc.Service
	txs      *txsvc.Service
	logger   *slog.Logger
	rand     *rand.Rand
	now      func() time.Time
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithRand makes the generated data reproducible.
func WithRand(r *rand.Rand) Option {
	return func(s *Seeder) { s.rand = r }
}

// WithClock fixes the reference time transactions are dated back from.
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

// New returns a Seeder writing through the given services.
func New(accounts *accountsvc.Service, txs *txsvc.Service, logger *slog.Logger, opts ...Option) *Seeder {
	s := &Seeder{
		accounts: accounts,
		txs:      txs,
		logger:   logger,
		rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed creates the chart of accounts and count random transactions. A ledger
// that already has accounts is left untouched.
func (s *Seeder) Seed(ctx context.Context, chart []AccountFixture, count int) (Result, error) {
	existing, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(existing) > 0 {
		s.logger.Info("Data already exists; skipping seed", "accounts", len(existing))
		return Result{Skipped: true}, nil
	}
	if len(chart) == 0 {
		return Result{}, errors.New("empty chart of accounts")
	}

	var res Result
	ids := make([]int64, 0, len(chart))
	for _, f := range chart {
		acct, err := s.accounts.CreateAccount(ctx, f.Name, f.Type)
		if err != nil {
			return res, fmt.Errorf("create account %q: %w", f.Name, err)
		}
		ids = append(ids, acct.ID)
		res.Accounts++
	}

	now := s.now().UTC()
	desc := description
	for range count {
		date := now.AddDate(0, 0, -s.rand.IntN(maxAgeDays+1))
		_, err := s.txs.CreateTransaction(ctx, dto.TransactionCreate{
			AccountID:   ids[s.rand.IntN(len(ids))],
			Date:        &date,
			Description: &desc,
			Amount:      s.amount(),
		})
		if err != nil {
			return res, fmt.Errorf("create transaction: %w", err)
		}
		res.Transactions++
	}
	s.logger.Info("Seeded demo data", "accounts", res.Accounts, "transactions", res.Transactions)
	return res, nil
}

// amount is skewed towards income: roughly 70% of values are positive.
func (s *Seeder) amount() decimal.Decimal {
	return decimal.NewFromFloat((s.rand.Float64() - 0.3) * 1000).Round(2)
}
