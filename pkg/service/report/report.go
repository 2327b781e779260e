// Package report computes the read-only dashboard views: ledger summary,
// recent activity and the daily net-amount chart. Each call reads one
// consistent snapshot and is recomputed per request unless a summary cache
// is explicitly configured.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/amirasaad/ledgerbook/pkg/cache"
	"github.com/amirasaad/ledgerbook/pkg/domain"
	"github.com/amirasaad/ledgerbook/pkg/domain/events"
	"github.com/amirasaad/ledgerbook/pkg/dto"
	"github.com/amirasaad/ledgerbook/pkg/repository"
	"github.com/shopspring/decimal"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 1000
	DefaultChartDays   = 30
	MaxChartDays       = 3650

	// DayLayout keys chart buckets by UTC calendar date.
	DayLayout = "2006-01-02"

	summaryCacheKey = "report:summary"
)

// Service provides the reporting operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time

	cache    cache.Cache
	cacheTTL time.Duration
	// generation advances on every invalidation so a summary computed before
	// a mutation is never stored after it.
	generation atomic.Uint64
}

type cachedSummary struct {
	TotalBalance      decimal.Decimal `json:"total_balance"`
	AccountsCount     int64           `json:"accounts_count"`
	TransactionsCount int64           `json:"transactions_count"`
}

// New creates a reporting Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		logger: logger.With("service", "report"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock that anchors the chart window.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithCache serves Summary from c for up to ttl. InvalidateSummary must be
// subscribed to the ledger events for the cached value to track mutations;
// writers outside this process are only seen once the entry expires.
func (s *Service) WithCache(c cache.Cache, ttl time.Duration) *Service {
	if ttl > 0 {
		s.cache = c
		s.cacheTTL = ttl
	}
	return s
}

// InvalidateSummary is an event handler that drops the cached summary.
func (s *Service) InvalidateSummary(ctx context.Context, _ events.Event) error {
	s.generation.Add(1)
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, summaryCacheKey)
}

// Summary returns the exact balance over all transactions and the row counts.
func (s *Service) Summary(ctx context.Context) (summary dto.Summary, err error) {
	if cached, ok := s.loadSummary(ctx); ok {
		return cached, nil
	}
	gen := s.generation.Load()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acctRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if summary.TotalBalance, err = txRepo.Sum(ctx); err != nil {
			return err
		}
		if summary.AccountsCount, err = acctRepo.Count(ctx); err != nil {
			return err
		}
		summary.TransactionsCount, err = txRepo.Count(ctx)
		return err
	})
	if err != nil {
		s.logger.Warn("Summary failed", "error", err)
		return dto.Summary{}, err
	}
	s.storeSummary(ctx, gen, summary)
	return summary, nil
}

func (s *Service) loadSummary(ctx context.Context) (dto.Summary, bool) {
	if s.cache == nil {
		return dto.Summary{}, false
	}
	raw, err := s.cache.Get(ctx, summaryCacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("Summary cache read failed", "error", err)
		}
		return dto.Summary{}, false
	}
	var entry cachedSummary
	if err := json.Unmarshal(raw, &entry); err != nil {
		s.logger.Warn("Discarding unreadable cached summary", "error", err)
		return dto.Summary{}, false
	}
	return dto.Summary(entry), true
}

// storeSummary caches a summary computed at generation gen. An invalidation
// racing the write either precedes the final check or deletes the entry itself.
func (s *Service) storeSummary(ctx context.Context, gen uint64, summary dto.Summary) {
	if s.cache == nil || gen != s.generation.Load() {
		return
	}
	raw, err := json.Marshal(cachedSummary(summary))
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, summaryCacheKey, raw, s.cacheTTL); err != nil {
		s.logger.Warn("Summary cache write failed", "error", err)
		return
	}
	if gen != s.generation.Load() {
		if err := s.cache.Delete(ctx, summaryCacheKey); err != nil {
			s.logger.Warn("Summary cache delete failed", "error", err)
		}
	}
}

// Recent returns at most n transactions ordered by date then id, newest first.
// n == 0 means DefaultRecentLimit.
func (s *Service) Recent(ctx context.Context, n int) (txs []*dto.TransactionRead, err error) {
	if n == 0 {
		n = DefaultRecentLimit
	}
	if n < 1 || n > MaxRecentLimit {
		return nil, fmt.Errorf("%w: recent limit must be between 1 and %d", domain.ErrValidation, MaxRecentLimit)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		txs, err = repo.List(ctx, dto.TransactionFilter{Limit: n})
		return err
	})
	if err != nil {
		s.logger.Warn("Recent failed", "error", err)
		return nil, err
	}
	return txs, nil
}

// Chart sums amounts per UTC calendar day for transactions dated at or after
// now minus days. Days without transactions are omitted; points ascend by date.
// days == 0 means DefaultChartDays.
func (s *Service) Chart(ctx context.Context, days int) (points []dto.ChartPoint, err error) {
	if days == 0 {
		days = DefaultChartDays
	}
	if days < 1 || days > MaxChartDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrValidation, MaxChartDays)
	}
	since := s.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	var rows []dto.DatedAmount
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		rows, err = repo.ListSince(ctx, since)
		return err
	})
	if err != nil {
		s.logger.Warn("Chart failed", "days", days, "error", err)
		return nil, err
	}
	return bucketByDay(rows), nil
}

// bucketByDay folds rows, already sorted by date, into one point per UTC day.
func bucketByDay(rows []dto.DatedAmount) []dto.ChartPoint {
	points := make([]dto.ChartPoint, 0)
	for _, row := range rows {
		day := row.Date.UTC().Format(DayLayout)
		if n := len(points); n > 0 && points[n-1].Date == day {
			points[n-1].Value = points[n-1].Value.Add(row.Amount)
			continue
		}
		points = append(points, dto.ChartPoint{Date: day, Value: decimal.Zero.Add(row.Amount)})
	}
	return points
}
