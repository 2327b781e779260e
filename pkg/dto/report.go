package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary aggregates the whole ledger.
type Summary struct {
	TotalBalance      decimal.Decimal
	AccountsCount     int64
	TransactionsCount int64
}

// ChartPoint is the net amount of one UTC calendar day.
type ChartPoint struct {
	Date  string // YYYY-MM-DD
	Value decimal.Decimal
}

// DatedAmount is a single (date, amount) pair used to build daily buckets.
type DatedAmount struct {
	Date   time.Time
	Amount decimal.Decimal
}
