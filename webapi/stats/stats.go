// Package stats serves the dashboard read models.
package stats

import (
	"fmt"

	"github.com/amirasaad/ledgerbook/pkg/config"
	"github.com/amirasaad/ledgerbook/pkg/domain"
	"github.com/amirasaad/ledgerbook/pkg/dto"
	reportsvc "github.com/amirasaad/ledgerbook/pkg/service/report"
	"github.com/amirasaad/ledgerbook/webapi/common"
	txweb "github.com/amirasaad/ledgerbook/webapi/transaction"
	"github.com/gofiber/fiber/v2"
)

//revive:disable

// SummaryDTO is the API response for the ledger summary.
type SummaryDTO struct {
	TotalBalance      float64 `json:"total_balance"`
	AccountsCount     int64   `json:"accounts_count"`
	TransactionsCount int64   `json:"transactions_count"`
}

// ChartPointDTO is one day of the chart.
type ChartPointDTO struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ToSummaryDTO maps a dto.Summary to a SummaryDTO.
func ToSummaryDTO(s dto.Summary) SummaryDTO {
	return SummaryDTO{
		TotalBalance:      s.TotalBalance.InexactFloat64(),
		AccountsCount:     s.AccountsCount,
		TransactionsCount: s.TransactionsCount,
	}
}

// Routes registers the reporting endpoints under router.
//
// Routes:
//   - GET /stats/summary : Total balance and row counts.
//   - GET /stats/recent  : Latest transactions (?limit=).
//   - GET /stats/chart   : Daily net amounts (?days=).
func Routes(router fiber.Router, reportSvc *reportsvc.Service, cfg *config.Report) {
	router.Get("/stats/summary", Summary(reportSvc))
	router.Get("/stats/recent", Recent(reportSvc, cfg.RecentLimit))
	router.Get("/stats/chart", Chart(reportSvc, cfg.ChartDays))
}

// Summary returns a handler for the ledger summary.
func Summary(reportSvc *reportsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := reportSvc.Summary(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute summary", err)
		}
		return c.JSON(ToSummaryDTO(s))
	}
}

// Recent returns a handler for the latest transactions.
func Recent(reportSvc *reportsvc.Service, defaultLimit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := common.QueryInt(c, "limit", defaultLimit)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid limit", err)
		}
		if limit < 1 {
			return common.ProblemDetailsJSON(c, "Invalid limit",
				fmt.Errorf("%w: limit must be positive", domain.ErrValidation))
		}
		txs, err := reportSvc.Recent(c.UserContext(), limit)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load recent transactions", err)
		}
		return c.JSON(txweb.ToTransactionDTOs(txs))
	}
}

// Chart returns a handler for the daily chart.
func Chart(reportSvc *reportsvc.Service, defaultDays int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days, err := common.QueryInt(c, "days", defaultDays)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid days", err)
		}
		if days < 1 {
			return common.ProblemDetailsJSON(c, "Invalid days",
				fmt.Errorf("%w: days must be positive", domain.ErrValidation))
		}
		points, err := reportSvc.Chart(c.UserContext(), days)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build chart", err)
		}
		out := make([]ChartPointDTO, 0, len(points))
		for _, p := range points {
			out = append(out, ChartPointDTO{Date: p.Date, Value: p.Value.InexactFloat64()})
		}
		return c.JSON(out)
	}
}
