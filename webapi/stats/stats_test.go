package stats_test

import (
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	reportsvc "github.com/amirasaad/ledgerbook/pkg/service/report"
	"github.com/amirasaad/ledgerbook/webapi/stats"
	"github.com/amirasaad/ledgerbook/webapi/testutils"
	txweb "github.com/amirasaad/ledgerbook/webapi/transaction"
	"github.com/stretchr/testify/suite"
)

type StatsE2ETestSuite struct {
	testutils.E2ETestSuite
	cashID int64
}

func TestStatsE2ETestSuite(t *testing.T) {
	suite.Run(t, new(StatsE2ETestSuite))
}

func (s *StatsE2ETestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	resp := s.MakeRequest(http.MethodPost, "/api/accounts", `{"name":"Cash","type":"asset"}`)
	s.RequireStatus(resp, http.StatusCreated)
	var acct struct {
		ID int64 `json:"id"`
	}
	s.DecodeJSON(resp, &acct)
	s.cashID = acct.ID
}

func (s *StatsE2ETestSuite) record(at time.Time, amount string) {
	resp := s.MakeRequest(http.MethodPost, "/api/transactions",
		fmt.Sprintf(`{"account_id":%d,"date":%q,"amount":%q}`, s.cashID, at.UTC().Format(time.RFC3339), amount))
	s.RequireStatus(resp, http.StatusCreated)
}

func (s *StatsE2ETestSuite) body(resp *http.Response) string {
	b, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return string(b)
}

func (s *StatsE2ETestSuite) TestSummary() {
	now := time.Now()
	s.record(now.Add(-2*time.Hour), "100.00")
	s.record(now.Add(-time.Hour), "-30.00")

	resp := s.MakeRequest(http.MethodGet, "/api/stats/summary", "")
	s.RequireStatus(resp, http.StatusOK)
	var summary stats.SummaryDTO
	s.DecodeJSON(resp, &summary)
	s.Equal(stats.SummaryDTO{TotalBalance: 70, AccountsCount: 1, TransactionsCount: 2}, summary)
}

func (s *StatsE2ETestSuite) TestRecent() {
	base := time.Now().Add(-48 * time.Hour)
	for i := range 12 {
		s.record(base.Add(time.Duration(i)*time.Minute), fmt.Sprintf("%d", i+1))
	}

	resp := s.MakeRequest(http.MethodGet, "/api/stats/recent", "")
	s.RequireStatus(resp, http.StatusOK)
	var recent []txweb.TransactionDTO
	s.DecodeJSON(resp, &recent)
	s.Require().Len(recent, reportsvc.DefaultRecentLimit)
	s.Equal(12.0, recent[0].Amount)
	s.Equal(3.0, recent[len(recent)-1].Amount)

	resp = s.MakeRequest(http.MethodGet, "/api/stats/recent?limit=2", "")
	s.RequireStatus(resp, http.StatusOK)
	s.DecodeJSON(resp, &recent)
	s.Len(recent, 2)

	for _, query := range []string{"limit=0", "limit=-1", "limit=ten"} {
		resp = s.MakeRequest(http.MethodGet, "/api/stats/recent?"+query, "")
		s.Equal(http.StatusBadRequest, resp.StatusCode, query)
	}
}

func (s *StatsE2ETestSuite) TestChart() {
	now := time.Now().UTC()
	recent := now.Add(-time.Hour)
	older := now.Add(-72 * time.Hour)

	s.record(recent, "40.00")
	s.record(recent, "-15.50")
	s.record(older, "10.00")
	s.record(now.Add(-10*24*time.Hour), "999.00")

	resp := s.MakeRequest(http.MethodGet, "/api/stats/chart?days=7", "")
	s.RequireStatus(resp, http.StatusOK)
	var points []stats.ChartPointDTO
	s.DecodeJSON(resp, &points)
	s.Equal([]stats.ChartPointDTO{
		{Date: older.Format(reportsvc.DayLayout), Value: 10},
		{Date: recent.Format(reportsvc.DayLayout), Value: 24.5},
	}, points)
}

func (s *StatsE2ETestSuite) TestChartEmptyAndInvalid() {
	resp := s.MakeRequest(http.MethodGet, "/api/stats/chart", "")
	s.RequireStatus(resp, http.StatusOK)
	s.JSONEq(`[]`, s.body(resp))

	for _, query := range []string{"days=0", "days=-3", "days=3651", "days=week"} {
		resp = s.MakeRequest(http.MethodGet, "/api/stats/chart?"+query, "")
		s.Equal(http.StatusBadRequest, resp.StatusCode, query)
	}
}
