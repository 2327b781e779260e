package webapi_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amirasaad/ledgerbook/pkg/middleware"
	"github.com/amirasaad/ledgerbook/webapi"
	"github.com/amirasaad/ledgerbook/webapi/common"
	"github.com/amirasaad/ledgerbook/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type WebAPITestSuite struct {
	testutils.E2ETestSuite
}

func TestWebAPITestSuite(t *testing.T) {
	suite.Run(t, new(WebAPITestSuite))
}

func (s *WebAPITestSuite) TestHealth() {
	resp := s.MakeRequest(http.MethodGet, "/api/health", "")
	s.RequireStatus(resp, http.StatusOK)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.JSONEq(`{"status":"ok"}`, string(body))
}

func (s *WebAPITestSuite) TestUnknownRouteIsProblem() {
	resp := s.MakeRequest(http.MethodGet, "/api/ledgers", "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Type"), common.ContentTypeProblemJSON)
}

func (s *WebAPITestSuite) TestRequestID() {
	resp := s.MakeRequest(http.MethodGet, "/api/health", "")
	s.NotEmpty(resp.Header.Get(middleware.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(middleware.HeaderRequestID, "trace-42")
	resp, err := s.Web.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal("trace-42", resp.Header.Get(middleware.HeaderRequestID))
}

func (s *WebAPITestSuite) TestMetricsEndpoint() {
	s.RequireStatus(s.MakeRequest(http.MethodPost, "/api/accounts", `{"name":"Cash","type":"asset"}`), http.StatusCreated)
	// later requests reuse the buffers the earlier labels were read from
	s.RequireStatus(s.MakeRequest(http.MethodGet, "/api/accounts", ""), http.StatusOK)
	s.RequireStatus(s.MakeRequest(http.MethodGet, "/api/health", ""), http.StatusOK)

	resp := s.MakeRequest(http.MethodGet, s.Cfg.Metrics.Route, "")
	s.RequireStatus(resp, http.StatusOK)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), `ledgerbook_http_requests_total{method="POST",route="/api/accounts",status="201"} 1`)
	s.Contains(string(body), `ledgerbook_http_requests_total{method="GET",route="/api/accounts",status="200"} 1`)
	s.NotContains(string(body), `method="GETT"`)
	s.Contains(string(body), `ledgerbook_ledger_events_total{type="Account.Created"} 1`)
}

func (s *WebAPITestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/accounts", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := s.Web.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusNoContent, resp.StatusCode)
	s.Equal("http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	s.Equal("true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func (s *WebAPITestSuite) TestRateLimit() {
	s.Cfg.RateLimit.MaxRequests = 2
	s.Web = webapi.SetupApp(s.App)

	for range 2 {
		s.RequireStatus(s.MakeRequest(http.MethodGet, "/api/health", ""), http.StatusOK)
	}
	resp := s.MakeRequest(http.MethodGet, "/api/health", "")
	s.Equal(http.StatusTooManyRequests, resp.StatusCode)

	// a different forwarded client has its own budget
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	resp, err := s.Web.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(http.StatusOK, resp.StatusCode)
}
