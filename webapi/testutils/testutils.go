// Package testutils provides an end-to-end suite running the full HTTP stack
// against a throwaway SQLite database.
package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/amirasaad/ledgerbook/infra/eventbus"
	"github.com/amirasaad/ledgerbook/infra/initializer"
	"github.com/amirasaad/ledgerbook/internal/testutils"
	"github.com/amirasaad/ledgerbook/pkg/app"
	"github.com/amirasaad/ledgerbook/pkg/config"
	"github.com/amirasaad/ledgerbook/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

// requestTimeout is passed to fiber's app.Test; -1 disables the deadline.
const requestTimeout = -1

// E2ETestSuite wires the application exactly as the server does and talks to
// it through fiber's in-memory transport.
type E2ETestSuite struct {
	suite.Suite
	Cfg *config.App
	App *app.App
	// Bus is the in-process event bus, for asserting on published events.
	Bus *eventbus.MemoryEventBus
	Web *fiber.App
}

// SetupTest builds a fresh application per test.
func (s *E2ETestSuite) SetupTest() {
	s.Cfg = testutils.NewTestConfig(s.T())

	deps, err := initializer.InitializeDependencies(s.Cfg, initializer.WithLogOutput(io.Discard))
	s.Require().NoError(err)

	s.App = app.New(deps, s.Cfg)
	s.T().Cleanup(func() { _ = s.App.Close() })

	bus, ok := deps.EventBus.(*eventbus.MemoryEventBus)
	s.Require().True(ok, "expected the in-memory event bus")
	s.Bus = bus
	s.Web = webapi.SetupApp(s.App)
}

// MakeRequest sends a request with an optional JSON body.
func (s *E2ETestSuite) MakeRequest(method, path, body string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := s.Web.Test(req, requestTimeout)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// DecodeJSON reads the response body into v.
func (s *E2ETestSuite) DecodeJSON(resp *http.Response, v any) {
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

// RequireStatus fails the test with the response body when the status differs.
func (s *E2ETestSuite) RequireStatus(resp *http.Response, want int) {
	if resp.StatusCode == want {
		return
	}
	body, _ := io.ReadAll(resp.Body)
	s.Require().Equal(want, resp.StatusCode, "body: %s", body)
}
