// Package webapi provides the HTTP surface of the ledger. It is organized into
// sub-packages per resource:
// - account: Account registry endpoints
// - transaction: Ledger endpoints
// - stats: Summary, recent activity and the daily chart
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/ledgerbook/pkg/app"
	"github.com/amirasaad/ledgerbook/pkg/middleware"
	accountweb "github.com/amirasaad/ledgerbook/webapi/account"
	"github.com/amirasaad/ledgerbook/webapi/common"
	statsweb "github.com/amirasaad/ledgerbook/webapi/stats"
	transactionweb "github.com/amirasaad/ledgerbook/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
)

// APIPrefix is the path every resource route is mounted under.
const APIPrefix = "/api"

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config

	fiberApp := fiber.New(fiber.Config{
		AppName: "ledgerbook",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	fiberApp.Use(recover.New())
	fiberApp.Use(middleware.RequestID())
	fiberApp.Use(middleware.AccessLog(a.Deps.Logger, a.Deps.RequestObserver))
	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORS.Origins, ","),
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization," + middleware.HeaderRequestID,
		ExposeHeaders:    middleware.HeaderRequestID,
	}))

	// Uses X-Forwarded-For header when behind a proxy
	// Falls back to X-Real-IP or direct IP if needed
	fiberApp.Use(limiter.New(limiter.Config{
		Max:          cfg.RateLimit.MaxRequests,
		Expiration:   cfg.RateLimit.Window,
		KeyGenerator: clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))

	if a.Deps.MetricsHandler != nil {
		fiberApp.Get(cfg.Metrics.Route, adaptor.HTTPHandler(a.Deps.MetricsHandler))
	}

	api := fiberApp.Group(APIPrefix)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	accountweb.Routes(api, a.AccountService)
	transactionweb.Routes(api, a.TransactionService)
	statsweb.Routes(api, a.ReportService, cfg.Report)

	fiberApp.Use(func(c *fiber.Ctx) error {
		return common.ProblemDetailsJSON(c, "Not Found", fiber.ErrNotFound)
	})
	return fiberApp
}

// clientKey identifies the caller for rate limiting. The limiter keeps the
// key, so it must not alias the request buffer.
func clientKey(c *fiber.Ctx) string {
	return utils.CopyString(rawClientKey(c))
}

func rawClientKey(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		// first hop is the client
		if first, _, found := strings.Cut(forwardedFor, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
