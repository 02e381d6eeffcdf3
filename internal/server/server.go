// Package server assembles the Fiber application: routes, middleware,
// health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"casino-engine/internal/handler"
	"casino-engine/internal/pkg/metrics"
	"casino-engine/internal/types"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Handlers groups the route handlers.
type Handlers struct {
	Account *handler.AccountHandler
	Wager   *handler.WagerHandler
	Promo   *handler.PromoHandler
}

// Options configures the HTTP server.
type Options struct {
	AdminToken   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Metrics      *metrics.Metrics
	Health       map[string]HealthCheck
}

// Server wraps the Fiber app.
type Server struct {
	app *fiber.App
}

// New creates the server and registers every route.
func New(h Handlers, opts Options) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "casino-engine",
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(RequestLogger())

	app.Get("/healthz", healthHandler(opts.Health))
	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1")
	api.Get("/games", h.Wager.HandleGames)

	api.Post("/accounts/:id", h.Account.HandleEnsure)
	api.Get("/accounts/:id", h.Account.HandleGet)
	api.Get("/accounts/:id/transactions", h.Account.HandleHistory)
	api.Post("/accounts/:id/wagers", h.Wager.HandlePlace)
	api.Post("/accounts/:id/promo", h.Promo.HandleRedeem)
	api.Post("/accounts/:id/deposit", h.Account.HandleDeposit)
	api.Post("/accounts/:id/withdraw", h.Account.HandleWithdraw)

	admin := api.Group("/admin", AdminGuard(opts.AdminToken))
	admin.Put("/accounts/:id/luck", h.Account.HandleSetLuck)
	admin.Get("/accounts/:id/audit", h.Account.HandleAudit)

	return &Server{app: app}
}

// App exposes the Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func healthHandler(checks map[string]HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := fiber.Map{}
		healthy := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status[name] = err.Error()
				healthy = false
				continue
			}
			status[name] = "ok"
		}

		if !healthy {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "checks": status})
		}
		return c.JSON(fiber.Map{"status": "ok", "checks": status})
	}
}

// errorHandler renders routing and framework errors in the response envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := types.CodeInternal
	message := "internal error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		message = fe.Message
		if status < fiber.StatusInternalServerError {
			code = types.CodeBadRequest
		}
	}

	return c.Status(status).JSON(handler.Response{
		Success: false,
		Code:    code,
		Message: message,
	})
}
