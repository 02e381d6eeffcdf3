package server

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"casino-engine/internal/handler"
	"casino-engine/internal/types"
)

var errUnauthorized = types.New(types.CodeUnauthorized, "admin token required")

// RequestLogger logs every request with its status and latency.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Let the error handler write the response so the status is final
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		event := log.Debug()
		if status >= fiber.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("HTTP request")
		return nil
	}
}

// AdminGuard requires the X-Admin-Token header to match token. An empty
// token disables the admin routes entirely.
func AdminGuard(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get("X-Admin-Token")
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return handler.JSONError(c, errUnauthorized)
		}
		return c.Next()
	}
}
