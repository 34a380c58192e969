package middlewares

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
)

// NewHTTPRecoveryMiddleware turns handler panics into 500 responses.
func NewHTTPRecoveryMiddleware() fiber.Handler {
	return recoverer.New()
}
