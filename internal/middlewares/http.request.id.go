package middlewares

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// NewHTTPRequestIDMiddleware tags every request with an X-Request-ID.
func NewHTTPRequestIDMiddleware() fiber.Handler {
	return requestid.New()
}
