package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/maze02/marvel-characters-app/internal/comicapi"
)

// statusForError maps the client error taxonomy to HTTP responses so UI
// callers can branch on status without seeing transport internals.
func statusForError(err error) (int, string) {
	if errors.Is(err, comicapi.ErrSuperseded) {
		return fiber.StatusConflict, "request superseded by a newer request"
	}

	var apiErr *comicapi.APIError
	if !errors.As(err, &apiErr) {
		return fiber.StatusInternalServerError, "internal server error"
	}

	switch apiErr.Kind {
	case comicapi.KindNotFound:
		return fiber.StatusNotFound, "character not found"
	case comicapi.KindRateLimited:
		return fiber.StatusTooManyRequests, "rate limit exceeded, slow down"
	case comicapi.KindUnauthorized:
		return fiber.StatusBadGateway, "content API rejected our credentials"
	case comicapi.KindTimeout:
		return fiber.StatusGatewayTimeout, "content API timed out"
	case comicapi.KindServerUnavailable, comicapi.KindNetworkUnreachable:
		return fiber.StatusBadGateway, "content API is currently unavailable"
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}

func respondError(c fiber.Ctx, err error) error {
	status, message := statusForError(err)
	return c.Status(status).JSON(fiber.Map{"error": message})
}
