package handlers

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/maze02/marvel-characters-app/internal/domain"
)

// CatalogService is the catalog surface the handler depends on.
type CatalogService interface {
	List(ctx context.Context, limit, offset int) (domain.CharacterPage, error)
	Search(ctx context.Context, query string, limit int) (domain.CharacterPage, error)
	GetByID(ctx context.Context, id int) (domain.Character, error)
}

// CharactersHandler serves the character catalog endpoints.
type CharactersHandler struct {
	service CatalogService
	logger  *slog.Logger
}

func NewCharactersHandler(service CatalogService, logger *slog.Logger) *CharactersHandler {
	return &CharactersHandler{service: service, logger: logger}
}

func (h *CharactersHandler) Register(router fiber.Router) {
	router.Get("/characters", h.List)
	router.Get("/characters/search", h.Search)
	router.Get("/characters/:id", h.GetByID)
}

func (h *CharactersHandler) List(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 0)
	offset := fiber.Query(c, "offset", 0)

	page, err := h.service.List(c.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list characters", "limit", limit, "offset", offset, "error", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

func (h *CharactersHandler) Search(c fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing query parameter q",
		})
	}
	limit := fiber.Query(c, "limit", 0)

	page, err := h.service.Search(c.Context(), query, limit)
	if err != nil {
		h.logger.Error("failed to search characters", "query", query, "error", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

func (h *CharactersHandler) GetByID(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "character id must be a positive integer",
		})
	}

	character, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		h.logger.Error("failed to get character", "character_id", id, "error", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(character)
}
