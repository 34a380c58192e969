package handlers

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/maze02/marvel-characters-app/internal/domain"
)

// FavoritesService is the favorites surface the handler depends on.
type FavoritesService interface {
	Add(ctx context.Context, characterID int) error
	Remove(ctx context.Context, characterID int) error
	Contains(ctx context.Context, characterID int) (bool, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]domain.Character, error)
}

// FavoritesHandler serves the favorites endpoints.
type FavoritesHandler struct {
	service FavoritesService
	logger  *slog.Logger
}

func NewFavoritesHandler(service FavoritesService, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{service: service, logger: logger}
}

func (h *FavoritesHandler) Register(router fiber.Router) {
	router.Get("/favorites", h.List)
	router.Get("/favorites/:id", h.Contains)
	router.Put("/favorites/:id", h.Add)
	router.Delete("/favorites/:id", h.Remove)
}

func (h *FavoritesHandler) List(c fiber.Ctx) error {
	characters, err := h.service.List(c.Context())
	if err != nil {
		h.logger.Error("failed to list favorites", "error", err)
		return respondError(c, err)
	}

	count, err := h.service.Count(c.Context())
	if err != nil {
		h.logger.Error("failed to count favorites", "error", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count":      count,
		"characters": characters,
	})
}

func (h *FavoritesHandler) Contains(c fiber.Ctx) error {
	id, ok := favoriteID(c)
	if !ok {
		return invalidFavoriteID(c)
	}

	contained, err := h.service.Contains(c.Context(), id)
	if err != nil {
		h.logger.Error("failed to check favorite", "character_id", id, "error", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"character_id": id,
		"favorite":     contained,
	})
}

func (h *FavoritesHandler) Add(c fiber.Ctx) error {
	id, ok := favoriteID(c)
	if !ok {
		return invalidFavoriteID(c)
	}

	if err := h.service.Add(c.Context(), id); err != nil {
		h.logger.Error("failed to add favorite", "character_id", id, "error", err)
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FavoritesHandler) Remove(c fiber.Ctx) error {
	id, ok := favoriteID(c)
	if !ok {
		return invalidFavoriteID(c)
	}

	if err := h.service.Remove(c.Context(), id); err != nil {
		h.logger.Error("failed to remove favorite", "character_id", id, "error", err)
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func favoriteID(c fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidFavoriteID(c fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "character id must be a positive integer",
	})
}
