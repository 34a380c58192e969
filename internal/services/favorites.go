package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/maze02/marvel-characters-app/internal/comicapi"
	"github.com/maze02/marvel-characters-app/internal/domain"
	"github.com/maze02/marvel-characters-app/internal/shared/favorites"
)

// CharacterLookup resolves character details for favorite hydration.
// Satisfied by *CatalogService.
type CharacterLookup interface {
	GetByID(ctx context.Context, id int) (domain.Character, error)
}

// FavoritesService composes the favorites key-set store with the catalog
// so favorites can be listed as full character records.
type FavoritesService struct {
	store   favorites.Store
	catalog CharacterLookup
	logger  *slog.Logger
}

// NewFavoritesService wires the favorites use cases.
func NewFavoritesService(store favorites.Store, catalog CharacterLookup, logger *slog.Logger) *FavoritesService {
	return &FavoritesService{store: store, catalog: catalog, logger: logger}
}

// Add marks a character as favorite.
func (s *FavoritesService) Add(ctx context.Context, characterID int) error {
	return s.store.Add(ctx, characterID)
}

// Remove unmarks a character.
func (s *FavoritesService) Remove(ctx context.Context, characterID int) error {
	return s.store.Remove(ctx, characterID)
}

// Contains reports whether a character is a favorite.
func (s *FavoritesService) Contains(ctx context.Context, characterID int) (bool, error) {
	return s.store.Contains(ctx, characterID)
}

// Count returns the number of favorites.
func (s *FavoritesService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// List returns the favorite characters hydrated from the catalog.
// Characters the upstream no longer knows are skipped, not fatal: a
// stale favorite must not break the whole listing.
func (s *FavoritesService) List(ctx context.Context) ([]domain.Character, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	characters := make([]domain.Character, 0, len(ids))
	for _, id := range ids {
		character, err := s.catalog.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, &comicapi.APIError{Kind: comicapi.KindNotFound}) {
				s.logger.Warn("favorite no longer exists upstream", "character_id", id)
				continue
			}
			return nil, err
		}
		characters = append(characters, character)
	}

	return characters, nil
}
