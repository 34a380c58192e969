package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/maze02/marvel-characters-app/internal/comicapi"
	"github.com/maze02/marvel-characters-app/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	// The upstream addresses single characters with a type-prefixed ID.
	characterTypePrefix = "4005"
)

// ContentClient is the slice of the resilient API client the catalog
// needs. Satisfied by *comicapi.Client.
type ContentClient interface {
	GetJSON(ctx context.Context, endpoint string, params url.Values, v interface{}, opts ...comicapi.RequestOption) error
}

// CatalogService implements the character catalog use cases on top of
// the content API client.
type CatalogService struct {
	client ContentClient
	logger *slog.Logger
}

// NewCatalogService wires the catalog use cases.
func NewCatalogService(client ContentClient, logger *slog.Logger) *CatalogService {
	return &CatalogService{client: client, logger: logger}
}

// List returns one page of characters ordered by name.
func (s *CatalogService) List(ctx context.Context, limit, offset int) (domain.CharacterPage, error) {
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("offset", fmt.Sprintf("%d", offset))
	params.Set("sort", "name:asc")

	var envelope domain.CharacterListEnvelope
	if err := s.client.GetJSON(ctx, "/characters/", params, &envelope); err != nil {
		return domain.CharacterPage{}, err
	}
	if err := envelopeError(envelope.StatusCode, envelope.Error); err != nil {
		return domain.CharacterPage{}, err
	}

	return domain.CharacterPage{
		Characters: envelope.Results,
		Total:      envelope.NumberOfTotalResults,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

// Search returns characters matching query by name.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) (domain.CharacterPage, error) {
	limit = clampLimit(limit)

	params := url.Values{}
	params.Set("resources", "character")
	params.Set("query", query)
	params.Set("limit", fmt.Sprintf("%d", limit))

	var envelope domain.CharacterListEnvelope
	if err := s.client.GetJSON(ctx, "/search/", params, &envelope); err != nil {
		return domain.CharacterPage{}, err
	}
	if err := envelopeError(envelope.StatusCode, envelope.Error); err != nil {
		return domain.CharacterPage{}, err
	}

	return domain.CharacterPage{
		Characters: envelope.Results,
		Total:      envelope.NumberOfTotalResults,
		Limit:      limit,
	}, nil
}

// GetByID returns one character.
func (s *CatalogService) GetByID(ctx context.Context, id int) (domain.Character, error) {
	endpoint := fmt.Sprintf("/character/%s-%d/", characterTypePrefix, id)

	var envelope domain.CharacterEnvelope
	if err := s.client.GetJSON(ctx, endpoint, nil, &envelope); err != nil {
		return domain.Character{}, err
	}
	if err := envelopeError(envelope.StatusCode, envelope.Error); err != nil {
		return domain.Character{}, err
	}

	return envelope.Results, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

// envelopeError maps the upstream's in-body status codes onto the client
// error taxonomy so handlers see one error shape regardless of whether
// the failure was transported as an HTTP status or an envelope field.
func envelopeError(statusCode int, message string) error {
	switch statusCode {
	case domain.EnvelopeStatusOK:
		return nil
	case domain.EnvelopeStatusInvalidAPIKey:
		return &comicapi.APIError{Kind: comicapi.KindUnauthorized, Message: "invalid API key"}
	case domain.EnvelopeStatusNotFound:
		return &comicapi.APIError{Kind: comicapi.KindNotFound, Message: "resource not found"}
	default:
		return &comicapi.APIError{Kind: comicapi.KindUnknown, Message: fmt.Sprintf("upstream error %d: %s", statusCode, message)}
	}
}
