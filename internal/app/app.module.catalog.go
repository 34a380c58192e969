package app

import (
	"go.uber.org/fx"

	"github.com/maze02/marvel-characters-app/internal/comicapi"
	"github.com/maze02/marvel-characters-app/internal/handlers"
	"github.com/maze02/marvel-characters-app/internal/services"
)

func CatalogModule() fx.Option {
	return fx.Module("catalog",
		fx.Provide(
			provideContentClient,
			fx.Annotate(
				services.NewCatalogService,
				fx.As(new(handlers.CatalogService)),
				fx.As(new(services.CharacterLookup)),
			),
			handlers.NewCharactersHandler,
		),
		fx.Invoke(registerCatalogRoutes),
	)
}

func provideContentClient(client *comicapi.Client) services.ContentClient {
	return client
}
