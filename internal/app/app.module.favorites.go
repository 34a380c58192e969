package app

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/maze02/marvel-characters-app/internal/handlers"
	"github.com/maze02/marvel-characters-app/internal/services"
	"github.com/maze02/marvel-characters-app/internal/shared/config"
	"github.com/maze02/marvel-characters-app/internal/shared/favorites"
)

func FavoritesModule() fx.Option {
	return fx.Module("favorites",
		fx.Provide(
			provideFavoritesStore,
			fx.Annotate(
				services.NewFavoritesService,
				fx.As(new(handlers.FavoritesService)),
			),
			handlers.NewFavoritesHandler,
		),
		fx.Invoke(registerFavoritesRoutes),
	)
}

func provideFavoritesStore(cfg config.ConfigProvider, redisClient *redis.Client, logger *slog.Logger) favorites.Store {
	if cfg.GetString("favorites.backend") == "redis" && redisClient != nil {
		return favorites.NewRedisStore(redisClient)
	}

	logger.Info("using in-memory favorites store")
	return favorites.NewMemoryStore()
}
