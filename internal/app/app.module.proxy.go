package app

import (
	"log/slog"
	"net/http"

	"go.uber.org/fx"

	"github.com/maze02/marvel-characters-app/internal/handlers"
	"github.com/maze02/marvel-characters-app/internal/shared/config"
)

func ProxyModule() fx.Option {
	return fx.Module("proxy",
		fx.Provide(provideProxyHandler),
		fx.Invoke(registerProxyRoutes),
	)
}

func provideProxyHandler(cfg config.ConfigProvider, logger *slog.Logger) *handlers.ProxyHandler {
	return handlers.NewProxyHandler(handlers.ProxyConfig{
		UpstreamBaseURL: cfg.GetString("comicapi.base_url"),
		AllowedHost:     cfg.GetString("proxy.allowed_host"),
		APIKey:          cfg.GetString("comicapi.api_key"),
	}, &http.Client{}, logger)
}
