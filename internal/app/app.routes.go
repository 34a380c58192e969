package app

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/maze02/marvel-characters-app/internal/handlers"
	"github.com/maze02/marvel-characters-app/internal/middlewares"
)

type routerGroupOut struct {
	fx.Out
	API fiber.Router `name:"api_v1"`
}

func provideRouterGroup(app *fiber.App, logger *slog.Logger) routerGroupOut {
	app.Use(middlewares.NewHTTPRecoveryMiddleware())
	app.Use(middlewares.NewHTTPRequestIDMiddleware())
	app.Use(middlewares.NewHTTPCORSMiddleware())
	app.Use(middlewares.NewHTTPRequestLogMiddleware(logger))

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return routerGroupOut{API: app.Group("/api/v1")}
}

type catalogRoutesIn struct {
	fx.In
	API     fiber.Router `name:"api_v1"`
	Handler *handlers.CharactersHandler
}

func registerCatalogRoutes(in catalogRoutesIn) {
	in.Handler.Register(in.API)
}

type favoritesRoutesIn struct {
	fx.In
	API     fiber.Router `name:"api_v1"`
	Handler *handlers.FavoritesHandler
}

func registerFavoritesRoutes(in favoritesRoutesIn) {
	in.Handler.Register(in.API)
}

func registerProxyRoutes(app *fiber.App, handler *handlers.ProxyHandler) {
	handler.Register(app)
}
