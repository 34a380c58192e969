package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/maze02/marvel-characters-app/internal/comicapi"
	"github.com/maze02/marvel-characters-app/internal/shared/config"
)

type lifecycleIn struct {
	fx.In

	App    *fiber.App
	Config config.ConfigProvider
	Logger *slog.Logger
	Client *comicapi.Client
	Redis  *redis.Client `optional:"true"`
}

func registerLifecycle(lifecycle fx.Lifecycle, in lifecycleIn) {
	port := in.Config.GetInt("server.port")
	if port == 0 {
		port = 8080
	}
	address := fmt.Sprintf(":%d", port)
	var serveErrCh chan error

	lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			listener, err := net.Listen("tcp", address)
			if err != nil {
				return fmt.Errorf("app: failed to bind server address %s: %w", address, err)
			}

			serveErrCh = make(chan error, 1)
			go func() {
				err := in.App.Listener(listener)
				if err != nil && !errors.Is(err, net.ErrClosed) {
					in.Logger.Error("server stopped unexpectedly", "error", err)
				}
				serveErrCh <- err
			}()

			in.Config.WatchChanges()
			in.Logger.Info("server started", "address", address)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			var shutdownErrors []error

			// Abort outstanding upstream calls before tearing the server
			// down so no goroutine lingers on a slow content API.
			in.Client.CancelAllRequests()

			if err := in.App.ShutdownWithContext(ctx); err != nil {
				shutdownErrors = append(shutdownErrors, err)
			}

			if serveErrCh != nil {
				select {
				case err := <-serveErrCh:
					if err != nil && !errors.Is(err, net.ErrClosed) {
						shutdownErrors = append(shutdownErrors, err)
					}
				case <-ctx.Done():
					shutdownErrors = append(shutdownErrors, ctx.Err())
				}
			}

			if in.Redis != nil {
				if err := in.Redis.Close(); err != nil {
					shutdownErrors = append(shutdownErrors, err)
				}
			}

			if len(shutdownErrors) > 0 {
				return errors.Join(shutdownErrors...)
			}

			in.Logger.Info("server shutdown completed")
			return nil
		},
	})
}
