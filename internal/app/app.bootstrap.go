package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/maze02/marvel-characters-app/internal/comicapi"
	"github.com/maze02/marvel-characters-app/internal/shared/config"
	sharedlog "github.com/maze02/marvel-characters-app/internal/shared/log"
)

// New assembles the application from the core module plus the feature
// modules the caller selects.
func New(modules ...fx.Option) *fx.App {
	opts := []fx.Option{CoreModule()}
	opts = append(opts, modules...)
	opts = append(opts, fx.Invoke(registerLifecycle))
	return fx.New(opts...)
}

func CoreModule() fx.Option {
	return fx.Module("core",
		fx.Provide(
			provideConfig,
			sharedlog.NewJSONLogger,
			provideRedisClient,
			provideFiberApp,
			provideContentAPIClient,
			provideRouterGroup,
		),
	)
}

func provideConfig() (config.ConfigProvider, error) {
	loadOrder := []config.Options{
		{YAMLPath: "config.yaml", EnvPath: ".env"},
		{YAMLPath: "config.yaml.example", EnvPath: ".env.example"},
	}

	var lastErr error
	for _, opts := range loadOrder {
		provider, err := config.Init(opts)
		if err == nil {
			return provider, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

func provideFiberApp(cfg config.ConfigProvider) *fiber.App {
	readTimeout := cfg.GetDuration("server.read_timeout")
	if readTimeout <= 0 {
		readTimeout = 30 * time.Second
	}

	writeTimeout := cfg.GetDuration("server.write_timeout")
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}

	return fiber.New(fiber.Config{
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})
}

// provideRedisClient returns nil unless favorites are configured for the
// redis backend; the favorites module falls back to memory in that case.
func provideRedisClient(cfg config.ConfigProvider) *redis.Client {
	if cfg.GetString("favorites.backend") != "redis" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.GetString("redis.addr"),
		Password: cfg.GetString("redis.password"),
		DB:       cfg.GetInt("redis.db"),
	})
}

func provideContentAPIClient(cfg config.ConfigProvider, logger *slog.Logger) (*comicapi.Client, error) {
	options := []comicapi.Option{
		comicapi.WithBaseURL(cfg.GetString("comicapi.base_url")),
		comicapi.WithAPIKey(cfg.GetString("comicapi.api_key")),
		comicapi.WithHTTPClient(&http.Client{}),
		comicapi.WithMetrics(),
		comicapi.WithLogger(comicapi.NewSlogLogger(logger)),
	}

	if ttl := cfg.GetDuration("comicapi.cache_ttl"); ttl > 0 {
		options = append(options, comicapi.WithCacheTTL(ttl))
	}
	if limit := cfg.GetInt("comicapi.rate_limit.requests"); limit > 0 {
		window := cfg.GetDuration("comicapi.rate_limit.window")
		if window <= 0 {
			window = comicapi.DefaultRateWindow
		}
		options = append(options, comicapi.WithRateLimit(limit, window))
	}
	if attempts := cfg.GetInt("comicapi.retry.max_attempts"); attempts > 0 {
		options = append(options, comicapi.WithMaxAttempts(attempts))
	}
	if backoff := cfg.GetDuration("comicapi.retry.initial_backoff"); backoff > 0 {
		options = append(options, comicapi.WithInitialBackoff(backoff))
	}
	if backoff := cfg.GetDuration("comicapi.retry.max_backoff"); backoff > 0 {
		options = append(options, comicapi.WithMaxBackoff(backoff))
	}
	if timeout := cfg.GetDuration("comicapi.timeout"); timeout > 0 {
		options = append(options, comicapi.WithAttemptTimeout(timeout))
	}

	return comicapi.New(options...)
}
