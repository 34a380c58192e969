package log

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/maze02/marvel-characters-app/internal/shared/config"
)

// NewJSONLogger builds the application logger. Level comes from
// logging.level; timestamps are normalized to UTC RFC3339.
func NewJSONLogger(cfg config.ConfigProvider) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.GetString("logging.level")),
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, attr.Value.Time().UTC().Format(time.RFC3339))
			}
			return attr
		},
	})

	return slog.New(handler).With("service", "marvel-characters-app")
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
