package logger

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/lmittmann/tint"
)

const (
	appName    = "leave-backend"
	appVersion = "v1.0.0"
)

// New builds the process logger. Development gets a colourised console
// handler, every other environment gets ECS-formatted JSON.
func New(w io.Writer, env, level string) *slog.Logger {
	lvl := ParseLevel(level)

	var handler slog.Handler
	if env == "development" {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		})
	} else {
		logFormat := httplog.SchemaECS.Concise(false)
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       lvl,
			ReplaceAttr: logFormat.ReplaceAttr,
		})
	}

	return slog.New(handler).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", env),
	)
}

// Setup builds the logger and installs it as the slog default.
func Setup(w io.Writer, env, level string) *slog.Logger {
	l := New(w, env, level)
	slog.SetDefault(l)
	return l
}

// ParseLevel maps LOG_LEVEL values to slog levels, falling back to info.
func ParseLevel(level string) slog.Level {
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
