package logger

import (
	"io"
	"os"

	"golang.org/x/exp/slog"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// New создает логгер для окружения: local даёт цветной вывод, dev JSON с Debug,
// prod и неизвестные значения JSON с Info.
func New(env string) *slog.Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter то же, что New, но пишет в w. CLI передает os.Stderr, чтобы не смешивать лог с выводом команд.
func NewWithWriter(env string, w io.Writer) *slog.Logger {
	switch env {
	case EnvLocal:
		return slog.New(newPrettyHandler(w, slog.LevelDebug))
	case EnvDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

func setupPrettySlog() *slog.Logger {
	return slog.New(newPrettyHandler(os.Stdout, slog.LevelDebug))
}
