package logger

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Logger пишет строку лога на каждый обработанный запрос.
type Logger struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Logger {
	return &Logger{
		log: log.With(slog.String("component", "http_logger")),
	}
}

// Middleware логирует метод, путь, статус и длительность. Ответы 5xx идут уровнем Error.
func (l *Logger) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		method := ctx.Method()
		path := ctx.URL().Path

		next(ctx)

		status := ctx.Status()
		attrs := []any{
			slog.String("operation", operationID(ctx)),
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote_addr", ctx.RemoteAddr()),
		}

		switch {
		case status >= http.StatusInternalServerError:
			l.log.Error("HTTP request", attrs...)
		case status >= http.StatusBadRequest:
			l.log.Warn("HTTP request", attrs...)
		default:
			l.log.Info("HTTP request", attrs...)
		}
	}
}

func operationID(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.OperationID
	}
	return ""
}
