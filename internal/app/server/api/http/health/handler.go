package health

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const pingTimeout = 2 * time.Second

// Pinger проверяет доступность зависимости, обычно пула БД.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db         Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler создаёт обработчик проверки доступности. db может быть nil.
func NewHandler(db Pinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		db:         db,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	if h.db == nil {
		return &Output{Body: Response{Status: "OK"}}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("health check: database unreachable", "error", err)
		return nil, huma.NewError(http.StatusServiceUnavailable, "database unavailable")
	}
	return &Output{Body: Response{Status: "OK", Database: "up"}}, nil
}
