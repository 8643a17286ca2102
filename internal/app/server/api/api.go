//GET    /health           # Проверка доступности
//GET    /closeouts        # Все закрытия касс
//POST   /closeouts        # Создать закрытие
//PUT    /closeouts        # Заменить закрытие по PK/SK
//DELETE /closeouts?PK=&SK= # Удалить закрытие
//POST   /closeouts/sync   # Запросить синхронизацию дня с POS
//GET    /venues           # Справочник заведений
//GET    /sale-centers     # Справочник терминалов

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"closeouts/internal/app/server/api/http/apierror"
	closeoutAPI "closeouts/internal/app/server/api/http/closeout"
	healthAPI "closeouts/internal/app/server/api/http/health"
	"closeouts/internal/app/server/api/http/middleware"
	"closeouts/internal/app/server/api/http/middleware/logger"
	referenceAPI "closeouts/internal/app/server/api/http/reference"
	"closeouts/internal/domain/closeout"
)

type Handlers struct {
	Health    *healthAPI.Handler
	Closeout  *closeoutAPI.Handler
	Reference *referenceAPI.Handler
}

// New создает *chi.Mux со всеми операциями API. db используется проверкой
// доступности и может быть nil.
func New(service closeout.Servicer, db healthAPI.Pinger, log *slog.Logger) *chi.Mux {
	apierror.Install()

	mux := chi.NewMux()
	API := humachi.New(mux, Config())

	h := handlers(service, db, log)
	h.Health.SetupRoutes(API)
	h.Closeout.SetupRoutes(API)
	h.Reference.SetupRoutes(API)

	return mux
}

// Config конфигурация huma без ссылок $schema в телах ответов:
// клиенты ожидают ровно {closeouts}, {venues}, {saleCenters} или {error}.
func Config() huma.Config {
	config := huma.DefaultConfig("Closeouts API", "1.0.0")
	config.CreateHooks = nil
	return config
}

func handlers(service closeout.Servicer, db healthAPI.Pinger, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(db, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	closeoutHandler := closeoutAPI.NewHandler(service, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	referenceHandler := referenceAPI.NewHandler(service, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:    healthHandler,
		Closeout:  closeoutHandler,
		Reference: referenceHandler,
	}
}
