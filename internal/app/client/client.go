package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	gosync "sync"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/text/language"

	"closeouts/internal/app/client/config"
	"closeouts/internal/domain/closeout"
	"closeouts/internal/domain/sync"
)

// ErrOffline кэш недоступен для офлайн-режима.
var ErrOffline = errors.New("offline cache unavailable")

// App фасад клиента: хранит последний набор закрытий и справочники,
// строит по ним выборки и запускает синхронизацию диапазонов.
// Записи считаются неизменяемыми: после каждой мутации набор перечитывается.
type App struct {
	config       *config.Config
	log          *slog.Logger
	backend      Backend
	cache        Cache
	catalog      *closeout.Catalog
	aggregator   *closeout.Aggregator
	pipeline     *closeout.Pipeline
	orchestrator *sync.Orchestrator
	stats        *statsStore

	mu          gosync.RWMutex
	records     []closeout.Record
	venues      []closeout.Venue
	saleCenters []closeout.SaleCenter
	directory   closeout.Directory
	fetchedAt   time.Time
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl := NewHTTPClient(cfg, log)

	var cache Cache
	sqliteStorage, err := NewSQLiteStorage(cfg.DataPath)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, офлайн-режим недоступен", "error", err)
	} else {
		cache = sqliteStorage
	}

	lang, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("некорректная локаль %q: %w", cfg.Locale, err)
	}

	app := NewApp(httpCl, cache, closeout.NewCatalog(cfg.PaymentAliases), lang, log,
		sync.WithDayTimeout(cfg.SyncDayTimeout))
	app.config = cfg
	app.stats = newStatsStore(cfg.ConfigDir)

	return app, nil
}

// NewApp собирает App из готовых зависимостей. cache может быть nil.
func NewApp(backend Backend, cache Cache, catalog *closeout.Catalog, lang language.Tag, log *slog.Logger, opts ...sync.Option) *App {
	aggregator := closeout.NewAggregator(catalog)
	app := &App{
		log:        log.With("component", "client_app"),
		backend:    backend,
		cache:      cache,
		catalog:    catalog,
		aggregator: aggregator,
		pipeline:   closeout.NewPipeline(aggregator, lang),
	}
	app.orchestrator = sync.NewOrchestrator(backend, app, log, opts...)
	return app
}

// CheckConnection проверяет соединение с сервером
func (a *App) CheckConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return a.backend.HealthCheck(ctx)
}

// Refresh перечитывает закрытия и справочники с бэкенда. Ошибка чтения
// закрытий возвращается вызывающему; сбой справочников только логируется,
// и остаются прежние имена.
func (a *App) Refresh(ctx context.Context) error {
	records, err := a.backend.ListCloseouts(ctx)
	if err != nil {
		return fmt.Errorf("ошибка загрузки закрытий: %w", err)
	}

	a.mu.RLock()
	venues, centers := a.venues, a.saleCenters
	a.mu.RUnlock()

	if v, err := a.backend.ListVenues(ctx); err != nil {
		a.log.Warn("Не удалось загрузить заведения", "error", err)
	} else {
		venues = v
	}
	if sc, err := a.backend.ListSaleCenters(ctx); err != nil {
		a.log.Warn("Не удалось загрузить терминалы", "error", err)
	} else {
		centers = sc
	}

	snap := Snapshot{
		Records:     records,
		Venues:      venues,
		SaleCenters: centers,
		FetchedAt:   time.Now(),
	}
	a.apply(snap)

	if a.cache != nil {
		if err := a.cache.SaveSnapshot(ctx, snap); err != nil {
			a.log.Warn("Не удалось сохранить кэш", "error", err)
		}
	}

	a.log.Debug("Данные обновлены", "records", len(records))
	return nil
}

// LoadCached загружает последний сохранённый снимок для офлайн-просмотра.
func (a *App) LoadCached(ctx context.Context) error {
	if a.cache == nil {
		return ErrOffline
	}
	snap, err := a.cache.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("ошибка чтения кэша: %w", err)
	}
	a.apply(snap)
	return nil
}

func (a *App) apply(snap Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.records = snap.Records
	a.venues = snap.Venues
	a.saleCenters = snap.SaleCenters
	a.directory = closeout.NewDirectory(snap.Venues, snap.SaleCenters)
	a.fetchedAt = snap.FetchedAt
}

func (a *App) Records() []closeout.Record {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.records)
}

func (a *App) Directory() closeout.Directory {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.directory
}

func (a *App) FetchedAt() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.fetchedAt
}

// Query фильтрует, сортирует и разбивает на страницы текущий набор.
func (a *App) Query(f closeout.Filters) closeout.Page {
	a.mu.RLock()
	records, dir := a.records, a.directory
	a.mu.RUnlock()

	return a.pipeline.Query(records, dir, f)
}

// Methods возвращает колонки способов оплаты для всего набора, включая
// известные способы, заданные только плоскими колонками записи.
func (a *App) Methods() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.catalog.DiscoverColumns(a.records)
}

func (a *App) MethodTotals(rec closeout.Record, methods []string) []float64 {
	return a.aggregator.MethodTotals(rec, methods)
}

func (a *App) InvoiceTotal(rec closeout.Record) float64 {
	return a.aggregator.InvoiceTotal(rec)
}

func (a *App) Create(ctx context.Context, rec closeout.Record) error {
	if err := a.backend.CreateCloseout(ctx, rec); err != nil {
		return fmt.Errorf("ошибка создания закрытия: %w", err)
	}
	return a.Refresh(ctx)
}

func (a *App) Update(ctx context.Context, rec closeout.Record) error {
	if err := a.backend.UpdateCloseout(ctx, rec); err != nil {
		return fmt.Errorf("ошибка обновления закрытия: %w", err)
	}
	return a.Refresh(ctx)
}

func (a *App) Delete(ctx context.Context, key closeout.Key) error {
	if err := a.backend.DeleteCloseout(ctx, key); err != nil {
		return fmt.Errorf("ошибка удаления закрытия: %w", err)
	}
	return a.Refresh(ctx)
}

func (a *App) Close() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}
