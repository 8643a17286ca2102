package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"closeouts/internal/app/server/api"
	"closeouts/internal/app/server/config"
	"closeouts/internal/domain/closeout"
	"closeouts/internal/infrastructure/cache"
	"closeouts/internal/infrastructure/storage/postgres"
	"closeouts/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storage, err := postgres.New(startCtx, cfg)
	if err != nil {
		return err
	}
	defer storage.Close()
	log.Info("storage: postgres")

	refCache := referenceCache(startCtx, cfg, log)

	service := closeout.NewService(
		postgres.NewCloseoutRepository(storage.Pool(), log),
		postgres.NewReferenceRepository(storage.Pool(), log),
		refCache,
		cfg.Redis.TTL,
		log,
	)

	server := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           api.New(service, storage, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("closeouts API listening", "address", cfg.Server.RunAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	return server.Shutdown(shutdownCtx)
}

// referenceCache подключает Redis, если он задан и отвечает, иначе возвращает Noop.
func referenceCache(ctx context.Context, cfg *config.Config, log *slog.Logger) closeout.ReferenceCache {
	if cfg.Redis.Addr == "" {
		log.Info("cache: noop")
		return cache.Noop{}
	}

	redisCache := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		log.Warn("redis unavailable, using noop cache", "error", err)
		_ = redisCache.Close()
		return cache.Noop{}
	}
	log.Info("cache: redis", "address", cfg.Redis.Addr)
	return redisCache
}
