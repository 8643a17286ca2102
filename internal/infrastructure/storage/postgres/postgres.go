package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"closeouts/internal/app/server/config"
	"closeouts/internal/infrastructure/migration"
)

// DB подмножество pgxpool.Pool, которым пользуются репозитории.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Storage struct {
	pool *pgxpool.Pool
}

// New открывает пул, проверяет соединение и накатывает миграции.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	pool, err := pgxpool.New(ctx, cfg.DB.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migration.NewMigration(cfg.DB, migration.DefaultEngine).Up(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}
