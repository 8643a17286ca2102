package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"closeouts/internal/domain/closeout"
)

// ErrNoSnapshot локальный кэш ещё ни разу не заполнялся.
var ErrNoSnapshot = errors.New("no cached snapshot")

// Snapshot последний полученный с бэкенда набор данных.
type Snapshot struct {
	Records     []closeout.Record
	Venues      []closeout.Venue
	SaleCenters []closeout.SaleCenter
	FetchedAt   time.Time
}

// Cache локальное хранилище последнего снимка для офлайн-просмотра.
type Cache interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	LoadSnapshot(ctx context.Context) (Snapshot, error)
	Close() error
}

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	storage := &SQLiteStorage{db: db}

	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS closeouts (
			pk TEXT NOT NULL,
			sk TEXT NOT NULL,
			business_day TEXT NOT NULL,
			payload TEXT NOT NULL,
			PRIMARY KEY (pk, sk)
		);

		CREATE INDEX IF NOT EXISTS idx_closeouts_day ON closeouts(business_day);

		CREATE TABLE IF NOT EXISTS venues (
			code TEXT PRIMARY KEY,
			name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sale_centers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			venue_code TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS snapshot_meta (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			fetched_at DATETIME NOT NULL
		);
	`)

	return err
}

// SaveSnapshot целиком заменяет содержимое кэша в одной транзакции.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"closeouts", "venues", "sale_centers"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("ошибка очистки %s: %w", table, err)
		}
	}

	for _, rec := range snap.Records {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("ошибка сериализации записи: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO closeouts (pk, sk, business_day, payload)
			VALUES (?, ?, ?, ?)
		`, rec.PartitionKey, rec.SortKey, rec.BusinessDay, string(payload)); err != nil {
			return fmt.Errorf("ошибка сохранения записи: %w", err)
		}
	}

	for _, v := range snap.Venues {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO venues (code, name) VALUES (?, ?)", v.Code, v.Name); err != nil {
			return fmt.Errorf("ошибка сохранения заведения: %w", err)
		}
	}

	for _, sc := range snap.SaleCenters {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO sale_centers (id, name, venue_code) VALUES (?, ?, ?)",
			sc.ID, sc.Name, sc.VenueCode); err != nil {
			return fmt.Errorf("ошибка сохранения терминала: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta (id, fetched_at) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET fetched_at = excluded.fetched_at
	`, snap.FetchedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("ошибка сохранения метаданных: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStorage) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, "SELECT fetched_at FROM snapshot_meta WHERE id = 1").Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, ErrNoSnapshot
	}
	if err != nil {
		return snap, fmt.Errorf("ошибка чтения метаданных: %w", err)
	}
	snap.FetchedAt, _ = time.Parse(time.RFC3339, fetchedAt)

	rows, err := s.db.QueryContext(ctx, "SELECT payload FROM closeouts ORDER BY business_day DESC, pk, sk")
	if err != nil {
		return snap, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return snap, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		var rec closeout.Record
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return snap, fmt.Errorf("ошибка парсинга записи: %w", err)
		}
		snap.Records = append(snap.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("ошибка чтения записей: %w", err)
	}

	if snap.Venues, err = s.loadVenues(ctx); err != nil {
		return snap, err
	}
	if snap.SaleCenters, err = s.loadSaleCenters(ctx); err != nil {
		return snap, err
	}

	return snap, nil
}

func (s *SQLiteStorage) loadVenues(ctx context.Context) ([]closeout.Venue, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT code, name FROM venues ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения заведений: %w", err)
	}
	defer rows.Close()

	var venues []closeout.Venue
	for rows.Next() {
		var v closeout.Venue
		if err := rows.Scan(&v.Code, &v.Name); err != nil {
			return nil, fmt.Errorf("ошибка сканирования заведения: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (s *SQLiteStorage) loadSaleCenters(ctx context.Context) ([]closeout.SaleCenter, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, venue_code FROM sale_centers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения терминалов: %w", err)
	}
	defer rows.Close()

	var centers []closeout.SaleCenter
	for rows.Next() {
		var sc closeout.SaleCenter
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.VenueCode); err != nil {
			return nil, fmt.Errorf("ошибка сканирования терминала: %w", err)
		}
		centers = append(centers, sc)
	}
	return centers, rows.Err()
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
