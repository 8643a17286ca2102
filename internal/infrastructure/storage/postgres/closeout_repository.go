package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/exp/slog"

	"closeouts/internal/domain/closeout"
)

const uniqueViolation = "23505"

// CloseoutRepository хранит записи целиком в jsonb; PK/SK и день вынесены в колонки.
type CloseoutRepository struct {
	db  DB
	log *slog.Logger
}

func NewCloseoutRepository(db DB, log *slog.Logger) *CloseoutRepository {
	return &CloseoutRepository{
		db:  db,
		log: log.With("component", "closeout_repository"),
	}
}

func (r *CloseoutRepository) List(ctx context.Context) ([]closeout.Record, error) {
	const query = `
		SELECT payload
		FROM closeouts
		ORDER BY business_day DESC NULLS LAST, pk, sk`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list closeouts", "error", err)
		return nil, fmt.Errorf("list closeouts: %w", err)
	}

	payloads, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("scan closeouts: %w", err)
	}

	records := make([]closeout.Record, 0, len(payloads))
	for _, payload := range payloads {
		var rec closeout.Record
		if err := json.Unmarshal(payload, &rec); err != nil {
			r.log.Warn("skipping unreadable closeout payload", "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *CloseoutRepository) Create(ctx context.Context, rec closeout.Record) error {
	const query = `
		INSERT INTO closeouts (pk, sk, business_day, payload)
		VALUES ($1, $2, NULLIF($3, ''), $4)`

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal closeout: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, rec.PartitionKey, rec.SortKey, rec.BusinessDay, payload); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return closeout.ErrAlreadyExists
		}
		r.log.Error("failed to create closeout", "pk", rec.PartitionKey, "sk", rec.SortKey, "error", err)
		return fmt.Errorf("insert closeout: %w", err)
	}
	return nil
}

func (r *CloseoutRepository) Update(ctx context.Context, rec closeout.Record) error {
	const query = `
		UPDATE closeouts
		SET business_day = NULLIF($3, ''), payload = $4, updated_at = now()
		WHERE pk = $1 AND sk = $2`

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal closeout: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, rec.PartitionKey, rec.SortKey, rec.BusinessDay, payload)
	if err != nil {
		r.log.Error("failed to update closeout", "pk", rec.PartitionKey, "sk", rec.SortKey, "error", err)
		return fmt.Errorf("update closeout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return closeout.ErrNotFound
	}
	return nil
}

func (r *CloseoutRepository) Delete(ctx context.Context, key closeout.Key) error {
	const query = `DELETE FROM closeouts WHERE pk = $1 AND sk = $2`

	tag, err := r.db.Exec(ctx, query, key.PartitionKey, key.SortKey)
	if err != nil {
		r.log.Error("failed to delete closeout", "pk", key.PartitionKey, "sk", key.SortKey, "error", err)
		return fmt.Errorf("delete closeout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return closeout.ErrNotFound
	}
	return nil
}

func (r *CloseoutRepository) EnqueueSync(ctx context.Context, businessDay string, requestedAt time.Time) error {
	const query = `INSERT INTO sync_requests (business_day, requested_at) VALUES ($1, $2)`

	if _, err := r.db.Exec(ctx, query, businessDay, requestedAt.UTC()); err != nil {
		r.log.Error("failed to enqueue sync", "business_day", businessDay, "error", err)
		return fmt.Errorf("enqueue sync: %w", err)
	}
	return nil
}
