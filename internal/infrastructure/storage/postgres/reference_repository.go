package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"closeouts/internal/domain/closeout"
)

type ReferenceRepository struct {
	db  DB
	log *slog.Logger
}

func NewReferenceRepository(db DB, log *slog.Logger) *ReferenceRepository {
	return &ReferenceRepository{
		db:  db,
		log: log.With("component", "reference_repository"),
	}
}

func (r *ReferenceRepository) ListVenues(ctx context.Context) ([]closeout.Venue, error) {
	const query = `SELECT code, name FROM venues ORDER BY code`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list venues", "error", err)
		return nil, fmt.Errorf("list venues: %w", err)
	}
	venues, err := pgx.CollectRows(rows, pgx.RowToStructByPos[closeout.Venue])
	if err != nil {
		return nil, fmt.Errorf("scan venues: %w", err)
	}
	return venues, nil
}

func (r *ReferenceRepository) ListSaleCenters(ctx context.Context) ([]closeout.SaleCenter, error) {
	const query = `SELECT id, name, venue_code FROM sale_centers ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list sale centers", "error", err)
		return nil, fmt.Errorf("list sale centers: %w", err)
	}
	centers, err := pgx.CollectRows(rows, pgx.RowToStructByPos[closeout.SaleCenter])
	if err != nil {
		return nil, fmt.Errorf("scan sale centers: %w", err)
	}
	return centers, nil
}
