package client

import (
	"context"

	"closeouts/internal/domain/closeout"
)

// Backend HTTP-интерфейс бэкенда закрытий, которым пользуется App.
//
//go:generate mockgen -destination=mocks/mock_backend.go -source=backend.go Backend
type Backend interface {
	HealthCheck(ctx context.Context) error
	ListCloseouts(ctx context.Context) ([]closeout.Record, error)
	ListVenues(ctx context.Context) ([]closeout.Venue, error)
	ListSaleCenters(ctx context.Context) ([]closeout.SaleCenter, error)
	CreateCloseout(ctx context.Context, rec closeout.Record) error
	UpdateCloseout(ctx context.Context, rec closeout.Record) error
	DeleteCloseout(ctx context.Context, key closeout.Key) error
	SyncDay(ctx context.Context, businessDay string) error
}
