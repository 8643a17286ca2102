package closeout

import (
	"context"
	"time"
)

// Repository хранилище закрытий на стороне бэкенда.
type Repository interface {
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, key Key) error

	// EnqueueSync фиксирует запрос синхронизации дня с POS.
	EnqueueSync(ctx context.Context, businessDay string, requestedAt time.Time) error
}

// ReferenceRepository справочники заведений и терминалов.
type ReferenceRepository interface {
	ListVenues(ctx context.Context) ([]Venue, error)
	ListSaleCenters(ctx context.Context) ([]SaleCenter, error)
}

// ReferenceCache кэш справочников.
type ReferenceCache interface {
	GetVenues(ctx context.Context) ([]Venue, bool, error)
	SetVenues(ctx context.Context, venues []Venue, ttl time.Duration) error
	GetSaleCenters(ctx context.Context) ([]SaleCenter, bool, error)
	SetSaleCenters(ctx context.Context, centers []SaleCenter, ttl time.Duration) error
}
