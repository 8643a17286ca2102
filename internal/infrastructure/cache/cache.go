package cache

import (
	"context"
	"time"

	"closeouts/internal/domain/closeout"
)

// Noop кэш справочников, который ничего не хранит. Используется без Redis.
type Noop struct{}

func (Noop) GetVenues(_ context.Context) ([]closeout.Venue, bool, error) {
	return nil, false, nil
}

func (Noop) SetVenues(_ context.Context, _ []closeout.Venue, _ time.Duration) error {
	return nil
}

func (Noop) GetSaleCenters(_ context.Context) ([]closeout.SaleCenter, bool, error) {
	return nil, false, nil
}

func (Noop) SetSaleCenters(_ context.Context, _ []closeout.SaleCenter, _ time.Duration) error {
	return nil
}
