package closeout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

// Servicer операции бэкенда над закрытиями и справочниками.
type Servicer interface {
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, key Key) error
	RequestSync(ctx context.Context, businessDay string) error
	ListVenues(ctx context.Context) ([]Venue, error)
	ListSaleCenters(ctx context.Context) ([]SaleCenter, error)
}

type Service struct {
	repo     Repository
	refs     ReferenceRepository
	cache    ReferenceCache
	cacheTTL time.Duration
	log      *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, refs ReferenceRepository, cache ReferenceCache, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		refs:     refs,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With("component", "closeout_service"),
		now:      time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list closeouts: %w", err)
	}
	return records, nil
}

func (s *Service) Create(ctx context.Context, rec Record) error {
	rec, err := validate(rec)
	if err != nil {
		return err
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return fmt.Errorf("create closeout: %w", err)
	}
	s.log.Info("closeout created", "pk", rec.PartitionKey, "sk", rec.SortKey)
	return nil
}

// Update заменяет запись целиком по составному ключу.
func (s *Service) Update(ctx context.Context, rec Record) error {
	rec, err := validate(rec)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return fmt.Errorf("update closeout: %w", err)
	}
	s.log.Info("closeout updated", "pk", rec.PartitionKey, "sk", rec.SortKey)
	return nil
}

func (s *Service) Delete(ctx context.Context, key Key) error {
	if strings.TrimSpace(key.PartitionKey) == "" || strings.TrimSpace(key.SortKey) == "" {
		return fmt.Errorf("%w: PK and SK are required", ErrInvalidRecord)
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete closeout: %w", err)
	}
	s.log.Info("closeout deleted", "pk", key.PartitionKey, "sk", key.SortKey)
	return nil
}

// RequestSync ставит день в очередь синхронизации с POS.
func (s *Service) RequestSync(ctx context.Context, businessDay string) error {
	day, err := ParseDate(businessDay)
	if err != nil {
		return err
	}
	if err := s.repo.EnqueueSync(ctx, day.Format(WireLayout), s.now()); err != nil {
		return fmt.Errorf("enqueue sync: %w", err)
	}
	s.log.Debug("sync requested", "business_day", day.Format(WireLayout))
	return nil
}

func (s *Service) ListVenues(ctx context.Context) ([]Venue, error) {
	if venues, ok, err := s.cache.GetVenues(ctx); err != nil {
		s.log.Warn("venue cache read failed", "error", err)
	} else if ok {
		return venues, nil
	}

	venues, err := s.refs.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	if err := s.cache.SetVenues(ctx, venues, s.cacheTTL); err != nil {
		s.log.Warn("venue cache write failed", "error", err)
	}
	return venues, nil
}

func (s *Service) ListSaleCenters(ctx context.Context) ([]SaleCenter, error) {
	if centers, ok, err := s.cache.GetSaleCenters(ctx); err != nil {
		s.log.Warn("sale center cache read failed", "error", err)
	} else if ok {
		return centers, nil
	}

	centers, err := s.refs.ListSaleCenters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sale centers: %w", err)
	}
	if err := s.cache.SetSaleCenters(ctx, centers, s.cacheTTL); err != nil {
		s.log.Warn("sale center cache write failed", "error", err)
	}
	return centers, nil
}

func validate(rec Record) (Record, error) {
	rec.PartitionKey = strings.TrimSpace(rec.PartitionKey)
	rec.SortKey = strings.TrimSpace(rec.SortKey)
	if rec.PartitionKey == "" {
		return rec, fmt.Errorf("%w: PK is required", ErrInvalidRecord)
	}
	if rec.SortKey == "" {
		return rec, fmt.Errorf("%w: SK is required", ErrInvalidRecord)
	}

	day := NormalizeBusinessDay(rec.BusinessDay, rec.SortKey)
	if day == "" {
		return rec, fmt.Errorf("%w: businessDay is missing or not a date", ErrInvalidRecord)
	}
	rec.BusinessDay = day

	return rec, nil
}
