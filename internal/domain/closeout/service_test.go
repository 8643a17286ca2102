package closeout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, rec Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, rec Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, key Key) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRepository) EnqueueSync(ctx context.Context, businessDay string, requestedAt time.Time) error {
	args := m.Called(ctx, businessDay, requestedAt)
	return args.Error(0)
}

type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) ListVenues(ctx context.Context) ([]Venue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Venue), args.Error(1)
}

func (m *MockReferenceRepository) ListSaleCenters(ctx context.Context) ([]SaleCenter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SaleCenter), args.Error(1)
}

type MockReferenceCache struct {
	mock.Mock
}

func (m *MockReferenceCache) GetVenues(ctx context.Context) ([]Venue, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]Venue), args.Bool(1), args.Error(2)
}

func (m *MockReferenceCache) SetVenues(ctx context.Context, venues []Venue, ttl time.Duration) error {
	args := m.Called(ctx, venues, ttl)
	return args.Error(0)
}

func (m *MockReferenceCache) GetSaleCenters(ctx context.Context) ([]SaleCenter, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]SaleCenter), args.Bool(1), args.Error(2)
}

func (m *MockReferenceCache) SetSaleCenters(ctx context.Context, centers []SaleCenter, ttl time.Duration) error {
	args := m.Called(ctx, centers, ttl)
	return args.Error(0)
}

func newTestService() (*Service, *MockRepository, *MockReferenceRepository, *MockReferenceCache) {
	repo := new(MockRepository)
	refs := new(MockReferenceRepository)
	cache := new(MockReferenceCache)
	return NewService(repo, refs, cache, time.Minute, slog.Default()), repo, refs, cache
}

func TestService_List(t *testing.T) {
	service, repo, _, _ := newTestService()
	ctx := context.Background()
	records := []Record{{PartitionKey: "L01", SortKey: "2024-01-01#1"}}

	repo.On("List", ctx).Return(records, nil)

	got, err := service.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, records, got)
	repo.AssertExpectations(t)
}

func TestService_List_Error(t *testing.T) {
	service, repo, _, _ := newTestService()
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	repo.On("List", ctx).Return(nil, dbErr)

	_, err := service.List(ctx)

	assert.ErrorIs(t, err, dbErr)
}

func TestService_Create(t *testing.T) {
	service, repo, _, _ := newTestService()
	ctx := context.Background()

	want := Record{PartitionKey: "L01", SortKey: "2024-01-05#2", BusinessDay: "2024-01-05"}
	repo.On("Create", ctx, want).Return(nil)

	err := service.Create(ctx, Record{PartitionKey: " L01 ", SortKey: "2024-01-05#2"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
	}{
		{name: "missing PK", rec: Record{SortKey: "2024-01-01#1"}},
		{name: "missing SK", rec: Record{PartitionKey: "L01", BusinessDay: "2024-01-01"}},
		{name: "no business day", rec: Record{PartitionKey: "L01", SortKey: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _, _ := newTestService()

			err := service.Create(context.Background(), tt.rec)

			assert.ErrorIs(t, err, ErrInvalidRecord)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Create_AlreadyExists(t *testing.T) {
	service, repo, _, _ := newTestService()
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("closeout.Record")).Return(ErrAlreadyExists)

	err := service.Create(ctx, Record{PartitionKey: "L01", SortKey: "2024-01-05#2"})

	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestService_Update_NotFound(t *testing.T) {
	service, repo, _, _ := newTestService()
	ctx := context.Background()

	repo.On("Update", ctx, mock.AnythingOfType("closeout.Record")).Return(ErrNotFound)

	err := service.Update(ctx, Record{PartitionKey: "L01", SortKey: "x", BusinessDay: "05/01/2024"})

	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertCalled(t, "Update", ctx, Record{PartitionKey: "L01", SortKey: "x", BusinessDay: "2024-01-05"})
}

func TestService_Delete(t *testing.T) {
	service, repo, _, _ := newTestService()
	ctx := context.Background()
	key := Key{PartitionKey: "L01", SortKey: "2024-01-05#2"}

	repo.On("Delete", ctx, key).Return(nil)

	require.NoError(t, service.Delete(ctx, key))
	assert.ErrorIs(t, service.Delete(ctx, Key{PartitionKey: "L01"}), ErrInvalidRecord)
	repo.AssertNumberOfCalls(t, "Delete", 1)
}

func TestService_RequestSync(t *testing.T) {
	service, repo, _, _ := newTestService()
	ctx := context.Background()
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	repo.On("EnqueueSync", ctx, "2024-01-31", now).Return(nil)

	require.NoError(t, service.RequestSync(ctx, "31/01/2024"))
	assert.ErrorIs(t, service.RequestSync(ctx, "tomorrow"), ErrInvalidDate)
	repo.AssertNumberOfCalls(t, "EnqueueSync", 1)
}

func TestService_ListVenues_CacheHit(t *testing.T) {
	service, _, refs, cache := newTestService()
	ctx := context.Background()
	venues := []Venue{{Code: "L01", Name: "Centro"}}

	cache.On("GetVenues", ctx).Return(venues, true, nil)

	got, err := service.ListVenues(ctx)

	require.NoError(t, err)
	assert.Equal(t, venues, got)
	refs.AssertNotCalled(t, "ListVenues", mock.Anything)
}

func TestService_ListVenues_CacheMiss(t *testing.T) {
	service, _, refs, cache := newTestService()
	ctx := context.Background()
	venues := []Venue{{Code: "L01", Name: "Centro"}}

	cache.On("GetVenues", ctx).Return(nil, false, nil)
	refs.On("ListVenues", ctx).Return(venues, nil)
	cache.On("SetVenues", ctx, venues, time.Minute).Return(nil)

	got, err := service.ListVenues(ctx)

	require.NoError(t, err)
	assert.Equal(t, venues, got)
	cache.AssertExpectations(t)
	refs.AssertExpectations(t)
}

func TestService_ListSaleCenters_CacheFailureFallsThrough(t *testing.T) {
	service, _, refs, cache := newTestService()
	ctx := context.Background()
	centers := []SaleCenter{{ID: "TPV-1", Name: "Barra", VenueCode: "L01"}}

	cache.On("GetSaleCenters", ctx).Return(nil, false, errors.New("redis down"))
	refs.On("ListSaleCenters", ctx).Return(centers, nil)
	cache.On("SetSaleCenters", ctx, centers, time.Minute).Return(errors.New("redis down"))

	got, err := service.ListSaleCenters(ctx)

	require.NoError(t, err)
	assert.Equal(t, centers, got)
}

func TestService_ListSaleCenters_Error(t *testing.T) {
	service, _, refs, cache := newTestService()
	ctx := context.Background()

	cache.On("GetSaleCenters", ctx).Return(nil, false, nil)
	refs.On("ListSaleCenters", ctx).Return(nil, errors.New("timeout"))

	_, err := service.ListSaleCenters(ctx)

	assert.Error(t, err)
	cache.AssertNotCalled(t, "SetSaleCenters", mock.Anything, mock.Anything, mock.Anything)
}
