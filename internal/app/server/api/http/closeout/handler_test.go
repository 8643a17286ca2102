package closeout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"closeouts/internal/app/server/api/http/apierror"
	"closeouts/internal/domain/closeout"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context) ([]closeout.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]closeout.Record), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, rec closeout.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockService) Update(ctx context.Context, rec closeout.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockService) Delete(ctx context.Context, key closeout.Key) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockService) RequestSync(ctx context.Context, businessDay string) error {
	return m.Called(ctx, businessDay).Error(0)
}

func (m *MockService) ListVenues(ctx context.Context) ([]closeout.Venue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]closeout.Venue), args.Error(1)
}

func (m *MockService) ListSaleCenters(ctx context.Context) ([]closeout.SaleCenter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]closeout.SaleCenter), args.Error(1)
}

func setup(t *testing.T) (humatest.TestAPI, *MockService) {
	t.Helper()
	apierror.Install()

	svc := new(MockService)
	_, api := humatest.New(t)
	NewHandler(svc, slog.Default(), nil).SetupRoutes(api)
	t.Cleanup(func() { svc.AssertExpectations(t) })
	return api, svc
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Error
}

func TestHandler_List(t *testing.T) {
	api, svc := setup(t)
	cash := 120.5
	svc.On("List", mock.Anything).Return([]closeout.Record{
		{PartitionKey: "MAD01", SortKey: "2024-03-05#1", BusinessDay: "2024-03-05", CashTotal: &cash},
	}, nil)

	resp := api.Get("/closeouts")

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Closeouts []map[string]any `json:"closeouts"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Closeouts, 1)
	assert.Equal(t, "MAD01", body.Closeouts[0]["PK"])
	assert.Equal(t, "2024-03-05#1", body.Closeouts[0]["SK"])
	assert.Equal(t, 120.5, body.Closeouts[0]["cashTotal"])
}

func TestHandler_List_Empty(t *testing.T) {
	api, svc := setup(t)
	svc.On("List", mock.Anything).Return(nil, nil)

	resp := api.Get("/closeouts")

	require.Equal(t, http.StatusOK, resp.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.JSONEq(t, `[]`, string(body["closeouts"]))
}

func TestHandler_List_InternalError(t *testing.T) {
	api, svc := setup(t)
	svc.On("List", mock.Anything).Return(nil, errors.New("connection reset"))

	resp := api.Get("/closeouts")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "internal server error", errorMessage(t, resp.Body.Bytes()))
}

func TestHandler_Create(t *testing.T) {
	api, svc := setup(t)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(rec closeout.Record) bool {
		return rec.PartitionKey == "MAD01" && rec.SortKey == "2024-03-05#1" &&
			len(rec.TicketPayments) == 1 && rec.TicketPayments[0].Method == "Efectivo"
	})).Return(nil)

	resp := api.Post("/closeouts", map[string]any{
		"PK":             "MAD01",
		"SK":             "2024-03-05#1",
		"businessDay":    "2024-03-05",
		"ticketPayments": []map[string]any{{"method": "Efectivo", "amount": 40}},
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"ok":true`)
}

func TestHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "duplicate", err: closeout.ErrAlreadyExists, status: http.StatusConflict, message: closeout.ErrAlreadyExists.Error()},
		{name: "invalid", err: fmt.Errorf("%w: SK is required", closeout.ErrInvalidRecord), status: http.StatusBadRequest, message: "invalid closeout: SK is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, svc := setup(t)
			svc.On("Create", mock.Anything, mock.Anything).Return(tt.err)

			resp := api.Post("/closeouts", map[string]any{"PK": "MAD01", "SK": " "})

			assert.Equal(t, tt.status, resp.Code)
			assert.Equal(t, tt.message, errorMessage(t, resp.Body.Bytes()))
		})
	}
}

func TestHandler_Create_MissingKey(t *testing.T) {
	api, _ := setup(t)

	resp := api.Post("/closeouts", map[string]any{"PK": "MAD01"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.NotEmpty(t, errorMessage(t, resp.Body.Bytes()))
}

func TestHandler_Update_NotFound(t *testing.T) {
	api, svc := setup(t)
	svc.On("Update", mock.Anything, mock.Anything).Return(fmt.Errorf("update closeout: %w", closeout.ErrNotFound))

	resp := api.Put("/closeouts", map[string]any{"PK": "MAD01", "SK": "2024-03-05#9"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandler_Delete(t *testing.T) {
	api, svc := setup(t)
	svc.On("Delete", mock.Anything, closeout.Key{PartitionKey: "MAD01", SortKey: "2024-03-05#1"}).Return(nil)

	resp := api.Delete("/closeouts?PK=MAD01&SK=2024-03-05%231")

	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestHandler_Delete_MissingQuery(t *testing.T) {
	api, _ := setup(t)

	resp := api.Delete("/closeouts?PK=MAD01")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestHandler_Sync(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		api, svc := setup(t)
		svc.On("RequestSync", mock.Anything, "2024-03-05").Return(nil)

		resp := api.Post("/closeouts/sync", map[string]any{"businessDay": "2024-03-05"})

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"ok":true`)
	})

	t.Run("invalid day", func(t *testing.T) {
		api, svc := setup(t)
		svc.On("RequestSync", mock.Anything, "05/03/2024x").Return(closeout.ErrInvalidDate)

		resp := api.Post("/closeouts/sync", map[string]any{"businessDay": "05/03/2024x"})

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}
