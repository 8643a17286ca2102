package health

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestHandler_healthCheck(t *testing.T) {
	tests := []struct {
		name         string
		pingErr      error
		wantDatabase string
		wantErr      bool
	}{
		{name: "database up", wantDatabase: "up"},
		{name: "database down", pingErr: errors.New("connection refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockPinger)
			db.On("Ping", mock.Anything).Return(tt.pingErr)
			handler := NewHandler(db, slog.Default(), huma.Middlewares{})

			output, err := handler.healthCheck(context.Background(), &Input{})

			if tt.wantErr {
				var statusErr huma.StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusServiceUnavailable, statusErr.GetStatus())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "OK", output.Body.Status)
			assert.Equal(t, tt.wantDatabase, output.Body.Database)
		})
	}
}

func TestHandler_Route_WithoutDatabase(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(nil, slog.Default(), nil).SetupRoutes(api)

	resp := api.Get("/health")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"OK"`)
	assert.NotContains(t, resp.Body.String(), `"database"`)
}
