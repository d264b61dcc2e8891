package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/location-registry/internal/delivery/http/handler"
	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/pkg/errors"
)

type MockRegistryStatistics struct {
	mock.Mock
}

func (m *MockRegistryStatistics) GetStatistics(ctx context.Context) (*domain.RegistryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistryStats), args.Error(1)
}

func (m *MockRegistryStatistics) RefreshStatistics(ctx context.Context) (*domain.RegistryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistryStats), args.Error(1)
}

func statsApp(uc *MockRegistryStatistics) *fiber.App {
	app := fiber.New()
	app.Get("/api/v1/statistics", handler.NewStatsHandler(uc, zap.NewNop()).GetStatistics)
	return app
}

func TestStatsHandler_UsesCachedStatistics(t *testing.T) {
	uc := new(MockRegistryStatistics)
	uc.On("GetStatistics", mock.Anything).Return(&domain.RegistryStats{
		Levels: map[domain.Level]domain.LevelCount{
			domain.LevelProvince: {Total: 7, Active: 7},
		},
		MunicipalitiesByType: map[string]int{"METROPOLITAN_CITY": 6},
		DeclaredWards:        6743,
	}, nil)

	resp, env := do(t, statsApp(uc), httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got domain.RegistryStats
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 7, got.Levels[domain.LevelProvince].Total)
	assert.Equal(t, int64(6743), got.DeclaredWards)
	uc.AssertNotCalled(t, "RefreshStatistics", mock.Anything)
}

func TestStatsHandler_Refresh(t *testing.T) {
	uc := new(MockRegistryStatistics)
	uc.On("RefreshStatistics", mock.Anything).Return(&domain.RegistryStats{}, nil)

	resp, _ := do(t, statsApp(uc), httptest.NewRequest(http.MethodGet, "/api/v1/statistics?refresh=true", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	uc.AssertExpectations(t)
	uc.AssertNotCalled(t, "GetStatistics", mock.Anything)
}

func TestStatsHandler_Error(t *testing.T) {
	uc := new(MockRegistryStatistics)
	uc.On("GetStatistics", mock.Anything).Return(nil, errors.ErrDatabaseError)

	resp, env := do(t, statsApp(uc), httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "DATABASE_ERROR", env.Error.Code)
}
