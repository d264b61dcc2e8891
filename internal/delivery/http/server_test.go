package http_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/location-registry/internal/config"
	httpserver "github.com/location-registry/internal/delivery/http"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         0,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  5 * time.Second,
			CORSOrigins:  "*",
		},
	}
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func TestServer_HealthHealthy(t *testing.T) {
	srv := httpserver.NewServer(testConfig(), zap.NewNop(), map[string]httpserver.HealthCheck{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return nil },
	}, nil)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, map[string]interface{}{"database": "ok", "redis": "ok"}, body["dependencies"])
}

func TestServer_HealthUnhealthy(t *testing.T) {
	srv := httpserver.NewServer(testConfig(), zap.NewNop(), map[string]httpserver.HealthCheck{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return stderrors.New("connection refused") },
	}, nil)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "unhealthy", body["status"])
	deps := body["dependencies"].(map[string]interface{})
	assert.Equal(t, "connection refused", deps["redis"])
}

func TestServer_UnknownRoute(t *testing.T) {
	srv := httpserver.NewServer(testConfig(), zap.NewNop(), nil, nil)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode(t, resp)
	apiErr := body["error"].(map[string]interface{})
	assert.Equal(t, "NOT_FOUND", apiErr["code"])
}

func TestServer_RequestID(t *testing.T) {
	srv := httpserver.NewServer(testConfig(), zap.NewNop(), nil, nil)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
