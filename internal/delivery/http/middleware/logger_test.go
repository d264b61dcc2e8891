package middleware_test

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/location-registry/internal/delivery/http/middleware"
	"github.com/location-registry/internal/pkg/errors"
	"github.com/location-registry/internal/pkg/utils"
)

func newLoggedApp(t *testing.T) (*fiber.App, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if _, ok := errors.As(err); ok {
				return utils.SendError(c, err)
			}
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if stderrors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).SendString(err.Error())
		},
	})
	app.Use(middleware.Logger(zap.New(core)))

	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/sent", func(c *fiber.Ctx) error { return utils.SendError(c, errors.ErrDuplicateCode) })
	app.Get("/app-error", func(c *fiber.Ctx) error { return errors.ErrValidation })
	app.Get("/fiber-error", func(c *fiber.Ctx) error { return fiber.ErrServiceUnavailable })
	app.Get("/plain-error", func(c *fiber.Ctx) error { return stderrors.New("boom") })

	return app, logs
}

func TestLogger_StatusMatchesResponse(t *testing.T) {
	tests := []struct {
		path   string
		status int
		level  zapcore.Level
	}{
		{path: "/ok", status: http.StatusOK, level: zapcore.DebugLevel},
		{path: "/sent", status: http.StatusConflict, level: zapcore.WarnLevel},
		{path: "/app-error", status: http.StatusBadRequest, level: zapcore.WarnLevel},
		{path: "/fiber-error", status: http.StatusServiceUnavailable, level: zapcore.ErrorLevel},
		{path: "/plain-error", status: http.StatusInternalServerError, level: zapcore.ErrorLevel},
		{path: "/missing", status: http.StatusNotFound, level: zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			app, logs := newLoggedApp(t)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			require.Equal(t, tt.status, resp.StatusCode)

			entries := logs.FilterMessage("HTTP request").AllUntimed()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			assert.EqualValues(t, tt.status, entries[0].ContextMap()["status"])
		})
	}
}
