package middleware

import (
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/location-registry/internal/pkg/errors"
)

// Logger - логирование запросов с request id (ставится middleware requestid)
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := responseStatus(c, err)
		fields := []zap.Field{
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("HTTP request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("HTTP request", fields...)
		default:
			logger.Debug("HTTP request", fields...)
		}
		return err
	}
}

// responseStatus - итоговый статус ответа: ошибка из c.Next() ещё не записана
// в ответ ErrorHandler-ом приложения
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		return fe.Code
	}
	if appErr, ok := errors.As(err); ok {
		return appErr.StatusCode
	}
	return fiber.StatusInternalServerError
}
