package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/location-registry/internal/pkg/metrics"
)

// Metrics - счётчик и гистограмма длительности запросов по шаблону маршрута
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// шаблон (/api/v1/districts/:code), а не фактический путь, чтобы не плодить серии
		route := c.Route().Path
		method := c.Method()
		status := responseStatus(c, err)

		metrics.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDurationMs.WithLabelValues(route, method).
			Observe(float64(time.Since(start).Microseconds()) / 1000)
		return err
	}
}
