package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/region-service/internal/metrics"
	"go.uber.org/zap"
)

// RequestLogger - лог каждого запроса и HTTP-метрики по шаблону маршрута
func RequestLogger(logger *zap.Logger, collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// Ответ ещё не записан: отдаём ошибку ErrorHandler'у, чтобы статус был корректным
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		collector.ObserveHTTP(c.Method(), route, status, elapsed)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("HTTP request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("HTTP request", fields...)
		default:
			logger.Info("HTTP request", fields...)
		}

		return nil
	}
}
