package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck - проверка одной зависимости (Postgres, Redis)
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
	logger *zap.Logger
}

func NewHealthHandler(checks map[string]HealthCheck, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: logger,
	}
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	deps := make(map[string]string, len(h.checks))

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = "unavailable"
			status = "unhealthy"
			code = fiber.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"dependencies": deps,
		"time":         time.Now(),
	})
}
