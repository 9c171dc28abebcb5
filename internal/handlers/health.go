package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/config"
	"github.com/localnerve/agenthub/internal/services"
	"gorm.io/gorm"
)

// ServiceVersion is reported by the liveness endpoint.
const ServiceVersion = "1.0.0"

// HealthHandler handles liveness and readiness routes
type HealthHandler struct {
	Cfg *config.Config
	DB  *gorm.DB
}

// Root handles GET /
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "healthy",
		"service": "agenthub API",
		"version": ServiceVersion,
	})
}

// Health handles GET /api/health
// @Summary Readiness check
// @Description Reports store connectivity and completion-engine configuration status
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	if result.Timestamp == "" {
		result.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
