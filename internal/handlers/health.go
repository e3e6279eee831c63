package handlers

import (
	"context"
	"time"

	"finances/internal/repositories/cache"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewHealthHandler creates the health handler. cacheService may be nil when
// caching is disabled.
func NewHealthHandler(db *gorm.DB, cacheService *cache.CacheService) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheService}
}

// HealthCheck handles GET /health. It answers 503 when the database is down;
// a broken cache only degrades the report.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	services := fiber.Map{"database": "connected", "redis": "disabled"}

	if err := h.pingDB(ctx); err != nil {
		status = fiber.StatusServiceUnavailable
		services["database"] = err.Error()
	}

	if h.cache != nil {
		if err := h.cache.HealthCheck(ctx); err != nil {
			services["redis"] = err.Error()
		} else {
			services["redis"] = "connected"
		}
	}

	body := fiber.Map{
		"status":   "ok",
		"services": services,
	}
	if status != fiber.StatusOK {
		body["status"] = "unavailable"
	}
	if h.cache != nil {
		body["cache_stats"] = h.cache.Stats()
	}
	return c.Status(status).JSON(body)
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
