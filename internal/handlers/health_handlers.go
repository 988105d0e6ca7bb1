package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

type HealthHandlers struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

func NewHealthHandlers(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandlers {
	return &HealthHandlers{pool: pool, redis: redisClient}
}

// Health handles GET /health. Liveness only; it never touches dependencies.
func (h *HealthHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /health/ready. Redis is best-effort (the cache degrades
// gracefully), so only the database gates readiness.
func (h *HealthHandlers) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	status := map[string]string{"status": "ok", "database": "up", "redis": "up"}

	if err := h.pool.Ping(ctx); err != nil {
		status["status"] = "degraded"
		status["database"] = "down"
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		status["redis"] = "down"
	}
	return c.JSON(http.StatusOK, status)
}
