package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/database"
)

// HealthHandler reports the reachability of the backing services.
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Health answers 200 when all backing services respond, 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{}

	dbStatus := "ok"
	if h.db != nil {
		if err := database.HealthCheck(c.Request.Context(), h.db); err != nil {
			dbStatus = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}
	checks["database"] = dbStatus

	redisStatus := "ok"
	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}
	checks["redis"] = redisStatus

	c.JSON(status, checks)
}
