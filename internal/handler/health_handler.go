package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/showcase_api/internal/utils"
)

var startTime = time.Now()

// Pinger is a dependency whose connectivity is reported by the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health endpoint.
type HealthHandler struct {
	store Pinger
	redis Pinger
}

// NewHealthHandler creates a new HealthHandler. redis may be nil when drafts
// are disabled.
func NewHealthHandler(store, redis Pinger) *HealthHandler {
	return &HealthHandler{store: store, redis: redis}
}

// GetHealth responds with service, store and Redis status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	storeStatus := pingStatus(ctx, h.store)
	redisStatus := pingStatus(ctx, h.redis)

	status, code := "healthy", 200
	if storeStatus != "connected" {
		status, code = "degraded", 503
	}

	utils.Success(c, code, "Service is "+status, gin.H{
		"status":  status,
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"store":   gin.H{"status": storeStatus},
		"redis":   gin.H{"status": redisStatus},
	})
}

func pingStatus(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "disconnected"
	}
	return "connected"
}
