package meta

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/config"
	"github.com/nagoyameshi/go-api-server/internal/shared/database"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/shared/session"
)

// Handler handles meta endpoints (health check, app version, legal documents, etc.)
type Handler struct {
	cfg     *config.Config
	db      *database.DB
	revoker session.Revoker
}

// NewHandler creates a new meta handler
func NewHandler(cfg *config.Config, db *database.DB, revoker session.Revoker) *Handler {
	return &Handler{
		cfg:     cfg,
		db:      db,
		revoker: revoker,
	}
}

type check struct {
	name string
	run  func(context.Context) error
}

// Health checks service, database and session store health
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := []check{
		{name: "database", run: h.db.HealthCheck},
		{name: "session_store", run: h.revoker.Ping},
	}

	healthy := true
	results := gin.H{}
	for _, chk := range checks {
		start := time.Now()
		if err := chk.run(ctx); err != nil {
			healthy = false
			logger.FromContext(ctx).Error("Health check 실패", "check", chk.name, "error", err)
			results[chk.name] = gin.H{
				"status": "down",
				"error":  err.Error(),
			}
			continue
		}
		results[chk.name] = gin.H{
			"status":     "up",
			"latency_ms": time.Since(start).Milliseconds(),
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"service": gin.H{
				"name":        h.cfg.App.Name,
				"environment": h.cfg.App.Env,
			},
			"checks": results,
		})
		return
	}

	// All checks passed
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"service": gin.H{
			"name":        h.cfg.App.Name,
			"environment": h.cfg.App.Env,
			"port":        h.cfg.App.Port,
		},
		"checks": results,
	})
}
