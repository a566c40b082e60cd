package middleware

import (
	"time"

	"github.com/nagoyameshi/go-api-server/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORS(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		// Location carries the post-mutation redirect target
		ExposeHeaders: []string{"Location", RequestIDHeader},
		MaxAge:        time.Duration(cfg.CORS.MaxAge) * time.Second,
	}

	if len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
		// wildcard origin cannot be combined with credentials
		corsConfig.AllowCredentials = false
	}

	return cors.New(corsConfig)
}
