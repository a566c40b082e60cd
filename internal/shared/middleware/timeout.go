package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
)

const DefaultTimeout = 30 * time.Second

// Timeout bounds the request context. Repositories and the billing client
// observe it through ctx; nothing is written here after the handler returns.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.FromContext(c.Request.Context()).Warn("Request deadline exceeded",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"timeout", timeout.String(),
				"status", c.Writer.Status(),
			)
		}
	}
}
