package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
)

// LoggerMiddleware puts a request logger on the context and writes one access
// line per request once the handler chain has finished.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Request = c.Request.WithContext(
			logger.NewContext(c.Request.Context(), slog.Default().With(RequestIDKey, GetRequestID(c))),
		)

		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("ip", c.ClientIP()),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			attrs = append(attrs, slog.String("query", q))
		}
		if p := sharedContext.GetPrincipal(c); !p.IsGuest() {
			attrs = append(attrs, slog.String("principal", p.Kind.String()), slog.Any("principal_id", p.ID))
		}
		if loc := c.Writer.Header().Get("Location"); loc != "" {
			attrs = append(attrs, slog.String("redirect", loc))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
		}

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}
		logger.FromContext(c.Request.Context()).LogAttrs(c.Request.Context(), level, "요청 처리 완료", attrs...)
	}
}
