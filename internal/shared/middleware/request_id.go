package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID reuses an upstream X-Request-ID when it is a UUID and mints one otherwise.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(RequestIDHeader))
		if err != nil {
			id = uuid.New()
		}

		c.Set(RequestIDKey, id.String())
		c.Header(RequestIDHeader, id.String())
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
